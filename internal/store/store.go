// Package store persists contacts and messages. Writes for an inbound
// callback run as two ordered steps, contact upsert then message insert,
// without a wrapping transaction; a retry of the same callback re-upserts
// the contact harmlessly.
package store

import (
	"fmt"

	"github.com/NAMXtoken/pocket-chat-api/internal/models"
	"github.com/NAMXtoken/pocket-chat-api/internal/twilio"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Result reports the outcome of the two-step inbound write. MessageErr is
// only ever set when the contact step succeeded; a set ContactErr means
// the message insert was never attempted.
type Result struct {
	Contact    *models.Contact
	ContactErr error
	Message    *models.Message
	MessageErr error
}

// SaveInbound upserts the contact for the sender and then inserts the
// message row referencing it.
func (s *Store) SaveInbound(in twilio.Inbound) Result {
	var res Result

	res.Contact, res.ContactErr = s.UpsertContact(in)
	if res.ContactErr != nil {
		return res
	}

	res.Message, res.MessageErr = s.InsertMessage(res.Contact.ID, in)
	return res
}

// UpsertContact writes the sender's contact row, keyed on
// (platform, phone_number). On conflict the display name, metadata and
// updated_at are overwritten; the existing id is preserved.
func (s *Store) UpsertContact(in twilio.Inbound) (*models.Contact, error) {
	var displayName *string
	if in.DisplayName != "" {
		displayName = &in.DisplayName
	}

	contact := models.Contact{
		PhoneNumber: in.PhoneNumber,
		Platform:    models.PlatformWhatsApp,
		DisplayName: displayName,
		Metadata:    models.JSONMap{"to": in.To, "from": in.From},
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "phone_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "metadata", "updated_at"}),
	}).Create(&contact).Error
	if err != nil {
		return nil, fmt.Errorf("contact upsert failed: %w", err)
	}

	// Re-read the row: on conflict the insert's generated id is discarded
	// and the existing row keeps its id.
	var saved models.Contact
	err = s.db.Where("platform = ? AND phone_number = ?", models.PlatformWhatsApp, in.PhoneNumber).
		First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("contact lookup after upsert failed: %w", err)
	}
	return &saved, nil
}

// InsertMessage records the inbound message for an already-persisted contact.
func (s *Store) InsertMessage(contactID string, in twilio.Inbound) (*models.Message, error) {
	var providerMessageID *string
	if in.MessageSID != "" {
		providerMessageID = &in.MessageSID
	}

	message := models.Message{
		ContactID:         contactID,
		Platform:          models.PlatformWhatsApp,
		Direction:         models.DirectionInbound,
		Body:              in.Body,
		MediaURLs:         models.StringList(in.MediaURLs),
		Status:            models.StatusReceived,
		ProviderMessageID: providerMessageID,
		RawPayload:        models.JSONMap(in.Raw),
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("message insert failed: %w", err)
	}
	return &message, nil
}

// ListContacts returns all contacts, most recently updated first, the
// order the dashboard shows the conversation list in.
func (s *Store) ListContacts() ([]models.Contact, error) {
	contacts := []models.Contact{}
	err := s.db.Order("updated_at DESC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// ListMessages returns a contact's messages in creation order.
func (s *Store) ListMessages(contactID string) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.db.Where("contact_id = ?", contactID).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
