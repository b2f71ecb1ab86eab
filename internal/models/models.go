package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PlatformWhatsApp = "whatsapp"

// Message direction
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message status
const (
	StatusReceived  = "received"
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// Contact represents a messaging peer, unique per (platform, phone_number).
type Contact struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PhoneNumber string    `gorm:"type:varchar(50);uniqueIndex:idx_contacts_platform_phone" json:"phone_number"`
	DisplayName *string   `gorm:"type:varchar(255)" json:"display_name"`
	Platform    string    `gorm:"type:varchar(50);uniqueIndex:idx_contacts_platform_phone" json:"platform"`
	Metadata    JSONMap   `gorm:"type:text" json:"metadata"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Message represents a single message event. Rows are immutable once written.
type Message struct {
	ID                string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ContactID         string     `gorm:"type:varchar(36);index;not null" json:"contact_id"`
	Platform          string     `gorm:"type:varchar(50)" json:"platform"`
	Direction         string     `gorm:"type:varchar(20)" json:"direction"`
	Body              string     `gorm:"type:text" json:"body"`
	MediaURLs         StringList `gorm:"type:text" json:"media_urls"`
	Status            string     `gorm:"type:varchar(20)" json:"status"`
	ProviderMessageID *string    `gorm:"type:varchar(255);index" json:"provider_message_id"`
	RawPayload        JSONMap    `gorm:"type:text" json:"raw_payload"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
