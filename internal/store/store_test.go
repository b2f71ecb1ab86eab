package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/NAMXtoken/pocket-chat-api/internal/database"
	"github.com/NAMXtoken/pocket-chat-api/internal/models"
	"github.com/NAMXtoken/pocket-chat-api/internal/twilio"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func testInbound() twilio.Inbound {
	return twilio.Inbound{
		PhoneNumber: "15551234567",
		DisplayName: "Alice",
		From:        "whatsapp:+15551234567",
		To:          "whatsapp:+15559876543",
		Body:        "Hi",
		MediaURLs:   []string{},
		MessageSID:  "SM123",
		Raw:         twilio.Values{"Body": "Hi"},
	}
}

func TestSaveInbound(t *testing.T) {
	s := New(openTestDB(t))

	res := s.SaveInbound(testInbound())
	if res.ContactErr != nil {
		t.Fatalf("ContactErr = %v", res.ContactErr)
	}
	if res.MessageErr != nil {
		t.Fatalf("MessageErr = %v", res.MessageErr)
	}

	if res.Contact.ID == "" {
		t.Error("contact should have an assigned id")
	}
	if res.Contact.PhoneNumber != "15551234567" {
		t.Errorf("PhoneNumber = %q", res.Contact.PhoneNumber)
	}
	if res.Contact.Platform != models.PlatformWhatsApp {
		t.Errorf("Platform = %q", res.Contact.Platform)
	}
	if res.Contact.DisplayName == nil || *res.Contact.DisplayName != "Alice" {
		t.Errorf("DisplayName = %v", res.Contact.DisplayName)
	}

	if res.Message.ContactID != res.Contact.ID {
		t.Errorf("message must reference the upserted contact, got %q", res.Message.ContactID)
	}
	if res.Message.Direction != models.DirectionInbound {
		t.Errorf("Direction = %q", res.Message.Direction)
	}
	if res.Message.Status != models.StatusReceived {
		t.Errorf("Status = %q", res.Message.Status)
	}
	if res.Message.ProviderMessageID == nil || *res.Message.ProviderMessageID != "SM123" {
		t.Errorf("ProviderMessageID = %v", res.Message.ProviderMessageID)
	}
}

func TestUpsertContactIdempotent(t *testing.T) {
	s := New(openTestDB(t))

	first := testInbound()
	second := testInbound()
	second.DisplayName = "Alice Cooper"

	c1, err := s.UpsertContact(first)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := s.UpsertContact(second)
	if err != nil {
		t.Fatal(err)
	}

	if c1.ID != c2.ID {
		t.Errorf("upsert must preserve the existing id: %q vs %q", c1.ID, c2.ID)
	}
	if c2.DisplayName == nil || *c2.DisplayName != "Alice Cooper" {
		t.Errorf("DisplayName should reflect the most recent callback, got %v", c2.DisplayName)
	}

	var count int64
	s.db.Model(&models.Contact{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one contact row, got %d", count)
	}
}

func TestUpsertContactEmptyDisplayName(t *testing.T) {
	s := New(openTestDB(t))

	in := testInbound()
	in.DisplayName = ""

	c, err := s.UpsertContact(in)
	if err != nil {
		t.Fatal(err)
	}
	if c.DisplayName != nil {
		t.Errorf("empty display name should persist as null, got %q", *c.DisplayName)
	}
}

func TestSaveInbound_ContactFailureSkipsMessage(t *testing.T) {
	db := openTestDB(t)
	s := New(db)

	if err := db.Exec("DROP TABLE contacts").Error; err != nil {
		t.Fatal(err)
	}

	res := s.SaveInbound(testInbound())
	if res.ContactErr == nil {
		t.Fatal("expected contact error")
	}
	if res.MessageErr != nil {
		t.Error("message step must not be attempted after a contact failure")
	}

	var count int64
	db.Model(&models.Message{}).Count(&count)
	if count != 0 {
		t.Errorf("no message row should exist, got %d", count)
	}
}

func TestSaveInbound_MessageFailureLeavesContact(t *testing.T) {
	db := openTestDB(t)
	s := New(db)

	if err := db.Exec("DROP TABLE messages").Error; err != nil {
		t.Fatal(err)
	}

	res := s.SaveInbound(testInbound())
	if res.ContactErr != nil {
		t.Fatalf("ContactErr = %v", res.ContactErr)
	}
	if res.MessageErr == nil {
		t.Fatal("expected message error")
	}

	// The partial write is the accepted trade-off: the contact row stays.
	var count int64
	db.Model(&models.Contact{}).Count(&count)
	if count != 1 {
		t.Errorf("contact row should persist, got %d", count)
	}
}

func TestListContactsOrderedByUpdate(t *testing.T) {
	s := New(openTestDB(t))

	first := testInbound()
	second := testInbound()
	second.PhoneNumber = "15550000000"
	second.DisplayName = "Bob"

	if _, err := s.UpsertContact(first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := s.UpsertContact(second); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	// A new message from the first contact bumps it back to the top.
	if _, err := s.UpsertContact(first); err != nil {
		t.Fatal(err)
	}

	contacts, err := s.ListContacts()
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].PhoneNumber != "15551234567" {
		t.Errorf("most recently updated contact should come first, got %q", contacts[0].PhoneNumber)
	}
}

func TestListMessagesOrderedByCreation(t *testing.T) {
	s := New(openTestDB(t))

	first := testInbound()
	first.Body = "first"
	second := testInbound()
	second.Body = "second"

	res := s.SaveInbound(first)
	if res.ContactErr != nil || res.MessageErr != nil {
		t.Fatalf("save failed: %v %v", res.ContactErr, res.MessageErr)
	}
	time.Sleep(10 * time.Millisecond)
	if res2 := s.SaveInbound(second); res2.ContactErr != nil || res2.MessageErr != nil {
		t.Fatalf("save failed: %v %v", res2.ContactErr, res2.MessageErr)
	}

	messages, err := s.ListMessages(res.Contact.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Body != "first" || messages[1].Body != "second" {
		t.Errorf("messages out of order: %q, %q", messages[0].Body, messages[1].Body)
	}
}

func TestMediaURLsRoundTrip(t *testing.T) {
	s := New(openTestDB(t))

	in := testInbound()
	in.MediaURLs = []string{"https://media.example.com/1", "https://media.example.com/0"}

	res := s.SaveInbound(in)
	if res.ContactErr != nil || res.MessageErr != nil {
		t.Fatalf("save failed: %v %v", res.ContactErr, res.MessageErr)
	}

	messages, err := s.ListMessages(res.Contact.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	got := messages[0].MediaURLs
	if len(got) != 2 || got[0] != "https://media.example.com/1" || got[1] != "https://media.example.com/0" {
		t.Errorf("media url order not preserved: %v", got)
	}
}
