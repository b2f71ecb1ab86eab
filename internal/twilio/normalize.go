package twilio

import (
	"fmt"
	"strings"
)

const whatsappPrefix = "whatsapp:"

// Inbound is the normalized form of a WhatsApp callback.
type Inbound struct {
	PhoneNumber string
	DisplayName string
	From        string
	To          string
	Body        string
	MediaURLs   []string
	MessageSID  string
	Raw         Values
}

// ParseInbound extracts the canonical inbound-message fields from the
// decoded parameters. Missing fields default to empty; it never fails.
func ParseInbound(v Values) Inbound {
	from := v.Get("From")

	// Prefer the canonical WaId (digits only) over parsing From.
	phone := v.Get("WaId")
	if phone == "" {
		phone = strings.TrimPrefix(from, whatsappPrefix)
	}

	numMedia := v.GetInt("NumMedia", 0)
	mediaURLs := []string{}
	for i := 0; i < numMedia; i++ {
		if url := v.Get(fmt.Sprintf("MediaUrl%d", i)); url != "" {
			mediaURLs = append(mediaURLs, url)
		}
	}

	return Inbound{
		PhoneNumber: phone,
		DisplayName: v.Get("ProfileName"),
		From:        from,
		To:          v.Get("To"),
		Body:        v.Get("Body"),
		MediaURLs:   mediaURLs,
		MessageSID:  v.Get("MessageSid"),
		Raw:         v,
	}
}
