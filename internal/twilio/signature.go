package twilio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrSignatureMismatch is returned by Verify when the computed signature
// does not match the one sent by the provider.
var ErrSignatureMismatch = errors.New("signature mismatch")

// Verify checks an X-Twilio-Signature value against the full request URL
// (including any query string) and the decoded parameters. Errors other
// than ErrSignatureMismatch indicate malformed inputs, not forgery.
func Verify(requestURL string, params Values, authToken, signature string) error {
	if _, err := base64.StdEncoding.DecodeString(signature); err != nil {
		return fmt.Errorf("malformed signature header: %w", err)
	}

	expected := Sign(requestURL, params, authToken)
	if expected != signature {
		return ErrSignatureMismatch
	}
	return nil
}

// Sign computes the provider signature: base64 of HMAC-SHA1 over the URL
// followed by every key/value pair in sorted key order, with no separators.
func Sign(requestURL string, params Values, authToken string) string {
	var payload strings.Builder
	payload.WriteString(requestURL)
	for _, k := range params.SortedKeys() {
		payload.WriteString(k)
		payload.WriteString(params[k])
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(payload.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
