package twilio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
)

const maxMultipartMemory = 10 << 20

// DecodeBody parses a callback body into Values based on the declared
// content type. Twilio sends application/x-www-form-urlencoded; multipart
// is accepted too. Anything else is treated as JSON for test callers, and
// a JSON parse failure yields an empty mapping rather than an error.
func DecodeBody(contentType string, body []byte) (Values, error) {
	switch {
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse form body: %w", err)
		}
		values := make(Values, len(form))
		for k, vs := range form {
			if len(vs) > 0 {
				values[k] = vs[0]
			} else {
				values[k] = ""
			}
		}
		return values, nil

	case strings.Contains(contentType, "multipart/form-data"):
		_, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to parse content type: %w", err)
		}
		boundary, ok := params["boundary"]
		if !ok {
			return nil, fmt.Errorf("multipart body without boundary")
		}
		form, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(maxMultipartMemory)
		if err != nil {
			return nil, fmt.Errorf("failed to parse multipart body: %w", err)
		}
		defer form.RemoveAll()
		values := make(Values, len(form.Value))
		for k, vs := range form.Value {
			if len(vs) > 0 {
				values[k] = vs[0]
			} else {
				values[k] = ""
			}
		}
		return values, nil

	default:
		return decodeJSON(body), nil
	}
}

// decodeJSON flattens the top-level fields of a JSON object into Values,
// stringifying each value. Malformed JSON decodes to an empty mapping.
func decodeJSON(body []byte) Values {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return Values{}
	}

	values := make(Values, len(fields))
	for k, v := range fields {
		values[k] = stringify(v)
	}
	return values
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		// Nested arrays/objects keep their JSON form.
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
