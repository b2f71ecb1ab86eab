// Package twilio handles the provider side of inbound callbacks: decoding
// the request body, verifying the webhook signature and normalizing the
// parameters into a message record.
package twilio

import (
	"sort"
	"strconv"
)

// Values holds the decoded callback parameters as a flat string mapping.
type Values map[string]string

func (v Values) Get(key string) string {
	return v[key]
}

func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// GetInt returns the parameter parsed as an integer, or fallback when the
// parameter is absent or not numeric.
func (v Values) GetInt(key string, fallback int) int {
	n, err := strconv.Atoi(v[key])
	if err != nil {
		return fallback
	}
	return n
}

// SortedKeys returns the parameter names in lexicographic byte order, the
// order the signature scheme requires.
func (v Values) SortedKeys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
