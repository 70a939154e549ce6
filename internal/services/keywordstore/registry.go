package keywordstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// UserRecord is the keyword list registered by one user.
// Keywords keep registration order and never contain two entries with the same key.
type UserRecord struct {
	Keywords []string `json:"keywords"`
}

func (r UserRecord) clone() UserRecord {
	kws := make([]string, len(r.Keywords))
	copy(kws, r.Keywords)
	return UserRecord{Keywords: kws}
}

// Registry maps user ids to their records and remembers the order users were first stored in.
// The zero value is an empty registry. It is not safe for concurrent use; one request
// owns one Registry.
type Registry struct {
	order []string
	users map[string]UserRecord
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[string]UserRecord)}
}

// Len returns the number of users.
func (r *Registry) Len() int {
	return len(r.order)
}

// UserIDs returns user ids in insertion order.
func (r *Registry) UserIDs() []string {
	return slices.Clone(r.order)
}

// Get returns a copy of the record stored for userID.
func (r *Registry) Get(userID string) (UserRecord, bool) {
	rec, ok := r.users[userID]
	if !ok {
		return UserRecord{}, false
	}
	return rec.clone(), true
}

// GetOrCreate returns a copy of the record stored for userID, or a fresh record with an
// empty keyword list. The registry is not modified until the record is passed to Put.
func (r *Registry) GetOrCreate(userID string) UserRecord {
	if rec, ok := r.Get(userID); ok {
		return rec
	}
	return UserRecord{Keywords: []string{}}
}

// Put stores rec for userID. A new user is appended after all existing users.
func (r *Registry) Put(userID string, rec UserRecord) {
	if r.users == nil {
		r.users = make(map[string]UserRecord)
	}
	if _, ok := r.users[userID]; !ok {
		r.order = append(r.order, userID)
	}
	r.users[userID] = rec.clone()
}

// MarshalJSON encodes the registry as a JSON object keyed by user id, in insertion order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, userID := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to encode user id: %w", err)
		}
		val, err := marshalNoEscape(r.users[userID])
		if err != nil {
			return nil, fmt.Errorf("failed to encode record for %q: %w", userID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keyed by user id, keeping the document order.
// A repeated user id keeps its first position and its last value.
func (r *Registry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read registry: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	out := NewRegistry()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read user id: %w", err)
		}
		userID, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected user id token %v", tok)
		}
		var rec UserRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("failed to decode record for %q: %w", userID, err)
		}
		if rec.Keywords == nil {
			rec.Keywords = []string{}
		}
		out.Put(userID, rec)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close registry object: %w", err)
	}

	*r = *out
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
