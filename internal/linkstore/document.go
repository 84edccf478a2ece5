package linkstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/osse101/spotifylink/internal/domain"
)

// Document is the link state document. Top-level fields other than
// user_spotify are carried through untouched.
type Document struct {
	Links  []Entry
	fields map[string]json.RawMessage
}

// Entry is one element of user_spotify. Keys this service does not know
// about are kept and written back, and so are null elements and null values
// of known keys the service never set.
type Entry struct {
	Record domain.LinkRecord

	// raw holds a null element verbatim. Such an entry never matches a user.
	raw        json.RawMessage
	extra      map[string]json.RawMessage
	hasRefresh bool
	nulls      map[string]bool
}

// Find returns the index of the first entry for userID, or -1.
func (d *Document) Find(userID string) int {
	for i := range d.Links {
		if d.Links[i].raw == nil && d.Links[i].Record.UserID == userID {
			return i
		}
	}
	return -1
}

// Field returns the raw value of an unrelated top-level field.
func (d *Document) Field(name string) (json.RawMessage, bool) {
	v, ok := d.fields[name]
	return v, ok
}

func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{}
	if isNull(data) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields[FieldUserSpotify]; ok {
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &d.Links); err != nil {
				return fmt.Errorf("%s: %w", FieldUserSpotify, err)
			}
		}
		delete(fields, FieldUserSpotify)
	}
	d.fields = fields
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.fields)+1)
	for k, v := range d.fields {
		out[k] = v
	}
	links := d.Links
	if links == nil {
		links = []Entry{}
	}
	out[FieldUserSpotify] = links
	return json.Marshal(out)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	*e = Entry{}
	if isNull(data) {
		e.raw = json.RawMessage("null")
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, key := range []string{FieldUserID, FieldAccessToken, FieldRefreshToken, FieldExpiresAt} {
		if raw, ok := fields[key]; ok && isNull(raw) {
			if e.nulls == nil {
				e.nulls = make(map[string]bool)
			}
			e.nulls[key] = true
		}
	}
	_, e.hasRefresh = fields[FieldRefreshToken]

	if err := decodeString(fields, FieldUserID, &e.Record.UserID); err != nil {
		return err
	}
	if err := decodeString(fields, FieldAccessToken, &e.Record.AccessToken); err != nil {
		return err
	}
	if err := decodeString(fields, FieldRefreshToken, &e.Record.RefreshToken); err != nil {
		return err
	}
	if raw, ok := fields[FieldExpiresAt]; ok {
		ms, err := decodeMillis(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", FieldExpiresAt, err)
		}
		e.Record.ExpiresAt = ms
		delete(fields, FieldExpiresAt)
	}

	if len(fields) > 0 {
		e.extra = fields
	}
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}

	out := make(map[string]any, len(e.extra)+4)
	for k, v := range e.extra {
		out[k] = v
	}
	out[FieldUserID] = e.nullOr(FieldUserID, e.Record.UserID == "", e.Record.UserID)
	out[FieldAccessToken] = e.nullOr(FieldAccessToken, e.Record.AccessToken == "", e.Record.AccessToken)
	if e.Record.RefreshToken != "" || e.hasRefresh {
		out[FieldRefreshToken] = e.nullOr(FieldRefreshToken, e.Record.RefreshToken == "", e.Record.RefreshToken)
	}
	out[FieldExpiresAt] = e.nullOr(FieldExpiresAt, e.Record.ExpiresAt == 0, e.Record.ExpiresAt)
	return json.Marshal(out)
}

// nullOr keeps a stored null for key while the value is still unset.
func (e Entry) nullOr(key string, unset bool, v any) any {
	if unset && e.nulls[key] {
		return nil
	}
	return v
}

// set marks keys as written by this service so a stored null no longer
// applies to them.
func (e *Entry) set(keys ...string) {
	for _, k := range keys {
		delete(e.nulls, k)
	}
}

func (e Entry) clone() Entry {
	e.extra = maps.Clone(e.extra)
	e.nulls = maps.Clone(e.nulls)
	return e
}

func decodeString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	delete(fields, key)
	if isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// decodeMillis accepts integral and fractional JSON numbers.
func decodeMillis(raw json.RawMessage) (int64, error) {
	if isNull(raw) {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func isNull(raw []byte) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
