package linkstore

import "github.com/osse101/spotifylink/internal/domain"

// MergeLink folds rec into doc and reports whether a new entry was appended.
// The first entry with a matching user id is updated in place; its refresh
// token is kept when rec carries none. doc itself is not modified.
func MergeLink(doc Document, rec domain.LinkRecord) (Document, bool) {
	links := make([]Entry, len(doc.Links), len(doc.Links)+1)
	for i := range doc.Links {
		links[i] = doc.Links[i].clone()
	}
	out := Document{Links: links, fields: doc.fields}

	if i := out.Find(rec.UserID); i >= 0 {
		e := &out.Links[i]
		e.Record.AccessToken = rec.AccessToken
		e.Record.ExpiresAt = rec.ExpiresAt
		e.set(FieldAccessToken, FieldExpiresAt)
		if rec.RefreshToken != "" {
			e.Record.RefreshToken = rec.RefreshToken
			e.set(FieldRefreshToken)
		}
		return out, false
	}

	out.Links = append(out.Links, Entry{Record: rec})
	return out, true
}
