package domain

import "time"

// TokenSet is the result of a successful authorization code exchange.
type TokenSet struct {
	AccessToken  string
	RefreshToken string // empty when the authorization server did not issue one
	Expiry       time.Time
}

// LinkRecord is the stored Spotify credential set of one Discord user.
type LinkRecord struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64 // epoch milliseconds
}

// NewLinkRecord builds the record persisted for userID from an exchange result.
func NewLinkRecord(userID string, tokens TokenSet) LinkRecord {
	return LinkRecord{
		UserID:       userID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.Expiry.UnixMilli(),
	}
}

// ExpiresAtTime returns ExpiresAt as a time.Time.
func (r LinkRecord) ExpiresAtTime() time.Time {
	return time.UnixMilli(r.ExpiresAt)
}
