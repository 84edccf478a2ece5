package linkstore

// LinkStateDocumentID is the id of the single state document per deployment.
const LinkStateDocumentID = "link_state"

// Document field names
const (
	FieldUserSpotify  = "user_spotify"
	FieldUserID       = "user_id"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldExpiresAt    = "expires_at"
)

// SQL templates. %s is the sanitized state table identifier.
const (
	sqlSelectDocument = `SELECT payload FROM %s WHERE id = $1`

	sqlUpsertDocument = `
		INSERT INTO %s (id, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	sqlEnsureDocument = `
		INSERT INTO %s (id, payload, updated_at)
		VALUES ($1, '{}'::jsonb, NOW())
		ON CONFLICT (id) DO NOTHING`

	sqlSelectDocumentForUpdate = `SELECT payload FROM %s WHERE id = $1 FOR UPDATE`

	sqlUpdateDocument = `UPDATE %s SET payload = $2::jsonb, updated_at = NOW() WHERE id = $1`
)

// Error messages
const (
	ErrMsgAcquireConn      = "failed to acquire connection"
	ErrMsgReadDocument     = "failed to read link state"
	ErrMsgDecodeDocument   = "failed to decode link state"
	ErrMsgEncodeDocument   = "failed to encode link state"
	ErrMsgWriteDocument    = "failed to write link state"
	ErrMsgBeginTransaction = "failed to begin transaction"
	ErrMsgCommit           = "failed to commit transaction"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback link state transaction"
	LogMsgLinkStored     = "Link state document written"
)
