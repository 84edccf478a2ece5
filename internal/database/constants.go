package database

import "time"

// DefaultPingTimeout bounds start-up and readiness pings.
const DefaultPingTimeout = 3 * time.Second

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToCreateProvider  = "failed to create migration provider"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgPoolCreated        = "Database pool created"
	LogMsgMigrationApplied   = "Applied migration"
	LogMsgMigrationsUpToDate = "Database schema is up to date"
)
