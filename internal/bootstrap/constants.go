package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0640
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting Spotify link service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Component Wiring
// =============================================================================

const (
	// SpotifyHTTPTimeout bounds a single token endpoint call.
	SpotifyHTTPTimeout = 10 * time.Second

	// StartupPingTimeout bounds the database ping at start-up.
	StartupPingTimeout = 5 * time.Second

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 15 * time.Second
)

const (
	LogMsgDatabaseUnreachable = "Database not reachable at start-up, continuing"
	LogMsgMigrationsApplied   = "Link state migrations applied"
	LogMsgNotifierEnabled     = "Discord link notifications enabled"
	LogMsgSerializedWrites    = "Link store writes are serialized"
	ErrMsgFailedCreatePool    = "failed to create database pool"
	ErrMsgFailedMigrate       = "failed to migrate link state table"
	ErrMsgFailedCreateNotify  = "failed to create discord notifier"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer     = "Shutting down server..."
	LogMsgDrainingNotifications  = "Waiting for pending link notifications..."
	LogMsgNotificationsAbandoned = "Pending link notifications abandoned"
	LogMsgClosingDatabase        = "Closing database pool..."
	LogMsgServerStopped          = "Server stopped"
	LogMsgServerForcedShutdown   = "Server forced to shutdown"
)
