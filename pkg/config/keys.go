package config

// Keys read by the server and its subcommands.
const (
	KeyPort          = "CLUBD_PORT"
	KeyDBDriver      = "CLUB_DB_DRIVER"
	KeySqlitePath    = "CLUB_SQLITE_PATH"
	KeySessionSecret = "CLUB_SESSION_SECRET"
	KeySessionTTL    = "CLUB_SESSION_TTL"
	KeyProofsDir     = "PROOFS_DIR"
	KeyTxRetry       = "CLUB_TX_RETRY"
	KeyRateLimit     = "CLUB_RATE_LIMIT"

	KeyDBUsername = "DB_USERNAME"
	KeyDBPassword = "DB_PASSWORD"
	KeyDBHost     = "DB_HOST"
	KeyDBPort     = "DB_PORT"
	KeyDBDatabase = "DB_DATABASE"
)
