// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file selected with -e/-env (or ./.env when present), then the
//     process environment, both read through NOTES_* variables.
//  3. Optional JSON file selected with -c/-config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the notes API
//	-t int      per-request timeout (seconds)
//	-d string   directory for the local session database
//	-l string   log level: debug, info, warn, error
//	-ephemeral  keep the credential in memory only
//
// # Environment
//
//	NOTES_API_URL, NOTES_REQUEST_TIMEOUT, NOTES_DATA_DIR, NOTES_CREDENTIAL_TTL,
//	NOTES_LOG_LEVEL, NOTES_EPHEMERAL, NOTES_BACKUP_BUCKET, NOTES_BACKUP_REGION,
//	NOTES_BACKUP_ENDPOINT, NOTES_BACKUP_ACCESS_KEY, NOTES_BACKUP_SECRET_KEY,
//	NOTES_BACKUP_PREFIX
//
// Durations are Go duration strings ("10s", "168h").
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://notes.example.com/api",
//	  "request_timeout": "10s",
//	  "data_dir": "~/.gophnotes",
//	  "credential_ttl": "168h",
//	  "log_level": "info",
//	  "backup": {"bucket": "notes", "region": "us-east-1", "endpoint": "http://127.0.0.1:9000"}
//	}
package config
