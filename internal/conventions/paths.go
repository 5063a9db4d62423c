package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default tasklist data directory name (relative to home).
	DefaultDataDir = ".tasklist"
	// DBFile is the SQLite task database filename.
	DBFile = "tasks.db"

	// Google Tasks files.

	// GoogleConfigDir is the subdirectory for the Google Tasks credentials.
	GoogleConfigDir = "google"
	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"
	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// GoogleTaskIDMarker prefixes the local task ID stored in the Google task notes.
	GoogleTaskIDMarker = "tasklist-id:"
)

// DBPath returns the SQLite task database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// OAuthClientPath returns the OAuth client credentials path inside a Google config directory.
func OAuthClientPath(googleDir string) string {
	return filepath.Join(googleDir, OAuthClientFile)
}

// TokenPath returns the OAuth token path inside a Google config directory.
func TokenPath(googleDir string) string {
	return filepath.Join(googleDir, TokenFile)
}
