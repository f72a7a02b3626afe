package common

// Keys in the local key/value store. These mirror the fixed local-storage
// keys the browser client used for the same data.
const (
	LocalKeyToken    = "token"
	LocalKeyUser     = "user"
	LocalKeyDarkMode = "dark_mode"
)

// DefaultFolder is the bucket a document lands in when the backend record
// carries no folder label.
const DefaultFolder = "Uploads"
