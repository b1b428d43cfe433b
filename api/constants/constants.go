package constants

// Common error messages
const (
	ErrInvalidSession     = "invalid user_id or session"
	ErrInvalidJSON        = "invalid json or missing fields"
	ErrInvalidJSONShort   = "Invalid JSON"
	ErrMissingUserID      = "Missing or invalid user_id in body"
	ErrUserIDRequired     = "user_id required"
	ErrDB                 = "DB error"
	ErrInvalidRequestBody = "Invalid request body"
	ErrFailedToQuery      = "Failed to query"
	ErrPleaseLogin        = "Please login to continue."
	ErrMethodNotAllowed   = "Method Not Allowed"
)

// Import pipeline messages
const (
	ErrMissingFile       = "Missing 'file' field"
	ErrIncompleteMapping = "column mapping incomplete: date, therapy and sessions columns are required"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "Content-Type"
	ContentTypeCSV  = "text/csv"
)

// Date formats
const (
	DateTimeFormat   = "2006-01-02 15:04:05"
	DateFormat       = "2006-01-02"
	DateFormatGerman = "02.01.2006"
	MonthFormat      = "2006-01"
)
