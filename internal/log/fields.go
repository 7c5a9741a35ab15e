package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldCount     = "count"
	FieldBackend   = "backend"
	FieldUsername  = "username"
	FieldRole      = "role"
	FieldOwner     = "owner"
	FieldRecordID  = "record_id"
	FieldKind      = "kind"
	FieldAmount    = "amount"
	FieldSessionID = "session_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAccounts = "accounts"
	ComponentLedger   = "ledger"
	ComponentSession  = "session"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
)
