package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "collection-export context key " + string(c)
}

const (
	// RequestIDKey identifies a single export call across its log lines.
	RequestIDKey = contextKey("requestID")
	// DatabaseKey is the database being read.
	DatabaseKey = contextKey("database")
	// CollectionKey is the collection being read.
	CollectionKey = contextKey("collection")
	ComponentKey  = contextKey("component")
	OperationKey  = contextKey("operation")
)
