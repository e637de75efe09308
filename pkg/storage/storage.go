package storage

// Fixed keys for the persisted collections. Each key maps to the full JSON
// serialization of its collection, never a delta.
const (
	KeyCustomers    = "customers"
	KeyTasks        = "tasks"
	KeyVisitHistory = "visitHistory"
	KeyProducts     = "products"
	KeySettings     = "settings"
)

// Backend is the durable key-value store the state layer sits on.
type Backend interface {
	// Read returns the stored value for key. The second result is false
	// when nothing has been stored under key yet.
	Read(key string) (string, bool, error)

	// Write overwrites the stored value for key.
	Write(key, value string) error

	Close() error
}
