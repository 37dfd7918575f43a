// Package ledger binds the collaborators the traceability engines rely on
// (record storage, transaction clock, caller identity and event broadcast)
// to a Fabric transaction.
package ledger

import "time"

// Store is durable keyed storage for fixed-layout records.
// Get returns nil, nil for a key that holds no record.
type Store interface {
	CreateKey(objectType, id string) (string, error)
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Clock supplies the current time of the executing transaction.
type Clock interface {
	Now() (time.Time, error)
}

// Authority reports the identity that signed the executing transaction.
type Authority interface {
	CallerID() (string, error)
}

// Notifier broadcasts a named notification once the transaction commits.
type Notifier interface {
	Emit(name string, payload []byte) error
}
