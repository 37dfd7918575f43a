package model

// DefaultOrigin is the origin marker stamped on every new traceability record.
const DefaultOrigin = "Farm"

// Capacity limits of a traceability record. The slot is sized for these at
// creation and never grows.
const (
	MaxStages         = 100
	MaxCertifications = 20
	MaxTextLength     = 32 // bytes, applies to productName, each stage and each certification
)

// MinUpdateInterval is the minimum number of seconds between two mutations
// of the same traceability record.
const MinUpdateInterval int64 = 60

// Storage reserved per slot, in bytes: discriminator, product name, origin,
// stage vector (prefix + entries), certification vector (prefix + entries),
// timestamp, owner key.
const (
	TraceabilitySpace = 8 + MaxTextLength + MaxTextLength + 4 + MaxStages*MaxTextLength + 4 + MaxCertifications*MaxTextLength + 8 + 32
	AccessRecordSpace = 8 + 1
)

// Traceability is the provenance record of one product.
type Traceability struct {
	ObjectType     string   `json:"objectType"` // "Traceability"
	ID             string   `json:"id"`
	ProductName    string   `json:"productName"`
	Origin         string   `json:"origin"`
	Stages         []string `json:"stages"`
	Certifications []string `json:"certifications"`
	LastUpdateTime int64    `json:"lastUpdateTime"` // Unix seconds
	Owner          string   `json:"owner"`
	Deposit        int64    `json:"deposit"`
}

// ReclaimBalance accumulates the storage deposit released to a recipient by
// closed traceability records.
type ReclaimBalance struct {
	ObjectType string `json:"objectType"` // "ReclaimBalance"
	Recipient  string `json:"recipient"`
	Amount     int64  `json:"amount"`
}
