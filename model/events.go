package model

// Event names broadcast through the chaincode event channel.
const (
	EventTraceabilityInitialized  = "TraceabilityInitialized"
	EventTraceabilityStageUpdated = "TraceabilityStageUpdated"
	EventCertificationAdded       = "CertificationAdded"
	EventTraceabilityClosed       = "TraceabilityClosed"
	EventUserAdded                = "UserAdded"
	EventUserRoleUpdated          = "UserRoleUpdated"
)

// Event payloads. Subscribers depend on these exact field sets.

type TraceabilityInitialized struct {
	ProductName string `json:"productName"`
}

type TraceabilityStageUpdated struct {
	ProductName string `json:"productName"`
	Stage       string `json:"stage"`
}

type CertificationAdded struct {
	ProductName   string `json:"productName"`
	Certification string `json:"certification"`
}

type TraceabilityClosed struct {
	ProductName string `json:"productName"`
}

// UserAdded carries the acting identity, not the new record's key.
type UserAdded struct {
	User string `json:"user"`
	Role Role   `json:"role"`
}

// UserRoleUpdated carries the key of the updated record.
type UserRoleUpdated struct {
	User string `json:"user"`
	Role Role   `json:"role"`
}
