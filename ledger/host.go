package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("supplytrace.ledger")

// Host implements Store, Clock, Authority and Notifier on top of the chaincode
// stub and client identity of a single transaction.
type Host struct {
	stub     shim.ChaincodeStubInterface
	identity cid.ClientIdentity
}

var (
	_ Store     = (*Host)(nil)
	_ Clock     = (*Host)(nil)
	_ Authority = (*Host)(nil)
	_ Notifier  = (*Host)(nil)
)

// NewHost wraps a stub and the identity that submitted the transaction.
func NewHost(stub shim.ChaincodeStubInterface, identity cid.ClientIdentity) *Host {
	return &Host{stub: stub, identity: identity}
}

// FromContext builds a Host from a contract transaction context.
func FromContext(ctx contractapi.TransactionContextInterface) *Host {
	return NewHost(ctx.GetStub(), ctx.GetClientIdentity())
}

func (h *Host) CreateKey(objectType, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s id cannot be empty", objectType)
	}
	return h.stub.CreateCompositeKey(objectType, []string{id})
}

func (h *Host) Get(key string) ([]byte, error) {
	b, err := h.stub.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read state for key '%s': %w", key, err)
	}
	return b, nil
}

func (h *Host) Put(key string, value []byte) error {
	if err := h.stub.PutState(key, value); err != nil {
		return fmt.Errorf("failed to write state for key '%s': %w", key, err)
	}
	return nil
}

func (h *Host) Delete(key string) error {
	if err := h.stub.DelState(key); err != nil {
		return fmt.Errorf("failed to delete state for key '%s': %w", key, err)
	}
	return nil
}

// Now returns the transaction timestamp. Every endorser sees the same value,
// which keeps time-based checks deterministic.
func (h *Host) Now() (time.Time, error) {
	ts, err := h.stub.GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	if ts == nil {
		return time.Time{}, errors.New("transaction timestamp is nil")
	}
	return ts.AsTime(), nil
}

// CallerID returns the X.509 identity that signed the proposal.
func (h *Host) CallerID() (string, error) {
	if h.identity == nil {
		return "", errors.New("client identity is nil from context")
	}
	id, err := h.identity.GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return "", errors.New("client identity ID from context is empty")
	}
	if !isValidX509ID(id) {
		logger.Warningf("Current client ID '%s' does not appear to be a standard X.509 format.", id)
	}
	return id, nil
}

// Emit sets the chaincode event for this transaction. Fabric keeps a single
// event per transaction, so each operation emits exactly once.
func (h *Host) Emit(name string, payload []byte) error {
	if err := h.stub.SetEvent(name, payload); err != nil {
		return fmt.Errorf("failed to set event '%s': %w", name, err)
	}
	logger.Debugf("Event '%s' set for tx '%s'", name, h.stub.GetTxID())
	return nil
}

func isValidX509ID(id string) bool {
	return strings.HasPrefix(id, "x509::") || strings.HasPrefix(id, "eDUwOTo6") // "eDUwOTo6" is "x509::" base64 encoded
}
