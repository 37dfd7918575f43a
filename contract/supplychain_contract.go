package contract

import (
	"fmt"

	"supplytrace/ledger"
	"supplytrace/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("supplytrace.contract")

// SupplyChainContract exposes traceability and access registry operations
// as chaincode transactions.
// @contract:SupplyChainContract
type SupplyChainContract struct {
	contractapi.Contract
}

// Instantiate runs on chaincode definition commit. Records and access
// entries are created on demand, so there is no ledger state to seed.
func (s *SupplyChainContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Infof("SupplyChainContract ready: %d stages, %d certifications, %d bytes per entry, %ds between updates",
		model.MaxStages, model.MaxCertifications, model.MaxTextLength, model.MinUpdateInterval)
}

// transaction gathers the per-transaction collaborators and the signer.
type transaction struct {
	host   *ledger.Host
	caller string
}

func (s *SupplyChainContract) beginTransaction(ctx contractapi.TransactionContextInterface, op string) (*transaction, error) {
	host := ledger.FromContext(ctx)
	caller, err := host.CallerID()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get caller identity: %w", op, err)
	}
	return &transaction{host: host, caller: caller}, nil
}

func (t *transaction) traceability() *TraceabilityEngine {
	return NewTraceabilityEngine(t.host, t.host, t.host)
}

func (t *transaction) registry() *AccessRegistry {
	return NewAccessRegistry(t.host, t.host)
}

// readOnly returns the engine for public traceability queries, which need no
// caller identity.
func (s *SupplyChainContract) readOnly(ctx contractapi.TransactionContextInterface) *TraceabilityEngine {
	host := ledger.FromContext(ctx)
	return NewTraceabilityEngine(host, host, host)
}

// readOnlyRegistry is the access registry counterpart of readOnly.
func (s *SupplyChainContract) readOnlyRegistry(ctx contractapi.TransactionContextInterface) *AccessRegistry {
	host := ledger.FromContext(ctx)
	return NewAccessRegistry(host, host)
}
