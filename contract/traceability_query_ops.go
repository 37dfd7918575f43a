package contract

import (
	"fmt"

	"supplytrace/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Query Functions ---
// Reads are public: no ownership check, no rate limit, no event.

// GetStages returns stages[start:end] of the record. Bounds must satisfy
// start < end <= number of stages.
func (s *SupplyChainContract) GetStages(ctx contractapi.TransactionContextInterface, traceabilityID string, start uint64, end uint64) ([]string, error) {
	logger.Debugf("GetStages: Querying stages [%d:%d] of traceability record '%s'", start, end, traceabilityID)
	stages, err := s.readOnly(ctx).GetStages(traceabilityID, start, end)
	if err != nil {
		return nil, fmt.Errorf("GetStages: %w", err)
	}
	return stages, nil
}

// GetCertifications returns certifications[start:end] of the record.
func (s *SupplyChainContract) GetCertifications(ctx contractapi.TransactionContextInterface, traceabilityID string, start uint64, end uint64) ([]string, error) {
	logger.Debugf("GetCertifications: Querying certifications [%d:%d] of traceability record '%s'", start, end, traceabilityID)
	certs, err := s.readOnly(ctx).GetCertifications(traceabilityID, start, end)
	if err != nil {
		return nil, fmt.Errorf("GetCertifications: %w", err)
	}
	return certs, nil
}

// ReadTraceability returns the whole record.
func (s *SupplyChainContract) ReadTraceability(ctx contractapi.TransactionContextInterface, traceabilityID string) (*model.Traceability, error) {
	logger.Debugf("ReadTraceability: Querying traceability record '%s'", traceabilityID)
	rec, err := s.readOnly(ctx).Get(traceabilityID)
	if err != nil {
		return nil, fmt.Errorf("ReadTraceability: %w", err)
	}
	return rec, nil
}

// TraceabilityExists reports whether traceabilityID holds a live record.
func (s *SupplyChainContract) TraceabilityExists(ctx contractapi.TransactionContextInterface, traceabilityID string) (bool, error) {
	exists, err := s.readOnly(ctx).Exists(traceabilityID)
	if err != nil {
		return false, fmt.Errorf("TraceabilityExists: %w", err)
	}
	return exists, nil
}

// GetReclaimedDeposit returns the storage deposit credited to recipient by
// closed records.
func (s *SupplyChainContract) GetReclaimedDeposit(ctx contractapi.TransactionContextInterface, recipient string) (int64, error) {
	amount, err := s.readOnly(ctx).ReclaimedDeposit(recipient)
	if err != nil {
		return 0, fmt.Errorf("GetReclaimedDeposit: %w", err)
	}
	return amount, nil
}
