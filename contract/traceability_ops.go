package contract

import (
	"errors"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Lifecycle: Traceability Operations ---

// InitializeTraceability creates the traceability record for a product in the
// unused slot traceabilityID. The submitting identity becomes its owner.
func (s *SupplyChainContract) InitializeTraceability(ctx contractapi.TransactionContextInterface, traceabilityID string, productName string) error {
	tx, err := s.beginTransaction(ctx, "InitializeTraceability")
	if err != nil {
		return err
	}
	logger.Infof("Owner '%s' initializing traceability record '%s' for product '%s'", tx.caller, traceabilityID, productName)

	rec, err := tx.traceability().Initialize(traceabilityID, productName, tx.caller)
	if err != nil {
		return fmt.Errorf("InitializeTraceability: %w", err)
	}
	logger.Infof("Traceability record '%s' created for product '%s' at %d", rec.ID, rec.ProductName, rec.LastUpdateTime)
	return nil
}

// UpdateTraceability appends a stage to the record's stage history.
func (s *SupplyChainContract) UpdateTraceability(ctx contractapi.TransactionContextInterface, traceabilityID string, stage string) error {
	tx, err := s.beginTransaction(ctx, "UpdateTraceability")
	if err != nil {
		return err
	}
	logger.Infof("Caller '%s' appending stage '%s' to traceability record '%s'", tx.caller, stage, traceabilityID)

	if err := tx.traceability().UpdateStage(traceabilityID, stage, tx.caller); err != nil {
		logRejection("UpdateTraceability", traceabilityID, err)
		return fmt.Errorf("UpdateTraceability: %w", err)
	}
	logger.Infof("Stage '%s' appended to traceability record '%s'", stage, traceabilityID)
	return nil
}

// AddCertification appends a certification to the record.
func (s *SupplyChainContract) AddCertification(ctx contractapi.TransactionContextInterface, traceabilityID string, certification string) error {
	tx, err := s.beginTransaction(ctx, "AddCertification")
	if err != nil {
		return err
	}
	logger.Infof("Caller '%s' adding certification '%s' to traceability record '%s'", tx.caller, certification, traceabilityID)

	if err := tx.traceability().AddCertification(traceabilityID, certification, tx.caller); err != nil {
		logRejection("AddCertification", traceabilityID, err)
		return fmt.Errorf("AddCertification: %w", err)
	}
	logger.Infof("Certification '%s' added to traceability record '%s'", certification, traceabilityID)
	return nil
}

// CloseTraceability deletes the record and releases its storage deposit to
// recipient. No operation on traceabilityID succeeds afterwards.
func (s *SupplyChainContract) CloseTraceability(ctx contractapi.TransactionContextInterface, traceabilityID string, recipient string) error {
	tx, err := s.beginTransaction(ctx, "CloseTraceability")
	if err != nil {
		return err
	}
	logger.Infof("Caller '%s' closing traceability record '%s', deposit to '%s'", tx.caller, traceabilityID, recipient)

	if err := tx.traceability().Close(traceabilityID, tx.caller, recipient); err != nil {
		logRejection("CloseTraceability", traceabilityID, err)
		return fmt.Errorf("CloseTraceability: %w", err)
	}
	logger.Infof("Traceability record '%s' closed", traceabilityID)
	return nil
}

// logRejection records precondition failures at warning level; anything else
// is left to the peer's error log.
func logRejection(op, traceabilityID string, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrRateLimitExceeded),
		errors.Is(err, ErrStorageCapacityExceeded),
		errors.Is(err, ErrRecordNotFound):
		logger.Warningf("%s: rejected for traceability record '%s': %v", op, traceabilityID, err)
	}
}
