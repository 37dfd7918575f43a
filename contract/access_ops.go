package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Access Registry Operations ---

// AddUser creates a role record in the unused slot userAccountID.
func (s *SupplyChainContract) AddUser(ctx contractapi.TransactionContextInterface, userAccountID string, role string) error {
	tx, err := s.beginTransaction(ctx, "AddUser")
	if err != nil {
		return err
	}
	logger.Infof("Identity '%s' adding user account '%s' with role '%s'", tx.caller, userAccountID, role)

	rec, err := tx.registry().AddUser(userAccountID, role, tx.caller)
	if err != nil {
		return fmt.Errorf("AddUser: %w", err)
	}
	logger.Infof("User account '%s' created with role '%s' by '%s'", rec.ID, rec.Role, tx.caller)
	return nil
}

// UpdateUserRole overwrites the role of an existing user account. Any
// identity may call it.
func (s *SupplyChainContract) UpdateUserRole(ctx contractapi.TransactionContextInterface, userAccountID string, role string) error {
	tx, err := s.beginTransaction(ctx, "UpdateUserRole")
	if err != nil {
		return err
	}
	logger.Infof("Identity '%s' setting role of user account '%s' to '%s'", tx.caller, userAccountID, role)

	if err := tx.registry().UpdateUserRole(userAccountID, role, tx.caller); err != nil {
		return fmt.Errorf("UpdateUserRole: %w", err)
	}
	return nil
}

// GetUserRole returns the role stored for userAccountID.
func (s *SupplyChainContract) GetUserRole(ctx contractapi.TransactionContextInterface, userAccountID string) (string, error) {
	rec, err := s.readOnlyRegistry(ctx).Get(userAccountID)
	if err != nil {
		return "", fmt.Errorf("GetUserRole: %w", err)
	}
	return string(rec.Role), nil
}
