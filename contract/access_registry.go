package contract

import (
	"fmt"

	"supplytrace/ledger"
	"supplytrace/model"
)

const accessRecordObjectType = "AccessRecord"

// AccessRegistry manages role records, one per registry slot.
//
// Neither AddUser nor UpdateUserRole checks that the acting identity holds
// the Admin role: records are keyed by slot rather than by identity, so the
// registry has nothing to check the caller against. Callers that need a
// permission gate must enforce it above this layer.
type AccessRegistry struct {
	store    ledger.Store
	notifier ledger.Notifier
}

// NewAccessRegistry creates a registry over the given collaborators.
func NewAccessRegistry(store ledger.Store, notifier ledger.Notifier) *AccessRegistry {
	return &AccessRegistry{store: store, notifier: notifier}
}

// AddUser creates a role record in the unused slot id, paid for by actor.
func (r *AccessRegistry) AddUser(id, role, actor string) (*model.AccessRecord, error) {
	if err := validateIdentity(actor, "actor"); err != nil {
		return nil, err
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	key, err := reserveKey(r.store, accessRecordObjectType, id)
	if err != nil {
		return nil, err
	}

	rec := &model.AccessRecord{
		ObjectType: accessRecordObjectType,
		ID:         id,
		Role:       parsed,
		CreatedBy:  actor,
		Deposit:    model.AccessRecordSpace,
	}
	if err := storeRecord(r.store, key, rec); err != nil {
		return nil, err
	}
	if err := emitEvent(r.notifier, model.EventUserAdded, model.UserAdded{User: actor, Role: parsed}); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateUserRole overwrites the role of an existing record.
func (r *AccessRegistry) UpdateUserRole(id, role, actor string) error {
	if err := validateIdentity(actor, "actor"); err != nil {
		return err
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	var rec model.AccessRecord
	key, err := loadRecord(r.store, accessRecordObjectType, id, &rec)
	if err != nil {
		return err
	}

	rec.Role = parsed
	if err := storeRecord(r.store, key, &rec); err != nil {
		return err
	}
	return emitEvent(r.notifier, model.EventUserRoleUpdated, model.UserRoleUpdated{User: id, Role: parsed})
}

// Get returns the access record stored in slot id.
func (r *AccessRegistry) Get(id string) (*model.AccessRecord, error) {
	var rec model.AccessRecord
	if _, err := loadRecord(r.store, accessRecordObjectType, id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
