package contract

import (
	"errors"
	"fmt"

	"supplytrace/ledger"
	"supplytrace/model"
)

// Object types for composite keys, also stored as 'objectType' in each record.
const (
	traceabilityObjectType   = "Traceability"
	reclaimBalanceObjectType = "ReclaimBalance"
)

// TraceabilityEngine governs the lifecycle of traceability records: creation,
// owner-only appends under a shared rate limit, paginated reads and closing.
type TraceabilityEngine struct {
	store    ledger.Store
	clock    ledger.Clock
	notifier ledger.Notifier
}

// NewTraceabilityEngine creates an engine over the given collaborators.
func NewTraceabilityEngine(store ledger.Store, clock ledger.Clock, notifier ledger.Notifier) *TraceabilityEngine {
	return &TraceabilityEngine{store: store, clock: clock, notifier: notifier}
}

// appendTarget describes one of the two bounded, append-only lists of a record.
type appendTarget struct {
	field    string
	capacity int
	list     func(rec *model.Traceability) *[]string
	event    string
	payload  func(rec *model.Traceability, entry string) interface{}
}

var (
	stageTarget = appendTarget{
		field:    "stages",
		capacity: model.MaxStages,
		list:     func(rec *model.Traceability) *[]string { return &rec.Stages },
		event:    model.EventTraceabilityStageUpdated,
		payload: func(rec *model.Traceability, entry string) interface{} {
			return model.TraceabilityStageUpdated{ProductName: rec.ProductName, Stage: entry}
		},
	}
	certificationTarget = appendTarget{
		field:    "certifications",
		capacity: model.MaxCertifications,
		list:     func(rec *model.Traceability) *[]string { return &rec.Certifications },
		event:    model.EventCertificationAdded,
		payload: func(rec *model.Traceability, entry string) interface{} {
			return model.CertificationAdded{ProductName: rec.ProductName, Certification: entry}
		},
	}
)

// Initialize creates a record in the unused slot id, owned by caller.
// Creation is not rate limited.
func (e *TraceabilityEngine) Initialize(id, productName, caller string) (*model.Traceability, error) {
	if err := validateIdentity(caller, "caller"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(productName, "productName", model.MaxTextLength); err != nil {
		return nil, err
	}
	key, err := reserveKey(e.store, traceabilityObjectType, id)
	if err != nil {
		return nil, err
	}
	now, err := e.clock.Now()
	if err != nil {
		return nil, err
	}

	rec := &model.Traceability{
		ObjectType:     traceabilityObjectType,
		ID:             id,
		ProductName:    productName,
		Origin:         model.DefaultOrigin,
		Stages:         []string{},
		Certifications: []string{},
		LastUpdateTime: now.Unix(),
		Owner:          caller,
		Deposit:        model.TraceabilitySpace,
	}
	if err := storeRecord(e.store, key, rec); err != nil {
		return nil, err
	}
	if err := emitEvent(e.notifier, model.EventTraceabilityInitialized, model.TraceabilityInitialized{ProductName: productName}); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateStage appends a stage to the record. Only the owner may append, and
// not within MinUpdateInterval of the previous stage or certification.
func (e *TraceabilityEngine) UpdateStage(id, stage, caller string) error {
	return e.appendEntry(id, stage, caller, stageTarget)
}

// AddCertification appends a certification under the same rules as UpdateStage.
func (e *TraceabilityEngine) AddCertification(id, certification, caller string) error {
	return e.appendEntry(id, certification, caller, certificationTarget)
}

func (e *TraceabilityEngine) appendEntry(id, entry, caller string, target appendTarget) error {
	var rec model.Traceability
	key, err := loadRecord(e.store, traceabilityObjectType, id, &rec)
	if err != nil {
		return err
	}
	if err := requireOwner(&rec, caller); err != nil {
		return err
	}
	now, err := e.clock.Now()
	if err != nil {
		return err
	}
	if err := checkRateLimit(&rec, now.Unix()); err != nil {
		return err
	}

	list := target.list(&rec)
	if len(*list) >= target.capacity {
		return fmt.Errorf("%w: %s of '%s' already holds the maximum of %d entries", ErrStorageCapacityExceeded, target.field, id, target.capacity)
	}
	if err := validateOptionalString(entry, target.field+" entry", model.MaxTextLength); err != nil {
		return err
	}

	*list = append(*list, entry)
	rec.LastUpdateTime = now.Unix()
	if err := storeRecord(e.store, key, &rec); err != nil {
		return err
	}
	return emitEvent(e.notifier, target.event, target.payload(&rec, entry))
}

// Close deletes the record and credits its storage deposit to recipient.
// Only the owner may close; closing is not rate limited.
func (e *TraceabilityEngine) Close(id, caller, recipient string) error {
	var rec model.Traceability
	key, err := loadRecord(e.store, traceabilityObjectType, id, &rec)
	if err != nil {
		return err
	}
	if err := requireOwner(&rec, caller); err != nil {
		return err
	}
	if err := validateIdentity(recipient, "recipient"); err != nil {
		return err
	}

	balance, balanceKey, err := e.reclaimBalance(recipient)
	if err != nil {
		return err
	}
	balance.Amount += rec.Deposit
	if err := storeRecord(e.store, balanceKey, balance); err != nil {
		return err
	}
	if err := e.store.Delete(key); err != nil {
		return err
	}
	return emitEvent(e.notifier, model.EventTraceabilityClosed, model.TraceabilityClosed{ProductName: rec.ProductName})
}

// GetStages returns stages[start:end]. Reads are public.
func (e *TraceabilityEngine) GetStages(id string, start, end uint64) ([]string, error) {
	rec, err := e.Get(id)
	if err != nil {
		return nil, err
	}
	return paginate(rec.Stages, start, end, "stages")
}

// GetCertifications returns certifications[start:end]. Reads are public.
func (e *TraceabilityEngine) GetCertifications(id string, start, end uint64) ([]string, error) {
	rec, err := e.Get(id)
	if err != nil {
		return nil, err
	}
	return paginate(rec.Certifications, start, end, "certifications")
}

// Get returns the full record stored in slot id.
func (e *TraceabilityEngine) Get(id string) (*model.Traceability, error) {
	var rec model.Traceability
	if _, err := loadRecord(e.store, traceabilityObjectType, id, &rec); err != nil {
		return nil, err
	}
	if rec.Stages == nil {
		rec.Stages = []string{}
	}
	if rec.Certifications == nil {
		rec.Certifications = []string{}
	}
	return &rec, nil
}

// Exists reports whether slot id holds a live record.
func (e *TraceabilityEngine) Exists(id string) (bool, error) {
	key, err := e.store.CreateKey(traceabilityObjectType, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	b, err := e.store.Get(key)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

// ReclaimedDeposit returns the total deposit credited to recipient by closes.
func (e *TraceabilityEngine) ReclaimedDeposit(recipient string) (int64, error) {
	if err := validateIdentity(recipient, "recipient"); err != nil {
		return 0, err
	}
	balance, _, err := e.reclaimBalance(recipient)
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

func (e *TraceabilityEngine) reclaimBalance(recipient string) (*model.ReclaimBalance, string, error) {
	balance := &model.ReclaimBalance{}
	key, err := loadRecord(e.store, reclaimBalanceObjectType, recipient, balance)
	if err == nil {
		return balance, key, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, "", err
	}
	key, err = e.store.CreateKey(reclaimBalanceObjectType, recipient)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return &model.ReclaimBalance{ObjectType: reclaimBalanceObjectType, Recipient: recipient}, key, nil
}

func requireOwner(rec *model.Traceability, caller string) error {
	if caller == "" || caller != rec.Owner {
		return fmt.Errorf("%w: caller '%s' does not own traceability record '%s'", ErrUnauthorized, caller, rec.ID)
	}
	return nil
}

// checkRateLimit rejects a mutation arriving less than MinUpdateInterval
// seconds after the last one. A clock behind the stored time is rejected too.
func checkRateLimit(rec *model.Traceability, now int64) error {
	if elapsed := now - rec.LastUpdateTime; elapsed < model.MinUpdateInterval {
		return fmt.Errorf("%w: %d seconds since last update of '%s', minimum is %d", ErrRateLimitExceeded, elapsed, rec.ID, model.MinUpdateInterval)
	}
	return nil
}
