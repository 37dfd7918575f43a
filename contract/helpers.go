package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"supplytrace/ledger"
)

// --- Validation Helper Functions ---

func validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, field)
	}
	return validateOptionalString(input, field, max)
}

// validateOptionalString enforces the fixed per-entry allocation; text that
// would not fit the slot is a capacity failure, not a malformed request.
// Text must be valid UTF-8 so that it is stored and announced byte for byte.
func validateOptionalString(input, field string, max int) error {
	if !utf8.ValidString(input) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidArgument, field)
	}
	if len(input) > max {
		return fmt.Errorf("%w: %s is %d bytes, exceeding max length %d", ErrStorageCapacityExceeded, field, len(input), max)
	}
	return nil
}

func validateIdentity(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, field)
	}
	return nil
}

// paginate returns a copy of entries[start:end]. Bounds must satisfy
// start < end <= len(entries).
func paginate(entries []string, start, end uint64, field string) ([]string, error) {
	if start >= end || end > uint64(len(entries)) {
		return nil, fmt.Errorf("%w: %s[%d:%d] with %d entries", ErrInvalidPagination, field, start, end, len(entries))
	}
	page := make([]string, end-start)
	copy(page, entries[start:end])
	return page, nil
}

// --- Record Storage Helpers ---

// loadRecord reads and unmarshals the record stored under objectType/id into
// v and returns its key. A missing record yields ErrRecordNotFound.
func loadRecord(store ledger.Store, objectType, id string, v interface{}) (string, error) {
	key, err := store.CreateKey(objectType, id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	b, err := store.Get(key)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", fmt.Errorf("%w: %s with ID '%s'", ErrRecordNotFound, objectType, id)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s '%s': %w", objectType, id, err)
	}
	return key, nil
}

// reserveKey returns the key for a fresh slot, failing if the slot is in use.
func reserveKey(store ledger.Store, objectType, id string) (string, error) {
	key, err := store.CreateKey(objectType, id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	existing, err := store.Get(key)
	if err != nil {
		return "", fmt.Errorf("failed to check for existing %s '%s': %w", objectType, id, err)
	}
	if existing != nil {
		return "", fmt.Errorf("%w: %s with ID '%s'", ErrRecordExists, objectType, id)
	}
	return key, nil
}

func storeRecord(store ledger.Store, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record '%s': %w", key, err)
	}
	return store.Put(key, b)
}

// emitEvent marshals payload and hands it to the notifier. A failed emission
// fails the operation so that no state change goes unannounced.
func emitEvent(notifier ledger.Notifier, eventName string, payload interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload for '%s': %w", eventName, err)
	}
	return notifier.Emit(eventName, b)
}
