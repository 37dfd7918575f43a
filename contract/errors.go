package contract

import "errors"

// Failures surfaced to callers. Operations wrap these with context, so match
// them with errors.Is.
var (
	ErrUnauthorized            = errors.New("unauthorized: you are not authorized to perform this action")
	ErrRateLimitExceeded       = errors.New("rate limit exceeded: please wait before making another update")
	ErrInvalidPagination       = errors.New("invalid pagination parameters")
	ErrStorageCapacityExceeded = errors.New("storage capacity exceeded")

	ErrRecordNotFound  = errors.New("record does not exist")
	ErrRecordExists    = errors.New("record already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)
