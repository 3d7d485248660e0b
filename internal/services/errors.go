package services

import "errors"

var (
	// ErrProfileNotFound: the operation requires a profile that does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRecordNotFound: no screening record or appointment with that ID.
	ErrRecordNotFound = errors.New("record not found")

	// ErrPermissionDenied: the caller's role or ownership does not allow the
	// operation, including a doctor-upgrade attempt with a bad access code.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation: a required field or upload is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream: an external collaborator (storage, model, email) failed
	// while serving the primary requested operation.
	ErrUpstream = errors.New("upstream failure")
)
