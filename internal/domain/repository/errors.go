package repository

import "ecoroute/internal/errors"

// Sentinel errors shared by repository implementations.
var (
	// ErrOrganizationNotFound is returned when an organization lookup misses.
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrStorageDisabled is returned by every method when the service runs
	// without a configured database.
	ErrStorageDisabled = errors.New("persistent storage is not configured")
)
