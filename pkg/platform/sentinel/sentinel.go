// Package sentinel holds the storage facts that stores report upward.
//
// Stores return these (optionally wrapped); services translate them into
// coded domain errors. Input problems never use sentinels, they go straight
// to pkg/domain-errors.
package sentinel

import "errors"

var (
	// ErrNotFound means the society, proof or compliance record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUsed means a unique key (society tax number, image fingerprint)
	// is already taken by another row.
	ErrAlreadyUsed = errors.New("already used")

	// ErrInvalidState means the row exists but cannot make the requested
	// transition, such as reviewing a proof that is no longer FLAGGED.
	ErrInvalidState = errors.New("invalid state")
)
