package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"

	dErrors "greentax/pkg/domain-errors"
)

// Typed identifiers keep society, proof and user references from being
// swapped at call sites. All of them are non-nil UUIDs once parsed.
type (
	UserID    uuid.UUID
	SocietyID uuid.UUID
	ProofID   uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is too long")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("invalid %s", kind))
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return parsed, nil
}

// ParseUserID validates and converts a string to UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user_id", s)
	return UserID(u), err
}

// ParseSocietyID validates and converts a string to SocietyID.
func ParseSocietyID(s string) (SocietyID, error) {
	u, err := parseUUID("society_id", s)
	return SocietyID(u), err
}

// ParseProofID validates and converts a string to ProofID.
func ParseProofID(s string) (ProofID, error) {
	u, err := parseUUID("proof_id", s)
	return ProofID(u), err
}

func NewSocietyID() SocietyID { return SocietyID(uuid.New()) }
func NewProofID() ProofID     { return ProofID(uuid.New()) }

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id SocietyID) String() string { return uuid.UUID(id).String() }
func (id ProofID) String() string   { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SocietyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ProofID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id SocietyID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ProofID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SocietyID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ProofID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }

// Value and Scan let typed IDs travel through database/sql as uuid columns.
func (id UserID) Value() (driver.Value, error)    { return uuid.UUID(id).Value() }
func (id SocietyID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id ProofID) Value() (driver.Value, error)   { return uuid.UUID(id).Value() }

func (id *UserID) Scan(src any) error    { return (*uuid.UUID)(id).Scan(src) }
func (id *SocietyID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }
func (id *ProofID) Scan(src any) error   { return (*uuid.UUID)(id).Scan(src) }
