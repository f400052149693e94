package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "greentax/pkg/domain-errors"
)

func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSocietyID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSocietyID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseProofID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

func TestParseID_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE proofs;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSocietyID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()

	_, errUser := ParseUserID(validUUID)
	_, errSociety := ParseSocietyID(validUUID)
	_, errProof := ParseProofID(validUUID)
	require.NoError(t, errUser)
	require.NoError(t, errSociety)
	require.NoError(t, errProof)

	for _, input := range []string{"", "invalid", uuid.Nil.String()} {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errUser := ParseUserID(input)
			_, errSociety := ParseSocietyID(input)
			_, errProof := ParseProofID(input)
			require.Error(t, errUser)
			require.Error(t, errSociety)
			require.Error(t, errProof)
		})
	}
}

func TestIDs_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Society SocietyID `json:"society_id"`
	}
	in := payload{Society: NewSocietyID()}
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), in.Society.String())

	var out payload
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("bmc_admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("mayor")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
