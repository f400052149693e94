package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	kv := []any{"request_id", "req-1", 42, "skipped", "status", 201, "society_id", "abc", "dangling"}

	assert.Equal(t, "req-1", ExtractString(kv, "request_id"))
	assert.Equal(t, "abc", ExtractString(kv, "society_id"))
	assert.Empty(t, ExtractString(kv, "status"), "non-string value")
	assert.Empty(t, ExtractString(kv, "dangling"), "key without value")
	assert.Empty(t, ExtractString(nil, "request_id"))

	v, ok := Lookup(kv, "status")
	assert.True(t, ok)
	assert.Equal(t, 201, v)
}
