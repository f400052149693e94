package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "only separators", input: " , ,", want: []string{}},
		{name: "single", input: "k1:9092", want: []string{"k1:9092"}},
		{name: "trims and keeps order", input: " k2:9092 ,k1:9092", want: []string{"k2:9092", "k1:9092"}},
		{name: "drops repeats", input: "k1:9092,k2:9092,k1:9092", want: []string{"k1:9092", "k2:9092"}},
		{name: "case sensitive", input: "Broker,broker", want: []string{"Broker", "broker"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}

func TestDedupeAndTrimNil(t *testing.T) {
	assert.Nil(t, DedupeAndTrim(nil))
	assert.Equal(t, []string{}, DedupeAndTrim([]string{}))
}
