package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseQueueWeights(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]int
	}{
		{"single queue", "membership=2", map[string]int{"membership": 2}},
		{"multiple queues", "membership=2,default=1", map[string]int{"membership": 2, "default": 1}},
		{"missing weight defaults to one", "membership", map[string]int{"membership": 1}},
		{"whitespace tolerated", " membership = 2 , default = 1 ", map[string]int{"membership": 2, "default": 1}},
		{"invalid weight defaults to one", "membership=zero", map[string]int{"membership": 1}},
		{"empty parts skipped", ",,membership=2,", map[string]int{"membership": 2}},
		{"empty string", "", map[string]int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseQueueWeights(tc.in))
		})
	}
}
