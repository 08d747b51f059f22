package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForIndex(t *testing.T) {
	tests := []struct {
		index byte
		want  ChangeKind
	}{
		{'A', Added},
		{'M', Modified},
		{'D', Deleted},
		{'R', Other},
		{'C', Other},
		{'T', Other},
		{'U', Other},
		{'?', Other},
		{'.', Other},
	}

	for _, tt := range tests {
		t.Run(string(tt.index), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForIndex(tt.index))
		})
	}
}

func TestChangeKindString(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "modified", Modified.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "other", Other.String())
}
