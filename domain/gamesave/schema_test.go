package gamesave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/game-save-demo/domain/gamesave"
)

func TestFieldNames_DeclarationOrder(t *testing.T) {
	names := gamesave.FieldNames(&sample{})
	assert.Equal(t, []string{
		"Health", "Score", "Ticks", "Port", "Seed", "Mask",
		"Speed", "Ratio", "Alive", "Name", "Tags",
	}, names)
}

func TestSupportedFieldNames_DropsUnsupported(t *testing.T) {
	names := gamesave.SupportedFieldNames(&sample{})
	assert.NotContains(t, names, "Tags")
	assert.Len(t, names, 10)
}

func TestFieldNames_EmptySchema(t *testing.T) {
	assert.Empty(t, gamesave.FieldNames(fieldList{}))
}

func TestValidateSchema(t *testing.T) {
	var a, b int32

	assert.NoError(t, gamesave.ValidateSchema(&sample{}))

	err := gamesave.ValidateSchema(fieldList{
		{Name: "Score", Type: gamesave.TypeInt32, Ptr: &a},
		{Name: "Score", Type: gamesave.TypeInt32, Ptr: &b},
	})
	assert.ErrorIs(t, err, gamesave.ErrDuplicateField)

	err = gamesave.ValidateSchema(fieldList{{Name: "", Type: gamesave.TypeInt32, Ptr: &a}})
	assert.ErrorIs(t, err, gamesave.ErrInvalidFieldName)
}

func TestValidNames(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"profile", true},
		{"slot-1_backup.v2", true},
		{"", false},
		{".hidden", false},
		{"a/b", false},
		{"spaces here", false},
		{"ünicode", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, gamesave.ValidContainerName(tt.name))
		})
	}

	long := make([]byte, gamesave.MaxBlobNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, gamesave.ValidBlobName(string(long)))
	assert.True(t, gamesave.ValidContainerName(string(long)))
}
