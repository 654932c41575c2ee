package models_test

import (
	"encoding/json"
	"testing"

	"taskhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemUpdateTellsNullFromAbsent(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		descSet   bool
		desc      *string
		ownerSet  bool
		ownerNull bool
	}{
		{"absent", `{"name": "Lamp"}`, false, nil, false, true},
		{"explicit null", `{"description": null, "owner_id": null}`, true, nil, true, true},
		{"value", `{"description": "brass", "owner_id": 7}`, true, strPtr("brass"), true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var patch models.ItemUpdate
			require.NoError(t, json.Unmarshal([]byte(tc.body), &patch))

			assert.Equal(t, tc.descSet, patch.Description.Set)
			assert.Equal(t, tc.desc, patch.Description.Value)
			assert.Equal(t, tc.ownerSet, patch.OwnerID.Set)
			assert.Equal(t, tc.ownerNull, patch.OwnerID.Value == nil)
		})
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var patch models.ItemUpdate
	assert.Error(t, json.Unmarshal([]byte(`{"owner_id": "seven"}`), &patch))
}

func TestOptionalColumn(t *testing.T) {
	assert.Nil(t, models.Optional[uint]{Set: true}.Column())

	seven := uint(7)
	assert.Equal(t, uint(7), models.Optional[uint]{Set: true, Value: &seven}.Column())
}

func strPtr(s string) *string { return &s }
