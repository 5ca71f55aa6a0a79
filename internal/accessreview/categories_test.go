package accessreview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
		ok   bool
	}{
		{name: "canonical", text: "RAMP", want: CategoryRamp, ok: true},
		{name: "lower case", text: "food", want: CategoryFood, ok: true},
		{name: "mixed case", text: "Waiting_Area", want: CategoryWaitingArea, ok: true},
		{name: "unknown", text: "parking"},
		{name: "partial", text: "SEAT"},
		{name: "empty", text: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ResolveCategory(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, c)
			}
		})
	}
}

func TestResolveCategoriesDropsUnknown(t *testing.T) {
	cs := ResolveCategories("seating", "nope", "MENU", "")
	assert.Equal(t, []Category{CategorySeating, CategoryMenu}, cs)
}

func TestCategoryJSONKeys(t *testing.T) {
	b, err := json.Marshal(map[Category]float64{CategoryFood: 4.5, CategoryRamp: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"FOOD": 4.5, "RAMP": 1}`, string(b))

	var back map[Category]float64
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 4.5, back[CategoryFood])
}

func TestCategories(t *testing.T) {
	cs := Categories()
	require.Len(t, cs, 7)
	assert.Equal(t, "STAFF_DECORUM", cs[len(cs)-1].String())
}
