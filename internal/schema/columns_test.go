package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical_KnownHeaders(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Date Pulled", "date_pulled"},
		{"Date", "date"},
		{"OPAL Price", "opal_price"},
		{"South Demand level", "south_demand_level"},
		{"South Demand level2", "south_demand_level2"},
		{"Central Flight level 6", "central_flight_level6"},
		{"SOUTH Search Level", "south_search_level"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Canonical(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonical_IsCaseSensitive(t *testing.T) {
	for _, raw := range []string{"date", "DATE", "opal price", "South Demand Level", " Date"} {
		_, ok := Canonical(raw)
		assert.False(t, ok, "%q should not match", raw)
	}
}

func TestRename_PassThrough(t *testing.T) {
	assert.Equal(t, "Notes", Rename("Notes"))
	assert.Equal(t, "hilton_price", Rename("Hilton Price"))
}

func TestRename_SecondPassFindsNothing(t *testing.T) {
	for _, raw := range RawHeaders() {
		canonical := Rename(raw)
		_, ok := Canonical(canonical)
		assert.False(t, ok, "canonical name %q is also a raw header", canonical)
		assert.Equal(t, canonical, Rename(canonical))
	}
}

func TestMapping_NearDuplicatesAreDistinct(t *testing.T) {
	pairs := [][2]string{
		{"South Demand level", "South Demand level2"},
		{"South price level", "South price level3"},
		{"Central Demand level", "Central Demand level4"},
		{"Central price level", "Central price level5"},
		{"South META Search Level", "South META Search Level2"},
		{"Central META Search Level", "Central META Search Level3"},
		{"South GDS Search Level", "South GDS Search Level2"},
		{"Central GDS Search Level", "Central GDS Search Level3"},
		{"Central Flight level", "Central Flight level 6"},
	}

	for _, p := range pairs {
		a, okA := Canonical(p[0])
		b, okB := Canonical(p[1])

		require.True(t, okA)
		require.True(t, okB)
		assert.NotEqual(t, a, b, "%q and %q collapse", p[0], p[1])
	}
}

func TestMapping_Size(t *testing.T) {
	assert.GreaterOrEqual(t, Len(), 32)
	assert.Len(t, RawHeaders(), Len())
}

func TestFieldDesignations_AreCanonical(t *testing.T) {
	canonical := make(map[string]bool, Len())
	for _, raw := range RawHeaders() {
		canonical[Rename(raw)] = true
	}

	for _, group := range [][]string{PercentageFields(), PriceFields(), DateFields()} {
		require.Len(t, group, 2)

		for _, name := range group {
			assert.True(t, canonical[name], "%q is not a canonical column", name)
		}
	}
}

func TestFieldDesignations_ReturnCopies(t *testing.T) {
	fields := PriceFields()
	fields[0] = "changed"

	assert.Equal(t, "opal_price", PriceFields()[0])
}
