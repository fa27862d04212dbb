package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aadhaar_insights/models"
)

func TestResolveScope(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		district string
		want     GroupLevel
	}{
		{"no filters", "", "", LevelState},
		{"all sentinels", "All", "All", LevelState},
		{"state only", "Gujarat", "", LevelDistrict},
		{"state with all district", "Gujarat", "All", LevelDistrict},
		{"state and district", "Gujarat", "Ahmedabad", LevelPincode},
		{"district without state", "", "Ahmedabad", LevelPincode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScope(tt.state, tt.district))
		})
	}
}

func TestGroupLevelKeyOf(t *testing.T) {
	r := models.Record{State: "Gujarat", District: "Ahmedabad", Pincode: "380001"}

	assert.Equal(t, "Gujarat", LevelState.KeyOf(r))
	assert.Equal(t, "Ahmedabad", LevelDistrict.KeyOf(r))
	assert.Equal(t, "380001", LevelPincode.KeyOf(r))
}

func TestGroupLevelLabel(t *testing.T) {
	assert.Equal(t, "State", LevelState.Label())
	assert.Equal(t, "District", LevelDistrict.Label())
	assert.Equal(t, "Pincode", LevelPincode.Label())
}

func TestFilterRecords(t *testing.T) {
	records := []models.Record{
		{State: "Gujarat", District: "Ahmedabad"},
		{State: "Gujarat", District: "Surat"},
		{State: "Kerala", District: "Wayanad"},
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, FilterRecords(records, "", ""), 3)
		assert.Len(t, FilterRecords(records, "All", "All"), 3)
	})

	t.Run("state filter", func(t *testing.T) {
		got := FilterRecords(records, "Gujarat", "")
		assert.Len(t, got, 2)
		for _, r := range got {
			assert.Equal(t, "Gujarat", r.State)
		}
	})

	t.Run("state and district filter", func(t *testing.T) {
		got := FilterRecords(records, "Gujarat", "Surat")
		assert.Len(t, got, 1)
		assert.Equal(t, "Surat", got[0].District)
	})

	t.Run("exact match only", func(t *testing.T) {
		assert.Empty(t, FilterRecords(records, "gujarat", ""))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterRecords(nil, "Gujarat", ""))
	})
}
