package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDatabase = `{
  "Titanium Grade 5": {
    "category": "Metal",
    "material_notes": "High strength titanium alloy.",
    "density": 4.43,
    "tensile_strength_ultimate": 950,
    "tensile_strength_yield": 880,
    "modulus_of_elasticity": 113.8,
    "thermal_conductivity": 6.7,
    "melting_point": 1604,
    "cost_per_kg_usd": 35.0,
    "sustainability_score": 4,
    "sustainability_notes": "Energy intensive to produce.",
    "common_applications": ["Aerospace fasteners", "Medical implants"]
  },
  "Aluminum 6061-T6": {
    "category": "Metal",
    "material_notes": "General purpose aluminum alloy.",
    "density": 2.7,
    "tensile_strength_ultimate": 310,
    "tensile_strength_yield": 276
  }
}`

func TestLoadDatabase(t *testing.T) {
	records, err := LoadDatabase([]byte(sampleDatabase))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Sorted by name for deterministic ingestion.
	assert.Equal(t, "Aluminum 6061-T6", records[0].Name)
	assert.Equal(t, "Titanium Grade 5", records[1].Name)

	titanium := records[1]
	assert.Equal(t, "Metal", titanium.Category)
	assert.Equal(t, 4.43, titanium.Density)
	assert.Equal(t, 950.0, titanium.TensileUltimate)
	assert.Equal(t, []string{"Aerospace fasteners", "Medical implants"}, titanium.Applications)

	// Omitted properties stay zero.
	aluminum := records[0]
	assert.Zero(t, aluminum.MeltingPoint)
	assert.Zero(t, aluminum.CostPerKg)
	assert.Empty(t, aluminum.Applications)
}

func TestLoadDatabaseMalformed(t *testing.T) {
	_, err := LoadDatabase([]byte("not json"))
	assert.ErrorIs(t, err, ErrMalformedDatabase)
}

func TestLoadDatabaseEmpty(t *testing.T) {
	_, err := LoadDatabase([]byte("{}"))
	assert.ErrorIs(t, err, ErrDatabaseFileEmpty)
}

func TestLoadDatabaseInvalidRecord(t *testing.T) {
	_, err := LoadDatabase([]byte(`{"Bad Material": {"category": "Metal", "density": -1.0}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Material")
}

func TestLoadDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDatabase), 0o644))

	records, err := LoadDatabaseFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadDatabaseFileMissing(t *testing.T) {
	_, err := LoadDatabaseFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
