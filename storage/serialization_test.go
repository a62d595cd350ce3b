package storage

import (
	"testing"
	"time"

	"github.com/helios-eng/helios/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("Titanium Grade 5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalMaterialRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &core.MaterialRecord{
		Id:                  core.IDFromContent("Aluminum 6061-T6"),
		Name:                "Aluminum 6061-T6",
		Category:            "Aluminum Alloy",
		Notes:               "General purpose structural alloy.",
		Density:             2.7,
		TensileUltimate:     310,
		TensileYield:        276,
		Modulus:             68.9,
		ThermalConductivity: 167,
		MeltingPoint:        582,
		CostPerKg:           2.5,
		SustainabilityScore: 8,
		SustainabilityNotes: "Widely recycled.",
		Applications:        []string{"Aircraft fittings", "Bike frames"},
		Vector:              []float32{0.1, 0.2, 0.3},
		InsertedAt:          now,
		UpdatedAt:           now,
	}

	data := MarshalMaterialRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalMaterialRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record.Id, decoded.Id)
	assert.Equal(t, record.Name, decoded.Name)
	assert.Equal(t, record.Applications, decoded.Applications)
	assert.Equal(t, record.Vector, decoded.Vector)
	assert.True(t, record.InsertedAt.Equal(decoded.InsertedAt))
}

func TestUnmarshalMaterialRecord_Truncated(t *testing.T) {
	record := &core.MaterialRecord{Name: "Copper C110"}
	data := MarshalMaterialRecord(record)

	_, err := UnmarshalMaterialRecord(data[:len(data)/2])
	assert.Error(t, err)
}
