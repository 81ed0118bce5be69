package ritual

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightTableIsValid(t *testing.T) {
	assert.NoError(t, DefaultWeightTable().Validate())
}

func TestResolveFallsBackForUnmappedState(t *testing.T) {
	table := DefaultWeightTable()

	mapped := table.Resolve("Anxiety and Overwhelm")
	assert.Equal(t, table["Anxiety and Overwhelm"], mapped)

	unmapped := table.Resolve("Existential Dread")
	assert.Equal(t, table[FallbackState], unmapped)
}

func TestValidateRejectsMissingFallback(t *testing.T) {
	table := WeightTable{
		"Sadness": {"gratitude": 1},
	}
	assert.Error(t, table.Validate())
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	table := DefaultWeightTable()
	table["Sadness"]["gratitude"] = -1
	assert.Error(t, table.Validate())
}

func TestValidateRejectsEmptyRow(t *testing.T) {
	table := DefaultWeightTable()
	table["Sadness"] = map[string]float64{}
	assert.Error(t, table.Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWeightTable(), table)
}

func TestLoadOverridesPerState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	content := `{"Sadness": {"gratitude": 10, "movement": 5}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"gratitude": 10, "movement": 5}, table["Sadness"])
	// States absent from the file keep their defaults.
	assert.Equal(t, DefaultWeightTable()["Burnout"], table["Burnout"])
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	content := `{"unknown": {"breathing": -3}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/weights.json")
	assert.Error(t, err)
}
