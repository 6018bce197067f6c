package runconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	c := Default()
	yamlDoc := []byte(`
Title: custom-run
NumRanks: 4
MeshSource: quadgrid
BoxMax: [2, 2, 2]
`)
	require.NoError(t, c.Parse(yamlDoc))

	assert.Equal(t, "custom-run", c.Title)
	assert.Equal(t, 4, c.NumRanks)
	assert.Equal(t, "quadgrid", c.MeshSource)
	assert.Equal(t, [3]float64{2, 2, 2}, c.BoxMax)
	// Untouched by the input, still the default.
	assert.Equal(t, 1.05, c.ImbalanceFactor)
}

func TestBoxReflectsConfiguredBounds(t *testing.T) {
	c := Default()
	c.BoxMax = [3]float64{3, 4, 5}
	box := c.Box()
	assert.True(t, box.Valid())
	assert.Equal(t, [3]float64{3, 4, 5}, box.Max)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	c := Default()
	err := c.Parse([]byte("NumRanks: [this is not an int"))
	assert.Error(t, err)
}
