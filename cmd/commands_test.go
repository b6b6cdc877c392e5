package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcCommand(t *testing.T) {
	var out bytes.Buffer

	root := rootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"calc", "--area", "1000", "--rainfall", "1"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Harvestable water: 800 gallons\nAnnual savings: $8\n", out.String())
}

func TestCalcCommandUnknownCoefficientFallsBack(t *testing.T) {
	var out bytes.Buffer

	root := rootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"calc", "--area", "100", "--rainfall", "10", "--coefficient", "0.5"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Harvestable water: 800 gallons\nAnnual savings: $8\n", out.String())
}
