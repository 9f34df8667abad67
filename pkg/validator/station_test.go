package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		name     string
	}{
		{"", "", "Empty string"},
		{"   ", "", "Only spaces"},
		{"Pantitlán", "pantitlán", "Lowercases and keeps accents"},
		{"  Observatorio  ", "observatorio", "Trims"},
		{"Zócalo/Tenochtitlan", "zócalo tenochtitlan", "Slash"},
		{"Zócalo (Tenochtitlan)", "zócalo tenochtitlan", "Parentheses"},
		{"zócalo/tenochtitlan", "zócalo tenochtitlan", "Already lowercase"},
		{"UAM-Azcapotzalco", "uam azcapotzalco", "Hyphen"},
		{"La Villa—Basílica", "la villa basílica", "Em dash"},
		{"La Villa–Basílica", "la villa basílica", "En dash"},
		{"Garibaldi / Lagunilla", "garibaldi lagunilla", "Spaced slash"},
		{"Terminal del Sur / Tasqueña", "terminal del sur tasqueña", "Long name"},
		{"Deportivo\t18  de\nMarzo", "deportivo 18 de marzo", "Collapses whitespace"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Zócalo (Tenochtitlan)", "Ferrería/Arena Ciudad de México", "Av. Universidad"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pantitlan", Fold("Pantitlán"))
	assert.Equal(t, "zocalo tenochtitlan", Fold("Zócalo/Tenochtitlan"))
	assert.Equal(t, "penon viejo", Fold("Peñón Viejo"))
	assert.Equal(t, "", Fold(""))
}

func TestStationNameValidator_Validate(t *testing.T) {
	v := NewStationNameValidator()

	name, err := v.Validate("  Hidalgo ")
	require.NoError(t, err)
	assert.Equal(t, "Hidalgo", name)

	_, err = v.Validate("   ")
	assert.Equal(t, ErrEmptyStation, err)

	_, err = v.Validate(strings.Repeat("a", MaxStationNameLength+1))
	assert.Equal(t, ErrStationTooLong, err)

	assert.True(t, v.IsValid("Tacubaya"))
	assert.False(t, v.IsValid(""))
}

func TestStationNameValidator_SameStation(t *testing.T) {
	v := NewStationNameValidator()

	assert.True(t, v.SameStation("zócalo/tenochtitlan", "Zócalo (Tenochtitlan)"))
	assert.True(t, v.SameStation("Garibaldi / Lagunilla", "Garibaldi/Lagunilla"))
	assert.False(t, v.SameStation("Coyoacán", "Coyoacán (sur)"))
	assert.False(t, v.SameStation("", ""))
}
