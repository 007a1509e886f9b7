package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_CaseAndNormalization(t *testing.T) {
	assert.Equal(t, "hauptstrasse", Fold("  Hauptstraße "))
	assert.Equal(t, Fold("HAUPTSTRASSE"), Fold("Hauptstraße"))
	// decomposed ü (u + U+0308) folds to the same form as the precomposed one
	assert.Equal(t, Fold("N\u00fcrnberg"), Fold("Nu\u0308rnberg"))
}

func TestContains_Substring(t *testing.T) {
	assert.True(t, Contains("Hauptstraße", "STRASSE"))
	assert.True(t, Contains("Bahnhofstr.", ""))
	assert.False(t, Contains("Ringstraße", "haupt"))
}

func TestContainsAny_Keywords(t *testing.T) {
	assert.True(t, ContainsAny("Biotonne 120l", "bio"))
	assert.True(t, ContainsAny("Gelber Sack", "leichtverpackung", "gelb"))
	assert.False(t, ContainsAny("Sperrmüll", "rest", "bio"))
	assert.False(t, ContainsAny("anything", ""))
}
