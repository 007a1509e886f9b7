// Package textmatch compares backend labels and user queries without caring
// about letter case, accent composition or the German sharp s.
//
// Fold("Straße") == Fold("STRASSE") == "strasse", which lets a user type
// either spelling when searching streets.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the NFC-normalized, fully case-folded form of s with
// surrounding whitespace removed.
//
// A fresh Caser is created per call; cases.Caser is not safe for
// concurrent use.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Contains reports whether needle occurs in haystack after folding both.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// ContainsAny reports whether any keyword occurs in the folded haystack.
// Keywords are expected to already be lower-case ASCII.
func ContainsAny(haystack string, keywords ...string) bool {
	h := Fold(haystack)
	for _, k := range keywords {
		if k != "" && strings.Contains(h, k) {
			return true
		}
	}
	return false
}
