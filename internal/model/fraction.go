package model

import (
	"strings"

	"github.com/tonneli/tonneli/internal/apperr"
)

// FractionKind enumerates the canonical waste categories plus the open
// Other variant.
type FractionKind int

const (
	FractionOther FractionKind = iota
	FractionResidual
	FractionOrganic
	FractionPaper
	FractionPlastic
	FractionGlass
	FractionMetal
)

var fractionSlugs = map[FractionKind]string{
	FractionResidual: "residual",
	FractionOrganic:  "organic",
	FractionPaper:    "paper",
	FractionPlastic:  "plastic",
	FractionGlass:    "glass",
	FractionMetal:    "metal",
}

var fractionLabels = map[FractionKind]string{
	FractionResidual: "Residual waste",
	FractionOrganic:  "Organic waste",
	FractionPaper:    "Paper",
	FractionPlastic:  "Plastic / packaging",
	FractionGlass:    "Glass",
	FractionMetal:    "Metal",
}

// Fraction is a waste category. For FractionOther, Name carries the
// backend's original label; for canonical kinds Name is empty.
type Fraction struct {
	Kind FractionKind
	Name string
}

// Canonical fractions.
var (
	Residual = Fraction{Kind: FractionResidual}
	Organic  = Fraction{Kind: FractionOrganic}
	Paper    = Fraction{Kind: FractionPaper}
	Plastic  = Fraction{Kind: FractionPlastic}
	Glass    = Fraction{Kind: FractionGlass}
	Metal    = Fraction{Kind: FractionMetal}
)

// CanonicalFractions lists the closed set in display order.
var CanonicalFractions = []Fraction{Residual, Organic, Paper, Plastic, Glass, Metal}

// Other returns the escape variant preserving the raw backend label.
func Other(name string) Fraction {
	return Fraction{Kind: FractionOther, Name: name}
}

// IsOther reports whether f is the open variant.
func (f Fraction) IsOther() bool { return f.Kind == FractionOther }

// Slug returns the canonical slug, or "other" for the open variant.
func (f Fraction) Slug() string {
	if s, ok := fractionSlugs[f.Kind]; ok {
		return s
	}
	return "other"
}

// String returns the canonical slug, or the raw label for Other.
func (f Fraction) String() string {
	if f.IsOther() {
		return f.Name
	}
	return f.Slug()
}

// Label is the human readable name shown in tables and calendars.
func (f Fraction) Label() string {
	if l, ok := fractionLabels[f.Kind]; ok {
		return l
	}
	if f.Name == "" {
		return "Other"
	}
	return f.Name
}

// otherPrefix marks an Other label that would otherwise read back as a
// canonical slug.
const otherPrefix = "other:"

// MarshalText encodes canonical fractions as their slug and Other as its
// raw label. Labels that parse as a slug or already carry the prefix are
// written as "other:<label>" so they decode to the same value.
func (f Fraction) MarshalText() ([]byte, error) {
	if f.IsOther() {
		if _, err := ParseFraction(f.Name); err == nil || strings.HasPrefix(f.Name, otherPrefix) {
			return []byte(otherPrefix + f.Name), nil
		}
	}
	return []byte(f.String()), nil
}

// UnmarshalText is lenient: unknown text becomes Other(text).
func (f *Fraction) UnmarshalText(b []byte) error {
	s := string(b)
	if name, ok := strings.CutPrefix(s, otherPrefix); ok {
		*f = Other(name)
		return nil
	}
	if parsed, err := ParseFraction(s); err == nil {
		*f = parsed
		return nil
	}
	*f = Other(s)
	return nil
}

// ParseFraction is the strict mapping from a canonical slug to a Fraction.
// Anything outside the closed set fails with apperr.KindUnknownFraction.
func ParseFraction(slug string) (Fraction, error) {
	s := strings.ToLower(strings.TrimSpace(slug))
	for kind, name := range fractionSlugs {
		if name == s {
			return Fraction{Kind: kind}, nil
		}
	}
	return Fraction{}, apperr.New(apperr.KindUnknownFraction, "model.ParseFraction", slug)
}
