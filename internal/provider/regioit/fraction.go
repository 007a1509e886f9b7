package regioit

import (
	"github.com/tonneli/tonneli/internal/model"
	"github.com/tonneli/tonneli/internal/textmatch"
)

// MapFraction classifies a RegioIT fraction name by keyword. Names matching
// no keyword are kept verbatim as model.Other.
func MapFraction(name string) model.Fraction {
	switch {
	case textmatch.ContainsAny(name, "rest"):
		return model.Residual
	case textmatch.ContainsAny(name, "bio"):
		return model.Organic
	case textmatch.ContainsAny(name, "papier", "pappe"):
		return model.Paper
	case textmatch.ContainsAny(name, "gelb", "leichtverpackung", "lvp"):
		return model.Plastic
	case textmatch.ContainsAny(name, "glas"):
		return model.Glass
	case textmatch.ContainsAny(name, "metall", "schrott"):
		return model.Metal
	default:
		return model.Other(name)
	}
}
