package cologne

import (
	"strings"

	"github.com/tonneli/tonneli/internal/model"
)

// mapType maps AWB bin colors to a fraction and a German note.
// Unknown types keep their raw label.
func mapType(raw string) (model.Fraction, string) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "grey", "gray":
		return model.Residual, "Restabfall"
	case "blue":
		return model.Paper, "Papier / Pappe"
	case "wertstoff":
		return model.Plastic, "Leichtverpackungen / Wertstoffe"
	case "brown":
		return model.Organic, "Bioabfall"
	default:
		return model.Other(raw), "Fraktion " + raw
	}
}
