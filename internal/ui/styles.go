package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"

	"github.com/tonneli/tonneli/internal/model"
)

// Color palette for the application (single source of truth)
var (
	ColorPrimary   = lipgloss.Color("#16A34A") // Bin green
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorHighlight = lipgloss.Color("#F048FF") // Pink

	ColorText     = lipgloss.Color("#F9FAFB")
	ColorTextDim  = lipgloss.Color("#9CA3AF")
	ColorTextMute = lipgloss.Color("#6B7280")
)

// Bin colors as used on German curbsides.
var fractionColors = map[model.FractionKind]color.Color{
	model.FractionResidual: lipgloss.Color("#9CA3AF"),
	model.FractionOrganic:  lipgloss.Color("#A16207"),
	model.FractionPaper:    lipgloss.Color("#3B82F6"),
	model.FractionPlastic:  lipgloss.Color("#EAB308"),
	model.FractionGlass:    lipgloss.Color("#22C55E"),
	model.FractionMetal:    lipgloss.Color("#CBD5E1"),
}

type styleWrapper struct {
	style lipgloss.Style
}

func (s styleWrapper) Render(str string) string {
	return s.style.Render(str)
}

// Bold returns a copy with bold toggled.
func (s styleWrapper) Bold(v bool) styleWrapper {
	return styleWrapper{s.style.Bold(v)}
}

var (
	Bold      = styleWrapper{lipgloss.NewStyle().Bold(true)}
	Dim       = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim)}
	Muted     = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextMute)}
	Success   = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	Warning   = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
	Error     = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	Primary   = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary)}
	Secondary = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	Highlight = styleWrapper{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}

	Title         = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)}
	SectionHeader = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)}
)

// GetCheckMark returns a styled check mark
func GetCheckMark() string { return Success.Render("✓") }

// GetCrossMark returns a styled cross mark
func GetCrossMark() string { return Error.Render("✗") }

// GetWarnMark returns a styled warning mark
func GetWarnMark() string { return Warning.Render("⚠") }

type boxWrapper struct {
	style lipgloss.Style
}

func (b boxWrapper) Render(str string) string {
	return b.style.Render(str)
}

var (
	Box = boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)}

	SuccessBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)}
)

// Step styles used by Workflow.
var (
	StepPending  = styleWrapper{lipgloss.NewStyle().Foreground(ColorMuted)}
	StepRunning  = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	StepComplete = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	StepFailed   = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	StepSkipped  = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
)

// FractionColor is the bin color of f; Other fractions use the highlight color.
func FractionColor(f model.Fraction) color.Color {
	if c, ok := fractionColors[f.Kind]; ok {
		return c
	}
	return ColorHighlight
}

// FractionStyle renders a fraction label in its bin color.
func FractionStyle(f model.Fraction) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(FractionColor(f)).Bold(true)
}

// FormatKeyValue formats a key-value pair with styling
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FangColorScheme returns a Fang color scheme based on the application's color palette
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#2F2E36")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is the ASCII art banner for the application
const BannerASCII = `
 _                         _ _
| |_ ___  _ __  _ __   ___| (_)
| __/ _ \| '_ \| '_ \ / _ \ | |
| || (_) | | | | | | |  __/ | |
 \__\___/|_| |_|_| |_|\___|_|_|
`

// RenderBanner renders the banner in the primary color.
func RenderBanner(banner string) string {
	return Primary.Render(banner)
}
