package models

// WidgetKind selects the remote script and payload shape.
type WidgetKind string

const (
	WidgetAdvancedChart     WidgetKind = "advanced-chart"
	WidgetTechnicalAnalysis WidgetKind = "technical-analysis"
)

// The technical-analysis widget always renders these; its payload takes no
// interval or locale from the config.
const (
	TechnicalAnalysisInterval = "1m"
	TechnicalAnalysisLocale   = "en"
)

// WidgetConfig is a flat record of embedder options. Width and Height are CSS
// sizes ("100%") or pixel counts ("500").
type WidgetConfig struct {
	Kind             WidgetKind `json:"kind" validate:"required,oneof=advanced-chart technical-analysis"`
	Symbol           string     `json:"symbol" validate:"required,max=64"`
	Interval         string     `json:"interval" default:"1H" validate:"max=8"`
	Theme            string     `json:"theme" default:"dark" validate:"oneof=dark light"`
	Style            string     `json:"style" default:"1" validate:"max=4"`
	Locale           string     `json:"locale" default:"en" validate:"max=8"`
	ToolbarBg        string     `json:"toolbarBg" default:"#0A0A0B" validate:"max=16"`
	EnablePublishing bool       `json:"enablePublishing"`
	HideTopToolbar   bool       `json:"hideTopToolbar"`
	HideLegend       bool       `json:"hideLegend"`
	SaveImage        bool       `json:"saveImage"`
	Width            string     `json:"width" default:"100%" validate:"max=16"`
	Height           string     `json:"height" default:"400" validate:"max=16"`
	ContainerID      string     `json:"containerId" param:"container" validate:"required,max=64"`
}

// Effective returns the config as the widget kind consumes it. Fields the
// kind's payload ignores are reset, so two configs that render the same
// script compare equal.
func (c WidgetConfig) Effective() WidgetConfig {
	if c.Kind != WidgetTechnicalAnalysis {
		return c
	}
	c.Interval = TechnicalAnalysisInterval
	c.Locale = TechnicalAnalysisLocale
	c.Style = ""
	c.ToolbarBg = ""
	c.EnablePublishing = false
	c.HideTopToolbar = false
	c.HideLegend = false
	c.SaveImage = false
	return c
}
