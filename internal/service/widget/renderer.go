package widget

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"GoldTracker/internal/domain/models"
)

const DefaultScriptBaseURL = "https://s3.tradingview.com/external-embedding"

// ScriptRenderer implements repository.Renderer by inserting a remote widget
// script, configured through its inline JSON payload, into a Document container.
type ScriptRenderer struct {
	doc     *Document
	baseURL string
}

func NewScriptRenderer(doc *Document, baseURL string) *ScriptRenderer {
	if baseURL == "" {
		baseURL = DefaultScriptBaseURL
	}
	return &ScriptRenderer{doc: doc, baseURL: strings.TrimRight(baseURL, "/")}
}

// Render clears the container and inserts the widget script.
// It returns models.ErrUnknownContainer when the container is not in the document.
func (r *ScriptRenderer) Render(cfg models.WidgetConfig, container string) error {
	if !r.doc.Exists(container) {
		return fmt.Errorf("render %s: %w", container, models.ErrUnknownContainer)
	}
	tag, err := r.ScriptTag(cfg)
	if err != nil {
		return err
	}
	if !r.doc.Replace(container, tag) {
		return fmt.Errorf("render %s: %w", container, models.ErrUnknownContainer)
	}
	return nil
}

// Teardown empties the container; missing containers are ignored.
func (r *ScriptRenderer) Teardown(container string) {
	r.doc.Clear(container)
}

// ScriptURL returns the remote script for a widget kind.
func (r *ScriptRenderer) ScriptURL(kind models.WidgetKind) string {
	return r.baseURL + "/embed-widget-" + string(kind) + ".js"
}

// ScriptTag builds the script element carrying the widget payload.
func (r *ScriptRenderer) ScriptTag(cfg models.WidgetConfig) (string, error) {
	payload, err := Payload(cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<script type="text/javascript" src="%s" async>%s</script>`,
		html.EscapeString(r.ScriptURL(cfg.Kind)), payload), nil
}

type advancedChartPayload struct {
	Autosize         bool   `json:"autosize"`
	Symbol           string `json:"symbol"`
	Interval         string `json:"interval"`
	Timezone         string `json:"timezone"`
	Theme            string `json:"theme"`
	Style            string `json:"style"`
	Locale           string `json:"locale"`
	ToolbarBg        string `json:"toolbar_bg"`
	EnablePublishing bool   `json:"enable_publishing"`
	HideTopToolbar   bool   `json:"hide_top_toolbar"`
	HideLegend       bool   `json:"hide_legend"`
	SaveImage        bool   `json:"save_image"`
	Width            any    `json:"width"`
	Height           any    `json:"height"`
	BackgroundColor  string `json:"backgroundColor"`
	GridColor        string `json:"gridColor"`
}

type technicalAnalysisPayload struct {
	Interval         string `json:"interval"`
	Width            any    `json:"width"`
	IsTransparent    bool   `json:"isTransparent"`
	Height           any    `json:"height"`
	Symbol           string `json:"symbol"`
	ShowIntervalTabs bool   `json:"showIntervalTabs"`
	Locale           string `json:"locale"`
	ColorTheme       string `json:"colorTheme"`
}

// Payload serializes the widget options in the shape the remote script expects.
func Payload(cfg models.WidgetConfig) ([]byte, error) {
	cfg = cfg.Effective()
	var v any
	switch cfg.Kind {
	case models.WidgetAdvancedChart:
		v = advancedChartPayload{
			Symbol:           cfg.Symbol,
			Interval:         cfg.Interval,
			Timezone:         "Etc/UTC",
			Theme:            cfg.Theme,
			Style:            cfg.Style,
			Locale:           cfg.Locale,
			ToolbarBg:        cfg.ToolbarBg,
			EnablePublishing: cfg.EnablePublishing,
			HideTopToolbar:   cfg.HideTopToolbar,
			HideLegend:       cfg.HideLegend,
			SaveImage:        cfg.SaveImage,
			Width:            sizeValue(cfg.Width),
			Height:           sizeValue(cfg.Height),
			BackgroundColor:  "#0A0A0B",
			GridColor:        "#1A1A1B",
		}
	case models.WidgetTechnicalAnalysis:
		v = technicalAnalysisPayload{
			Interval:         cfg.Interval,
			Width:            sizeValue(cfg.Width),
			Height:           sizeValue(cfg.Height),
			Symbol:           cfg.Symbol,
			ShowIntervalTabs: true,
			Locale:           cfg.Locale,
			ColorTheme:       cfg.Theme,
		}
	default:
		return nil, fmt.Errorf("unknown widget kind %q", cfg.Kind)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal widget payload: %w", err)
	}
	return b, nil
}

// sizeValue keeps pixel counts numeric and CSS sizes as strings.
func sizeValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
