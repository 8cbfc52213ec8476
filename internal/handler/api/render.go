package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"GoldTracker/internal/domain/models"
	"GoldTracker/internal/service/widget"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is what the dashboard template renders.
type PageData struct {
	State   models.DashboardState
	Widgets map[string]template.HTML
}

// NewPageData snapshots the widget containers of doc next to the state.
func NewPageData(state models.DashboardState, doc *widget.Document) *PageData {
	pd := &PageData{State: state, Widgets: map[string]template.HTML{}}
	for _, id := range doc.Containers() {
		markup, _ := doc.Content(id)
		// markup comes from the script renderer, which JSON-encodes every payload
		pd.Widgets[id] = template.HTML(fmt.Sprintf(`<div id="%s">%s</div>`, template.HTMLEscapeString(id), markup))
	}
	return pd
}

// TemplateRenderer renders the embedded page templates for echo.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{tmpl: t}, nil
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price": func(v float64) string {
			return "$" + commaFormat(decimal.NewFromFloat(v).StringFixed(2))
		},
		"tonnes": func(v float64) string {
			return commaFormat(decimal.NewFromFloat(v).StringFixed(1))
		},
		"signed": func(v float64) string {
			s := decimal.NewFromFloat(v).StringFixed(2)
			if v >= 0 {
				return "+" + s
			}
			return s
		},
		"trend": func(v float64) string {
			if v >= 0 {
				return "up"
			}
			return "down"
		},
		"trendInt": func(v int) string {
			switch {
			case v > 0:
				return "up"
			case v < 0:
				return "down"
			}
			return "muted"
		},
		"title": func(t models.Tab) string {
			s := string(t)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"sparkline": sparkline,
	}
}

// sparkline maps a series onto an SVG polyline points attribute.
func sparkline(series []models.ChartPoint, width, height float64) string {
	if len(series) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range series {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	step := 0.0
	if len(series) > 1 {
		step = width / float64(len(series)-1)
	}

	var b strings.Builder
	for i, p := range series {
		if i > 0 {
			b.WriteByte(' ')
		}
		y := height - (p.Price-lo)/span*height
		fmt.Fprintf(&b, "%.1f,%.1f", float64(i)*step, y)
	}
	return b.String()
}

// commaFormat inserts thousands separators into a fixed-point number.
func commaFormat(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
