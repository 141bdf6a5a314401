package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/vibast-solutions/ms-go-pricing/app/service"
	"github.com/vibast-solutions/ms-go-pricing/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

const pageTemplate = "page.html"

// PageData is everything the page template reads.
type PageData struct {
	Title       string
	Description string
	Heading     string
	Subheading  string
	Period      service.BillingPeriod
	Theme       service.Theme
	Periods     []service.BillingPeriod
	Themes      []service.Theme
	Cards       []service.PlanCard
}

func NewPageData(page config.PageConfig, state service.PageState, cards []service.PlanCard) PageData {
	return PageData{
		Title:       page.Title,
		Description: page.Description,
		Heading:     page.Heading,
		Subheading:  page.Subheading,
		Period:      state.Period,
		Theme:       state.Theme,
		Periods:     []service.BillingPeriod{service.BillingPeriodMonthly, service.BillingPeriodYearly},
		Themes:      []service.Theme{service.ThemeLight, service.ThemeDark, service.ThemeSystem},
		Cards:       cards,
	}
}

type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(templatesFS, "templates/"+pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{page: page}, nil
}

func (r *Renderer) Render(w io.Writer, data PageData) error {
	return r.page.ExecuteTemplate(w, pageTemplate, data)
}

// RenderBytes renders into memory so a failed render never leaves a partial
// response behind.
func (r *Renderer) RenderBytes(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
