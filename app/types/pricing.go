package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
)

const (
	PeriodQueryParam = "period"
	ThemeCookieName  = "theme"
	ThemeFormField   = "theme"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type PricingPageRequest struct {
	Period string
	Theme  string
}

func NewPricingPageRequestFromContext(ctx echo.Context) (*PricingPageRequest, error) {
	req := &PricingPageRequest{
		Period: strings.TrimSpace(ctx.QueryParam(PeriodQueryParam)),
	}
	if cookie, err := ctx.Cookie(ThemeCookieName); err == nil {
		req.Theme = strings.TrimSpace(cookie.Value)
	}
	return req, nil
}

func (r *PricingPageRequest) Validate() error {
	if r.Period == "" {
		return nil
	}
	_, err := service.ParseBillingOption(r.Period)
	return err
}

// State builds the page state from the initial state and the visitor's
// selections. An unreadable theme cookie is ignored.
func (r *PricingPageRequest) State(defaultTheme service.Theme) service.PageState {
	state := service.InitialPageState(defaultTheme)
	if r.Period != "" {
		if period, err := service.ParseBillingOption(r.Period); err == nil {
			state = service.Reduce(state, service.SelectPeriod{Period: period})
		}
	}
	if r.Theme != "" {
		if theme, err := service.ParseTheme(r.Theme); err == nil {
			state = service.Reduce(state, service.SelectTheme{Theme: theme})
		}
	}
	return state
}

type PlanActionRequest struct {
	Slug string
}

func NewPlanActionRequestFromContext(ctx echo.Context) (*PlanActionRequest, error) {
	return &PlanActionRequest{Slug: strings.TrimSpace(ctx.Param("slug"))}, nil
}

func (r *PlanActionRequest) Validate() error {
	if r.Slug == "" {
		return errors.New("slug is required")
	}
	return nil
}

type SetThemeRequest struct {
	Theme  string
	Period string
}

func NewSetThemeRequestFromContext(ctx echo.Context) (*SetThemeRequest, error) {
	return &SetThemeRequest{
		Theme:  strings.TrimSpace(ctx.FormValue(ThemeFormField)),
		Period: strings.TrimSpace(ctx.FormValue(PeriodQueryParam)),
	}, nil
}

func (r *SetThemeRequest) Validate() error {
	if r.Theme == "" {
		return errors.New("theme is required")
	}
	if _, err := service.ParseTheme(r.Theme); err != nil {
		return err
	}
	if r.Period != "" {
		if _, err := service.ParseBillingOption(r.Period); err != nil {
			return err
		}
	}
	return nil
}
