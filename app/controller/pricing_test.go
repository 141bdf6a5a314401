package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-pricing/app/cache"
	"github.com/vibast-solutions/ms-go-pricing/app/dto"
	"github.com/vibast-solutions/ms-go-pricing/app/entity"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
	"github.com/vibast-solutions/ms-go-pricing/app/types"
	"github.com/vibast-solutions/ms-go-pricing/app/view"
	"github.com/vibast-solutions/ms-go-pricing/config"
)

type controllerPlanRepo struct {
	listFn       func(ctx context.Context) ([]*entity.Plan, error)
	findBySlugFn func(ctx context.Context, slug string) (*entity.Plan, error)
}

func (r *controllerPlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return testPlans(), nil
}

func (r *controllerPlanRepo) FindBySlug(ctx context.Context, slug string) (*entity.Plan, error) {
	if r.findBySlugFn != nil {
		return r.findBySlugFn(ctx, slug)
	}
	for _, plan := range testPlans() {
		if plan.Slug == slug {
			return plan, nil
		}
	}
	return nil, nil
}

type controllerMetrics struct {
	renders map[string]int
	actions map[string]int
}

func newControllerMetrics() *controllerMetrics {
	return &controllerMetrics{renders: map[string]int{}, actions: map[string]int{}}
}

func (m *controllerMetrics) RecordPageRender(format, period string) {
	m.renders[format+":"+period]++
}

func (m *controllerMetrics) RecordPlanAction(plan, actionType string) {
	m.actions[plan+":"+actionType]++
}

func testPlans() []*entity.Plan {
	proLink := "https://link.depay.com/1YXhcjWimEaEc7iLEYbdRs"
	return []*entity.Plan{
		{
			Slug:        "pro",
			Title:       "Pro",
			Pricing:     entity.MonthlyYearlyPricing{Monthly: 75, Yearly: 750},
			Description: "For serious traders who want daily premium signals.",
			Features:    []string{"Daily curated signals"},
			ActionLabel: "Purchase Now",
			ActionLink:  &proLink,
			Popular:     true,
		},
		{
			Slug:        "enterprise",
			Title:       "Enterprise",
			Pricing:     entity.CustomPricing{},
			ActionLabel: "Contact us",
		},
	}
}

func newControllerForTest(t *testing.T, repo *controllerPlanRepo, metrics *controllerMetrics) *PricingController {
	t.Helper()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	page := config.PageConfig{
		Title:       "VaeDeFi SmartSignals Pricing",
		Description: "Choose the signals that are right for you!",
		Heading:     "SmartSignal Pricing Plans",
		Subheading:  "Choose the signals that are right for you!",
	}
	return NewPricingController(
		service.NewPricingService(repo),
		renderer,
		cache.NewPageCache(8, time.Hour, nil),
		metrics,
		page,
		service.ThemeSystem,
	)
}

func TestHealth(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := ctrl.Health(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestPageDefaultsToMonthly(t *testing.T) {
	metrics := newControllerMetrics()
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, metrics)
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := ctrl.Page(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h3>$75</h3>") || !strings.Contains(body, "<span>/month</span>") {
		t.Fatalf("expected monthly pro price in page:\n%s", body)
	}
	if strings.Contains(body, "Save $") {
		t.Fatal("savings badge must not render under monthly")
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Fatalf("unexpected content type: %s", rec.Header().Get(echo.HeaderContentType))
	}
	if metrics.renders["html:monthly"] != 1 {
		t.Fatalf("expected html render metric, got %+v", metrics.renders)
	}
	if !strings.Contains(body, `href="https://link.depay.com/1YXhcjWimEaEc7iLEYbdRs"`) {
		t.Fatal("page must link to the checkout URL directly")
	}
}

func TestPageYearly(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()

	for _, option := range []string{"1", "yearly"} {
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/?period="+option, nil), rec)

		if err := ctrl.Page(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "<h3>$750</h3>") || !strings.Contains(body, "Save $150") {
			t.Fatalf("expected yearly pro price for option %q", option)
		}
		if !strings.Contains(body, "<h3>Custom</h3>") {
			t.Fatal("expected custom plan to keep custom price")
		}
	}
}

func TestPageUsesThemeCookie(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: types.ThemeCookieName, Value: "dark"})
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := ctrl.Page(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `class="theme-dark"`) {
		t.Fatal("expected dark theme class")
	}
}

func TestPageInvalidPeriod(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/?period=weekly", nil), rec)

	if err := ctrl.Page(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPageRepositoryFailure(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{listFn: func(context.Context) ([]*entity.Plan, error) {
		return nil, errors.New("boom")
	}}, newControllerMetrics())
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := ctrl.Page(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListPlansYearly(t *testing.T) {
	metrics := newControllerMetrics()
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, metrics)
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/plans?period=1", nil), rec)

	if err := ctrl.ListPlans(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.PricingPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Period != "yearly" || len(resp.Plans) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	pro := resp.Plans[0]
	if pro.PriceText != "$750" || pro.Suffix != "/year" || pro.SavingsText != "Save $150" {
		t.Fatalf("unexpected pro card: %+v", pro)
	}
	if pro.Savings == nil || *pro.Savings != 150 {
		t.Fatalf("unexpected savings: %v", pro.Savings)
	}
	if pro.Action.Type != "redirect" || pro.Action.URL != "https://link.depay.com/1YXhcjWimEaEc7iLEYbdRs" {
		t.Fatalf("unexpected action: %+v", pro.Action)
	}

	custom := resp.Plans[1]
	if custom.PriceText != "Custom" || custom.Suffix != "" || custom.Price != nil || custom.Savings != nil {
		t.Fatalf("unexpected custom card: %+v", custom)
	}
	if custom.Action.Type != "none" {
		t.Fatalf("expected inert action, got %+v", custom.Action)
	}
	if metrics.renders["json:yearly"] != 1 {
		t.Fatalf("expected json render metric, got %+v", metrics.renders)
	}
}

func TestListPlansInvalidPeriod(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/plans?period=3", nil), rec)

	if err := ctrl.ListPlans(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func planActionContext(e *echo.Echo, slug string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/plans/"+slug+"/action", nil), rec)
	ctx.SetParamNames("slug")
	ctx.SetParamValues(slug)
	return ctx, rec
}

func TestPlanActionRedirectsToExactLink(t *testing.T) {
	metrics := newControllerMetrics()
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, metrics)
	ctx, rec := planActionContext(echo.New(), "pro")

	if err := ctrl.PlanAction(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "https://link.depay.com/1YXhcjWimEaEc7iLEYbdRs" {
		t.Fatalf("unexpected location: %s", loc)
	}
	if metrics.actions["pro:redirect"] != 1 {
		t.Fatalf("expected action metric, got %+v", metrics.actions)
	}
}

func TestPlanActionInert(t *testing.T) {
	metrics := newControllerMetrics()
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, metrics)
	ctx, rec := planActionContext(echo.New(), "enterprise")

	if err := ctrl.PlanAction(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderLocation) != "" {
		t.Fatal("inert action must not navigate")
	}
	if metrics.actions["enterprise:none"] != 1 {
		t.Fatalf("expected action metric, got %+v", metrics.actions)
	}
}

func TestPlanActionNotFound(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	ctx, rec := planActionContext(echo.New(), "platinum")

	if err := ctrl.PlanAction(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlanActionRepositoryFailure(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{findBySlugFn: func(context.Context, string) (*entity.Plan, error) {
		return nil, errors.New("boom")
	}}, newControllerMetrics())
	ctx, rec := planActionContext(echo.New(), "pro")

	if err := ctrl.PlanAction(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestPlanActionPingCountsClick(t *testing.T) {
	metrics := newControllerMetrics()
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, metrics)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/plans/pro/action", strings.NewReader("PING")), rec)
	ctx.SetParamNames("slug")
	ctx.SetParamValues("pro")

	if err := ctrl.PlanActionPing(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderLocation) != "" {
		t.Fatal("ping must not redirect")
	}
	if metrics.actions["pro:redirect"] != 1 {
		t.Fatalf("expected action metric, got %+v", metrics.actions)
	}
}

func TestPlanActionPingNotFound(t *testing.T) {
	metrics := newControllerMetrics()
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, metrics)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/plans/platinum/action", nil), rec)
	ctx.SetParamNames("slug")
	ctx.SetParamValues("platinum")

	if err := ctrl.PlanActionPing(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(metrics.actions) != 0 {
		t.Fatalf("unexpected action metric: %+v", metrics.actions)
	}
}

func TestSetTheme(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	form := url.Values{"theme": {"dark"}, "period": {"yearly"}}
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := ctrl.SetTheme(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?period=1" {
		t.Fatalf("unexpected location: %s", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != types.ThemeCookieName || cookies[0].Value != "dark" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}

func TestSetThemeWithoutPeriod(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodPost, "/theme?theme=light", nil), rec)

	if err := ctrl.SetTheme(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestSetThemeInvalid(t *testing.T) {
	ctrl := newControllerForTest(t, &controllerPlanRepo{}, newControllerMetrics())
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodPost, "/theme?theme=sepia", nil), rec)

	if err := ctrl.SetTheme(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
