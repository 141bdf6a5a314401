package controller

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-pricing/app/cache"
	"github.com/vibast-solutions/ms-go-pricing/app/factory"
	"github.com/vibast-solutions/ms-go-pricing/app/mapper"
	"github.com/vibast-solutions/ms-go-pricing/app/payment"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
	"github.com/vibast-solutions/ms-go-pricing/app/types"
	"github.com/vibast-solutions/ms-go-pricing/app/view"
	"github.com/vibast-solutions/ms-go-pricing/config"
)

const themeCookieMaxAge = 365 * 24 * time.Hour

type pricingMetrics interface {
	RecordPageRender(format, period string)
	RecordPlanAction(plan, actionType string)
}

type PricingController struct {
	pricingService *service.PricingService
	renderer       *view.Renderer
	pageCache      *cache.PageCache
	metrics        pricingMetrics
	page           config.PageConfig
	defaultTheme   service.Theme
	logger         logrus.FieldLogger
}

func NewPricingController(
	pricingService *service.PricingService,
	renderer *view.Renderer,
	pageCache *cache.PageCache,
	metrics pricingMetrics,
	page config.PageConfig,
	defaultTheme service.Theme,
) *PricingController {
	return &PricingController{
		pricingService: pricingService,
		renderer:       renderer,
		pageCache:      pageCache,
		metrics:        metrics,
		page:           page,
		defaultTheme:   defaultTheme,
		logger:         factory.NewModuleLogger("pricing-controller"),
	}
}

func (c *PricingController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *PricingController) Page(ctx echo.Context) error {
	req, err := types.NewPricingPageRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	state := req.State(c.defaultTheme)
	page, err := c.pageCache.GetOrRender(state, func() ([]byte, error) {
		cards, err := c.pricingService.Cards(ctx.Request().Context(), state.Period)
		if err != nil {
			return nil, err
		}
		return c.renderer.RenderBytes(view.NewPageData(c.page, state, cards))
	})
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Render pricing page failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	c.metrics.RecordPageRender("html", state.Period.String())
	ctx.Response().Header().Set(echo.HeaderVary, echo.HeaderCookie)
	return ctx.HTMLBlob(http.StatusOK, page)
}

func (c *PricingController) ListPlans(ctx echo.Context) error {
	req, err := types.NewPricingPageRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	state := req.State(c.defaultTheme)
	cards, err := c.pricingService.Cards(ctx.Request().Context(), state.Period)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List plans failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	c.metrics.RecordPageRender("json", state.Period.String())
	return ctx.JSON(http.StatusOK, mapper.PricingPageToResponse(state.Period, cards))
}

// PlanAction activates a plan's purchase control: linked plans redirect to
// their external checkout, inert plans answer without navigating.
func (c *PricingController) PlanAction(ctx echo.Context) error {
	action, done, err := c.resolvePlanAction(ctx)
	if done {
		return err
	}
	if !action.Navigates() {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.Redirect(http.StatusFound, action.URL)
}

// PlanActionPing counts a click on a page link that already navigated to the
// checkout URL directly (the anchor's ping attribute).
func (c *PricingController) PlanActionPing(ctx echo.Context) error {
	if _, done, err := c.resolvePlanAction(ctx); done {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// resolvePlanAction records the action metric. done is true when a response
// has already been written.
func (c *PricingController) resolvePlanAction(ctx echo.Context) (payment.Action, bool, error) {
	req, err := types.NewPlanActionRequestFromContext(ctx)
	if err != nil {
		return payment.Action{}, true, c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return payment.Action{}, true, c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	plan, err := c.pricingService.Plan(ctx.Request().Context(), req.Slug)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return payment.Action{}, true, c.writeError(ctx, http.StatusNotFound, "plan not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Plan action failed")
		return payment.Action{}, true, c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	action := payment.Resolve(plan)
	c.metrics.RecordPlanAction(plan.Slug, string(action.Type))
	return action, false, nil
}

func (c *PricingController) SetTheme(ctx echo.Context) error {
	req, err := types.NewSetThemeRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	theme, _ := service.ParseTheme(req.Theme)
	ctx.SetCookie(&http.Cookie{
		Name:     types.ThemeCookieName,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	target := "/"
	if req.Period != "" {
		period, _ := service.ParseBillingOption(req.Period)
		target = "/?" + url.Values{types.PeriodQueryParam: {period.Option()}}.Encode()
	}
	return ctx.Redirect(http.StatusSeeOther, target)
}

func (c *PricingController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
