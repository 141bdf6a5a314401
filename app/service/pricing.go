package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vibast-solutions/ms-go-pricing/app/entity"
	"github.com/vibast-solutions/ms-go-pricing/app/payment"
)

const (
	CustomPriceText = "Custom"
	SuffixMonthly   = "/month"
	SuffixYearly    = "/year"
)

type planRepository interface {
	List(ctx context.Context) ([]*entity.Plan, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Plan, error)
}

// PlanCard is the display form of one plan for a billing period.
type PlanCard struct {
	Slug        string
	Title       string
	Description string
	Features    []string
	// Price is nil for custom pricing.
	Price       *float64
	PriceText   string
	Suffix      string
	Savings     *float64
	SavingsText string
	Popular     bool
	Exclusive   bool
	ActionLabel string
	Action      payment.Action
}

func (c PlanCard) HasSavings() bool {
	return c.Savings != nil
}

type PricingService struct {
	planRepo planRepository
}

func NewPricingService(planRepo planRepository) *PricingService {
	return &PricingService{planRepo: planRepo}
}

func (s *PricingService) Catalog(ctx context.Context) ([]*entity.Plan, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// Cards renders every plan in catalog order.
func (s *PricingService) Cards(ctx context.Context, period BillingPeriod) ([]PlanCard, error) {
	plans, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]PlanCard, 0, len(plans))
	for _, plan := range plans {
		cards = append(cards, Card(plan, period))
	}
	return cards, nil
}

func (s *PricingService) Plan(ctx context.Context, slug string) (*entity.Plan, error) {
	plan, err := s.planRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find plan %q: %w", slug, err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// Card derives what a plan shows for the given period.
//
// Yearly pricing is shown only when the plan has both prices; a monthly-only
// plan keeps its monthly price under Yearly, and a custom plan never shows a
// price.
func Card(plan *entity.Plan, period BillingPeriod) PlanCard {
	card := PlanCard{
		Slug:        plan.Slug,
		Title:       plan.Title,
		Description: plan.Description,
		Features:    append([]string(nil), plan.Features...),
		Popular:     plan.Popular,
		Exclusive:   plan.Exclusive,
		ActionLabel: plan.ActionLabel,
		Action:      payment.Resolve(plan),
	}

	switch pricing := plan.Pricing.(type) {
	case entity.MonthlyYearlyPricing:
		if period == BillingPeriodYearly {
			savings := yearlySavings(pricing.Monthly, pricing.Yearly)
			amount := savings.InexactFloat64()
			card.setPrice(pricing.Yearly, SuffixYearly)
			card.Savings = &amount
			card.SavingsText = "Save $" + savings.String()
		} else {
			card.setPrice(pricing.Monthly, SuffixMonthly)
		}
	case entity.MonthlyPricing:
		card.setPrice(pricing.Monthly, SuffixMonthly)
	case entity.CustomPricing, nil:
		card.PriceText = CustomPriceText
	default:
		panic(fmt.Sprintf("unhandled pricing %T", plan.Pricing))
	}

	return card
}

func (c *PlanCard) setPrice(amount float64, suffix string) {
	c.Price = &amount
	c.PriceText = FormatMoney(amount)
	c.Suffix = suffix
}

// yearlySavings computes monthly*12 - yearly exactly, in decimal. Not clamped.
func yearlySavings(monthly, yearly float64) decimal.Decimal {
	return decimal.NewFromFloat(monthly).Mul(decimal.NewFromInt(12)).Sub(decimal.NewFromFloat(yearly))
}

// FormatMoney renders a dollar amount with the shortest decimal form that
// round-trips, e.g. "$750", "$12.5", "$0.125", "$-5". No rounding and no
// thousands separators.
func FormatMoney(amount float64) string {
	if amount == 0 {
		// negative zero
		amount = 0
	}
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
