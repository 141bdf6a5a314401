package entity

// Pricing is the price shape of a plan. It is one of CustomPricing,
// MonthlyPricing or MonthlyYearlyPricing.
type Pricing interface {
	isPricing()
}

// CustomPricing marks a tier without a list price.
type CustomPricing struct{}

// MonthlyPricing is a tier sold only per month.
type MonthlyPricing struct {
	Monthly float64
}

// MonthlyYearlyPricing is a tier sold per month or per year.
type MonthlyYearlyPricing struct {
	Monthly float64
	Yearly  float64
}

func (CustomPricing) isPricing()        {}
func (MonthlyPricing) isPricing()       {}
func (MonthlyYearlyPricing) isPricing() {}

type Plan struct {
	Slug        string
	Title       string
	Pricing     Pricing
	Description string
	Features    []string
	ActionLabel string
	ActionLink  *string
	Popular     bool
	Exclusive   bool
}

// MonthlyPrice returns the monthly price when the plan has one.
func (p *Plan) MonthlyPrice() (float64, bool) {
	switch pricing := p.Pricing.(type) {
	case MonthlyPricing:
		return pricing.Monthly, true
	case MonthlyYearlyPricing:
		return pricing.Monthly, true
	default:
		return 0, false
	}
}

// YearlyPrice returns the yearly price when the plan has one.
func (p *Plan) YearlyPrice() (float64, bool) {
	if pricing, ok := p.Pricing.(MonthlyYearlyPricing); ok {
		return pricing.Yearly, true
	}
	return 0, false
}

func (p *Plan) HasYearlyOption() bool {
	_, ok := p.YearlyPrice()
	return ok
}
