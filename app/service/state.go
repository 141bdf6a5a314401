package service

import (
	"fmt"
	"strings"
)

type BillingPeriod int32

const (
	BillingPeriodMonthly BillingPeriod = 0
	BillingPeriodYearly  BillingPeriod = 1
)

func (p BillingPeriod) String() string {
	if p == BillingPeriodYearly {
		return "yearly"
	}
	return "monthly"
}

func (p BillingPeriod) Label() string {
	if p == BillingPeriodYearly {
		return "Yearly"
	}
	return "Monthly"
}

// Option is the selector value that chooses this period.
func (p BillingPeriod) Option() string {
	if p == BillingPeriodYearly {
		return "1"
	}
	return "0"
}

// ParseBillingOption maps a selector option to a billing period. The selector
// offers "0"/"monthly" and "1"/"yearly"; anything else is rejected.
func ParseBillingOption(value string) (BillingPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "monthly":
		return BillingPeriodMonthly, nil
	case "1", "yearly":
		return BillingPeriodYearly, nil
	default:
		return BillingPeriodMonthly, fmt.Errorf("%w: %q", ErrInvalidBillingPeriod, value)
	}
}

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func ParseTheme(value string) (Theme, error) {
	switch theme := Theme(strings.ToLower(strings.TrimSpace(value))); theme {
	case ThemeSystem, ThemeLight, ThemeDark:
		return theme, nil
	default:
		return ThemeSystem, fmt.Errorf("%w: %q", ErrInvalidTheme, value)
	}
}

// PageState is everything a page render depends on besides the catalog.
type PageState struct {
	Period BillingPeriod
	Theme  Theme
}

func InitialPageState(defaultTheme Theme) PageState {
	return PageState{Period: BillingPeriodMonthly, Theme: defaultTheme}
}

type PageAction interface {
	isPageAction()
}

type SelectPeriod struct {
	Period BillingPeriod
}

type SelectTheme struct {
	Theme Theme
}

func (SelectPeriod) isPageAction() {}
func (SelectTheme) isPageAction()  {}

// Reduce applies a user action to the page state and returns the new state.
func Reduce(state PageState, action PageAction) PageState {
	switch a := action.(type) {
	case SelectPeriod:
		state.Period = a.Period
	case SelectTheme:
		state.Theme = a.Theme
	}
	return state
}
