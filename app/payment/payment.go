package payment

import "github.com/vibast-solutions/ms-go-pricing/app/entity"

type ActionType string

const (
	// ActionTypeRedirect sends the visitor to an external checkout.
	ActionTypeRedirect ActionType = "redirect"
	// ActionTypeNone is an inert control kept for layout.
	ActionTypeNone ActionType = "none"
)

// Action is what activating a plan's purchase control does. Checkout itself
// happens entirely on the external page.
type Action struct {
	Type ActionType
	URL  string
}

func (a Action) Navigates() bool {
	return a.Type == ActionTypeRedirect
}

// Resolve returns the action for a plan. The link is opaque and passed
// through unchanged.
func Resolve(plan *entity.Plan) Action {
	if plan == nil || plan.ActionLink == nil || *plan.ActionLink == "" {
		return Action{Type: ActionTypeNone}
	}
	return Action{Type: ActionTypeRedirect, URL: *plan.ActionLink}
}
