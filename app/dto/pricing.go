package dto

type PlanActionResponse struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

type PlanCardResponse struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Features    []string           `json:"features"`
	Price       *float64           `json:"price,omitempty"`
	PriceText   string             `json:"price_text"`
	Suffix      string             `json:"suffix,omitempty"`
	Savings     *float64           `json:"savings,omitempty"`
	SavingsText string             `json:"savings_text,omitempty"`
	Popular     bool               `json:"popular"`
	Exclusive   bool               `json:"exclusive"`
	ActionLabel string             `json:"action_label"`
	Action      PlanActionResponse `json:"action"`
}

type PricingPageResponse struct {
	Period string             `json:"period"`
	Plans  []PlanCardResponse `json:"plans"`
}
