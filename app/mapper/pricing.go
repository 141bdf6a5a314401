package mapper

import (
	"github.com/vibast-solutions/ms-go-pricing/app/dto"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
)

func PlanCardToResponse(card service.PlanCard) dto.PlanCardResponse {
	features := card.Features
	if features == nil {
		features = []string{}
	}

	return dto.PlanCardResponse{
		Slug:        card.Slug,
		Title:       card.Title,
		Description: card.Description,
		Features:    features,
		Price:       card.Price,
		PriceText:   card.PriceText,
		Suffix:      card.Suffix,
		Savings:     card.Savings,
		SavingsText: card.SavingsText,
		Popular:     card.Popular,
		Exclusive:   card.Exclusive,
		ActionLabel: card.ActionLabel,
		Action: dto.PlanActionResponse{
			Type: string(card.Action.Type),
			URL:  card.Action.URL,
		},
	}
}

func PricingPageToResponse(period service.BillingPeriod, cards []service.PlanCard) *dto.PricingPageResponse {
	plans := make([]dto.PlanCardResponse, 0, len(cards))
	for _, card := range cards {
		plans = append(plans, PlanCardToResponse(card))
	}
	return &dto.PricingPageResponse{
		Period: period.String(),
		Plans:  plans,
	}
}
