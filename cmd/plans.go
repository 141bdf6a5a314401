package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-pricing/app/mapper"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	cardWidth   = 34
)

var (
	plansPeriod string
	plansFormat string
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Print the plan cards for a billing period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := mustLoadConfig()
		pricingService := mustCreatePricingService(cfg)
		return printPlans(cmd.Context(), cmd.OutOrStdout(), pricingService, plansPeriod, plansFormat)
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)

	plansCmd.Flags().StringVar(&plansPeriod, "period", "monthly", "Billing period: monthly (0) or yearly (1)")
	plansCmd.Flags().StringVar(&plansFormat, "format", formatTable, "Output format: table or json")
}

func printPlans(ctx context.Context, out io.Writer, pricingService *service.PricingService, periodOption, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	period, err := service.ParseBillingOption(periodOption)
	if err != nil {
		return err
	}

	cards, err := pricingService.Cards(ctx, period)
	if err != nil {
		return err
	}
	logrus.WithField("period", period.String()).WithField("plans", len(cards)).Debug("plans_rendered")

	switch format {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(mapper.PricingPageToResponse(period, cards))
	case formatTable:
		_, err := fmt.Fprintln(out, renderCardsTable(cards))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1).
	Width(cardWidth)

var (
	popularCardStyle = cardStyle.BorderForeground(lipgloss.Color("211"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	priceStyle       = lipgloss.NewStyle().Bold(true)
	savingsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("216")).Padding(0, 1)
	featureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	checkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	actionStyle      = lipgloss.NewStyle().Underline(true)
)

func renderCardsTable(cards []service.PlanCard) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, renderCard(card))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCard(card service.PlanCard) string {
	var b strings.Builder

	header := titleStyle.Render(card.Title)
	if card.HasSavings() {
		header += "  " + savingsStyle.Render(card.SavingsText)
	}
	if card.Exclusive {
		header += " *"
	}
	b.WriteString(header + "\n")
	b.WriteString(priceStyle.Render(card.PriceText) + card.Suffix + "\n")
	if card.Description != "" {
		b.WriteString(card.Description + "\n")
	}
	b.WriteString("\n")
	for _, feature := range card.Features {
		b.WriteString(checkStyle.Render("✓") + " " + featureStyle.Render(feature) + "\n")
	}
	b.WriteString("\n")

	action := "[ " + card.ActionLabel + " ]"
	if card.Action.Navigates() {
		action += " " + actionStyle.Render(card.Action.URL)
	}
	b.WriteString(action)

	style := cardStyle
	if card.Popular {
		style = popularCardStyle
	}
	return style.Render(b.String())
}
