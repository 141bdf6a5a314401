package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-pricing/app/entity"
	"github.com/vibast-solutions/ms-go-pricing/app/factory"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/plans.yaml
var embeddedCatalog []byte

var ErrInvalidCatalog = errors.New("invalid plan catalog")

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

type catalogDocument struct {
	Plans []planRecord `yaml:"plans"`
}

type planRecord struct {
	Slug         string   `yaml:"slug"`
	Title        string   `yaml:"title"`
	MonthlyPrice *float64 `yaml:"monthly_price"`
	YearlyPrice  *float64 `yaml:"yearly_price"`
	Description  string   `yaml:"description"`
	Features     []string `yaml:"features"`
	ActionLabel  string   `yaml:"action_label"`
	ActionLink   *string  `yaml:"action_link"`
	Popular      bool     `yaml:"popular"`
	Exclusive    bool     `yaml:"exclusive"`
}

// PlanRepository serves the plan catalog. The catalog is parsed once and
// never changes afterwards; every read hands out copies.
type PlanRepository struct {
	plans  []*entity.Plan
	bySlug map[string]*entity.Plan
}

func NewEmbeddedPlanRepository() (*PlanRepository, error) {
	return NewPlanRepositoryFromYAML(embeddedCatalog)
}

func NewPlanRepositoryFromFile(path string) (*PlanRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return NewPlanRepositoryFromYAML(data)
}

func NewPlanRepositoryFromYAML(data []byte) (*PlanRepository, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(doc.Plans) == 0 {
		return nil, fmt.Errorf("%w: no plans defined", ErrInvalidCatalog)
	}

	logger := factory.NewModuleLogger("plan-repository")
	repo := &PlanRepository{
		plans:  make([]*entity.Plan, 0, len(doc.Plans)),
		bySlug: make(map[string]*entity.Plan, len(doc.Plans)),
	}
	for i, record := range doc.Plans {
		plan, err := record.toEntity(logger)
		if err != nil {
			return nil, fmt.Errorf("%w: plan #%d: %v", ErrInvalidCatalog, i+1, err)
		}
		if _, exists := repo.bySlug[plan.Slug]; exists {
			return nil, fmt.Errorf("%w: duplicate plan slug %q", ErrInvalidCatalog, plan.Slug)
		}
		repo.plans = append(repo.plans, plan)
		repo.bySlug[plan.Slug] = plan
	}

	return repo, nil
}

// List returns the catalog in display order.
func (r *PlanRepository) List(_ context.Context) ([]*entity.Plan, error) {
	result := make([]*entity.Plan, 0, len(r.plans))
	for _, plan := range r.plans {
		result = append(result, clonePlan(plan))
	}
	return result, nil
}

func (r *PlanRepository) FindBySlug(_ context.Context, slug string) (*entity.Plan, error) {
	plan, ok := r.bySlug[slug]
	if !ok {
		return nil, nil
	}
	return clonePlan(plan), nil
}

func (rec planRecord) toEntity(logger logrus.FieldLogger) (*entity.Plan, error) {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(rec.ActionLabel) == "" {
		return nil, fmt.Errorf("plan %q: action_label is required", title)
	}

	slug := strings.TrimSpace(rec.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, fmt.Errorf("plan %q: cannot derive slug", title)
	}

	seen := make(map[string]struct{}, len(rec.Features))
	for _, feature := range rec.Features {
		if _, dup := seen[feature]; dup {
			return nil, fmt.Errorf("plan %q: duplicate feature %q", title, feature)
		}
		seen[feature] = struct{}{}
	}

	var pricing entity.Pricing
	switch {
	case rec.MonthlyPrice != nil && rec.YearlyPrice != nil:
		pricing = entity.MonthlyYearlyPricing{Monthly: *rec.MonthlyPrice, Yearly: *rec.YearlyPrice}
	case rec.MonthlyPrice != nil:
		pricing = entity.MonthlyPricing{Monthly: *rec.MonthlyPrice}
	default:
		if rec.YearlyPrice != nil {
			logger.WithField("plan", slug).Warn("yearly_price without monthly_price is ignored; plan shows custom pricing")
		}
		pricing = entity.CustomPricing{}
	}

	actionLink := rec.ActionLink
	if actionLink != nil && strings.TrimSpace(*actionLink) == "" {
		actionLink = nil
	}

	return &entity.Plan{
		Slug:        slug,
		Title:       title,
		Pricing:     pricing,
		Description: rec.Description,
		Features:    append([]string(nil), rec.Features...),
		ActionLabel: rec.ActionLabel,
		ActionLink:  actionLink,
		Popular:     rec.Popular,
		Exclusive:   rec.Exclusive,
	}, nil
}

// Slugify lower-cases a title and joins its alphanumeric runs with dashes.
func Slugify(title string) string {
	return strings.Trim(slugInvalidChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

func clonePlan(plan *entity.Plan) *entity.Plan {
	cloned := *plan
	cloned.Features = append([]string(nil), plan.Features...)
	if plan.ActionLink != nil {
		link := *plan.ActionLink
		cloned.ActionLink = &link
	}
	return &cloned
}
