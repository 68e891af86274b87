package domain

import (
	"strings"

	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TaxTreatment is the closed set of tax wrappers an asset can sit in.
type TaxTreatment string

const (
	TaxTreatmentPreTax     TaxTreatment = "pre_tax"
	TaxTreatmentRoth       TaxTreatment = "roth"
	TaxTreatmentTaxable    TaxTreatment = "taxable"
	TaxTreatmentRealEstate TaxTreatment = "real_estate"
)

// Valid reports whether t is one of the known treatments.
func (t TaxTreatment) Valid() bool {
	switch t {
	case TaxTreatmentPreTax, TaxTreatmentRoth, TaxTreatmentTaxable, TaxTreatmentRealEstate:
		return true
	default:
		return false
	}
}


// FilingStatus selects the federal bracket table.
type FilingStatus string

const (
	FilingStatusMarriedJoint FilingStatus = "married_joint"
	FilingStatusSingle       FilingStatus = "single"
)

// IncomeCategory attributes after-tax income to a reporting bucket.
type IncomeCategory string

const (
	IncomeSalary         IncomeCategory = "salary"
	IncomeRental         IncomeCategory = "rental"
	IncomeRoyalty        IncomeCategory = "royalty"
	IncomeSocialSecurity IncomeCategory = "social_security"
	IncomeOther          IncomeCategory = "other"
)

// Valid reports whether c is a known category. The empty category is valid and means "infer from name".
func (c IncomeCategory) Valid() bool {
	switch c {
	case "", IncomeSalary, IncomeRental, IncomeRoyalty, IncomeSocialSecurity, IncomeOther:
		return true
	default:
		return false
	}
}

// Passive reports whether income of this category counts toward the freedom year.
func (c IncomeCategory) Passive() bool {
	return c == IncomeRental || c == IncomeRoyalty || c == IncomeSocialSecurity
}

// Scenario holds every input of one projection.
type Scenario struct {
	CurrentYear             int                    `yaml:"current_year" json:"current_year"`
	CurrentAge              int                    `yaml:"current_age" json:"current_age"`
	TargetRetirementAge     int                    `yaml:"target_retirement_age" json:"target_retirement_age"`
	RetirementWithdrawalAge int                    `yaml:"retirement_withdrawal_age" json:"retirement_withdrawal_age"`
	GeneralInflation        decimal.Decimal        `yaml:"general_inflation" json:"general_inflation"`
	TaxFilingStatus         FilingStatus           `yaml:"tax_filing_status,omitempty" json:"tax_filing_status,omitempty"`
	Assets                  []AssetHolding         `yaml:"assets" json:"assets"`
	Inflows                 []Stream               `yaml:"inflows" json:"inflows"`
	Outflows                []Stream               `yaml:"outflows" json:"outflows"`
	OtherAssets             []OneTimeAssetAddition `yaml:"other_assets,omitempty" json:"other_assets,omitempty"`
	OneTimeExpenses         []OneTimeExpense       `yaml:"one_time_expenses,omitempty" json:"one_time_expenses,omitempty"`
}

// FilingStatusOrDefault returns the configured filing status, defaulting to married filing jointly.
func (s *Scenario) FilingStatusOrDefault() FilingStatus {
	if s.TaxFilingStatus == "" {
		return FilingStatusMarriedJoint
	}
	return s.TaxFilingStatus
}

// BirthYear approximates the birth year from the current year and age.
func (s *Scenario) BirthYear() int {
	return dateutil.BirthYear(s.CurrentYear, s.CurrentAge)
}

// Clone returns a deep copy so a run can never alias caller-owned slices.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Assets = make([]AssetHolding, len(s.Assets))
	for i, a := range s.Assets {
		c.Assets[i] = a.clone()
	}
	c.Inflows = cloneStreams(s.Inflows)
	c.Outflows = cloneStreams(s.Outflows)
	c.OtherAssets = make([]OneTimeAssetAddition, len(s.OtherAssets))
	for i, oa := range s.OtherAssets {
		c.OtherAssets[i] = oa.clone()
	}
	c.OneTimeExpenses = append([]OneTimeExpense(nil), s.OneTimeExpenses...)
	return &c
}

// AssetHolding is a single named account or property.
type AssetHolding struct {
	Name         string           `yaml:"name" json:"name"`
	Balance      decimal.Decimal  `yaml:"value" json:"value"`
	GrowthRate   decimal.Decimal  `yaml:"growth_rate" json:"growth_rate"`
	TaxTreatment TaxTreatment     `yaml:"tax_treatment" json:"tax_treatment"`
	CostBasis    *decimal.Decimal `yaml:"cost_basis,omitempty" json:"cost_basis,omitempty"`
	Volatile     *bool            `yaml:"volatile,omitempty" json:"volatile,omitempty"`
	PrimaryHome  *bool            `yaml:"primary_home,omitempty" json:"primary_home,omitempty"`
}

var volatileKeywords = []string{"bitcoin", "crypto", "btc", "ethereum"}

// IsVolatile reports whether a taxable holding is drawn after the plain brokerage tier.
func (a AssetHolding) IsVolatile() bool {
	if a.TaxTreatment != TaxTreatmentTaxable {
		return false
	}
	if a.Volatile != nil {
		return *a.Volatile
	}
	name := strings.ToLower(a.Name)
	for _, kw := range volatileKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// IsPrimaryHome reports whether a real estate holding is the household residence.
func (a AssetHolding) IsPrimaryHome() bool {
	if a.TaxTreatment != TaxTreatmentRealEstate {
		return false
	}
	if a.PrimaryHome != nil {
		return *a.PrimaryHome
	}
	return strings.Contains(strings.ToLower(a.Name), "primary")
}

func (a AssetHolding) clone() AssetHolding {
	c := a
	if a.CostBasis != nil {
		v := *a.CostBasis
		c.CostBasis = &v
	}
	if a.Volatile != nil {
		v := *a.Volatile
		c.Volatile = &v
	}
	if a.PrimaryHome != nil {
		v := *a.PrimaryHome
		c.PrimaryHome = &v
	}
	return c
}

// Stream is a recurring inflow or outflow active over an inclusive year range.
// A nil GrowthRate means the stream tracks general inflation.
type Stream struct {
	Name       string           `yaml:"name" json:"name"`
	Amount     decimal.Decimal  `yaml:"amount" json:"amount"`
	StartYear  int              `yaml:"start_year" json:"start_year"`
	EndYear    int              `yaml:"end_year" json:"end_year"`
	GrowthRate *decimal.Decimal `yaml:"growth_rate,omitempty" json:"growth_rate,omitempty"`
	Category   IncomeCategory   `yaml:"category,omitempty" json:"category,omitempty"`
}

// ActiveIn reports whether the stream contributes in year.
func (s Stream) ActiveIn(year int) bool {
	return year >= s.StartYear && year <= s.EndYear
}

// InflationLinked reports whether the stream grows with realized inflation.
func (s Stream) InflationLinked() bool {
	return s.GrowthRate == nil
}

// ResolvedCategory returns the explicit category or one inferred from the stream name.
func (s Stream) ResolvedCategory() IncomeCategory {
	if s.Category != "" {
		return s.Category
	}
	name := strings.ToLower(s.Name)
	switch {
	case strings.Contains(name, "w2"), strings.Contains(name, "salary"),
		strings.Contains(name, "wage"), strings.Contains(name, "bonus"):
		return IncomeSalary
	case strings.Contains(name, "rental"):
		return IncomeRental
	case strings.Contains(name, "royalt"):
		return IncomeRoyalty
	case strings.Contains(name, "social"):
		return IncomeSocialSecurity
	default:
		return IncomeOther
	}
}

func cloneStreams(in []Stream) []Stream {
	out := make([]Stream, len(in))
	for i, s := range in {
		out[i] = s
		if s.GrowthRate != nil {
			g := *s.GrowthRate
			out[i].GrowthRate = &g
		}
	}
	return out
}

// OneTimeAssetAddition credits (or creates) a holding in a single year, e.g. an inheritance.
type OneTimeAssetAddition struct {
	Name         string           `yaml:"name" json:"name"`
	Value        decimal.Decimal  `yaml:"value" json:"value"`
	AddYear      int              `yaml:"add_year" json:"add_year"`
	Target       string           `yaml:"target,omitempty" json:"target,omitempty"`
	TaxTreatment TaxTreatment     `yaml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	GrowthRate   *decimal.Decimal `yaml:"growth_rate,omitempty" json:"growth_rate,omitempty"`
}

func (oa OneTimeAssetAddition) clone() OneTimeAssetAddition {
	c := oa
	if oa.GrowthRate != nil {
		g := *oa.GrowthRate
		c.GrowthRate = &g
	}
	return c
}

// OneTimeExpense is a non-recurring outflow. When AddToPrimaryHome is set the amount
// becomes home equity instead of spending.
type OneTimeExpense struct {
	Name             string          `yaml:"name" json:"name"`
	Amount           decimal.Decimal `yaml:"amount" json:"amount"`
	Year             int             `yaml:"year" json:"year"`
	AddToPrimaryHome bool            `yaml:"add_to_primary_home" json:"add_to_primary_home"`
}
