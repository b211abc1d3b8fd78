package report

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Simplici0/roicalc/internal/roi"
)

// Float is a float64 whose JSON form keeps infinities and NaN as the strings
// "+Inf", "-Inf" and "NaN".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf", "Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// ProfileJSON is the JSON form of roi.FirmProfile. The CLI accepts non-finite
// inputs, so they need the same encoding as results.
type ProfileJSON struct {
	FirmSize              Float `json:"firm_size"`
	AvgSalary             Float `json:"avg_salary"`
	CurrentComplianceCost Float `json:"current_compliance_cost"`
	AnnualRevenue         Float `json:"annual_revenue"`
	IncidentRisk          Float `json:"incident_risk"`
	AuditHours            Float `json:"audit_hours"`
	DowntimeCost          Float `json:"downtime_cost"`
}

// NewProfileJSON converts a firm profile to its JSON form.
func NewProfileJSON(p roi.FirmProfile) ProfileJSON {
	return ProfileJSON{
		FirmSize:              Float(p.FirmSize),
		AvgSalary:             Float(p.AvgSalary),
		CurrentComplianceCost: Float(p.CurrentComplianceCost),
		AnnualRevenue:         Float(p.AnnualRevenue),
		IncidentRisk:          Float(p.IncidentRisk),
		AuditHours:            Float(p.AuditHours),
		DowntimeCost:          Float(p.DowntimeCost),
	}
}

// FirmProfile converts back to the calculator input.
func (p ProfileJSON) FirmProfile() roi.FirmProfile {
	return roi.FirmProfile{
		FirmSize:              float64(p.FirmSize),
		AvgSalary:             float64(p.AvgSalary),
		CurrentComplianceCost: float64(p.CurrentComplianceCost),
		AnnualRevenue:         float64(p.AnnualRevenue),
		IncidentRisk:          float64(p.IncidentRisk),
		AuditHours:            float64(p.AuditHours),
		DowntimeCost:          float64(p.DowntimeCost),
	}
}

// InvestmentJSON is the JSON form of roi.Investment.
type InvestmentJSON struct {
	AnnualSolutionCost Float `json:"annual_solution_cost"`
	ImplementationCost Float `json:"implementation_cost"`
	TotalFirstYearCost Float `json:"total_first_year_cost"`
}

// BenefitsJSON is the JSON form of roi.Benefits.
type BenefitsJSON struct {
	FinraFineAvoidance  Float `json:"finra_fine_avoidance"`
	BreachPrevention    Float `json:"breach_prevention"`
	StaffCostReduction  Float `json:"staff_cost_reduction"`
	AuditTimeSavings    Float `json:"audit_time_savings"`
	DowntimePrevention  Float `json:"downtime_prevention"`
	RevenueProtection   Float `json:"revenue_protection"`
	TotalAnnualBenefits Float `json:"total_annual_benefits"`
}

// AnalysisJSON is the JSON form of roi.Analysis.
type AnalysisJSON struct {
	Year1ROI      Float `json:"year1_roi"`
	PaybackMonths Float `json:"payback_months"`
	Year3ROI      Float `json:"year3_roi"`
	NPV5Year      Float `json:"npv_5_year"`
}

// Display carries the preformatted strings the calculator page shows.
type Display map[string]string

// Document is the JSON representation of one calculation.
type Document struct {
	Profile     ProfileJSON    `json:"profile"`
	Investment  InvestmentJSON `json:"investment"`
	Benefits    BenefitsJSON   `json:"benefits"`
	Analysis    AnalysisJSON   `json:"analysis"`
	Display     Display        `json:"display,omitempty"`
	Assumptions []string       `json:"assumptions,omitempty"`
}

// NewDocument builds the JSON document for a profile and its result.
func NewDocument(p roi.FirmProfile, r roi.Result) Document {
	return Document{
		Profile: NewProfileJSON(p),
		Investment: InvestmentJSON{
			AnnualSolutionCost: Float(r.Investment.AnnualSolutionCost),
			ImplementationCost: Float(r.Investment.ImplementationCost),
			TotalFirstYearCost: Float(r.Investment.TotalFirstYearCost),
		},
		Benefits: BenefitsJSON{
			FinraFineAvoidance:  Float(r.Benefits.FinraFineAvoidance),
			BreachPrevention:    Float(r.Benefits.BreachPrevention),
			StaffCostReduction:  Float(r.Benefits.StaffCostReduction),
			AuditTimeSavings:    Float(r.Benefits.AuditTimeSavings),
			DowntimePrevention:  Float(r.Benefits.DowntimePrevention),
			RevenueProtection:   Float(r.Benefits.RevenueProtection),
			TotalAnnualBenefits: Float(r.Benefits.TotalAnnual),
		},
		Analysis: AnalysisJSON{
			Year1ROI:      Float(r.Analysis.Year1ROI),
			PaybackMonths: Float(r.Analysis.PaybackMonths),
			Year3ROI:      Float(r.Analysis.Year3ROI),
			NPV5Year:      Float(r.Analysis.NPV5Year),
		},
		Display:     NewDisplay(r),
		Assumptions: roi.Assumptions(),
	}
}

// Result converts the document back to a calculator result.
func (d Document) Result() roi.Result {
	return roi.Result{
		Investment: roi.Investment{
			AnnualSolutionCost: float64(d.Investment.AnnualSolutionCost),
			ImplementationCost: float64(d.Investment.ImplementationCost),
			TotalFirstYearCost: float64(d.Investment.TotalFirstYearCost),
		},
		Benefits: roi.Benefits{
			FinraFineAvoidance: float64(d.Benefits.FinraFineAvoidance),
			BreachPrevention:   float64(d.Benefits.BreachPrevention),
			StaffCostReduction: float64(d.Benefits.StaffCostReduction),
			AuditTimeSavings:   float64(d.Benefits.AuditTimeSavings),
			DowntimePrevention: float64(d.Benefits.DowntimePrevention),
			RevenueProtection:  float64(d.Benefits.RevenueProtection),
			TotalAnnual:        float64(d.Benefits.TotalAnnualBenefits),
		},
		Analysis: roi.Analysis{
			Year1ROI:      float64(d.Analysis.Year1ROI),
			PaybackMonths: float64(d.Analysis.PaybackMonths),
			Year3ROI:      float64(d.Analysis.Year3ROI),
			NPV5Year:      float64(d.Analysis.NPV5Year),
		},
	}
}

// NewDisplay formats every result value the way the calculator page shows it.
// Keys match the element ids of the page.
func NewDisplay(r roi.Result) Display {
	return Display{
		"annual_solution_cost":  Currency(r.Investment.AnnualSolutionCost, 0),
		"implementation_cost":   Currency(r.Investment.ImplementationCost, 0),
		"total_first_year_cost": Currency(r.Investment.TotalFirstYearCost, 0),
		"finra_fine_avoidance":  Currency(r.Benefits.FinraFineAvoidance, 0),
		"breach_prevention":     Currency(r.Benefits.BreachPrevention, 0),
		"staff_cost_reduction":  Currency(r.Benefits.StaffCostReduction, 0),
		"audit_time_savings":    Currency(r.Benefits.AuditTimeSavings, 2),
		"downtime_prevention":   Currency(r.Benefits.DowntimePrevention, 0),
		"revenue_protection":    Currency(r.Benefits.RevenueProtection, 0),
		"total_annual_benefits": Currency(r.Benefits.TotalAnnual, 2),
		"year1_roi":             Percent(r.Analysis.Year1ROI),
		"payback_months":        Months(r.Analysis.PaybackMonths),
		"year3_roi":             Percent(r.Analysis.Year3ROI),
		"npv_5_year":            Currency(r.Analysis.NPV5Year, 2),
	}
}
