package roi

import "math"

// Fixed investment costs of the solution.
const (
	AnnualSolutionCost = 12000.0
	ImplementationCost = 25000.0
)

// Industry coefficients behind the benefit estimates.
const (
	finraFineMitigation  = 0.85
	finraAverageFine     = 500000.0
	breachReduction      = 0.92
	averageBreachCost    = 5900000.0 // IBM 2024 average
	staffCostReduction   = 0.40
	auditTimeReduction   = 0.50
	workingHoursPerYear  = 2080.0 // 40 hrs x 52 weeks
	mttrImprovement      = 0.99
	downtimeHoursAvoided = 40.0
	revenueProtected     = 0.035

	discountRate = 0.10
	npvYears     = 5
)

// FirmProfile is the set of inputs describing the prospective client firm.
type FirmProfile struct {
	// FirmSize is the headcount. It is collected but no formula consumes it yet.
	FirmSize              float64 `json:"firm_size" yaml:"firm_size"`
	AvgSalary             float64 `json:"avg_salary" yaml:"avg_salary"`
	CurrentComplianceCost float64 `json:"current_compliance_cost" yaml:"current_compliance_cost"`
	AnnualRevenue         float64 `json:"annual_revenue" yaml:"annual_revenue"`
	// IncidentRisk is a percentage in [0, 100]. Bounds are not enforced.
	IncidentRisk float64 `json:"incident_risk" yaml:"incident_risk"`
	AuditHours   float64 `json:"audit_hours" yaml:"audit_hours"`
	DowntimeCost float64 `json:"downtime_cost" yaml:"downtime_cost"`
}

// DefaultProfile returns the profile the calculator starts with.
func DefaultProfile() FirmProfile {
	return FirmProfile{
		FirmSize:              50,
		AvgSalary:             85000,
		CurrentComplianceCost: 150000,
		AnnualRevenue:         5000000,
		IncidentRisk:          25,
		AuditHours:            500,
		DowntimeCost:          50000,
	}
}

// Investment summarizes what the firm pays in the first year.
type Investment struct {
	AnnualSolutionCost float64
	ImplementationCost float64
	TotalFirstYearCost float64
}

// Benefits is the annual benefits breakdown.
type Benefits struct {
	FinraFineAvoidance float64
	BreachPrevention   float64
	StaffCostReduction float64
	AuditTimeSavings   float64
	DowntimePrevention float64
	RevenueProtection  float64
	TotalAnnual        float64
}

// Analysis holds the ROI, payback and NPV metrics.
type Analysis struct {
	Year1ROI      float64
	PaybackMonths float64
	Year3ROI      float64
	NPV5Year      float64
}

// Result groups the full calculator output.
type Result struct {
	Investment Investment
	Benefits   Benefits
	Analysis   Analysis
}

// Compute derives the investment summary, benefits and ROI metrics for a profile.
// Inputs are not validated: zero or negative values flow through the arithmetic and
// may yield negative, infinite or NaN outputs.
func Compute(p FirmProfile) Result {
	totalFirstYearCost := AnnualSolutionCost + ImplementationCost

	risk := p.IncidentRisk / 100
	finraFineAvoidance := risk * finraFineMitigation * finraAverageFine
	breachPrevention := risk * breachReduction * averageBreachCost
	staffReduction := p.CurrentComplianceCost * staffCostReduction
	auditTimeSavings := (p.AuditHours * auditTimeReduction) * (p.AvgSalary / workingHoursPerYear)
	downtimePrevention := risk * mttrImprovement * p.DowntimeCost * downtimeHoursAvoided
	revenueProtection := p.AnnualRevenue * revenueProtected

	totalAnnual := finraFineAvoidance +
		breachPrevention +
		staffReduction +
		auditTimeSavings +
		downtimePrevention +
		revenueProtection

	year1ROI := ((totalAnnual - totalFirstYearCost) / totalFirstYearCost) * 100
	paybackMonths := totalFirstYearCost / (totalAnnual / 12)
	year3ROI := (((totalAnnual * 3) - (totalFirstYearCost + AnnualSolutionCost*2)) / totalFirstYearCost) * 100

	year1Net := totalAnnual - totalFirstYearCost
	yearlyNet := totalAnnual - AnnualSolutionCost
	npv := year1Net
	for year := 1; year < npvYears; year++ {
		npv += yearlyNet / math.Pow(1+discountRate, float64(year))
	}

	return Result{
		Investment: Investment{
			AnnualSolutionCost: AnnualSolutionCost,
			ImplementationCost: ImplementationCost,
			TotalFirstYearCost: totalFirstYearCost,
		},
		Benefits: Benefits{
			FinraFineAvoidance: finraFineAvoidance,
			BreachPrevention:   breachPrevention,
			StaffCostReduction: staffReduction,
			AuditTimeSavings:   auditTimeSavings,
			DowntimePrevention: downtimePrevention,
			RevenueProtection:  revenueProtection,
			TotalAnnual:        totalAnnual,
		},
		Analysis: Analysis{
			Year1ROI:      year1ROI,
			PaybackMonths: paybackMonths,
			Year3ROI:      year3ROI,
			NPV5Year:      npv,
		},
	}
}

// Assumptions returns the model assumptions shown next to the results.
func Assumptions() []string {
	return []string{
		"92% ransomware incident reduction (proven metric)",
		"40% compliance cost reduction through automation",
		"50% audit preparation time reduction",
		"85% FINRA fine risk mitigation",
		"Average breach cost: $5.9M (IBM 2024)",
		"99% MTTR improvement on incidents",
	}
}
