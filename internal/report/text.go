package report

import (
	"fmt"
	"strings"

	"github.com/Simplici0/roicalc/internal/roi"
)

type line struct {
	label string
	key   string
}

var profileLines = []struct {
	label string
	value func(roi.FirmProfile) string
}{
	{"Firm size (users)", func(p roi.FirmProfile) string { return Number(p.FirmSize, 0) }},
	{"Average employee salary", func(p roi.FirmProfile) string { return Currency(p.AvgSalary, 2) }},
	{"Current annual compliance cost", func(p roi.FirmProfile) string { return Currency(p.CurrentComplianceCost, 2) }},
	{"Annual revenue", func(p roi.FirmProfile) string { return Currency(p.AnnualRevenue, 2) }},
	{"Incident risk probability", func(p roi.FirmProfile) string { return Number(p.IncidentRisk, 2) + "%" }},
	{"Annual audit hours", func(p roi.FirmProfile) string { return Number(p.AuditHours, 2) }},
	{"Downtime cost per hour", func(p roi.FirmProfile) string { return Currency(p.DowntimeCost, 2) }},
}

var investmentLines = []line{
	{"Annual solution cost", "annual_solution_cost"},
	{"Implementation (year 1)", "implementation_cost"},
	{"Total first year cost", "total_first_year_cost"},
}

var benefitLines = []line{
	{"FINRA fine avoidance", "finra_fine_avoidance"},
	{"Breach prevention", "breach_prevention"},
	{"Staff cost reduction (40%)", "staff_cost_reduction"},
	{"Audit time savings (50%)", "audit_time_savings"},
	{"Downtime prevention", "downtime_prevention"},
	{"Revenue protection", "revenue_protection"},
	{"Total annual benefits", "total_annual_benefits"},
}

var analysisLines = []line{
	{"Year 1 ROI", "year1_roi"},
	{"Payback period", "payback_months"},
	{"3-year ROI", "year3_roi"},
	{"5-year NPV", "npv_5_year"},
}

// Row is one labelled, formatted result value.
type Row struct {
	Section string
	Label   string
	Value   string
}

var sections = []struct {
	heading string
	lines   []line
}{
	{"Investment summary", investmentLines},
	{"Annual benefits", benefitLines},
	{"ROI analysis", analysisLines},
}

// Rows lists every result value in page order.
func Rows(r roi.Result) []Row {
	display := NewDisplay(r)
	var rows []Row
	for _, sec := range sections {
		for _, l := range sec.lines {
			rows = append(rows, Row{Section: sec.heading, Label: l.label, Value: display[l.key]})
		}
	}
	return rows
}

// Text renders a plain-text summary suitable for pasting into an email.
func Text(title string, p roi.FirmProfile, r roi.Result) string {
	display := NewDisplay(r)

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "%s\n\n", title)
	}

	fmt.Fprintf(&b, "Firm profile:\n")
	for _, l := range profileLines {
		fmt.Fprintf(&b, "- %s: %s\n", l.label, l.value(p))
	}

	for _, sec := range sections {
		writeTextSection(&b, sec.heading, sec.lines, display)
	}

	fmt.Fprintf(&b, "\nAssumptions:\n")
	for _, a := range roi.Assumptions() {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return b.String()
}

func writeTextSection(b *strings.Builder, heading string, lines []line, display Display) {
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, l := range lines {
		fmt.Fprintf(b, "- %s: %s\n", l.label, display[l.key])
	}
}
