package roi

import (
	"fmt"
	"math"
)

// MaxSteps bounds the number of values Steps generates.
const MaxSteps = 10000

// Field names a FirmProfile input that can be varied by Sweep.
type Field string

const (
	FieldFirmSize              Field = "firm_size"
	FieldAvgSalary             Field = "avg_salary"
	FieldCurrentComplianceCost Field = "current_compliance_cost"
	FieldAnnualRevenue         Field = "annual_revenue"
	FieldIncidentRisk          Field = "incident_risk"
	FieldAuditHours            Field = "audit_hours"
	FieldDowntimeCost          Field = "downtime_cost"
)

// Fields lists every sweepable field in form order.
func Fields() []Field {
	return []Field{
		FieldFirmSize,
		FieldAvgSalary,
		FieldCurrentComplianceCost,
		FieldAnnualRevenue,
		FieldIncidentRisk,
		FieldAuditHours,
		FieldDowntimeCost,
	}
}

// With returns a copy of p with the named field set to value.
func (p FirmProfile) With(field Field, value float64) (FirmProfile, error) {
	switch field {
	case FieldFirmSize:
		p.FirmSize = value
	case FieldAvgSalary:
		p.AvgSalary = value
	case FieldCurrentComplianceCost:
		p.CurrentComplianceCost = value
	case FieldAnnualRevenue:
		p.AnnualRevenue = value
	case FieldIncidentRisk:
		p.IncidentRisk = value
	case FieldAuditHours:
		p.AuditHours = value
	case FieldDowntimeCost:
		p.DowntimeCost = value
	default:
		return p, fmt.Errorf("unknown field %q", field)
	}
	return p, nil
}

// Value returns the named field of p.
func (p FirmProfile) Value(field Field) (float64, error) {
	switch field {
	case FieldFirmSize:
		return p.FirmSize, nil
	case FieldAvgSalary:
		return p.AvgSalary, nil
	case FieldCurrentComplianceCost:
		return p.CurrentComplianceCost, nil
	case FieldAnnualRevenue:
		return p.AnnualRevenue, nil
	case FieldIncidentRisk:
		return p.IncidentRisk, nil
	case FieldAuditHours:
		return p.AuditHours, nil
	case FieldDowntimeCost:
		return p.DowntimeCost, nil
	}
	return 0, fmt.Errorf("unknown field %q", field)
}

// Point is one row of a sensitivity sweep.
type Point struct {
	Value  float64
	Result Result
}

// Sweep recomputes the profile once per value of the given field, holding the
// other inputs fixed.
func Sweep(p FirmProfile, field Field, values []float64) ([]Point, error) {
	points := make([]Point, 0, len(values))
	for _, v := range values {
		varied, err := p.With(field, v)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Value: v, Result: Compute(varied)})
	}
	return points, nil
}

// Steps returns from, from+step, ... up to and including to.
func Steps(from, to, step float64) ([]float64, error) {
	for _, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("from, to and step must be finite numbers")
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be greater than 0")
	}
	if to < from {
		return nil, fmt.Errorf("to must be greater than or equal to from")
	}

	count := (to-from)/step + 1e-9
	if math.IsInf(count, 0) || count >= MaxSteps {
		return nil, fmt.Errorf("sweep would produce more than %d values", MaxSteps)
	}
	n := int(count) + 1
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, from+float64(i)*step)
	}
	return values, nil
}
