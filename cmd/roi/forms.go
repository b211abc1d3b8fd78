package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Simplici0/roicalc/internal/roi"
)

type profileField struct {
	Field roi.Field
	Label string
}

var profileFields = []profileField{
	{roi.FieldFirmSize, "Firm Size (Number of Users)"},
	{roi.FieldAvgSalary, "Average Employee Salary ($)"},
	{roi.FieldCurrentComplianceCost, "Current Annual Compliance Cost ($)"},
	{roi.FieldAnnualRevenue, "Annual Revenue ($)"},
	{roi.FieldIncidentRisk, "Incident Risk Probability (%)"},
	{roi.FieldAuditHours, "Annual Audit Hours"},
	{roi.FieldDowntimeCost, "Downtime Cost per Hour ($)"},
}

type inputField struct {
	Name  string
	Label string
	Value string
}

// parseProfileValues reads a firm profile from form or query values. Absent fields
// keep their defaults and an empty field counts as 0, as a cleared number input does.
// Only non-numeric text is rejected; negative and zero values are accepted.
func parseProfileValues(values url.Values) (roi.FirmProfile, error) {
	p := roi.DefaultProfile()
	for _, f := range profileFields {
		name := string(f.Field)
		if !values.Has(name) {
			continue
		}
		v, err := parseNumber(values.Get(name), name)
		if err != nil {
			return roi.DefaultProfile(), err
		}
		p, _ = p.With(f.Field, v)
	}
	return p, nil
}

// decodeProfileJSON reads a firm profile from a JSON object keyed by field name.
func decodeProfileJSON(body io.Reader) (roi.FirmProfile, error) {
	var raw map[string]float64
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return roi.DefaultProfile(), fmt.Errorf("invalid request body")
	}

	p := roi.DefaultProfile()
	for _, f := range profileFields {
		if v, ok := raw[string(f.Field)]; ok {
			p, _ = p.With(f.Field, v)
		}
	}
	return p, nil
}

func parseNumber(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%s must be a finite number", field)
	}
	return value, nil
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func profileInputs(p roi.FirmProfile) []inputField {
	inputs := make([]inputField, 0, len(profileFields))
	for _, f := range profileFields {
		v, _ := p.Value(f.Field)
		inputs = append(inputs, inputField{Name: string(f.Field), Label: f.Label, Value: formatInput(v)})
	}
	return inputs
}

// validProfileValues is parseProfileValues that keeps the default for any field
// that does not parse.
func validProfileValues(values url.Values) roi.FirmProfile {
	p := roi.DefaultProfile()
	for _, f := range profileFields {
		name := string(f.Field)
		if !values.Has(name) {
			continue
		}
		if v, err := parseNumber(values.Get(name), name); err == nil {
			p, _ = p.With(f.Field, v)
		}
	}
	return p
}

// submittedInputs echoes the raw submitted text back into the form so a rejected
// value can be corrected in place.
func submittedInputs(values url.Values, fallback roi.FirmProfile) []inputField {
	inputs := profileInputs(fallback)
	for i := range inputs {
		if values.Has(inputs[i].Name) {
			inputs[i].Value = values.Get(inputs[i].Name)
		}
	}
	return inputs
}

func profileQuery(p roi.FirmProfile) string {
	values := url.Values{}
	for _, f := range profileFields {
		v, _ := p.Value(f.Field)
		values.Set(string(f.Field), formatInput(v))
	}
	return values.Encode()
}
