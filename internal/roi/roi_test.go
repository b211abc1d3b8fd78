package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_DefaultProfile(t *testing.T) {
	t.Parallel()

	result := Compute(DefaultProfile())

	assert.Equal(t, 12000.0, result.Investment.AnnualSolutionCost)
	assert.Equal(t, 25000.0, result.Investment.ImplementationCost)
	assert.Equal(t, 37000.0, result.Investment.TotalFirstYearCost)

	assert.InDelta(t, 106250, result.Benefits.FinraFineAvoidance, 1e-6)
	assert.InDelta(t, 1357000, result.Benefits.BreachPrevention, 1e-6)
	assert.InDelta(t, 60000, result.Benefits.StaffCostReduction, 1e-6)
	assert.InDelta(t, 10216.346153846152, result.Benefits.AuditTimeSavings, 1e-6)
	assert.InDelta(t, 495000, result.Benefits.DowntimePrevention, 1e-6)
	assert.InDelta(t, 175000, result.Benefits.RevenueProtection, 1e-6)
	assert.InDelta(t, 2203466.3461538465, result.Benefits.TotalAnnual, 1e-6)

	assert.InDelta(t, 5855.31444906445, result.Analysis.Year1ROI, 1e-6)
	assert.InDelta(t, 0.20150069492779077, result.Analysis.PaybackMonths, 1e-9)
	assert.InDelta(t, 17701.078482328485, result.Analysis.Year3ROI, 1e-6)
	assert.InDelta(t, 9113119.793664262, result.Analysis.NPV5Year, 1e-4)
}

func TestCompute_IsDeterministic(t *testing.T) {
	t.Parallel()

	profiles := []FirmProfile{
		DefaultProfile(),
		{},
		{FirmSize: -3, AvgSalary: 1.5, CurrentComplianceCost: -200, AnnualRevenue: 1e12, IncidentRisk: 250, AuditHours: 0.1, DowntimeCost: 7},
	}
	for _, p := range profiles {
		first := Compute(p)
		second := Compute(p)
		assert.Equal(t, first, second)
	}
}

func TestCompute_TotalFirstYearCostIsConstant(t *testing.T) {
	t.Parallel()

	for _, p := range []FirmProfile{DefaultProfile(), {}, {AnnualRevenue: -1, IncidentRisk: 1000}} {
		assert.Equal(t, 37000.0, Compute(p).Investment.TotalFirstYearCost)
	}
}

func TestCompute_TotalIsExactSumOfBenefits(t *testing.T) {
	t.Parallel()

	p := FirmProfile{AvgSalary: 123456.78, CurrentComplianceCost: 98765.43, AnnualRevenue: 3210987.6, IncidentRisk: 17.3, AuditHours: 333, DowntimeCost: 4321}
	b := Compute(p).Benefits

	sum := b.FinraFineAvoidance + b.BreachPrevention + b.StaffCostReduction + b.AuditTimeSavings + b.DowntimePrevention + b.RevenueProtection
	assert.Equal(t, sum, b.TotalAnnual)
}

func TestCompute_ZeroIncidentRiskZeroesRiskBenefits(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()
	p.IncidentRisk = 0
	b := Compute(p).Benefits

	assert.Zero(t, b.FinraFineAvoidance)
	assert.Zero(t, b.BreachPrevention)
	assert.Zero(t, b.DowntimePrevention)
	assert.InDelta(t, 60000+10216.346153846152+175000, b.TotalAnnual, 1e-6)
}

func TestCompute_BreakEvenYear1ROIIsZero(t *testing.T) {
	t.Parallel()

	// Only revenue protection contributes: 0.035 * revenue == 37000.
	p := FirmProfile{AnnualRevenue: 37000 / 0.035}
	result := Compute(p)

	require.InDelta(t, result.Investment.TotalFirstYearCost, result.Benefits.TotalAnnual, 1e-6)
	assert.InDelta(t, 0, result.Analysis.Year1ROI, 1e-9)
	assert.InDelta(t, 12, result.Analysis.PaybackMonths, 1e-9)
}

func TestCompute_ZeroBenefitsSurfaceInfinitePayback(t *testing.T) {
	t.Parallel()

	result := Compute(FirmProfile{})

	assert.Zero(t, result.Benefits.TotalAnnual)
	assert.True(t, math.IsInf(result.Analysis.PaybackMonths, 1))
	assert.InDelta(t, -100, result.Analysis.Year1ROI, 1e-9)
}

func TestCompute_NegativeInputsPropagate(t *testing.T) {
	t.Parallel()

	p := FirmProfile{CurrentComplianceCost: -100000}
	result := Compute(p)

	assert.InDelta(t, -40000, result.Benefits.StaffCostReduction, 1e-9)
	assert.True(t, result.Analysis.PaybackMonths < 0)
	assert.True(t, result.Analysis.NPV5Year < 0)
}

func TestCompute_FirmSizeIsInert(t *testing.T) {
	t.Parallel()

	small := DefaultProfile()
	large := DefaultProfile()
	large.FirmSize = 10000

	assert.Equal(t, Compute(small), Compute(large))
}

func TestCompute_IncidentRiskIsMonotonic(t *testing.T) {
	t.Parallel()

	values, err := Steps(0, 100, 5)
	require.NoError(t, err)

	points, err := Sweep(DefaultProfile(), FieldIncidentRisk, values)
	require.NoError(t, err)
	require.Len(t, points, 21)

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Result.Benefits.TotalAnnual, points[i-1].Result.Benefits.TotalAnnual,
			"incident risk %v", points[i].Value)
	}
}

func TestCompute_RevenueProtectionScalesLinearly(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()
	doubled := p
	doubled.AnnualRevenue *= 2

	assert.Equal(t, 2*Compute(p).Benefits.RevenueProtection, Compute(doubled).Benefits.RevenueProtection)
}

func TestAssumptions(t *testing.T) {
	t.Parallel()

	got := Assumptions()
	require.Len(t, got, 6)
	assert.Contains(t, got, "Average breach cost: $5.9M (IBM 2024)")
}
