package costing

import (
	"testing"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

var payrollOfTwo = []catalog.StaffMember{
	{ID: "s1", Name: "Cook", MonthlySalary: 3000},
	{ID: "s2", Name: "Prep", MonthlySalary: 3000},
}

var standardMonth = catalog.BusinessSettings{WorkingDaysPerMonth: 22, HoursPerDay: 8}

func TestBlendedHourlyRate(t *testing.T) {
	rate := HourlyRate(catalog.BlendedLabour{}, payrollOfTwo, standardMonth)
	nearlyEqual(t, "blended rate", rate, 6000.0/176.0)
}

func TestBlendedLabourCostScalesByMinutes(t *testing.T) {
	r := catalog.Recipe{LabourMinutes: 30, Labour: catalog.BlendedLabour{}}
	nearlyEqual(t, "labour cost", LabourCost(r, payrollOfTwo, standardMonth), 6000.0/176.0*0.5)
}

func TestCustomLabourRate(t *testing.T) {
	labour := catalog.CustomLabour{MonthlySalary: 2200, WorkingDays: 20, HoursPerDay: 5}
	nearlyEqual(t, "custom rate", HourlyRate(labour, payrollOfTwo, standardMonth), 22)
}

func TestStaffAssignedLabourRate(t *testing.T) {
	staff := []catalog.StaffMember{
		{ID: "s1", MonthlySalary: 3000},
		{ID: "s2", MonthlySalary: 5280},
	}
	rate := HourlyRate(catalog.StaffAssignedLabour{StaffID: "s2"}, staff, standardMonth)
	nearlyEqual(t, "assigned rate", rate, 30)
}

func TestStaffAssignedUnknownStaffIsZero(t *testing.T) {
	rate := HourlyRate(catalog.StaffAssignedLabour{StaffID: "ghost"}, payrollOfTwo, standardMonth)
	nearlyEqual(t, "unknown staff rate", rate, 0)
}

func TestZeroDenominatorsYieldZeroRate(t *testing.T) {
	noHours := catalog.BusinessSettings{WorkingDaysPerMonth: 22, HoursPerDay: 0}
	nearlyEqual(t, "blended zero hours", HourlyRate(catalog.BlendedLabour{}, payrollOfTwo, noHours), 0)

	custom := catalog.CustomLabour{MonthlySalary: 2000, WorkingDays: 0, HoursPerDay: 8}
	nearlyEqual(t, "custom zero days", HourlyRate(custom, nil, standardMonth), 0)
}

func TestNilLabourFallsBackToBlended(t *testing.T) {
	nearlyEqual(t, "nil labour", HourlyRate(nil, payrollOfTwo, standardMonth), 6000.0/176.0)
}

func TestOverheadPerDish(t *testing.T) {
	overheads := []catalog.Overhead{
		{Name: "Rent", Type: catalog.OverheadFixed, MonthlyCost: 2000},
		{Name: "Gas", Type: catalog.OverheadVariable, MonthlyCost: 500},
		{Name: "Electricity", Type: catalog.OverheadVariable, MonthlyCost: 300},
	}
	settings := catalog.BusinessSettings{DishesProducedPerMonth: 800, DishesSoldPerMonth: 1000}

	// 800/800 variable + 2000/1000 fixed
	nearlyEqual(t, "per dish", OverheadPerDish(overheads, settings), 1+2)
}

func TestOverheadZeroVolumesGuard(t *testing.T) {
	overheads := []catalog.Overhead{
		{Type: catalog.OverheadFixed, MonthlyCost: 2000},
		{Type: catalog.OverheadVariable, MonthlyCost: 800},
	}

	nearlyEqual(t, "no production",
		OverheadPerDish(overheads, catalog.BusinessSettings{DishesSoldPerMonth: 1000}), 2)
	nearlyEqual(t, "no sales",
		OverheadPerDish(overheads, catalog.BusinessSettings{DishesProducedPerMonth: 800}), 1)
	nearlyEqual(t, "neither",
		OverheadPerDish(overheads, catalog.BusinessSettings{}), 0)
}

func TestAllocateOverheadScalesToBatch(t *testing.T) {
	overheads := []catalog.Overhead{{Type: catalog.OverheadVariable, MonthlyCost: 900}}
	settings := catalog.BusinessSettings{DishesProducedPerMonth: 300}
	r := catalog.Recipe{Servings: 4}

	nearlyEqual(t, "batch overhead", AllocateOverhead(overheads, settings, r), 12)
}
