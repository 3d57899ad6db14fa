package costing

import "github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"

const minutesPerHour = 60.0

// HourlyRate computes the labour rate per hour for one labour costing
// variant. A nil variant falls back to the blended rate. Any zero
// denominator yields 0 rather than a division error.
func HourlyRate(labour catalog.LabourCosting, staff []catalog.StaffMember, settings catalog.BusinessSettings) float64 {
	if labour == nil {
		labour = catalog.BlendedLabour{}
	}

	switch l := labour.(type) {
	case catalog.BlendedLabour:
		var payroll float64
		for _, s := range staff {
			payroll += s.MonthlySalary
		}
		return safeRate(payroll, settings.WorkingDaysPerMonth*settings.HoursPerDay)
	case catalog.CustomLabour:
		return safeRate(l.MonthlySalary, l.WorkingDays*l.HoursPerDay)
	case catalog.StaffAssignedLabour:
		member, ok := findStaff(staff, l.StaffID)
		if !ok {
			return 0
		}
		return safeRate(member.MonthlySalary, settings.WorkingDaysPerMonth*settings.HoursPerDay)
	default:
		return 0
	}
}

// LabourCost scales the hourly rate by the recipe's required labour
// minutes, giving the labour cost of one full batch.
func LabourCost(r catalog.Recipe, staff []catalog.StaffMember, settings catalog.BusinessSettings) float64 {
	return HourlyRate(r.Labour, staff, settings) * (r.LabourMinutes / minutesPerHour)
}

func safeRate(monthly, hoursPerMonth float64) float64 {
	if hoursPerMonth <= 0 {
		return 0
	}
	return monthly / hoursPerMonth
}

func findStaff(staff []catalog.StaffMember, id string) (catalog.StaffMember, bool) {
	for _, s := range staff {
		if s.ID == id {
			return s, true
		}
	}
	return catalog.StaffMember{}, false
}
