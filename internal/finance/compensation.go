package finance

// DefaultMonthlyHours is the salary-to-hourly divisor: a 44-hour week
// (Mon-Fri 8h plus a 4h Saturday) times 4 weeks. This is the single
// conversion point between compensation and time-based cost; every cost
// figure in the system depends on it.
const DefaultMonthlyHours = 176

// Compensation derives hourly cost rates from monthly salaries.
type Compensation struct {
	monthlyHours float64
}

func NewCompensation(monthlyHours float64) Compensation {
	if monthlyHours <= 0 {
		monthlyHours = DefaultMonthlyHours
	}
	return Compensation{monthlyHours: monthlyHours}
}

// HourlyRate returns the base-currency cost of one worked hour. Workers with
// no salary on file cost nothing in aggregation; that is a known
// simplification, not an error.
func (c Compensation) HourlyRate(monthlySalary *float64) float64 {
	if monthlySalary == nil || *monthlySalary == 0 {
		return 0
	}
	return *monthlySalary / c.monthlyHours
}
