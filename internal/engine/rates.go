package engine

import "math"

// MonthlyRate converts a nominal annual percentage into the equivalent
// compound monthly rate. Negative (discount) rates are fine.
func MonthlyRate(annualPct float64) float64 {
	return math.Pow(1+annualPct/100, 1.0/12) - 1
}

// AnnualRate is the inverse conversion, used to annualize a monthly IRR.
func AnnualRate(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}

// MonthlyHazard converts an annual cumulative default probability (percent)
// into the per-month hazard under an independence assumption across months.
func MonthlyHazard(annualPDPct float64) float64 {
	return 1 - math.Pow(1-annualPDPct/100, 1.0/12)
}
