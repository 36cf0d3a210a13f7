package engine

// BuildSchedule produces the base cash-flow vector and the companion
// outstanding-balance series in a single pass. The balance series is what
// the default pass recovers against, so both views must agree by
// construction.
func BuildSchedule(terms LoanTerms, rateMonthly float64) (Schedule, error) {
	if err := terms.Validate(); err != nil {
		return Schedule{}, err
	}

	n := terms.TermMonths
	flows := make([]float64, n+1)
	outstanding := make([]float64, n+1)

	flows[0] = -terms.Principal
	balance := terms.Principal
	outstanding[0] = balance

	// Interest-only grace period: the balance does not move.
	for t := 1; t <= terms.GraceMonths; t++ {
		outstanding[t] = balance
		flows[t] = balance * rateMonthly
	}

	amortMonths := n - terms.GraceMonths
	if amortMonths == 0 {
		// Grace consumes the whole term: principal is never repaid inside
		// the horizon and the balance stays frozen.
		return Schedule{CashFlows: flows, Outstanding: outstanding}, nil
	}

	switch terms.Method {
	case MethodPrice:
		pmt := annuityPayment(balance, rateMonthly, amortMonths)
		for t := terms.GraceMonths + 1; t <= n; t++ {
			outstanding[t] = balance
			interest := balance * rateMonthly
			balance -= pmt - interest
			if balance < 0 {
				balance = 0
			}
			flows[t] = pmt
		}
	case MethodSAC:
		amort := balance / float64(amortMonths)
		for t := terms.GraceMonths + 1; t <= n; t++ {
			outstanding[t] = balance
			flows[t] = amort + balance*rateMonthly
			balance -= amort
			if balance < 0 {
				balance = 0
			}
		}
	}

	return Schedule{CashFlows: flows, Outstanding: outstanding}, nil
}

// annuityPayment is the standard constant-installment formula, with the
// zero-rate case degraded to straight-line amortization.
func annuityPayment(balance, rate float64, months int) float64 {
	if rate == 0 {
		return balance / float64(months)
	}
	pow := 1.0
	for i := 0; i < months; i++ {
		pow *= 1 + rate
	}
	return balance * rate * pow / (pow - 1)
}
