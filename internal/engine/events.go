package engine

// applyDelay draws once per strictly positive base installment and, on a hit,
// moves that installment forward by delayMonths. Installments pushed past the
// horizon are dropped outright as a modeled loss, neither reinvested nor
// refunded. The base slice is never mutated; when the pass is
// disabled the base slice is returned as-is.
func applyDelay(base []float64, src UniformSource, delayProbPct float64, delayMonths int) []float64 {
	if delayMonths <= 0 || delayProbPct <= 0 {
		return base
	}
	p := delayProbPct / 100
	horizon := len(base) - 1

	out := make([]float64, len(base))
	copy(out, base)
	for t := 1; t <= horizon; t++ {
		cf := base[t]
		if cf <= 0 {
			continue
		}
		if src.Float64() >= p {
			continue
		}
		out[t] -= cf
		if target := t + delayMonths; target <= horizon {
			out[target] += cf
		}
	}
	return out
}

// applyDefault scans months 1..N and terminates the path at the first month
// whose draw falls below the monthly hazard: that month becomes a one-time
// recovery of (1-LGD) of the outstanding balance and every later flow is
// erased. First-passage semantics: at most one default per path. With no
// trigger the input slice is returned unchanged.
func applyDefault(flows, outstanding []float64, src UniformSource, hazardMonthly, lgdPct float64) []float64 {
	if hazardMonthly <= 0 {
		return flows
	}
	for t := 1; t < len(flows); t++ {
		if src.Float64() >= hazardMonthly {
			continue
		}
		out := make([]float64, len(flows))
		copy(out, flows[:t])
		out[t] = (1 - lgdPct/100) * outstanding[t]
		return out
	}
	return flows
}
