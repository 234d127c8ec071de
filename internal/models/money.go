package models

// ComputePending returns the outstanding amount for a money-bearing record:
// totalCost minus the amount already received, clamped at zero.
func ComputePending(totalCost, received float64) float64 {
	pending := totalCost - received
	if pending < 0 {
		return 0
	}
	return pending
}
