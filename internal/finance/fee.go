package finance

// FeeBreakdown splits a gross amount into the platform's cut and the net
// payable remainder. Both are nil when the gross amount was nil.
type FeeBreakdown struct {
	Fee *float64 `json:"fee"`
	Net *float64 `json:"net"`
}

// ApplyFee deducts a percentage fee from a gross amount. It is used at two
// independent levels that must not be conflated: the project budget (what a
// marketplace will actually disburse) and a single milestone's amount at
// release time (net revenue recognized). A nil fee percent means no
// deduction.
func ApplyFee(gross *float64, feePercent *float64) FeeBreakdown {
	if gross == nil {
		return FeeBreakdown{}
	}
	fee := 0.0
	if feePercent != nil {
		fee = *gross * (*feePercent / 100)
	}
	net := *gross - fee
	return FeeBreakdown{Fee: &fee, Net: &net}
}
