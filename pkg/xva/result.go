package xva

import "github.com/vmihailenco/msgpack/v5"

// NettingSetXva is one netting set's contribution, preserved verbatim
// through the bottom-up aggregation (spec.md §4.5).
type NettingSetXva struct {
	Name string
	CVA  float64
	DVA  float64
	FCA  float64
	FBA  float64
}

// CounterpartyXva sums its constituent NettingSetXva values while keeping
// them individually inspectable.
type CounterpartyXva struct {
	Name        string
	NettingSets []NettingSetXva
	CVA         float64
	DVA         float64
	FCA         float64
	FBA         float64
}

// PortfolioXva is ComputeXVA's result: the portfolio-level totals plus
// every counterparty's breakdown.
type PortfolioXva struct {
	Counterparties []CounterpartyXva
	CVA            float64
	DVA            float64
	FCA            float64
	FBA            float64
	FVA            float64
}

// MarshalBinary encodes the result as msgpack, the same wire envelope
// PricingResult uses for this module's out-of-scope gateway/adapters.
func (r PortfolioXva) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(r)
}

// UnmarshalBinary decodes a msgpack-encoded PortfolioXva.
func (r *PortfolioXva) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, r)
}
