package engine

import "github.com/vmihailenco/msgpack/v5"

// PricingResult is the engine's single output type (spec.md §6):
// PV, its standard error, and a greeks map (populated with "delta" when
// priced with F=numeric.Dual). DroppedPaths/Warning surface the failure
// semantics of spec.md §4.4.7.
type PricingResult struct {
	RunID        string
	PV           float64
	StdErr       float64
	Greeks       map[string]float64
	NPaths       int
	DroppedPaths int
	Warning      bool
}

// MarshalBinary encodes the result as msgpack, the wire envelope this
// module's out-of-scope gateway/adapters consume.
func (r PricingResult) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(r)
}

// UnmarshalBinary decodes a msgpack-encoded PricingResult.
func (r *PricingResult) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, r)
}
