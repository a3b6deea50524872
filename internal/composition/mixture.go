package composition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"planet-designer/internal/shared/validation"
)

// UnknownGas is returned by Dominant for an empty mixture
const UnknownGas = "unknown"

// OtherGas collects the share not attributed to a named gas
const OtherGas = "other"

// GasShare is one entry of a Mixture
type GasShare struct {
	Symbol  string  `json:"symbol" toml:"symbol"`
	Percent float64 `json:"percent" toml:"percent"`
}

// Mixture is an ordered mapping from gas symbol to percentage. The set of symbols is
// open; insertion order is kept so that tie-breaks are deterministic.
// A Mixture is never modified after construction.
type Mixture struct {
	shares []GasShare
}

// NewMixture builds a mixture in argument order. A repeated symbol keeps its first
// position and takes the last value.
func NewMixture(shares ...GasShare) Mixture {
	var out []GasShare
	for _, s := range shares {
		out = setShare(out, s.Symbol, s.Percent)
	}
	return Mixture{shares: out}
}

// DefaultMixture is the Earth-like atmosphere used when no composition is given
func DefaultMixture() Mixture {
	return NewMixture(
		GasShare{"N2", 78},
		GasShare{"O2", 21},
		GasShare{"Ar", 0.93},
		GasShare{"CO2", 0.04},
		GasShare{OtherGas, 0.03},
	)
}

func setShare(shares []GasShare, symbol string, pct float64) []GasShare {
	for i := range shares {
		if shares[i].Symbol == symbol {
			shares[i].Percent = pct
			return shares
		}
	}
	return append(shares, GasShare{Symbol: symbol, Percent: pct})
}

func (m Mixture) Get(symbol string) (float64, bool) {
	for _, s := range m.shares {
		if s.Symbol == symbol {
			return s.Percent, true
		}
	}
	return 0, false
}

// Percent returns the share of symbol, or 0 when the gas is absent
func (m Mixture) Percent(symbol string) float64 {
	pct, _ := m.Get(symbol)
	return pct
}

func (m Mixture) Has(symbol string) bool {
	_, ok := m.Get(symbol)
	return ok
}

func (m Mixture) Len() int {
	return len(m.shares)
}

// Shares returns a copy of the entries in order
func (m Mixture) Shares() []GasShare {
	out := make([]GasShare, len(m.shares))
	copy(out, m.shares)
	return out
}

func (m Mixture) Sum() float64 {
	var sum float64
	for _, s := range m.shares {
		sum += s.Percent
	}
	return sum
}

// Dominant returns the gas with the strictly largest share; the earliest entry wins ties
func (m Mixture) Dominant() string {
	if len(m.shares) == 0 {
		return UnknownGas
	}

	best := m.shares[0]
	for _, s := range m.shares[1:] {
		if s.Percent > best.Percent {
			best = s
		}
	}
	return best.Symbol
}

// WithGas returns a new mixture where symbol has pct percent and every other gas is
// scaled proportionally so the total stays at 100. When no other gas has a share,
// the remainder goes to OtherGas, or symbol takes all 100 when it is OtherGas itself.
func (m Mixture) WithGas(symbol string, pct float64) Mixture {
	pct = clamp(pct, 0, 100)

	var rest float64
	for _, s := range m.shares {
		if s.Symbol != symbol {
			rest += s.Percent
		}
	}

	if rest <= 0 && symbol == OtherGas {
		pct = 100
	}

	remaining := 100 - pct
	out := make([]GasShare, 0, len(m.shares)+1)
	for _, s := range m.shares {
		switch {
		case s.Symbol == symbol:
			out = append(out, GasShare{Symbol: symbol, Percent: pct})
		case rest > 0:
			out = append(out, GasShare{Symbol: s.Symbol, Percent: s.Percent * remaining / rest})
		default:
			out = append(out, s)
		}
	}
	if !m.Has(symbol) {
		out = append(out, GasShare{Symbol: symbol, Percent: pct})
	}
	if rest <= 0 && remaining > 0 {
		out = setShare(out, OtherGas, remaining)
	}

	return Mixture{shares: out}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MarshalJSON writes the mixture as a JSON object in insertion order
func (m Mixture) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m.shares {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Symbol)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Percent)
		if err != nil {
			return nil, fmt.Errorf("gas %s: %w", s.Symbol, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of gas percentages keeping the document order
func (m *Mixture) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("composition must be an object of gas percentages")
	}

	var shares []GasShare
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		symbol, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected composition key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("percentage for %s: %w", symbol, err)
		}
		// a value that is not a number is kept as NaN and reported by validation
		pct := math.NaN()
		if v := validation.NumberFromJSON(raw); v != nil {
			pct = *v
		}
		shares = setShare(shares, symbol, pct)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	m.shares = shares
	return nil
}
