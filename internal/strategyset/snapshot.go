package strategyset

import (
	"github.com/wonny/tearsheet/internal/timeseries"
)

// Strategy pairs a manifest entry with its loaded, size-adjusted table.
type Strategy struct {
	def   StrategyDef
	table *timeseries.Table
}

// Snapshot is the loaded strategy universe. It is built once at startup
// and read concurrently by every handler; nothing mutates it afterwards.
type Snapshot struct {
	names          []string // manifest order, successfully loaded only
	strategies     map[string]*Strategy
	defaultCapital float64
}

// Names lists the loaded strategies in manifest order.
func (s *Snapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Strategy returns one strategy's product-level daily PnL table.
func (s *Snapshot) Strategy(name string) (*timeseries.Table, bool) {
	st, ok := s.strategies[name]
	if !ok {
		return nil, false
	}
	return st.table, true
}

// Products lists a strategy's product columns (nil for unknown strategies).
func (s *Snapshot) Products(name string) []string {
	st, ok := s.strategies[name]
	if !ok {
		return nil
	}
	return st.table.Columns()
}

// Portfolio builds the strategy-level table for the given selection: one
// column per strategy holding its summed product PnL, outer-joined on date.
// A nil selection means every loaded strategy.
func (s *Snapshot) Portfolio(selected []string) *timeseries.Table {
	if selected == nil {
		selected = s.names
	}

	tables := make(map[string]*timeseries.Table, len(selected))
	for _, name := range selected {
		if st, ok := s.strategies[name]; ok {
			tables[name] = st.table
		}
	}
	return timeseries.MergePortfolio(tables, selected)
}

// CapitalByProduct returns a strategy's per-product funding baseline,
// falling back to the snapshot default for unconfigured products.
func (s *Snapshot) CapitalByProduct(name string) map[string]float64 {
	st, ok := s.strategies[name]
	if !ok {
		return nil
	}

	out := make(map[string]float64, len(st.table.Columns()))
	for _, product := range st.table.Columns() {
		capital, configured := st.def.InitialCapital[product]
		if !configured || capital <= 0 {
			capital = s.defaultCapital
		}
		out[product] = capital
	}
	return out
}

// CapitalFor sums a strategy's funding baseline over the given products
// (all products when the list is nil). Unknown strategies and empty
// resolutions fall back to the snapshot default so downstream funded
// computations always have a positive baseline.
func (s *Snapshot) CapitalFor(name string, products []string) float64 {
	byProduct := s.CapitalByProduct(name)
	if byProduct == nil {
		return s.defaultCapital
	}

	if products == nil {
		products = s.Products(name)
	}

	var total float64
	for _, product := range products {
		if capital, ok := byProduct[product]; ok {
			total += capital
		}
	}
	if total <= 0 {
		return s.defaultCapital
	}
	return total
}

// CombinedCapital sums CapitalFor across the selected strategies (all
// loaded strategies when nil).
func (s *Snapshot) CombinedCapital(selected []string) float64 {
	if selected == nil {
		selected = s.names
	}

	var total float64
	for _, name := range selected {
		if _, ok := s.strategies[name]; ok {
			total += s.CapitalFor(name, nil)
		}
	}
	if total <= 0 {
		return s.defaultCapital
	}
	return total
}

// DefaultCapital is the configured fallback funding baseline.
func (s *Snapshot) DefaultCapital() float64 {
	return s.defaultCapital
}
