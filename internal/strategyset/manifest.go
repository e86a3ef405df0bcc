package strategyset

// Manifest is the strategy registry read from STRATEGIES_FILE.
type Manifest struct {
	Strategies []StrategyDef `yaml:"strategies"`
}

// StrategyDef describes one strategy: its display name, the daily PnL CSV
// it is loaded from, and optional per-product sizing and funding. Products
// absent from the maps use the configured defaults.
type StrategyDef struct {
	Name           string             `yaml:"name"`
	CSV            string             `yaml:"csv"`
	PositionSizes  map[string]float64 `yaml:"position_sizes"`
	InitialCapital map[string]float64 `yaml:"initial_capital"`
}
