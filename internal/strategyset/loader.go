package strategyset

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wonny/tearsheet/internal/timeseries"
	"github.com/wonny/tearsheet/pkg/config"
	"github.com/wonny/tearsheet/pkg/logger"
)

// LoadManifest reads the YAML manifest with strict decoding: unknown or
// misspelled fields fail immediately instead of silently dropping config.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Load reads the manifest and every strategy CSV, applies position sizes
// and returns the immutable snapshot the handlers and commands run over.
// A strategy whose CSV is missing or malformed is logged and skipped; a
// bad file must not take down the strategies that do load.
func Load(cfg *config.Config, log *logger.Logger) (*Snapshot, error) {
	m, err := LoadManifest(cfg.StrategiesFile)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		strategies:     make(map[string]*Strategy, len(m.Strategies)),
		defaultCapital: cfg.DefaultInitialCapital,
	}

	for _, def := range m.Strategies {
		path := def.CSV
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.DataDir, path)
		}

		table, err := timeseries.ReadCSV(path)
		if err != nil {
			log.WithError(err).WithField("strategy", def.Name).Warn("skipping strategy: csv load failed")
			continue
		}

		table = timeseries.ApplyPositionSizes(table, def.PositionSizes, cfg.DefaultPositionSize)

		snap.names = append(snap.names, def.Name)
		snap.strategies[def.Name] = &Strategy{def: def, table: table}

		log.WithFields(map[string]interface{}{
			"strategy": def.Name,
			"products": len(table.Columns()),
			"rows":     table.Len(),
		}).Info("strategy loaded")
	}

	if len(snap.names) == 0 {
		log.Warn("no strategies loaded; all endpoints will serve empty data")
	}

	return snap, nil
}
