package strategyset

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tearsheet/pkg/logger"
)

func loadedSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	dir := t.TempDir()
	manifest := writeFile(t, dir, "strategies.yaml", validManifest)
	writeFile(t, dir, "trend.csv", trendCSV)
	writeFile(t, dir, "meanrev.csv", meanrevCSV)

	snap, err := Load(testConfig(dir, manifest), logger.NewWriter(io.Discard))
	require.NoError(t, err)
	return snap
}

func TestSnapshotProducts(t *testing.T) {
	snap := loadedSnapshot(t)

	assert.Equal(t, []string{"ES", "NQ"}, snap.Products("Trend"))
	assert.Equal(t, []string{"CL"}, snap.Products("MeanRev"))
	assert.Nil(t, snap.Products("ghost"))
}

func TestSnapshotPortfolio(t *testing.T) {
	snap := loadedSnapshot(t)

	// Trend covers Jan 2-4, MeanRev Jan 3 and 5: outer join, fill 0
	tbl := snap.Portfolio(nil)
	require.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{"Trend", "MeanRev"}, tbl.Columns())

	trend, ok := tbl.Column("Trend")
	require.True(t, ok)
	assert.Equal(t, []float64{21, -8, 19, 0}, trend, "sized product sums per day")

	meanrev, ok := tbl.Column("MeanRev")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 4, 0, -1}, meanrev)
}

func TestSnapshotPortfolioSubset(t *testing.T) {
	snap := loadedSnapshot(t)

	tbl := snap.Portfolio([]string{"MeanRev", "ghost"})
	assert.Equal(t, []string{"MeanRev"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())
}

func TestSnapshotCapitalByProduct(t *testing.T) {
	snap := loadedSnapshot(t)

	got := snap.CapitalByProduct("Trend")
	assert.Equal(t, map[string]float64{"ES": 50000, "NQ": 25000}, got)

	// MeanRev has no capital configured: every product gets the default
	assert.Equal(t, map[string]float64{"CL": 100}, snap.CapitalByProduct("MeanRev"))
	assert.Nil(t, snap.CapitalByProduct("ghost"))
}

func TestSnapshotCapitalFor(t *testing.T) {
	snap := loadedSnapshot(t)

	assert.Equal(t, 75000.0, snap.CapitalFor("Trend", nil))
	assert.Equal(t, 50000.0, snap.CapitalFor("Trend", []string{"ES"}))
	assert.Equal(t, 100.0, snap.CapitalFor("Trend", []string{"ghost"}), "empty resolution falls back to the default")
	assert.Equal(t, 100.0, snap.CapitalFor("ghost", nil))
}

func TestSnapshotCombinedCapital(t *testing.T) {
	snap := loadedSnapshot(t)

	assert.Equal(t, 75100.0, snap.CombinedCapital(nil))
	assert.Equal(t, 100.0, snap.CombinedCapital([]string{"MeanRev"}))
	assert.Equal(t, 100.0, snap.CombinedCapital([]string{"ghost"}), "nothing selected falls back to the default")
}
