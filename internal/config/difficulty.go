package config

// DifficultyManager derives the board for each depth of a run. Depth 0 is
// the configured board; every cleared level adds one depth.
type DifficultyManager struct {
	cfg  ProgressionConfig
	base BoardConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg ProgressionConfig, base BoardConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: base}
}

// IsEnabled returns whether boards change with depth.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Board returns the board for the given depth.
func (d *DifficultyManager) Board(depth int) BoardConfig {
	b := d.base
	if !d.cfg.Enabled || depth <= 0 {
		return b
	}

	b.TrapDensity = d.Density(depth)
	if d.cfg.GrowEvery > 0 && d.cfg.GrowBy > 0 {
		grow := (depth / d.cfg.GrowEvery) * d.cfg.GrowBy
		b.Width = growTo(b.Width, grow, d.cfg.MaxWidth)
		b.Height = growTo(b.Height, grow, d.cfg.MaxHeight)
	}
	return b
}

// Density returns the trap density at depth, capped at MaxDensity.
func (d *DifficultyManager) Density(depth int) float64 {
	density := d.base.TrapDensity
	if d.cfg.Enabled && depth > 0 {
		density += float64(depth) * d.cfg.DensityStep
	}
	limit := d.cfg.MaxDensity
	if limit <= 0 || limit > 1 {
		limit = 1
	}
	if density > limit && d.base.TrapDensity <= limit {
		density = limit
	}
	return clampF(density, 0, 1)
}

func growTo(v, by, limit int) int {
	v += by
	if limit > 0 && v > limit {
		v = max(limit, v-by)
	}
	return v
}

func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}
