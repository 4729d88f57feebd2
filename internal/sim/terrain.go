package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vkoshelev/snowline/internal/config"
	"github.com/vkoshelev/snowline/internal/core"
)

// JoinMode selects how a freshly spawned segment is attached to the
// previous one. All modes produce a seam-free slope; they differ in which
// reference the vertical offset is computed from.
type JoinMode int

const (
	// JoinAnchor places the new start anchor exactly at the previous
	// segment's end anchor.
	JoinAnchor JoinMode = iota
	// JoinGround places the new start anchor at the sampled ground height
	// under the previous end anchor, absorbing interpolation error.
	JoinGround
	// JoinStartHeight derives the joint height from the previous segment's
	// start anchor plus its template's total drop.
	JoinStartHeight
)

// JoinModeFromString parses a join mode name from config or CLI.
func JoinModeFromString(s string) (JoinMode, error) {
	switch s {
	case "", "anchor":
		return JoinAnchor, nil
	case "ground":
		return JoinGround, nil
	case "start-height":
		return JoinStartHeight, nil
	default:
		return JoinAnchor, fmt.Errorf("terrain: unknown join mode %q", s)
	}
}

// String returns the config/CLI name of the mode.
func (m JoinMode) String() string {
	switch m {
	case JoinGround:
		return "ground"
	case JoinStartHeight:
		return "start-height"
	default:
		return "anchor"
	}
}

// Template is a reusable hill profile. Drops are height deltas between
// consecutive control points (positive = descend, world units before
// vertical scaling); controls are ControlSpacing apart.
type Template struct {
	Name     string
	Drops    []float64
	Weight   float64
	MinLevel float64 // Difficulty level required before this profile appears
}

// TotalDrop returns the template's start-to-end height change, scaled.
func (t *Template) TotalDrop(verticalScale float64) float64 {
	var sum float64
	for _, d := range t.Drops {
		sum += d
	}
	return sum * verticalScale
}

// defaultTemplates is the built-in hill pool. Net drop is positive on every
// profile so the mountain always descends overall; negative drops create
// the uphill rollers that form crests.
func defaultTemplates() []*Template {
	return []*Template{
		{
			Name:   "cruiser",
			Drops:  []float64{1.2, 1.2, 1.3, 1.2, 1.1, 1.2, 1.3, 1.2},
			Weight: 3,
		},
		{
			Name:   "rollers",
			Drops:  []float64{1.8, 0.6, -0.4, 1.6, 2.2, 0.4, -0.6, 1.8, 1.2},
			Weight: 3,
		},
		{
			Name:   "runout",
			Drops:  []float64{0.6, 0.3, 0.1, -0.2, -0.4, 0.2, 0.5, 0.6},
			Weight: 2,
		},
		{
			Name:     "steep",
			Drops:    []float64{0.8, 1.6, 2.4, 2.8, 2.6, 1.8, 1.0, 0.6},
			Weight:   2,
			MinLevel: 0.15,
		},
		{
			Name:     "plunge",
			Drops:    []float64{0.4, 1.0, 3.0, 3.6, 3.2, 1.4, 0.2, -0.3, 0.8},
			Weight:   1,
			MinLevel: 0.4,
		},
	}
}

// Segment is one live piece of the mountain: a template instanced at a
// world position, with start/end anchors for chaining.
type Segment struct {
	Tpl     *Template
	Start   core.Vec2 // Start anchor (world)
	End     core.Vec2 // End anchor (world)
	heights []float64 // Absolute control heights, len(Drops)+1
	spacing float64
}

func newSegment(tpl *Template, start core.Vec2, spacing, verticalScale float64) *Segment {
	heights := make([]float64, len(tpl.Drops)+1)
	heights[0] = start.Y
	for i, d := range tpl.Drops {
		heights[i+1] = heights[i] + d*verticalScale
	}
	return &Segment{
		Tpl:     tpl,
		Start:   start,
		End:     core.Vec2{X: start.X + float64(len(tpl.Drops))*spacing, Y: heights[len(heights)-1]},
		heights: heights,
		spacing: spacing,
	}
}

// Length returns the segment's horizontal extent.
func (s *Segment) Length() float64 {
	return s.End.X - s.Start.X
}

// HeightAt samples the segment's ground height at world x using cosine
// interpolation between control points. x outside the segment clamps to
// the nearest edge.
func (s *Segment) HeightAt(x float64) float64 {
	u := (x - s.Start.X) / s.spacing
	if u <= 0 {
		return s.heights[0]
	}
	last := float64(len(s.heights) - 1)
	if u >= last {
		return s.heights[len(s.heights)-1]
	}
	i := int(u)
	t := u - float64(i)
	mu := (1 - math.Cos(t*math.Pi)) / 2
	return core.LerpF(s.heights[i], s.heights[i+1], mu)
}

// Terrain maintains the ordered chain of live segments, spawning ahead of
// the player and dropping what falls behind.
type Terrain struct {
	cfg       config.TerrainConfig
	mode      JoinMode
	rng       *rand.Rand
	diff      *config.DifficultyManager
	templates []*Template
	segments  []*Segment

	spawned  int
	recycled int
}

// NewTerrain creates a generator seeded for deterministic chains.
// The first segment starts at the world origin.
func NewTerrain(seed int64, cfg config.TerrainConfig, mode JoinMode, diff *config.DifficultyManager) *Terrain {
	t := &Terrain{
		cfg:       normalizeTerrain(cfg),
		mode:      mode,
		diff:      diff,
		templates: defaultTemplates(),
	}
	t.Reset(seed)
	return t
}

// normalizeTerrain substitutes workable geometry for non-positive values.
// The spawn loop in Update needs segments with positive length to advance
// End.X past the lookahead window.
func normalizeTerrain(cfg config.TerrainConfig) config.TerrainConfig {
	if cfg.ControlSpacing <= 0 {
		cfg.ControlSpacing = 1
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = cfg.ControlSpacing * 10
	}
	return cfg
}

// Reset clears the chain and reseeds the RNG.
func (t *Terrain) Reset(seed int64) {
	t.rng = rand.New(rand.NewSource(seed))
	t.segments = t.segments[:0]
	t.spawned = 0
	t.recycled = 0

	// Opening run is always a cruiser so every seed starts skiable.
	opening := newSegment(t.templates[0], core.Vec2{}, t.cfg.ControlSpacing, t.cfg.VerticalScale)
	t.segments = append(t.segments, opening)
	t.spawned++
}

// Update spawns segments within the lookahead of the player and drops
// segments that ended far enough behind. Score/ticks feed the difficulty
// gate on steeper templates.
func (t *Terrain) Update(playerX float64, score, ticks int) {
	for t.lastSegment().End.X-playerX < t.cfg.Lookahead {
		t.spawnNext(score, ticks)
	}

	for len(t.segments) > 1 && t.segments[0].End.X < playerX-t.cfg.Behind {
		t.segments = t.segments[1:]
		t.recycled++
	}
}

func (t *Terrain) lastSegment() *Segment {
	return t.segments[len(t.segments)-1]
}

// spawnNext chains a random template onto the last segment using the
// configured join mode.
func (t *Terrain) spawnNext(score, ticks int) {
	prev := t.lastSegment()
	tpl := t.pickTemplate(score, ticks)

	var start core.Vec2
	switch t.mode {
	case JoinGround:
		start = core.Vec2{X: prev.End.X, Y: prev.HeightAt(prev.End.X)}
	case JoinStartHeight:
		start = core.Vec2{X: prev.End.X, Y: prev.Start.Y + prev.Tpl.TotalDrop(t.cfg.VerticalScale)}
	default: // JoinAnchor
		start = prev.End
	}

	t.segments = append(t.segments, newSegment(tpl, start, t.cfg.ControlSpacing, t.cfg.VerticalScale))
	t.spawned++
}

// pickTemplate draws a weighted random template from the pool admitted at
// the current difficulty level.
func (t *Terrain) pickTemplate(score, ticks int) *Template {
	level := t.diff.Level(score, ticks)

	var total float64
	for _, tpl := range t.templates {
		if tpl.MinLevel <= level {
			total += tpl.Weight
		}
	}
	if total <= 0 {
		return t.templates[0]
	}

	pick := t.rng.Float64() * total
	for _, tpl := range t.templates {
		if tpl.MinLevel > level {
			continue
		}
		pick -= tpl.Weight
		if pick < 0 {
			return tpl
		}
	}
	return t.templates[0]
}

// HeightAt returns ground height at world x. Outside the live range the
// edge slope is extrapolated so probes never fall off the world.
func (t *Terrain) HeightAt(x float64) float64 {
	first := t.segments[0]
	if x < first.Start.X {
		slope := (first.heights[1] - first.heights[0]) / first.spacing
		return first.Start.Y + (x-first.Start.X)*slope
	}

	for _, seg := range t.segments {
		if x <= seg.End.X {
			return seg.HeightAt(x)
		}
	}

	last := t.lastSegment()
	n := len(last.heights)
	slope := (last.heights[n-1] - last.heights[n-2]) / last.spacing
	return last.End.Y + (x-last.End.X)*slope
}

// SlopeAt returns dHeight/dx at world x via central difference.
// Positive means descending (y grows downward).
func (t *Terrain) SlopeAt(x float64) float64 {
	h := t.cfg.ControlSpacing / 8
	return (t.HeightAt(x+h) - t.HeightAt(x-h)) / (2 * h)
}

// Segments returns the live chain, ordered by x.
func (t *Terrain) Segments() []*Segment {
	return t.segments
}

// Spawned returns the total number of segments created since Reset.
func (t *Terrain) Spawned() int {
	return t.spawned
}

// Recycled returns the number of segments dropped behind the player.
func (t *Terrain) Recycled() int {
	return t.recycled
}
