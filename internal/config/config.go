// Package config provides YAML-based game configuration loading and
// difficulty management for snowline.
package config

// Config contains all tunable parameters for a snowline run.
type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Tuck       TuckConfig       `yaml:"tuck"`
	Launch     LaunchConfig     `yaml:"launch"`
	Avalanche  AvalancheConfig  `yaml:"avalanche"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Render     RenderConfig     `yaml:"render"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the skier's slope-following physics.
// Speeds are world units per second, accelerations per second squared.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	BaseDrag       float64 `yaml:"base_drag"`       // Fraction of speed shed per second
	SpeedDamping   float64 `yaml:"speed_damping"`   // Exponential approach rate toward target speed
	DownhillFactor float64 `yaml:"downhill_factor"` // Scales gravity projection while descending
	UphillFactor   float64 `yaml:"uphill_factor"`   // Scales gravity projection while climbing
	StickThreshold float64 `yaml:"stick_threshold"` // Max gap snapped back to ground per tick
}

// TuckConfig defines the tuck input and its physics modifiers.
type TuckConfig struct {
	AccelFactor  float64 `yaml:"accel_factor"`   // Extra downhill acceleration while tucked
	DragFactor   float64 `yaml:"drag_factor"`    // Drag while tucked (replaces base_drag)
	UphillRelief float64 `yaml:"uphill_relief"`  // Reduces uphill penalty while tucked
	HoldTicks    int     `yaml:"hold_ticks"`     // Ticks a tuck key event keeps the tuck held
	MinHoldTicks int     `yaml:"min_hold_ticks"` // Minimum held ticks for a release to launch
}

// LaunchConfig defines the tuck-release launch and landing parameters.
type LaunchConfig struct {
	Factor         float64 `yaml:"factor"`           // Tangential speed converted to vertical impulse
	ReleaseDecay   float64 `yaml:"release_decay"`    // Per-tick decay of launch efficiency after a crest
	CrestLookahead float64 `yaml:"crest_lookahead"`  // World units ahead sampled for crest detection
	CrestDelta     float64 `yaml:"crest_delta"`      // Slope flattening that counts as a crest
	CrestBonus     float64 `yaml:"crest_bonus"`      // Impulse bonus for releasing right at a crest
	GraceTicks     int     `yaml:"grace_ticks"`      // Window after a crest granting the bonus
	MaxImpulse     float64 `yaml:"max_impulse"`      // Vertical launch speed cap
	LandingPenalty float64 `yaml:"landing_penalty"`  // Speed fraction lost at the worst mismatch
	MaxMismatchDeg float64 `yaml:"max_mismatch_deg"` // Mismatch angle treated as the worst case
}

// AvalancheConfig defines the pursuit controller.
// Distances are world units, times in seconds.
type AvalancheConfig struct {
	StartGap      float64 `yaml:"start_gap"`
	MaxGap        float64 `yaml:"max_gap"`        // Gap beyond this teleport-clamps the front
	CatchDistance float64 `yaml:"catch_distance"` // Gap at or below this ends the run
	BaseSpeed     float64 `yaml:"base_speed"`
	Accel         float64 `yaml:"accel"`
	MaxSpeed      float64 `yaml:"max_speed"`
	StepInterval  float64 `yaml:"step_interval"` // Seconds between flat speed step bonuses
	StepBonus     float64 `yaml:"step_bonus"`
	SlowThreshold float64 `yaml:"slow_threshold"` // Player speed below this triggers catch-up
	CatchupAccel  float64 `yaml:"catchup_accel"`
	GracePeriod   float64 `yaml:"grace_period"` // Seconds at run start with catching disabled
}

// TerrainConfig defines the endless hill generator.
type TerrainConfig struct {
	Lookahead      float64 `yaml:"lookahead"`       // Spawn a segment when the last end is this close
	Behind         float64 `yaml:"behind"`          // Drop segments this far behind the player
	ControlSpacing float64 `yaml:"control_spacing"` // World units between profile control points
	VerticalScale  float64 `yaml:"vertical_scale"`  // Multiplies template drops
	Join           string  `yaml:"join"`            // anchor | ground | start-height
}

// RenderConfig maps world units to terminal cells.
type RenderConfig struct {
	CellsPerUnitX float64 `yaml:"cells_per_unit_x"`
	CellsPerUnitY float64 `yaml:"cells_per_unit_y"`
	PlayerColumn  float64 `yaml:"player_column"` // Fraction of screen width the skier sits at
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Avalanche speed-cap multiplier at max difficulty
	GapReduction    float64 `yaml:"gap_reduction"`    // Max-gap shrink (world units) at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
