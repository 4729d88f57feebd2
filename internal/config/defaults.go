package config

import (
	_ "embed"
)

//go:embed defaults/snowline.yaml
var defaultYAML []byte

// Default returns the hand-tuned default configuration.
// Kept in sync with defaults/snowline.yaml, which is the canonical copy
// users get from `snowline play --config`.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:        9.8,
			MinSpeed:       4.0,
			MaxSpeed:       28.0,
			BaseDrag:       0.12,
			SpeedDamping:   2.2,
			DownhillFactor: 1.0,
			UphillFactor:   1.8,
			StickThreshold: 0.35,
		},
		Tuck: TuckConfig{
			AccelFactor:  1.6,
			DragFactor:   0.04,
			UphillRelief: 0.55,
			HoldTicks:    14,
			MinHoldTicks: 6,
		},
		Launch: LaunchConfig{
			Factor:         0.45,
			ReleaseDecay:   0.88,
			CrestLookahead: 3.0,
			CrestDelta:     0.18,
			CrestBonus:     0.5,
			GraceTicks:     18,
			MaxImpulse:     9.0,
			LandingPenalty: 0.35,
			MaxMismatchDeg: 60,
		},
		Avalanche: AvalancheConfig{
			StartGap:      30.0,
			MaxGap:        45.0,
			CatchDistance: 1.5,
			BaseSpeed:     6.0,
			Accel:         0.35,
			MaxSpeed:      24.0,
			StepInterval:  10.0,
			StepBonus:     1.2,
			SlowThreshold: 7.0,
			CatchupAccel:  0.9,
			GracePeriod:   8.0,
		},
		Terrain: TerrainConfig{
			Lookahead:      80.0,
			Behind:         60.0,
			ControlSpacing: 4.0,
			VerticalScale:  1.0,
			Join:           "anchor",
		},
		Render: RenderConfig{
			CellsPerUnitX: 2.0,
			CellsPerUnitY: 1.0,
			PlayerColumn:  0.33,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.35,
				GapReduction:    12.0,
			},
		},
	}
}
