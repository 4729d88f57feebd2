package sim

import (
	"github.com/vkoshelev/snowline/internal/config"
)

// Avalanche holds the pursuer's simulation state.
type Avalanche struct {
	FrontX  float64 // Leading edge of the slide (world x)
	Speed   float64
	Elapsed float64 // Seconds since the run started
	Caught  bool

	stepTimer  float64
	stepCount  int
	teleported int
}

// AvalancheController drives the pursuit each tick: a capped speed ramp
// with periodic step bonuses, catch-up acceleration against slow players,
// gap clamping via teleport, and grace-period catch detection.
type AvalancheController struct {
	cfg  config.AvalancheConfig
	diff *config.DifficultyManager
	dt   float64

	A Avalanche
}

// NewAvalancheController creates a controller starting StartGap behind playerX.
func NewAvalancheController(cfg config.AvalancheConfig, diff *config.DifficultyManager, tickRate int) *AvalancheController {
	ac := &AvalancheController{
		cfg:  cfg,
		diff: diff,
		dt:   1.0 / float64(tickRate),
	}
	ac.Reset(0)
	return ac
}

// Reset restarts the pursuit StartGap behind playerX at base speed.
func (ac *AvalancheController) Reset(playerX float64) {
	ac.A = Avalanche{
		FrontX: playerX - ac.cfg.StartGap,
		Speed:  ac.cfg.BaseSpeed,
	}
}

// Step advances the avalanche one tick against the player's position and
// current speed. Score/ticks feed the difficulty scaling of the speed cap
// and the allowed gap.
func (ac *AvalancheController) Step(playerX, playerSpeed float64, score, ticks int) {
	a := &ac.A
	if a.Caught {
		return
	}

	a.Elapsed += ac.dt

	a.Speed += ac.cfg.Accel * ac.dt

	a.stepTimer += ac.dt
	if a.stepTimer >= ac.cfg.StepInterval {
		a.stepTimer -= ac.cfg.StepInterval
		a.Speed += ac.cfg.StepBonus
		a.stepCount++
	}

	// A dawdling player never escapes: extra push below the slow threshold.
	if playerSpeed < ac.cfg.SlowThreshold {
		a.Speed += ac.cfg.CatchupAccel * ac.dt
	}

	maxSpeed := ac.diff.Speed(ac.cfg.MaxSpeed, score, ticks)
	if a.Speed > maxSpeed {
		a.Speed = maxSpeed
	}

	a.FrontX += a.Speed * ac.dt

	// Clamp the gap: a runaway player drags the slide along behind them.
	maxGap := ac.diff.Gap(ac.cfg.MaxGap, score, ticks)
	if playerX-a.FrontX > maxGap {
		a.FrontX = playerX - maxGap
		a.teleported++
	}

	if a.Elapsed >= ac.cfg.GracePeriod && playerX-a.FrontX <= ac.cfg.CatchDistance {
		a.Caught = true
	}
}

// Gap returns the horizontal distance between the player and the front.
func (ac *AvalancheController) Gap(playerX float64) float64 {
	return playerX - ac.A.FrontX
}

// InGrace reports whether catch detection is still disabled.
func (ac *AvalancheController) InGrace() bool {
	return ac.A.Elapsed < ac.cfg.GracePeriod
}

// StepBonuses returns how many periodic speed steps have fired.
func (ac *AvalancheController) StepBonuses() int {
	return ac.A.stepCount
}

// Teleports returns how many times the gap clamp fired.
func (ac *AvalancheController) Teleports() int {
	return ac.A.teleported
}
