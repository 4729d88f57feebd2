package sim

import (
	"math"

	"github.com/vkoshelev/snowline/internal/config"
	"github.com/vkoshelev/snowline/internal/core"
)

// Player holds the skier's full simulation state, mutated once per tick.
type Player struct {
	Pos         core.Vec2
	Vel         core.Vec2 // World units per second
	Speed       float64   // Tangential speed while grounded
	TargetSpeed float64   // Speed the damping chases
	Grounded    bool
	Tucking     bool
	SlopeAngle  float64 // Radians, positive = descending
	Distance    float64 // Total horizontal distance traveled
	MaxSpeed    float64 // Fastest speed reached this run
	AirTicks    int     // Total ticks spent airborne
	Launches    int     // Successful tuck-release launches

	tuckLatch    int // Remaining ticks the tuck input stays held
	tuckHeld     int // Consecutive ticks the current tuck has been held
	sinceCrest   int // Ticks since the last crest passed underfoot
	sinceRelease int // Ticks since the last tuck release
}

// PlayerController integrates the skier against the terrain each tick:
// slope-projected gravity, tuck modifiers, exponential speed damping,
// crest-timed launches, ground sticking, and landing penalties.
type PlayerController struct {
	cfg     *config.Config
	terrain *Terrain
	dt      float64

	P Player
}

// NewPlayerController creates a controller and grounds the skier at startX.
func NewPlayerController(cfg *config.Config, terrain *Terrain, tickRate int) *PlayerController {
	pc := &PlayerController{
		cfg:     cfg,
		terrain: terrain,
		dt:      1.0 / float64(tickRate),
	}
	pc.Reset(0)
	return pc
}

// Reset re-grounds the skier at startX with minimum speed.
func (pc *PlayerController) Reset(startX float64) {
	slope := pc.terrain.SlopeAt(startX)
	pc.P = Player{
		Pos:         core.Vec2{X: startX, Y: pc.terrain.HeightAt(startX)},
		Speed:       pc.cfg.Physics.MinSpeed,
		TargetSpeed: pc.cfg.Physics.MinSpeed,
		Grounded:    true,
		SlopeAngle:  math.Atan(slope),
		sinceCrest:  1 << 20,
	}
	pc.P.Vel = tangent(slope).Scale(pc.P.Speed)
}

// Step advances the skier one tick. tuck is the raw binary input for this
// frame; key events latch it for a few ticks since terminals deliver no
// key-up.
func (pc *PlayerController) Step(tuck bool) {
	p := &pc.P

	// Latch the tuck input.
	if tuck {
		p.tuckLatch = pc.cfg.Tuck.HoldTicks
	} else if p.tuckLatch > 0 {
		p.tuckLatch--
	}
	nowTucking := p.tuckLatch > 0
	released := p.Tucking && !nowTucking
	heldTicks := p.tuckHeld
	if nowTucking {
		p.tuckHeld++
	} else {
		p.tuckHeld = 0
	}
	p.Tucking = nowTucking

	if p.Grounded {
		pc.stepGrounded(nowTucking, released, heldTicks)
	} else {
		pc.stepAirborne()
	}

	if released {
		p.sinceRelease = 0
	} else if p.sinceRelease < 1<<20 {
		p.sinceRelease++
	}

	if p.Vel.X > 0 {
		p.Distance += p.Vel.X * pc.dt
	}
	if p.Speed > p.MaxSpeed {
		p.MaxSpeed = p.Speed
	}
}

func (pc *PlayerController) stepGrounded(tucking, released bool, heldTicks int) {
	p := &pc.P
	phy := &pc.cfg.Physics
	tk := &pc.cfg.Tuck

	slope := pc.terrain.SlopeAt(p.Pos.X)
	p.SlopeAngle = math.Atan(slope)

	// Crest tracking: the slope ahead flattening against the local slope
	// while descending marks a crest underfoot.
	ahead := pc.terrain.SlopeAt(p.Pos.X + pc.cfg.Launch.CrestLookahead)
	if slope > 0 && slope-ahead >= pc.cfg.Launch.CrestDelta {
		p.sinceCrest = 0
	} else if p.sinceCrest < 1<<20 {
		p.sinceCrest++
	}

	// Gravity projected onto the slope, shaped by tuck and direction.
	accel := phy.Gravity * math.Sin(p.SlopeAngle)
	if accel >= 0 {
		accel *= phy.DownhillFactor
		if tucking {
			accel *= tk.AccelFactor
		}
	} else {
		accel *= phy.UphillFactor
		if tucking {
			accel *= tk.UphillRelief
		}
	}

	drag := phy.BaseDrag
	if tucking {
		drag = tk.DragFactor
	}

	p.TargetSpeed += accel * pc.dt
	p.TargetSpeed -= p.TargetSpeed * drag * pc.dt
	p.TargetSpeed = core.ClampF(p.TargetSpeed, phy.MinSpeed, phy.MaxSpeed)

	// Exponential damping toward the target keeps speed changes smooth.
	p.Speed += (p.TargetSpeed - p.Speed) * (1 - math.Exp(-phy.SpeedDamping*pc.dt))
	p.Speed = core.ClampF(p.Speed, phy.MinSpeed, phy.MaxSpeed)

	p.Vel = tangent(slope).Scale(p.Speed)

	if released && heldTicks >= tk.MinHoldTicks {
		pc.launch()
		if !p.Grounded {
			// The launch impulse takes over; integrate airborne next tick.
			p.Pos = p.Pos.Add(p.Vel.Scale(pc.dt))
			return
		}
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(pc.dt))

	// Ground stick: small gaps snap back to the snow, larger ones mean the
	// crest outran us and we are airborne.
	ground := pc.terrain.HeightAt(p.Pos.X)
	gapBelow := ground - p.Pos.Y
	stick := phy.StickThreshold * (1 + p.Speed/phy.MaxSpeed)
	if gapBelow > stick {
		p.Grounded = false
	} else {
		p.Pos.Y = ground
	}
}

// launch converts stored tangential speed into a vertical impulse. The
// efficiency decays per tick past the crest and gets a proximity bonus
// inside the grace window, so late releases fizzle instead of cutting off.
func (pc *PlayerController) launch() {
	p := &pc.P
	ln := &pc.cfg.Launch

	timing := math.Pow(ln.ReleaseDecay, float64(p.sinceCrest))
	crestFactor := 0.0
	if p.sinceCrest <= ln.GraceTicks {
		crestFactor = 1 - float64(p.sinceCrest)/float64(ln.GraceTicks+1)
	}

	impulse := p.Speed * ln.Factor * timing * (1 + ln.CrestBonus*crestFactor)
	if impulse > ln.MaxImpulse {
		impulse = ln.MaxImpulse
	}
	if impulse < 0.05 {
		return // Released far past the crest; nothing left to convert.
	}

	p.Vel.Y -= impulse // Up is negative y
	p.Grounded = false
	p.Launches++
}

func (pc *PlayerController) stepAirborne() {
	p := &pc.P
	p.AirTicks++

	p.Vel.Y += pc.cfg.Physics.Gravity * pc.dt
	p.Pos = p.Pos.Add(p.Vel.Scale(pc.dt))

	ground := pc.terrain.HeightAt(p.Pos.X)
	if p.Pos.Y >= ground {
		pc.land(ground)
	}
}

// land re-grounds the skier, bleeding speed in proportion to how far the
// flight direction disagrees with the slope being landed on.
func (pc *PlayerController) land(ground float64) {
	p := &pc.P
	phy := &pc.cfg.Physics
	ln := &pc.cfg.Launch

	slope := pc.terrain.SlopeAt(p.Pos.X)
	tan := tangent(slope)

	mismatch := p.Vel.AngleTo(tan)
	maxMismatch := ln.MaxMismatchDeg * math.Pi / 180
	if maxMismatch <= 0 {
		maxMismatch = math.Pi / 2
	}
	penalty := ln.LandingPenalty * core.ClampF(mismatch/maxMismatch, 0, 1)

	speed := math.Abs(p.Vel.Dot(tan)) * (1 - penalty)
	p.Speed = core.ClampF(speed, phy.MinSpeed, phy.MaxSpeed)
	p.TargetSpeed = p.Speed

	p.Pos.Y = ground
	p.Grounded = true
	p.SlopeAngle = math.Atan(slope)
	p.Vel = tan.Scale(p.Speed)
}

// SinceRelease returns ticks since the last tuck release.
func (pc *PlayerController) SinceRelease() int {
	return pc.P.sinceRelease
}

// tangent returns the unit downhill-pointing ground direction for a slope.
func tangent(slope float64) core.Vec2 {
	inv := 1 / math.Sqrt(1+slope*slope)
	return core.Vec2{X: inv, Y: slope * inv}
}
