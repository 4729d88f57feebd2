package sim

import (
	"math"
	"testing"

	"github.com/vkoshelev/snowline/internal/config"
	"github.com/vkoshelev/snowline/internal/core"
)

func testPlayer(seed int64) (*PlayerController, *Terrain, *config.Config) {
	cfg := config.Default()
	tr := NewTerrain(seed, cfg.Terrain, JoinAnchor, testDifficulty())
	pc := NewPlayerController(&cfg, tr, 60)
	pc.Reset(6)
	return pc, tr, &cfg
}

func TestPlayerSpeedAlwaysClamped(t *testing.T) {
	pc, tr, cfg := testPlayer(11)

	for i := 0; i < 2400; i++ {
		tr.Update(pc.P.Pos.X, 0, i)
		pc.Step(i%40 < 18) // Alternate tucked and open runs
		if pc.P.Speed < cfg.Physics.MinSpeed-1e-9 || pc.P.Speed > cfg.Physics.MaxSpeed+1e-9 {
			t.Fatalf("Tick %d: speed %.4f outside [%.1f, %.1f]",
				i, pc.P.Speed, cfg.Physics.MinSpeed, cfg.Physics.MaxSpeed)
		}
	}
}

func TestPlayerAcceleratesDownhill(t *testing.T) {
	pc, tr, cfg := testPlayer(11)

	for i := 0; i < 300; i++ {
		tr.Update(pc.P.Pos.X, 0, i)
		pc.Step(false)
	}

	if pc.P.Speed <= cfg.Physics.MinSpeed {
		t.Errorf("After 5s of descent speed is still %.2f", pc.P.Speed)
	}
	if pc.P.Distance <= 0 {
		t.Errorf("Distance did not advance: %.2f", pc.P.Distance)
	}
}

func TestTuckOutrunsOpenStance(t *testing.T) {
	tucked, trA, _ := testPlayer(11)
	open, trB, _ := testPlayer(11)

	for i := 0; i < 300; i++ {
		trA.Update(tucked.P.Pos.X, 0, i)
		trB.Update(open.P.Pos.X, 0, i)
		tucked.Step(true)
		open.Step(false)
	}

	if tucked.P.Distance <= open.P.Distance {
		t.Errorf("Tucked run covered %.2f, open run %.2f", tucked.P.Distance, open.P.Distance)
	}
}

func TestTuckInputLatches(t *testing.T) {
	pc, tr, cfg := testPlayer(11)
	tr.Update(pc.P.Pos.X, 0, 0)

	pc.Step(true)
	if !pc.P.Tucking {
		t.Fatal("Single tuck event should start the tuck")
	}

	// Without repeats the latch decays and releases after HoldTicks.
	for i := 0; i < cfg.Tuck.HoldTicks; i++ {
		tr.Update(pc.P.Pos.X, 0, i)
		pc.Step(false)
	}
	if pc.P.Tucking {
		t.Error("Tuck should have released once the latch expired")
	}
	if pc.SinceRelease() > cfg.Tuck.HoldTicks {
		t.Errorf("SinceRelease = %d, expected a recent release", pc.SinceRelease())
	}
}

func TestLaunchAtCrest(t *testing.T) {
	pc, _, _ := testPlayer(11)
	pc.P.Speed = 20
	pc.P.sinceCrest = 0

	pc.launch()

	if pc.P.Grounded {
		t.Fatal("Launch at the crest should leave the ground")
	}
	if pc.P.Vel.Y >= 0 {
		t.Errorf("Launch impulse should point up (negative y), got %.3f", pc.P.Vel.Y)
	}
	if pc.P.Launches != 1 {
		t.Errorf("Launches = %d, want 1", pc.P.Launches)
	}
}

func TestLaunchFizzlesLongAfterCrest(t *testing.T) {
	pc, _, _ := testPlayer(11)
	pc.P.Speed = 20
	pc.P.sinceCrest = 500

	pc.launch()

	if !pc.P.Grounded {
		t.Error("A release far past the crest should not launch")
	}
	if pc.P.Launches != 0 {
		t.Errorf("Launches = %d, want 0", pc.P.Launches)
	}
}

func TestLaunchImpulseCapped(t *testing.T) {
	cfg := config.Default()
	cfg.Launch.Factor = 10 // Absurd factor to force the cap
	tr := NewTerrain(11, cfg.Terrain, JoinAnchor, testDifficulty())
	pc := NewPlayerController(&cfg, tr, 60)
	pc.Reset(6)
	pc.P.Speed = cfg.Physics.MaxSpeed
	pc.P.sinceCrest = 0
	before := pc.P.Vel.Y

	pc.launch()

	if got := before - pc.P.Vel.Y; got > cfg.Launch.MaxImpulse+1e-9 {
		t.Errorf("Impulse %.3f exceeds cap %.1f", got, cfg.Launch.MaxImpulse)
	}
}

func TestShortTuckDoesNotLaunch(t *testing.T) {
	cfg := config.Default()
	cfg.Tuck.HoldTicks = 2
	cfg.Tuck.MinHoldTicks = 6
	tr := NewTerrain(11, cfg.Terrain, JoinAnchor, testDifficulty())
	pc := NewPlayerController(&cfg, tr, 60)
	pc.Reset(6)

	tr.Update(pc.P.Pos.X, 0, 0)
	pc.Step(true)
	for i := 0; i < 4; i++ {
		tr.Update(pc.P.Pos.X, 0, i)
		pc.Step(false)
	}

	if pc.P.Launches != 0 {
		t.Errorf("A tap shorter than MinHoldTicks launched anyway: %d", pc.P.Launches)
	}
}

func TestLandingPenaltyBleedsSpeed(t *testing.T) {
	pc, tr, cfg := testPlayer(11)
	tr.Update(6, 0, 0)

	x := 20.0
	ground := tr.HeightAt(x)
	pc.P.Pos = core.Vec2{X: x, Y: ground + 0.1}
	pc.P.Grounded = false
	pc.P.Vel = core.Vec2{X: 4, Y: 22} // Nearly straight down onto the slope

	incoming := pc.P.Vel.Len()
	pc.land(ground)

	if !pc.P.Grounded {
		t.Fatal("land should re-ground the skier")
	}
	if pc.P.Pos.Y != ground {
		t.Errorf("Landed at y=%.4f, ground is %.4f", pc.P.Pos.Y, ground)
	}
	if pc.P.Speed >= incoming {
		t.Errorf("Hard mismatched landing kept speed %.2f of incoming %.2f", pc.P.Speed, incoming)
	}
	if pc.P.Speed < cfg.Physics.MinSpeed {
		t.Errorf("Landing dropped below minimum speed: %.2f", pc.P.Speed)
	}
}

func TestCleanLandingKeepsMoreSpeed(t *testing.T) {
	pc, tr, _ := testPlayer(11)
	tr.Update(6, 0, 0)

	x := 20.0
	ground := tr.HeightAt(x)
	slope := tr.SlopeAt(x)
	tan := tangent(slope)

	// Clean: flight already along the slope. Hard: falling steeply.
	pc.P.Pos = core.Vec2{X: x, Y: ground + 0.1}
	pc.P.Vel = tan.Scale(18)
	pc.land(ground)
	clean := pc.P.Speed

	pc.P.Pos = core.Vec2{X: x, Y: ground + 0.1}
	pc.P.Grounded = false
	pc.P.Vel = core.Vec2{X: 2, Y: 25}
	pc.land(ground)
	hard := pc.P.Speed

	if clean <= hard {
		t.Errorf("Clean landing speed %.2f should beat hard landing %.2f", clean, hard)
	}
}

func TestAirborneFallsAndLands(t *testing.T) {
	pc, tr, _ := testPlayer(11)
	tr.Update(6, 0, 0)

	pc.P.Grounded = false
	pc.P.Pos.Y = tr.HeightAt(pc.P.Pos.X) - 3
	pc.P.Vel = core.Vec2{X: 10, Y: -2}

	landed := false
	for i := 0; i < 600; i++ {
		tr.Update(pc.P.Pos.X, 0, i)
		pc.Step(false)
		if pc.P.Grounded {
			landed = true
			break
		}
	}

	if !landed {
		t.Fatal("Airborne skier never came back down")
	}
	if pc.P.AirTicks == 0 {
		t.Error("AirTicks should count the flight")
	}
}

func TestTangentIsUnit(t *testing.T) {
	for _, slope := range []float64{-2, -0.5, 0, 0.3, 1, 4} {
		v := tangent(slope)
		if math.Abs(v.Len()-1) > 1e-12 {
			t.Errorf("tangent(%.1f) has length %.12f", slope, v.Len())
		}
		if v.X <= 0 {
			t.Errorf("tangent(%.1f) should point in the direction of travel, got x=%.3f", slope, v.X)
		}
	}
}
