package sim

import (
	"testing"

	"github.com/vkoshelev/snowline/internal/config"
)

func TestAvalancheGapNeverExceedsMax(t *testing.T) {
	cfg := config.Default()
	diff := config.NewDifficultyManager(cfg.Difficulty)
	ac := NewAvalancheController(cfg.Avalanche, diff, 60)

	// A player sprinting at twice the avalanche's cap forces the clamp.
	playerX := 0.0
	ac.Reset(playerX)
	for i := 0; i < 3600; i++ {
		playerX += 1.0
		ac.Step(playerX, 28, i/4, i)

		maxGap := diff.Gap(cfg.Avalanche.MaxGap, i/4, i)
		if gap := ac.Gap(playerX); gap > maxGap+1e-9 {
			t.Fatalf("Tick %d: gap %.3f exceeds allowed %.3f", i, gap, maxGap)
		}
	}

	if ac.Teleports() == 0 {
		t.Error("Runaway player should have triggered the gap clamp")
	}
	if ac.A.Caught {
		t.Error("A player holding the clamped gap must not be caught")
	}
}

func TestAvalancheGracePeriod(t *testing.T) {
	av := config.Default().Avalanche
	av.GracePeriod = 5
	ac := NewAvalancheController(av, testDifficulty(), 60)

	// Player parked right on the front: within catch distance from tick one.
	ac.Reset(0)
	ac.A.FrontX = 0

	ac.Step(0, 0, 0, 0)
	if ac.A.Caught {
		t.Fatal("Caught during the grace period")
	}
	if !ac.InGrace() {
		t.Error("InGrace should report true before the grace period ends")
	}

	ac.A.Elapsed = av.GracePeriod
	ac.A.FrontX = 0
	ac.Step(0, 0, 0, 0)
	if !ac.A.Caught {
		t.Error("Past the grace period an overlapping front must catch")
	}
}

func TestAvalancheCatchesStoppedPlayer(t *testing.T) {
	av := config.Default().Avalanche
	av.GracePeriod = 0
	ac := NewAvalancheController(av, testDifficulty(), 60)
	ac.Reset(0)

	caughtAt := -1
	for i := 0; i < 1200; i++ {
		ac.Step(0, 0, 0, i)
		if ac.A.Caught {
			caughtAt = i
			break
		}
	}

	if caughtAt < 0 {
		t.Fatal("A stopped player was never caught")
	}
}

func TestAvalancheStepBonuses(t *testing.T) {
	cfg := config.Default()
	ac := NewAvalancheController(cfg.Avalanche, testDifficulty(), 60)
	ac.Reset(0)

	playerX := 0.0
	for i := 0; i < 1260; i++ { // 21 seconds at 60hz
		playerX += 28.0 / 60
		ac.Step(playerX, 28, 0, i)
	}

	if got := ac.StepBonuses(); got != 2 {
		t.Errorf("StepBonuses after 21s = %d, want 2 (interval %.0fs)", got, cfg.Avalanche.StepInterval)
	}
}

func TestAvalancheCatchupAgainstSlowPlayer(t *testing.T) {
	av := config.Default().Avalanche
	av.GracePeriod = 1000 // Keep catch detection out of the way
	slow := NewAvalancheController(av, testDifficulty(), 60)
	fast := NewAvalancheController(av, testDifficulty(), 60)
	slow.Reset(1000)
	fast.Reset(1000)

	for i := 0; i < 300; i++ {
		slow.Step(1000, av.SlowThreshold-5, 0, i)
		fast.Step(1000, av.SlowThreshold+5, 0, i)
	}

	if slow.A.Speed <= fast.A.Speed {
		t.Errorf("Catch-up accel missing: slow-player chase at %.2f, normal at %.2f",
			slow.A.Speed, fast.A.Speed)
	}
}

func TestAvalancheFrozenAfterCatch(t *testing.T) {
	av := config.Default().Avalanche
	av.GracePeriod = 0
	ac := NewAvalancheController(av, testDifficulty(), 60)
	ac.Reset(0)
	ac.A.FrontX = 0
	ac.Step(0, 0, 0, 0)
	if !ac.A.Caught {
		t.Fatal("Setup failed to produce a catch")
	}

	front := ac.A.FrontX
	ac.Step(100, 28, 0, 1)
	if ac.A.FrontX != front {
		t.Error("A finished avalanche should not keep moving")
	}
}
