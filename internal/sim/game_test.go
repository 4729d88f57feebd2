package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vkoshelev/snowline/internal/config"
	"github.com/vkoshelev/snowline/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func runTicks(g *Game, n int, tuck func(tick int) bool) core.GameState {
	var last core.StepResult
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		if tuck != nil && tuck(i) {
			in.Set(core.ActionTuck)
		}
		last = g.Step(in)
	}
	return last.State
}

func TestGameDeterminism(t *testing.T) {
	pattern := func(i int) bool { return i%50 < 20 }

	g1 := New()
	g1.Reset(testRuntime(1234))
	s1 := runTicks(g1, 900, pattern)

	g2 := New()
	g2.Reset(testRuntime(1234))
	s2 := runTicks(g2, 900, pattern)

	if s1.Score != s2.Score || s1.Distance != s2.Distance || s1.Gap != s2.Gap {
		t.Errorf("Same seed and inputs diverged: %+v vs %+v", s1, s2)
	}
}

func TestGameResetClearsState(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	runTicks(g, 300, nil)

	if g.State().Distance <= 0 {
		t.Fatal("Run did not advance before reset")
	}

	g.Reset(testRuntime(43))
	st := g.State()
	if st.Score != 0 || st.Distance != 0 || st.GameOver || st.Paused {
		t.Errorf("Reset left state behind: %+v", st)
	}
}

func TestGamePauseFreezesRun(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	runTicks(g, 120, nil)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("Pause action did not pause")
	}

	before := g.State().Distance
	runTicks(g, 60, nil)
	if g.State().Distance != before {
		t.Error("Run advanced while paused")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if g.State().Paused {
		t.Error("Second pause action did not resume")
	}
}

func TestGameOverOnCatch(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	runTicks(g, 60, nil)

	// Drop the front onto the skier with the grace period spent.
	g.avalanche.cfg.GracePeriod = 0
	g.avalanche.A.FrontX = g.player.P.Pos.X

	st := runTicks(g, 2, nil)
	if !st.Caught || !st.GameOver {
		t.Fatalf("Overlapping front did not end the run: %+v", st)
	}

	// A finished run ignores further ticks.
	dist := st.Distance
	st = runTicks(g, 30, nil)
	if st.Distance != dist {
		t.Error("Run kept advancing after game over")
	}
}

func TestGamePartialConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 12.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := New()
	g.Reset(testRuntime(42))
	st := runTicks(g, 120, nil)

	if st.Distance <= 0 {
		t.Error("Run did not advance under a physics-only config")
	}
	if g.cfg.Physics.Gravity != 12.0 {
		t.Errorf("Gravity = %.1f, expected the override 12.0", g.cfg.Physics.Gravity)
	}
	if def := config.Default().Terrain; g.cfg.Terrain.ControlSpacing != def.ControlSpacing {
		t.Errorf("ControlSpacing = %.1f, expected default %.1f",
			g.cfg.Terrain.ControlSpacing, def.ControlSpacing)
	}

	// Restart reuses the terrain; the run must still advance.
	g.Reset(testRuntime(43))
	if st := runTicks(g, 120, nil); st.Distance <= 0 {
		t.Error("Restarted run did not advance under a physics-only config")
	}
}

func TestGameScoreTracksDistance(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	st := runTicks(g, 600, func(i int) bool { return i%30 < 10 })

	if st.Score != int(st.Distance) {
		t.Errorf("Score %d should be the floor of distance %.2f", st.Score, st.Distance)
	}
	if st.Score <= 0 {
		t.Error("Ten seconds of descent should score")
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	runTicks(g, 30, nil)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.ContainsRune(out, SnowChar) {
		t.Error("Render output has no snowpack")
	}
	if !strings.ContainsRune(out, SkierChar) && !strings.ContainsRune(out, TuckChar) {
		t.Error("Render output has no skier")
	}
	if !strings.Contains(out, "spd") {
		t.Error("Render output has no HUD")
	}
	if !strings.Contains(out, "HOLD SPACE TO TUCK") {
		t.Error("Tutorial hint missing in the opening seconds")
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	runTicks(g, 30, nil)
	g.avalanche.cfg.GracePeriod = 0
	g.avalanche.A.FrontX = g.player.P.Pos.X
	runTicks(g, 2, nil)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "CAUGHT BY THE AVALANCHE") {
		t.Error("Game over banner missing")
	}
}

func TestGameBestScoreShownInHUD(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))
	g.SetBestScore(321)
	runTicks(g, 30, nil)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "best 321") {
		t.Error("Persisted best score missing from HUD")
	}
}
