// Package sim implements the snowline run: a skier descending endless
// procedurally chained hills while an avalanche pursues from behind.
// The package is pure simulation; the platform layer owns input and display.
package sim

import (
	"fmt"
	"math"

	"github.com/vkoshelev/snowline/internal/config"
	"github.com/vkoshelev/snowline/internal/core"
)

// Visual characters for rendering
const (
	SkierChar     = '◉'
	SkiFlatChar   = '─'
	SkiDownChar   = '╲'
	SkiUpChar     = '╱'
	TuckChar      = '▼'
	SnowChar      = '░'
	AvalancheChar = '▒'
	AvalancheEdge = '▓'
)

const (
	playerStartX  = 6.0
	tutorialTicks = 300 // ~5 seconds at 60 fps
)

// Game implements the snowline run logic.
type Game struct {
	player    *PlayerController
	avalanche *AvalancheController
	terrain   *Terrain

	cfg        config.Config
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig

	tickCount int
	score     int
	bestScore int
	gameOver  bool
	paused    bool
}

// configPath stores the custom config path set via CLI.
var configPath string
var difficultyPreset config.DifficultyPreset
var joinOverride string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetJoinMode overrides the terrain join policy from the CLI.
func SetJoinMode(mode string) {
	joinOverride = mode
}

// New creates a new snowline game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "snowline"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Snowline"
}

// SetBestScore gives the HUD a persisted high score to show.
// Without one the best line is simply omitted.
func (g *Game) SetBestScore(score int) {
	g.bestScore = score
}

// Reset initializes or restarts the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	if joinOverride != "" {
		cfg.Terrain.Join = joinOverride
	}
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	mode, err := JoinModeFromString(cfg.Terrain.Join)
	if err != nil {
		mode = JoinAnchor
	}

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	if g.terrain == nil {
		g.terrain = NewTerrain(runtime.Seed, cfg.Terrain, mode, g.difficulty)
	} else {
		g.terrain.cfg = normalizeTerrain(cfg.Terrain)
		g.terrain.mode = mode
		g.terrain.diff = g.difficulty
		g.terrain.Reset(runtime.Seed)
	}
	g.terrain.Update(playerStartX, 0, 0)

	g.player = NewPlayerController(&g.cfg, g.terrain, tickRate)
	g.player.Reset(playerStartX)

	g.avalanche = NewAvalancheController(cfg.Avalanche, g.difficulty, tickRate)
	g.avalanche.Reset(playerStartX)

	g.tickCount = 0
	g.score = 0
	g.gameOver = false
	g.paused = false
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	g.player.Step(in.Has(core.ActionTuck))
	p := &g.player.P

	g.terrain.Update(p.Pos.X, g.score, g.tickCount)

	g.avalanche.Step(p.Pos.X, p.Speed, g.score, g.tickCount)
	if g.avalanche.A.Caught {
		g.gameOver = true
	}

	g.score = int(p.Distance)

	return core.StepResult{State: g.State()}
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	p := &g.player.P
	return core.GameState{
		Score:    g.score,
		Distance: p.Distance,
		MaxSpeed: p.MaxSpeed,
		AirTicks: p.AirTicks,
		Gap:      g.avalanche.Gap(p.Pos.X),
		Caught:   g.avalanche.A.Caught,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Render draws the current run state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	sx := g.cfg.Render.CellsPerUnitX
	sy := g.cfg.Render.CellsPerUnitY
	if sx <= 0 {
		sx = 2
	}
	if sy <= 0 {
		sy = 1
	}

	p := &g.player.P

	// Camera: skier pinned to a fixed column, vertically centered.
	camX := p.Pos.X - float64(w)/sx*g.cfg.Render.PlayerColumn
	camY := p.Pos.Y - float64(h)/sy*0.45

	g.drawTerrain(dst, camX, camY, sx, sy)
	g.drawAvalanche(dst, camX, camY, sx, sy)
	g.drawSkier(dst, camX, camY, sx, sy)
	g.drawHUD(dst)

	if g.tickCount < tutorialTicks && !g.gameOver {
		dst.DrawTextCentered(2, "HOLD SPACE TO TUCK")
		dst.DrawTextCentered(3, "RELEASE AT A CREST TO LAUNCH")
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "CAUGHT BY THE AVALANCHE",
			fmt.Sprintf("Distance: %d m  |  Press R to restart", g.score))
	}
}

// drawTerrain renders the slope column by column with slope-shaped glyphs
// and fills the snowpack below.
func (g *Game) drawTerrain(dst *core.Screen, camX, camY, sx, sy float64) {
	w, h := dst.Width(), dst.Height()
	for col := 0; col < w; col++ {
		wx := camX + float64(col)/sx
		ground := g.terrain.HeightAt(wx)
		row := int(math.Round((ground - camY) * sy))

		slope := g.terrain.SlopeAt(wx)
		glyph := SkiFlatChar
		if slope > 0.25 {
			glyph = SkiDownChar
		} else if slope < -0.25 {
			glyph = SkiUpChar
		}
		dst.SetC(col, row, glyph, core.ColorWhite)

		for y := row + 1; y < h; y++ {
			dst.SetC(col, y, SnowChar, core.ColorGray)
		}
	}
}

// drawAvalanche renders the pursuing wall from the left edge to its front.
func (g *Game) drawAvalanche(dst *core.Screen, camX, camY, sx, sy float64) {
	h := dst.Height()
	frontCol := int((g.avalanche.A.FrontX - camX) * sx)
	if frontCol < 0 {
		return
	}

	for col := 0; col <= frontCol && col < dst.Width(); col++ {
		wx := camX + float64(col)/sx
		ground := g.terrain.HeightAt(wx)
		groundRow := int(math.Round((ground - camY) * sy))

		// Billowing wall: taller toward the front.
		height := 4
		if frontCol-col < 6 {
			height = 4 + (6 - (frontCol - col))
		}
		for y := groundRow; y > groundRow-height && y >= 0; y-- {
			glyph := AvalancheChar
			if col == frontCol {
				glyph = AvalancheEdge
			}
			dst.SetC(col, y, glyph, core.ColorBrightWhite)
		}
		for y := groundRow + 1; y < h; y++ {
			dst.SetC(col, y, AvalancheChar, core.ColorWhite)
		}
	}
}

// drawSkier renders the player pose: upright, tucked, or airborne.
func (g *Game) drawSkier(dst *core.Screen, camX, camY, sx, sy float64) {
	p := &g.player.P
	col := int((p.Pos.X - camX) * sx)
	row := int(math.Round((p.Pos.Y-camY)*sy)) - 1

	ski := SkiFlatChar
	if p.SlopeAngle > 0.2 {
		ski = SkiDownChar
	} else if p.SlopeAngle < -0.2 {
		ski = SkiUpChar
	}

	switch {
	case !p.Grounded:
		dst.SetC(col, row-1, SkierChar, core.ColorBrightCyan)
		dst.SetC(col, row, SkiFlatChar, core.ColorBrightCyan)
	case p.Tucking:
		dst.SetC(col, row, TuckChar, core.ColorBrightCyan)
		dst.SetC(col, row+1, ski, core.ColorCyan)
	default:
		dst.SetC(col, row-1, SkierChar, core.ColorBrightCyan)
		dst.SetC(col, row, ski, core.ColorCyan)
	}
}

// drawHUD renders the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	p := &g.player.P
	gap := g.avalanche.Gap(p.Pos.X)

	hud := fmt.Sprintf(" %d m  spd %.1f  gap %.0f ", g.score, p.Speed, gap)
	dst.DrawText(2, 0, hud)

	if g.bestScore > 0 {
		best := fmt.Sprintf(" best %d ", g.bestScore)
		dst.DrawText(dst.Width()-len(best)-2, 0, best)
	}

	if g.avalanche.InGrace() && !g.gameOver {
		dst.DrawTextC(2, 1, " safe ", core.ColorGreen)
	} else if gap < 8 {
		dst.DrawTextC(2, 1, " !!! ", core.ColorBrightRed)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
