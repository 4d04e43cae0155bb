// Package game implements the gate minigame: an endless runner where falling
// blocks must be dodged. Survival time is the score. The machine is pure and
// tick-driven so it can run headless and be tested deterministically.
package game

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Phase is the run lifecycle: Idle → Running → Ended, with Ended → Running
// only via an explicit Start.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// Obstacle is one falling block (an axis-aligned box).
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// Config tunes a run. Zero values fall back to the defaults below.
type Config struct {
	Width, Height float64
	PlayerRadius  float64

	// SpawnInterval is the initial seconds between spawns; it shrinks to
	// MinSpawnInterval as difficulty ramps over RampSeconds.
	SpawnInterval    float64
	MinSpawnInterval float64
	RampSeconds      float64

	BaseFallSpeed float64
	MaxFallSpeed  float64

	// Rand drives spawn positions and sizes. Nil uses the global source.
	Rand *rand.Rand
	// DisableSpawns turns spawning off entirely, for deterministic
	// survival tests.
	DisableSpawns bool
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.PlayerRadius <= 0 {
		c.PlayerRadius = 12
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = 1.1
	}
	if c.MinSpawnInterval <= 0 {
		c.MinSpawnInterval = 0.35
	}
	if c.RampSeconds <= 0 {
		c.RampSeconds = 45
	}
	if c.BaseFallSpeed <= 0 {
		c.BaseFallSpeed = 140
	}
	if c.MaxFallSpeed <= 0 {
		c.MaxFallSpeed = 320
	}
	return c
}

// Game is one minigame instance. Like the rest of the interaction layer it
// is single-goroutine by design.
type Game struct {
	cfg Config

	phase      Phase
	runID      string
	elapsed    float64
	spawnTimer float64
	playerX    float64
	playerY    float64
	obstacles  []Obstacle
	score      int64
}

// New creates an idle game.
func New(cfg Config) *Game {
	return &Game{cfg: cfg.withDefaults()}
}

// Start begins (or restarts) a run: player centered near the bottom, field
// cleared, clock at zero.
func (g *Game) Start() {
	g.phase = PhaseRunning
	g.runID = uuid.NewString()
	g.elapsed = 0
	g.spawnTimer = g.cfg.SpawnInterval
	g.playerX = g.cfg.Width / 2
	g.playerY = g.cfg.Height - g.cfg.PlayerRadius*2
	g.obstacles = g.obstacles[:0]
	g.score = 0
}

// MovePlayer slides the player horizontally, clamped inside the field.
func (g *Game) MovePlayer(x float64) {
	if g.phase != PhaseRunning {
		return
	}
	g.playerX = math.Max(g.cfg.PlayerRadius, math.Min(g.cfg.Width-g.cfg.PlayerRadius, x))
}

// Difficulty is the 0..1 ramp over elapsed survival time.
func (g *Game) Difficulty() float64 {
	return math.Min(1, g.elapsed/g.cfg.RampSeconds)
}

// Step advances the run by dt seconds: spawn countdown, obstacle motion and
// the collision check. On the first hit the run ends and the score freezes
// at floor(elapsedSeconds * 10).
func (g *Game) Step(dt float64) {
	if g.phase != PhaseRunning || dt <= 0 {
		return
	}
	g.elapsed += dt
	difficulty := g.Difficulty()

	if !g.cfg.DisableSpawns {
		g.spawnTimer -= dt
		for g.spawnTimer <= 0 {
			g.spawn(difficulty)
			interval := g.cfg.SpawnInterval -
				(g.cfg.SpawnInterval-g.cfg.MinSpawnInterval)*difficulty
			g.spawnTimer += interval
		}
	}

	speedScale := 1 + difficulty*((g.cfg.MaxFallSpeed/g.cfg.BaseFallSpeed)-1)
	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		o.Y += o.Speed * speedScale * dt
		if o.Y > g.cfg.Height {
			continue
		}
		kept = append(kept, o)
	}
	g.obstacles = kept

	for _, o := range g.obstacles {
		if circleHitsBox(g.playerX, g.playerY, g.cfg.PlayerRadius, o) {
			g.phase = PhaseEnded
			g.score = int64(math.Floor(g.elapsed * 10))
			return
		}
	}
}

func (g *Game) spawn(difficulty float64) {
	width := 18 + g.randFloat()*26
	g.obstacles = append(g.obstacles, Obstacle{
		X:      g.randFloat() * (g.cfg.Width - width),
		Y:      -24,
		Width:  width,
		Height: 14 + g.randFloat()*18,
		Speed:  g.cfg.BaseFallSpeed * (0.85 + 0.3*g.randFloat()) * (1 + 0.2*difficulty),
	})
}

func (g *Game) randFloat() float64 {
	if g.cfg.Rand != nil {
		return g.cfg.Rand.Float64()
	}
	return rand.Float64()
}

// circleHitsBox is the AABB-vs-circle overlap test: clamp the circle center
// into the box and compare the remaining distance to the radius.
func circleHitsBox(cx, cy, r float64, o Obstacle) bool {
	nearestX := math.Max(o.X, math.Min(cx, o.X+o.Width))
	nearestY := math.Max(o.Y, math.Min(cy, o.Y+o.Height))
	dx := cx - nearestX
	dy := cy - nearestY
	return dx*dx+dy*dy <= r*r
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the frozen score of the last ended run.
func (g *Game) Score() int64 { return g.score }

// Elapsed returns the survival time of the current or last run.
func (g *Game) Elapsed() float64 { return g.elapsed }

// RunID identifies the current or last run.
func (g *Game) RunID() string { return g.runID }

// Obstacles exposes the live field, for rendering and tests.
func (g *Game) Obstacles() []Obstacle { return g.obstacles }

// Player returns the player circle.
func (g *Game) Player() (x, y, r float64) {
	return g.playerX, g.playerY, g.cfg.PlayerRadius
}
