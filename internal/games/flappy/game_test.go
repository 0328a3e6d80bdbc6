package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
)

const frameMs = 16.67

// seqRand replays a fixed sequence of values and counts how often it was used.
type seqRand struct {
	values []float64
	calls  int
}

func (r *seqRand) Float64() float64 {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v
}

// countingRand wraps a Rand and counts draws. Each spawn draws exactly once.
type countingRand struct {
	Rand
	calls int
}

func (r *countingRand) Float64() float64 {
	r.calls++
	return r.Rand.Float64()
}

// memStore is an in-memory ScoreStore that records every save.
type memStore struct {
	loaded int
	saves  []int
}

func (s *memStore) Load() int { return s.loaded }

func (s *memStore) Save(best int) { s.saves = append(s.saves, best) }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory
	return cfg
}

// floatingConfig has no gravity, so a player left at the start height stays
// inside every possible gap forever.
func floatingConfig() config.Config {
	cfg := testConfig()
	cfg.Physics.Gravity = 0
	return cfg
}

func newRunning(t *testing.T, cfg config.Config, store ScoreStore) *Engine {
	t.Helper()
	e := New(cfg, store, &seqRand{values: []float64{0.5}})
	e.Flap()
	if e.Phase() != PhaseRunning {
		t.Fatalf("Flap from Ready should start the run, phase = %v", e.Phase())
	}
	return e
}

func TestNewStartsReady(t *testing.T) {
	store := &memStore{loaded: 12}
	e := New(testConfig(), store, nil)

	if e.Phase() != PhaseReady {
		t.Errorf("phase = %v, expected ready", e.Phase())
	}
	if e.Score() != 0 {
		t.Errorf("score = %d, expected 0", e.Score())
	}
	if e.Best() != 12 {
		t.Errorf("best = %d, expected value loaded from store (12)", e.Best())
	}
	if e.playerY != 140 || e.playerVel != 0 {
		t.Errorf("player = (%v, %v), expected (140, 0)", e.playerY, e.playerVel)
	}
	if len(e.world.Obstacles()) != 0 {
		t.Errorf("expected no obstacles, got %d", len(e.world.Obstacles()))
	}
}

func TestNewIgnoresNegativeStoredBest(t *testing.T) {
	e := New(testConfig(), &memStore{loaded: -4}, nil)
	if e.Best() != 0 {
		t.Errorf("best = %d, expected 0", e.Best())
	}
}

func TestIdleTicksDoNotChangeState(t *testing.T) {
	store := &memStore{}
	e := New(testConfig(), store, nil)
	before := e.Snapshot()

	for i := 0; i < 1000; i++ {
		e.Tick(frameMs)
	}

	after := e.Snapshot()
	if after.Phase != PhaseReady {
		t.Errorf("phase = %v, expected ready", after.Phase)
	}
	if after.Score != 0 {
		t.Errorf("score = %d, expected 0", after.Score)
	}
	if after.PlayerY != before.PlayerY || after.PlayerVel != before.PlayerVel {
		t.Errorf("player moved while ready: %v/%v -> %v/%v",
			before.PlayerY, before.PlayerVel, after.PlayerY, after.PlayerVel)
	}
	if len(after.Obstacles) != 0 || after.ElapsedMs != 0 {
		t.Errorf("world advanced while ready: %d obstacles, %v ms", len(after.Obstacles), after.ElapsedMs)
	}
	if len(store.saves) != 0 {
		t.Errorf("store should not be written while ready, got %v", store.saves)
	}
}

func TestFlapStartsRunWithoutImpulse(t *testing.T) {
	e := newRunning(t, testConfig(), nil)

	if e.playerVel != 0 {
		t.Errorf("starting flap should not apply impulse, vy = %v", e.playerVel)
	}
	if e.elapsedMs != 0 || e.world.lastSpawnMs != 0 {
		t.Errorf("run should start from a clean clock, elapsed=%v lastSpawn=%v", e.elapsedMs, e.world.lastSpawnMs)
	}
}

func TestFlapWhileRunningSetsImpulse(t *testing.T) {
	e := newRunning(t, testConfig(), nil)
	e.Tick(frameMs)

	yBefore := e.playerY
	e.Flap()
	if e.playerVel != -7.5 {
		t.Fatalf("vy after flap = %v, expected -7.5", e.playerVel)
	}

	e.Tick(frameMs)
	if e.playerY >= yBefore {
		t.Errorf("flap should move player up, was %v, now %v", yBefore, e.playerY)
	}
	if e.Phase() != PhaseRunning {
		t.Errorf("flap while running must not change phase, got %v", e.Phase())
	}
}

func TestDoubleFlapMatchesSingleFlap(t *testing.T) {
	once := newRunning(t, testConfig(), nil)
	twice := newRunning(t, testConfig(), nil)
	once.Tick(frameMs)
	twice.Tick(frameMs)

	once.Flap()
	twice.Flap()
	twice.Flap()

	if once.playerVel != twice.playerVel {
		t.Errorf("vy after one flap = %v, after two = %v", once.playerVel, twice.playerVel)
	}

	once.Tick(frameMs)
	twice.Tick(frameMs)
	if once.playerY != twice.playerY {
		t.Errorf("y diverged: %v vs %v", once.playerY, twice.playerY)
	}
}

func TestFlapsCoalesceBetweenTicks(t *testing.T) {
	e := newRunning(t, testConfig(), nil)
	e.Tick(frameMs)
	e.playerY = -100
	e.Tick(frameMs)
	if e.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %v", e.Phase())
	}

	// A burst of flaps before the next tick only steps back to Ready.
	e.Flap()
	e.Flap()
	e.Flap()
	if e.Phase() != PhaseReady {
		t.Fatalf("burst of flaps should stop at ready, got %v", e.Phase())
	}

	e.Tick(frameMs)
	e.Flap()
	if e.Phase() != PhaseRunning {
		t.Errorf("flap after the next tick should start the run, got %v", e.Phase())
	}

	// The flap that started the run is not followed by an impulse from the
	// same burst.
	e.Flap()
	if e.playerVel != 0 {
		t.Errorf("second flap in the starting window should be absorbed, vy = %v", e.playerVel)
	}
}

func TestGameOverFlapReturnsToReadyWithReset(t *testing.T) {
	e := newRunning(t, floatingConfig(), nil)
	for i := 0; i < 100; i++ {
		e.Tick(frameMs)
	}
	e.score = 4
	e.playerY = 400
	e.Tick(frameMs)
	if e.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %v", e.Phase())
	}

	e.Flap()
	if e.Phase() != PhaseReady {
		t.Fatalf("expected ready, got %v", e.Phase())
	}
	if e.Score() != 0 || e.elapsedMs != 0 || len(e.world.Obstacles()) != 0 || e.playerY != 140 {
		t.Errorf("ready state not reset: score=%d elapsed=%v obstacles=%d y=%v",
			e.Score(), e.elapsedMs, len(e.world.Obstacles()), e.playerY)
	}
	if e.Best() != 4 {
		t.Errorf("best should survive the reset, got %d", e.Best())
	}
}

func TestGameGravity(t *testing.T) {
	e := newRunning(t, testConfig(), nil)

	e.Tick(frameMs)

	if math.Abs(e.playerVel-0.4) > 1e-12 {
		t.Errorf("vy after one reference frame = %v, expected 0.4", e.playerVel)
	}
	// Semi-implicit: the position uses the updated velocity.
	if math.Abs(e.playerY-140.4) > 1e-12 {
		t.Errorf("y after one reference frame = %v, expected 140.4", e.playerY)
	}
}

func TestTickClampsStep(t *testing.T) {
	tests := []struct {
		name      string
		dt        float64
		elapsedMs float64
	}{
		{"NaN is a no-op", math.NaN(), 0},
		{"negative is a no-op", -5, 0},
		{"zero is a no-op", 0, 0},
		{"negative infinity is a no-op", math.Inf(-1), 0},
		{"long pause is capped", 1000, 32},
		{"infinity is capped", math.Inf(1), 32},
		{"normal step passes through", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newRunning(t, testConfig(), nil)
			e.Tick(tc.dt)

			if e.elapsedMs != tc.elapsedMs {
				t.Errorf("elapsed = %v, expected %v", e.elapsedMs, tc.elapsedMs)
			}
			if tc.elapsedMs == 0 && (e.playerY != 140 || e.playerVel != 0) {
				t.Errorf("no-op step moved the player to %v/%v", e.playerY, e.playerVel)
			}
			if e.Phase() != PhaseRunning {
				t.Errorf("phase = %v, expected running", e.Phase())
			}
		})
	}
}

func TestVelocityIsFrameRateIndependent(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Gravity = 0.1

	slow := newRunning(t, cfg, nil)
	fast := newRunning(t, cfg, nil)
	for i := 0; i < 20; i++ {
		slow.Tick(30)
	}
	for i := 0; i < 80; i++ {
		fast.Tick(7.5)
	}

	if math.Abs(slow.elapsedMs-fast.elapsedMs) > 1e-9 {
		t.Fatalf("elapsed differs: %v vs %v", slow.elapsedMs, fast.elapsedMs)
	}
	want := 0.1 * 600 / frameMs
	if math.Abs(slow.playerVel-want) > 1e-9 || math.Abs(fast.playerVel-want) > 1e-9 {
		t.Errorf("vy at 33 Hz = %v, at 133 Hz = %v, expected %v", slow.playerVel, fast.playerVel, want)
	}
}

func TestCeilingEndsRun(t *testing.T) {
	tests := []struct {
		name      string
		priorBest int
		score     int
		wantBest  int
	}{
		{"keeps higher prior best", 7, 3, 7},
		{"raises best", 7, 9, 9},
		{"first score", 0, 2, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{loaded: tc.priorBest}
			e := newRunning(t, testConfig(), store)
			e.score = tc.score
			e.playerY = -50

			e.Tick(frameMs)

			if e.Phase() != PhaseGameOver {
				t.Fatalf("phase = %v, expected gameover", e.Phase())
			}
			if e.Best() != tc.wantBest {
				t.Errorf("best = %d, expected %d", e.Best(), tc.wantBest)
			}
			if len(store.saves) != 1 || store.saves[0] != tc.wantBest {
				t.Errorf("store saves = %v, expected [%d]", store.saves, tc.wantBest)
			}
		})
	}
}

func TestCeilingSlack(t *testing.T) {
	e := newRunning(t, floatingConfig(), nil)
	// Box top at -15: above the field but within the 20 unit slack.
	e.playerY = -4
	e.Tick(frameMs)
	if e.Phase() != PhaseRunning {
		t.Errorf("player within ceiling slack should survive, phase = %v", e.Phase())
	}
}

func TestGroundEndsRun(t *testing.T) {
	e := newRunning(t, testConfig(), nil)
	e.playerY = 270
	e.playerVel = 5

	e.Tick(frameMs)

	if e.Phase() != PhaseGameOver {
		t.Error("game should be over when player hits the ground")
	}
}

func TestFirstSpawnAfterInterval(t *testing.T) {
	tests := []struct {
		name   string
		r      float64
		gapTop float64
	}{
		{"lowest draw", 0, 40},
		{"middle draw", 0.5, 69},
		{"highest draw", 0.999999, 98},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New(floatingConfig(), nil, &seqRand{values: []float64{tc.r}})
			e.Flap()

			for i := 0; i < 83; i++ {
				e.Tick(frameMs)
			}
			if n := len(e.world.Obstacles()); n != 0 {
				t.Fatalf("expected no obstacle before 1400 ms, got %d at %v ms", n, e.elapsedMs)
			}

			e.Tick(frameMs)
			obstacles := e.world.Obstacles()
			if len(obstacles) != 1 {
				t.Fatalf("expected exactly one obstacle after 1400 ms, got %d", len(obstacles))
			}

			o := obstacles[0]
			lo, hi := e.Config().GapTopRange()
			if o.GapTop < lo || o.GapTop > hi {
				t.Errorf("gapTop %v outside [%v, %v]", o.GapTop, lo, hi)
			}
			if math.Abs(o.GapTop-tc.gapTop) > 1e-3 {
				t.Errorf("gapTop = %v, expected %v", o.GapTop, tc.gapTop)
			}
			// Spawned beyond the right edge, then scrolled once.
			if math.Abs(o.X-(480+40-2.4)) > 1e-9 {
				t.Errorf("obstacle x = %v, expected 517.6", o.X)
			}
			if e.world.lastSpawnMs != e.elapsedMs {
				t.Errorf("lastSpawnMs = %v, expected %v", e.world.lastSpawnMs, e.elapsedMs)
			}

			e.Tick(frameMs)
			if n := len(e.world.Obstacles()); n != 1 {
				t.Errorf("next tick should not spawn again, got %d obstacles", n)
			}
		})
	}
}

func TestObstacleTopCollision(t *testing.T) {
	e := newRunning(t, floatingConfig(), nil)
	// Centred over the player with the gap well below it.
	e.world.obstacles = append(e.world.obstacles, Obstacle{X: 50, GapTop: 200})

	e.Tick(frameMs)

	if e.Phase() != PhaseGameOver {
		t.Error("game should be over when the player is inside the top section")
	}
}

func TestObstacleBottomCollision(t *testing.T) {
	e := newRunning(t, floatingConfig(), nil)
	e.world.obstacles = append(e.world.obstacles, Obstacle{X: 50, GapTop: 0})

	e.Tick(frameMs)

	if e.Phase() != PhaseGameOver {
		t.Error("game should be over when the player is inside the bottom section")
	}
}

func TestPlayerInsideGapNeverCollides(t *testing.T) {
	// Gap spans [100, 250]; the 22 unit box fits for centres in [111, 239].
	for _, y := range []float64{111, 120, 175, 230, 239} {
		e := newRunning(t, floatingConfig(), nil)
		e.playerY = y
		e.world.obstacles = append(e.world.obstacles, Obstacle{X: 50, GapTop: 100})

		e.Tick(frameMs)

		if e.Phase() != PhaseRunning {
			t.Errorf("player at y=%v inside the gap should not collide", y)
		}
	}
}

func TestScoreAndCollisionInSameTick(t *testing.T) {
	store := &memStore{}
	e := newRunning(t, floatingConfig(), store)
	// Centre at 81 crosses the player column at 80 during this tick, while
	// the top section overlaps the player.
	e.world.obstacles = append(e.world.obstacles, Obstacle{X: 51, GapTop: 200})

	e.Tick(frameMs)

	if e.Score() != 1 {
		t.Errorf("score = %d, expected the crossing to count", e.Score())
	}
	if e.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected the collision to still end the run", e.Phase())
	}
	if e.Best() != 1 || len(store.saves) != 1 || store.saves[0] != 1 {
		t.Errorf("best = %d saves = %v, expected best 1 saved once", e.Best(), store.saves)
	}
}

func TestScoringIsExactlyOncePerObstacle(t *testing.T) {
	rng := &countingRand{Rand: NewRand(42)}
	e := New(floatingConfig(), nil, rng)
	e.Flap()

	dts := NewRand(7)
	lastScore := 0
	for i := 0; i < 5000; i++ {
		e.Tick(1 + dts.Float64()*40)

		if e.Phase() != PhaseRunning {
			t.Fatalf("floating player should never crash, tick %d", i)
		}
		if e.Score() < lastScore || e.Score() > lastScore+1 {
			t.Fatalf("score jumped from %d to %d at tick %d", lastScore, e.Score(), i)
		}
		lastScore = e.Score()

		obstacles := e.world.Obstacles()
		for j := 1; j < len(obstacles); j++ {
			if obstacles[j].X <= obstacles[j-1].X {
				t.Fatalf("obstacles not strictly ascending at tick %d: %v", i, obstacles)
			}
		}
	}

	pending := 0
	for _, o := range e.world.Obstacles() {
		if o.Center(e.Config()) >= e.Config().Player.X {
			pending++
		}
	}
	if rng.calls < 10 {
		t.Fatalf("expected a long run, only %d obstacles spawned", rng.calls)
	}
	if want := rng.calls - pending; e.Score() != want {
		t.Errorf("score = %d, expected %d (spawned %d, still ahead %d)", e.Score(), want, rng.calls, pending)
	}
}

func TestBestIsMonotonicAcrossRuns(t *testing.T) {
	store := &memStore{loaded: 3}
	e := New(floatingConfig(), store, nil)

	for _, score := range []int{5, 2, 8, 0, 8} {
		e.Flap()
		if e.Phase() != PhaseRunning {
			t.Fatalf("expected running, got %v", e.Phase())
		}
		e.score = score
		e.playerY = 400
		before := e.Best()
		e.Tick(frameMs)

		if e.Phase() != PhaseGameOver {
			t.Fatalf("expected game over, got %v", e.Phase())
		}
		if e.Best() < before {
			t.Errorf("best decreased from %d to %d", before, e.Best())
		}
		if e.Score() > e.Best() {
			t.Errorf("score %d exceeds best %d after game over", e.Score(), e.Best())
		}

		e.Tick(frameMs)
		e.Flap() // back to Ready
		e.Tick(frameMs)
	}

	if e.Best() != 8 {
		t.Errorf("best = %d, expected 8", e.Best())
	}
	for i := 1; i < len(store.saves); i++ {
		if store.saves[i] < store.saves[i-1] {
			t.Errorf("saved bests not monotonic: %v", store.saves)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := New(testConfig(), nil, NewRand(12345))
		pilot := NewAutopilot(testConfig())
		for i := 0; i < 3000; i++ {
			if pilot.ShouldFlap(e.Snapshot()) {
				e.Flap()
			}
			e.Tick(frameMs)
			if e.Phase() == PhaseGameOver {
				break
			}
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.ElapsedMs != b.ElapsedMs || a.PlayerY != b.PlayerY {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newRunning(t, floatingConfig(), nil)
	e.world.obstacles = append(e.world.obstacles, Obstacle{X: 300, GapTop: 60})

	snap := e.Snapshot()
	snap.Obstacles[0].X = -1000
	snap.PlayerY = 0

	if e.world.Obstacles()[0].X != 300 {
		t.Error("mutating a snapshot must not change the engine's obstacles")
	}
	if e.playerY != 140 {
		t.Error("mutating a snapshot must not change the player")
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseReady:    "ready",
		PhaseRunning:  "running",
		PhaseGameOver: "gameover",
		Phase(42):     "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
