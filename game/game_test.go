package game

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hoshinonyaruko/snake-in-term/input"
	"github.com/hoshinonyaruko/snake-in-term/render"
	"github.com/hoshinonyaruko/snake-in-term/snake"
	"github.com/hoshinonyaruko/snake-in-term/structs"
)

var testSettings = Settings{
	Timing:    snake.Timing{Base: 400 * time.Millisecond, Min: 200 * time.Millisecond, Step: 5 * time.Millisecond},
	PausePoll: 50 * time.Millisecond,
	Theme:     render.DefaultTheme,
}

type harness struct {
	runner *Runner
	keys   chan []byte
	out    *bytes.Buffer
	sleeps []time.Duration
	// onSleep runs after each recorded sleep, with the number of sleeps so far
	onSleep func(n int)
}

func newHarness(size structs.Size, seed uint64) *harness {
	h := &harness{keys: make(chan []byte, 16), out: &bytes.Buffer{}}
	h.runner = &Runner{
		Game:     snake.NewGame(size, snake.NewRand(seed)),
		Input:    input.NewState(),
		Keys:     input.NewReader(h.keys),
		Renderer: render.New(h.out, render.DefaultTheme),
		Settings: testSettings,
		Sleep: func(d time.Duration) {
			h.sleeps = append(h.sleeps, d)
			if h.onSleep != nil {
				h.onSleep(len(h.sleeps))
			}
			if len(h.sleeps) > 1000 {
				panic("loop did not end")
			}
		},
	}
	return h
}

// towardFarWall returns the key that moves away from the nearer side wall.
func towardFarWall(g *snake.Game) string {
	if g.Head().Col < g.Size.Cols/2 {
		return "d"
	}
	return "a"
}

func TestRunEndsAtWall(t *testing.T) {
	h := newHarness(structs.Size{Rows: 3, Cols: 3}, 1)
	h.keys <- []byte("d")

	score := h.runner.Run()

	if h.runner.Input.Phase() != structs.Over {
		t.Errorf("phase = %s, want over", h.runner.Input.Phase())
	}
	if score != h.runner.Game.Score {
		t.Errorf("returned %d, game score %d", score, h.runner.Game.Score)
	}
	// at most two steps right fit on a 3 column board
	if len(h.sleeps) > 2 {
		t.Errorf("%d ticks before hitting the wall", len(h.sleeps))
	}
	for i, d := range h.sleeps {
		if d < testSettings.Timing.Min || d > testSettings.Timing.Base {
			t.Errorf("sleep %d = %v outside tick range", i, d)
		}
	}
	out := h.out.String()
	if n := strings.Count(out, "Game Over!"); n != 1 {
		t.Errorf("game over printed %d times", n)
	}
	if !strings.HasPrefix(out, render.ClearScreen) {
		t.Error("initial frame not drawn first")
	}
}

func TestRunStaysPausedUntilKey(t *testing.T) {
	h := newHarness(structs.Size{Rows: 5, Cols: 5}, 2)
	start := append([]structs.Position(nil), h.runner.Game.Body...)
	key := towardFarWall(h.runner.Game)

	h.onSleep = func(n int) {
		if n <= 3 && !equal(h.runner.Game.Body, start) {
			t.Errorf("snake moved while paused: %v", h.runner.Game.Body)
		}
		if n == 3 {
			h.keys <- []byte(key)
		}
	}
	h.runner.Run()

	for i := 0; i < 3; i++ {
		if h.sleeps[i] != testSettings.PausePoll {
			t.Errorf("sleep %d = %v, want pause poll", i, h.sleeps[i])
		}
	}
	if len(h.sleeps) < 4 || !isTick(h.sleeps[3]) {
		t.Errorf("no tick after unpausing: %v", h.sleeps)
	}
}

func TestRunEscapePauses(t *testing.T) {
	// wide enough for three steps toward the far wall
	h := newHarness(structs.Size{Rows: 5, Cols: 7}, 3)
	key := towardFarWall(h.runner.Game)
	h.keys <- []byte(key)

	var paused structs.Position
	h.onSleep = func(n int) {
		switch n {
		case 1:
			h.keys <- []byte("\x1b")
		case 3:
			paused = h.runner.Game.Head()
		case 5:
			if h.runner.Game.Head() != paused {
				t.Errorf("snake moved while paused")
			}
			h.keys <- []byte(key)
		}
	}
	h.runner.Run()

	if len(h.sleeps) < 6 {
		t.Fatalf("sleeps = %v", h.sleeps)
	}
	// a trailing ESC waits one read in case the rest of a sequence follows
	for _, i := range []int{0, 1, 5} {
		if !isTick(h.sleeps[i]) {
			t.Errorf("sleep %d = %v, want a tick", i, h.sleeps[i])
		}
	}
	for i := 2; i < 5; i++ {
		if h.sleeps[i] != testSettings.PausePoll {
			t.Errorf("sleep %d = %v, want pause poll", i, h.sleeps[i])
		}
	}
}

func TestRunInterrupt(t *testing.T) {
	h := newHarness(structs.Size{Rows: 5, Cols: 5}, 4)
	h.keys <- []byte("\x03")

	if score := h.runner.Run(); score != 0 {
		t.Errorf("score = %d", score)
	}
	if len(h.sleeps) != 0 {
		t.Errorf("slept %v after interrupt", h.sleeps)
	}
	if n := strings.Count(h.out.String(), "Game Over!"); n != 1 {
		t.Errorf("game over printed %d times", n)
	}
}

func TestRunInputClosedWhilePaused(t *testing.T) {
	h := newHarness(structs.Size{Rows: 5, Cols: 5}, 6)
	close(h.keys)

	h.runner.Run()
	if h.runner.Input.Phase() != structs.Over {
		t.Errorf("phase = %s, want over", h.runner.Input.Phase())
	}
	if len(h.sleeps) != 0 {
		t.Errorf("slept %v with no input", h.sleeps)
	}
}

func TestRunReload(t *testing.T) {
	h := newHarness(structs.Size{Rows: 5, Cols: 5}, 5)
	h.keys <- []byte(towardFarWall(h.runner.Game))

	calls := 0
	h.runner.Reload = func() (Settings, bool) {
		calls++
		if calls != 1 {
			return Settings{}, false
		}
		s := testSettings
		s.Theme.Snake = 'o'
		s.Timing.Base = 300 * time.Millisecond
		return s, true
	}
	h.runner.Run()

	if d := h.sleeps[0]; d > 300*time.Millisecond || d < testSettings.Timing.Min {
		t.Errorf("first tick %v, want reloaded base of 300ms", d)
	}
	frames := strings.Split(h.out.String(), render.ClearScreen)
	last := frames[len(frames)-1]
	drawn := false
	for _, line := range strings.Split(last, "\r\n") {
		if strings.HasPrefix(line, "|") {
			if strings.ContainsRune(line, '*') {
				t.Errorf("old glyph still drawn: %q", line)
			}
			drawn = drawn || strings.ContainsRune(line, 'o')
		}
	}
	if !drawn {
		t.Errorf("reloaded glyph not drawn:\n%s", last)
	}
}

func isTick(d time.Duration) bool {
	return d >= testSettings.Timing.Min && d <= testSettings.Timing.Base
}

func equal(a, b []structs.Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
