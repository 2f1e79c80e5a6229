package game

import (
	"io"
	"log"
	"time"

	"github.com/hoshinonyaruko/snake-in-term/input"
	"github.com/hoshinonyaruko/snake-in-term/render"
	"github.com/hoshinonyaruko/snake-in-term/snake"
	"github.com/hoshinonyaruko/snake-in-term/structs"
)

// Settings are the loop parameters that may change while the game runs.
type Settings struct {
	Timing    snake.Timing
	PausePoll time.Duration
	Theme     render.Theme
}

// Runner drives one game: drain input, advance, render, sleep.
type Runner struct {
	Game     *snake.Game
	Input    *input.State
	Keys     *input.Reader
	Renderer *render.Renderer
	Settings Settings

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
	// Reload, when set, is polled once per iteration. It returns new settings and true when they changed.
	Reload func() (Settings, bool)
	Log    *log.Logger
}

// Run plays until the snake collides or the player interrupts, prints the
// game-over banner once and returns the final score.
func (r *Runner) Run() int {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := r.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	r.Renderer.SetTheme(r.Settings.Theme)
	r.Renderer.Clear()
	r.Renderer.Frame(r.Game.Board, r.Game.Size, r.Game.Score)

	phase := r.Input.Phase()
	for r.Input.Running {
		r.Keys.Drain(r.Input)
		r.reload(logger)

		if p := r.Input.Phase(); p != phase {
			logger.Printf("phase %s -> %s", phase, p)
			phase = p
		}
		if !r.Input.Running {
			break
		}
		if r.Input.Paused {
			if r.Keys.Closed() {
				// no key can ever unpause
				r.Input.Running = false
				logger.Printf("input closed while paused")
				break
			}
			sleep(r.Settings.PausePoll)
			continue
		}

		score := r.Game.Score
		if !r.Game.Advance(r.Input.Direction) {
			r.Input.Running = false
			logger.Printf("collision at %v moving %v", r.Game.Head().Add(r.Input.Direction), r.Input.Direction)
			break
		}
		if r.Game.Score != score {
			logger.Printf("food eaten, score %d, length %d", r.Game.Score, r.Game.Len())
			if r.Game.Food == structs.NoSpace {
				logger.Printf("no space left for food")
			}
		}

		r.Renderer.Clear()
		r.Renderer.Frame(r.Game.Board, r.Game.Size, r.Game.Score)
		sleep(snake.TickInterval(r.Game.Score, r.Settings.Timing))
	}

	logger.Printf("game over, final score %d", r.Game.Score)
	r.Renderer.GameOver(r.Game.Score)
	return r.Game.Score
}

func (r *Runner) reload(logger *log.Logger) {
	if r.Reload == nil {
		return
	}
	s, ok := r.Reload()
	if !ok {
		return
	}
	r.Settings = s
	r.Renderer.SetTheme(s.Theme)
	logger.Printf("settings reloaded: base %v min %v step %v", s.Timing.Base, s.Timing.Min, s.Timing.Step)
}
