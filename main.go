package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/hoshinonyaruko/snake-in-term/config"
	"github.com/hoshinonyaruko/snake-in-term/game"
	"github.com/hoshinonyaruko/snake-in-term/input"
	"github.com/hoshinonyaruko/snake-in-term/render"
	"github.com/hoshinonyaruko/snake-in-term/snake"
	"github.com/hoshinonyaruko/snake-in-term/snapshot"
	"github.com/hoshinonyaruko/snake-in-term/watch"
)

func main() {
	configPath := flag.String("config", "", "optional config file (.json, .yaml, .yml or .toml)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to open log %s: %s", cfg.LogPath, err)
	}
	defer closeLog()
	logger.Printf("starting: board %dx%d, seed %d, config %q", cfg.Rows, cfg.Cols, cfg.Seed, *configPath)

	tty, err := input.OpenTTY(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to open terminal: %s", err)
	}
	defer tty.Close()
	logger.Printf("raw mode: %v", tty.Raw())

	renderer := render.New(os.Stdout, cfg.Theme())
	renderer.Reset()
	renderer.Banner(cfg.Size())

	runner := &game.Runner{
		Game:     snake.NewGame(cfg.Size(), snake.NewRand(cfg.Seed)),
		Input:    input.NewState(),
		Keys:     input.NewReader(tty.Chunks()),
		Renderer: renderer,
		Settings: settingsFrom(cfg),
		Log:      logger,
	}

	// 配置热更新
	if *configPath != "" {
		w, err := watch.New(*configPath)
		if err != nil {
			logger.Printf("config reload disabled: %s", err)
		} else {
			defer w.Close()
			runner.Reload = reloader(w, *configPath, cfg, logger)
		}
	}

	runner.Run()

	if cfg.SnapshotPath != "" {
		if err := snapshot.Save(cfg.SnapshotPath, runner.Game.Board, runner.Game.Size, runner.Game.Score, cfg.BlockSize); err != nil {
			logger.Printf("snapshot %s: %s", cfg.SnapshotPath, err)
		} else {
			logger.Printf("snapshot written to %s", cfg.SnapshotPath)
		}
	}
}

// newLogger writes to path with a per-run session id, or discards everything when path is empty.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	session := uuid.New().String()
	return log.New(f, "["+session[:8]+"] ", log.LstdFlags), func() { f.Close() }, nil
}

func settingsFrom(cfg *config.AppConfig) game.Settings {
	return game.Settings{
		Timing:    cfg.Timing(),
		PausePoll: cfg.PausePoll(),
		Theme:     cfg.Theme(),
	}
}

// reloader re-reads the config file when it changes. Board size and seed
// belong to the running game and are not reloaded.
func reloader(w *watch.Watcher, path string, current *config.AppConfig, logger *log.Logger) func() (game.Settings, bool) {
	return func() (game.Settings, bool) {
		changed := w.Changed()
		for _, err := range w.Errors() {
			logger.Printf("watch %s: %s", path, err)
		}
		if !changed {
			return game.Settings{}, false
		}

		next, err := config.LoadConfig(path)
		if err != nil {
			logger.Printf("reload %s: %s", path, err)
			return game.Settings{}, false
		}
		if next.Size() != current.Size() || next.Seed != current.Seed {
			logger.Printf("reload %s: board size and seed changes apply to the next game only", path)
		}
		return settingsFrom(next), true
	}
}
