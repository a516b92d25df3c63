// Command cultivator runs the idle cultivation engine headless: it loads or
// seeds a save, folds in offline gains, then ticks at 10 Hz with periodic
// autosave until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/fmtutil"
	"github.com/talgya/tu-tien/internal/game"
	"github.com/talgya/tu-tien/internal/persistence"
)

func main() {
	dbPath := flag.String("db", "data/tu-tien.db", "path to the save database")
	speed := flag.Float64("speed", 1.0, "simulation speed multiplier (0 pauses)")
	gender := flag.String("gender", string(game.GenderMale), "character gender for a new game (Nam or Nữ)")
	appearance := flag.String("appearance", game.Appearances[0], "character appearance for a new game")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Tu Tiên idle cultivation engine")

	// ── Persistence ──────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("failed to create save directory", "path", filepath.Dir(*dbPath), "error", err)
		os.Exit(1)
	}
	store, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open save database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("save database opened", "path", *dbPath)

	// ── Game state ───────────────────────────────────────────────────
	st := store.Load()
	g := engine.New(st, engine.WithLogger(logger))
	if !st.Created {
		if err := g.CreateCharacter(game.Gender(*gender), *appearance); err != nil {
			slog.Error("character creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("character created", "gender", st.Gender, "appearance", st.Appearance)
	}
	if gap := g.CatchUp(); gap > 0 {
		slog.Info("welcome back", "qi", fmtutil.Qi(st.Qi), "away", fmtutil.Cooldown(gap))
	}

	// Bootstrap a generation credential from the environment when the
	// store is empty.
	if key := os.Getenv("TU_TIEN_API_KEY"); key != "" && len(st.API.Keys) == 0 {
		g.AddAPIKey("env", key)
		slog.Info("generation credential loaded from environment")
	}
	if _, err := g.PickCredential(); err != nil {
		slog.Warn("no generation credential, generated content disabled")
	}

	// ── Loop ─────────────────────────────────────────────────────────
	loop := engine.NewLoop(g)
	loop.Speed = *speed
	loop.OnAutosave = func() {
		if err := store.Save(g.State()); err != nil {
			slog.Error("autosave failed", "error", err)
			return
		}
		slog.Debug("autosaved",
			"qi", fmtutil.Qi(st.Qi),
			"stones", fmtutil.Stones(st.Stones),
			"realm", st.RealmName,
			"qi_per_s", fmtutil.Qi(g.QiPerSecond()),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	fmt.Printf("%s, age %.0f — %s qi at %s/s. Cultivating... (Ctrl+C to stop)\n",
		st.RealmName, st.Age, fmtutil.Qi(st.Qi), fmtutil.Qi(g.QiPerSecond()))

	loop.Run(ctx)

	// Final save on shutdown.
	if err := store.Save(g.State()); err != nil {
		slog.Error("final save failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("Progress saved. The dao awaits your return.")
}
