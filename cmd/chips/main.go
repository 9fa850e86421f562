package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/ammadhh/gemini-test-chips/internal/config"
	"github.com/ammadhh/gemini-test-chips/internal/evaluator"
	"github.com/ammadhh/gemini-test-chips/internal/randutil"
	"github.com/ammadhh/gemini-test-chips/internal/sched"
	"github.com/ammadhh/gemini-test-chips/internal/stats"
	"github.com/ammadhh/gemini-test-chips/internal/table"
	"github.com/ammadhh/gemini-test-chips/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Config string `short:"c" help:"Path to HCL configuration file" default:"chips.hcl"`
	Seed   int64  `short:"s" help:"Seed for the shuffle and bot decisions (0 means random)" default:"0"`
	Name   string `short:"n" help:"Player name, skips the name prompt" default:""`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chips"),
		kong.Description("A turn-based Texas Hold'em table against automated opponents."))

	fmt.Print(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	if err := run(cli); err != nil {
		log.Fatal("Failed to start game", "error", err)
	}

	ctx.Exit(0)
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Info("starting session", "seed", seed, "seats", len(cfg.SeatNames()))

	var eval evaluator.Evaluator
	switch cfg.Game.Evaluator {
	case "random":
		eval = evaluator.NewRandom(rng)
	default:
		eval = evaluator.NewSevenCard()
	}

	persisted, err := stats.LoadFile(cfg.Game.StatsFile)
	if err != nil {
		logger.Warn("ignoring unreadable stats file", "path", cfg.Game.StatsFile, "error", err)
		persisted = stats.Session{}
	}
	session := stats.NewSharedWith(persisted)
	scheduler := sched.NewClocked(quartz.NewReal())

	ctrl := table.New(rng, scheduler,
		table.WithSeats(cfg.SeatNames()...),
		table.WithStartingChips(cfg.Game.StartingChips),
		table.WithBotIncrement(cfg.Game.BetIncrement),
		table.WithDelays(table.Delays{
			Deal:    cfg.Timing.Deal(),
			Think:   cfg.Timing.Think(),
			Reveal:  cfg.Timing.Reveal(),
			Restart: cfg.Timing.Restart(),
		}),
		table.WithLogger(logger),
		table.WithEvaluator(eval),
		table.WithStatsSink(session),
	)

	if cli.Name != "" {
		if err := ctrl.SetHumanName(cli.Name); err != nil {
			return fmt.Errorf("setting player name: %w", err)
		}
	}

	model := tui.New(ctrl, session, logger)
	if cli.Name != "" {
		model.SkipNameEntry()
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}

	view := session.View()
	if err := stats.SaveFile(cfg.Game.StatsFile, view); err != nil {
		logger.Error("saving stats", "path", cfg.Game.StatsFile, "error", err)
	}
	if view.HandsPlayed > 0 {
		fmt.Printf("Thanks for playing. Hands: %d  Won: %d (%.1f%%)  Winnings: $%d\n",
			view.HandsPlayed, view.GamesWon, view.WinLossRatio(), view.TotalWinnings)
	}
	return nil
}
