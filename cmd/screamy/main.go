// screamy is Screamy Ball: a terminal endless runner you can play by
// yelling at it.
//
// Usage:
//
//	screamy play             - Play straight away
//	screamy menu             - Start at the main menu
//	screamy serve            - Start SSH server for remote play
//	screamy scores           - Show the leaderboard
//	screamy reset-scores     - Clear the leaderboard
//	screamy list             - List registered games
//	screamy config           - Print the default config
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <dsn>      - Set leaderboard database (default: ~/.screamy/scores.db)
//	--name <name>   - Set leaderboard name (default: $USER)
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/screamy-ball/internal/config"
	"github.com/vovakirdan/screamy-ball/internal/core"
	"github.com/vovakirdan/screamy-ball/internal/games/screamyball"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagName       string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "screamy",
	Short: "Screamy Ball - jump and duck by shouting at your terminal",
	Long: `Screamy Ball is an endless runner for the terminal. A ball rolls along
the ground while obstacles scroll in from the right: jump over the low
ones, duck under the high ones. Keys work, and so does your voice.

Available commands:
  play          - Start a run right away
  menu          - Main menu with help and high scores
  serve         - Start SSH server for remote play
  scores        - View the leaderboard
  reset-scores  - Clear the leaderboard
  config        - Print the default game config

Examples:
  screamy play
  screamy play --voice :8765
  screamy menu --name ada
  screamy serve --ssh :2222
  screamy scores --player ada`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		screamyball.SetDifficultyPreset(flagDifficulty)
		screamyball.SetConfigPath(flagConfig)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.screamy/scores.db", "Leaderboard database: SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", defaultPlayerName(), "Name recorded on the leaderboard")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.screamy/screamy.log", "Log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetScoresCmd)
	rootCmd.AddCommand(configCmd)
}

// defaultPlayerName picks the login name for the leaderboard.
func defaultPlayerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// runtimeConfig sizes the playfield from the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}
}

// newLogger opens the log file. The alt screen owns stdout while a game
// runs, so logs never go to the terminal. The returned closer is always
// safe to call.
func newLogger() (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if path == "" {
		return log.New(io.Discard), func() {}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "screamy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
