package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/screamy-ball/internal/games/screamyball"
	"github.com/vovakirdan/screamy-ball/internal/platform/tui"
	"github.com/vovakirdan/screamy-ball/internal/registry"
	"github.com/vovakirdan/screamy-ball/internal/sound"
	"github.com/vovakirdan/screamy-ball/internal/storage"
	"github.com/vovakirdan/screamy-ball/internal/voice"
)

var (
	flagVoiceAddr string
	flagMute      bool
)

// voiceBuffer is how many recognized commands may queue up before the
// oldest are dropped.
const voiceBuffer = 8

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run right away",
	Long: `Start playing immediately, skipping the menu.

Controls:
  Space/W/Up   - Jump
  S/Down       - Duck
  P/Esc        - Pause
  M            - Mute
  R            - Restart (after a crash)
  Q/Ctrl+C     - Quit

Voice control:
  --voice starts a websocket endpoint at ws://<addr>/voice. Any speech
  recognizer can send it the text it heard ("jump", "duck", a scream...).

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  screamy play
  screamy play --difficulty hard
  screamy play --voice :8765
  screamy play --mute --config ./my-screamy.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runGame(true)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the main menu",
	Long: `Start Screamy Ball at the main menu.

Use arrow keys or j/k to navigate, Enter to select.
After a crash the leaderboard is shown; R plays again, B returns here.

Examples:
  screamy menu
  screamy menu --name ada --voice :8765`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runGame(false)
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagVoiceAddr, "voice", "", "Listen for voice commands on this address (e.g. :8765)")
		c.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
	}
}

func runGame(startInGame bool) {
	logger, closeLog := newLogger()
	defer closeLog()

	game, err := registry.Create(screamyball.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	// Sound degrades to muted when no audio device is available
	snd := sound.NewManager(flagMute)
	if err := snd.Init(); err != nil {
		logger.Warn("audio unavailable, continuing muted", "error", err)
		if !snd.Muted() {
			snd.ToggleMute()
		}
	}

	opts := tui.Options{
		Store:       store,
		Sound:       snd,
		Player:      flagName,
		StartInGame: startInGame,
		Logger:      logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	voiceDone := make(chan struct{})
	if flagVoiceAddr != "" {
		srv := voice.NewServer(flagVoiceAddr, logger.WithPrefix("voice"), voiceBuffer)
		opts.Voice = srv.Commands()
		go serveVoice(ctx, srv, logger, voiceDone)
	} else {
		close(voiceDone)
	}

	runErr := tui.Run(game, runtimeConfig(), opts)

	cancel()
	<-voiceDone
	snd.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func serveVoice(ctx context.Context, srv *voice.Server, logger *log.Logger, done chan<- struct{}) {
	defer close(done)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("voice server stopped", "error", err)
	}
	if dropped := srv.Dropped(); dropped > 0 {
		logger.Warn("voice commands dropped while the game was busy", "count", dropped)
	}
}
