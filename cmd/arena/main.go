package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"retrocast/engine"
)

// keyHold is how long a keypress counts as held. Terminals report
// presses but not releases, so held movement is simulated by decaying
// the last press time.
const keyHold = 200 * time.Millisecond

func main() {
	viper.SetEnvPrefix("retrocast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetConfigName("retrocast")
	viper.AddConfigPath(".")
	viper.SetDefault("difficulty", "normal")
	viper.SetDefault("procedural", false)
	viper.SetDefault("seed", 0)
	viper.SetDefault("width", 160)
	viper.SetDefault("height", 100)
	viper.SetDefault("player", "player")
	viper.SetDefault("scores.path", "retrocast.db")
	viper.SetDefault("relay.url", "")
	viper.SetDefault("relay.token", "")
	viper.SetDefault("relay.id", "")
	viper.SetDefault("log.level", "info")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}
}

func run(log zerolog.Logger) error {
	sess := engine.NewSession(engine.Config{
		Difficulty: engine.ParseDifficulty(viper.GetString("difficulty")),
		Procedural: viper.GetBool("procedural"),
		Seed:       viper.GetInt64("seed"),
		Logger:     log,
		Audio:      engine.NopAudio{},
	})

	if url := viper.GetString("relay.url"); url != "" {
		id := viper.GetString("relay.id")
		if id == "" {
			id = viper.GetString("player")
		}
		link, err := engine.DialPeer(url, viper.GetString("relay.token"), id, log)
		if err != nil {
			return fmt.Errorf("relay: %w", err)
		}
		defer link.Close()
		sess.AttachPeerLink(link)
		log.Info().Str("url", url).Msg("relay connected")
	}

	surf := engine.NewTermSurface(viper.GetInt("width"), viper.GetInt("height"), os.Stdout)
	loop, err := engine.NewLoop(sess, surf, log)
	if err != nil {
		return err
	}

	restore, keys, err := openKeyboard()
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer restore()

	os.Stdout.WriteString("\x1b[2J\x1b[?25l") // clear, hide cursor
	defer os.Stdout.WriteString("\x1b[?25h\x1b[0m\n")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	// Input and simulation share this goroutine, so the session is
	// never touched concurrently.
	held := map[byte]time.Time{}
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-sig:
			loop.Stop()
			return finish(sess, log)
		case <-ticker.C:
		}

		applyKeys(sess, keys, held)

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		if loop.Step(dt) {
			return finish(sess, log)
		}
	}
}

// openKeyboard puts stdin into raw mode and streams its bytes.
func openKeyboard() (restore func(), keys <-chan byte, err error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan byte, 64)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(ch)
				return
			}
			if n == 1 {
				ch <- buf[0]
			}
		}
	}()
	return func() { term.Restore(fd, state) }, ch, nil
}

// applyKeys drains pending keys and refreshes the input latch. WASD
// moves, arrows and q/e turn, space fires, 1/2 pick the weapon, ESC
// quits.
func applyKeys(s *engine.Session, keys <-chan byte, held map[byte]time.Time) {
	now := time.Now()
	for {
		select {
		case b, ok := <-keys:
			if !ok {
				s.Input.Exit = true
				return
			}
			switch b {
			case 27, 'x': // ESC
				s.Input.Exit = true
			case ' ':
				s.Input.Click()
			case '1':
				s.Input.SelectPistol = true
			case '2':
				s.Input.SelectLauncher = true
			default:
				held[b] = now
			}
		default:
			in := &s.Input
			in.Forward = now.Sub(held['w']) < keyHold
			in.Back = now.Sub(held['s']) < keyHold
			in.StrafeLeft = now.Sub(held['a']) < keyHold
			in.StrafeRight = now.Sub(held['d']) < keyHold
			in.TurnLeft = now.Sub(held['q']) < keyHold
			in.TurnRight = now.Sub(held['e']) < keyHold
			return
		}
	}
}

// finish records the run and prints the final standings.
func finish(s *engine.Session, log zerolog.Logger) error {
	os.Stdout.WriteString("\x1b[?25h\x1b[0m\n")
	st := s.Stats()
	log.Info().
		Int("score", st.Score).
		Int("kills", st.Kills).
		Float64("time", st.GameTime).
		Str("diag", st.Summary()).
		Msg("session finished")

	path := viper.GetString("scores.path")
	if path == "" {
		return nil
	}
	store, err := engine.OpenScoreStore(path)
	if err != nil {
		return fmt.Errorf("score store: %w", err)
	}
	defer store.Close()

	if _, err := store.RecordSession(s, viper.GetString("player"), viper.GetBool("procedural")); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	top, err := store.TopRuns(5)
	if err != nil {
		return fmt.Errorf("top runs: %w", err)
	}
	fmt.Println("BEST RUNS")
	for i, r := range top {
		fmt.Printf("%d. %-16s %-6s %6d pts %3d kills\n",
			i+1, r.Player, r.Difficulty, r.Score, r.Kills)
	}
	return nil
}
