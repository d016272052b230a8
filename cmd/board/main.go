package main

import (
	"aptos-board/auth"
	"aptos-board/contract"
	"aptos-board/infrastructure/clipboard"
	"aptos-board/internal"
	"aptos-board/repositories"
	"aptos-board/runtime"
	"aptos-board/store"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/benbjohnson/clock"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Board terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, mounts the board and drives it from stdin.
// Returning instead of exiting lets every defer (like database cleanup) run.
func run() (int, error) {
	mintAdmin := flag.String("mint-admin", "", "print an admin token for this wallet address and exit")
	flag.Parse()

	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	renderOpts, err := LoadRenderOptions()
	if err != nil {
		return exitConfig, fmt.Errorf("render config error: %w", err)
	}

	if *mintAdmin != "" {
		token, err := auth.GenerateToken([]byte(config.AuthSecret), *mintAdmin,
			[]string{auth.RoleAdmin}, config.AuthTokenDuration)
		if err != nil {
			return exitRuntime, err
		}
		fmt.Println(token)
		return exitOK, nil
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB), only the onboarding flag lives there
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.DebugPort > 0 && logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, PreferenceMapper)
	}

	preferences := repositories.NewPreferenceRepository(db, logger)
	showOnboarding := repositories.FirstVisit(preferences, logger)

	// 3. Board
	clk := clock.New()
	renderer := NewRenderer(os.Stdout, renderOpts, clk.Now)
	board, err := runtime.NewBoard(logger, boardConfig(config, clk.Now(), showOnboarding), runtime.Dependencies{
		Clock:      clk,
		Random:     newRandom(config.FeedSeed),
		Clipboard:  clipboard.System{},
		Authorizer: auth.NewTokenAuthorizer(logger, []byte(config.AuthSecret), config.AdminToken),
		Sinks:      []contract.EventSink{renderer},
	})
	if err != nil {
		return exitConfig, err
	}

	// 4. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- board.Start(ctx)
	}()

	// 5. Console, blocks until quit, EOF or signal
	renderer.Snapshot(board.Store().Snapshot())
	if err := NewConsole(board, renderer).Run(ctx, os.Stdin); err != nil {
		board.Stop()
		return exitRuntime, err
	}

	// 6. Graceful shutdown
	board.Stop()
	if err := <-errChan; err != nil {
		return exitRuntime, fmt.Errorf("board error: %w", err)
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func boardConfig(config internal.Config, now time.Time, showOnboarding bool) runtime.Config {
	opts := store.Options{
		Identity:         config.WalletIdentity,
		ConnectLatency:   config.ConnectLatency,
		NotificationTTL:  config.NotificationTTL,
		CopiedTTL:        config.CopiedTTL,
		MaxContentLength: config.MaxContentLength,
		PageSize:         config.PageSize,
		ShowOnboarding:   showOnboarding,
	}
	if config.SeedDemoContent {
		opts.Stats = store.DemoStats
		opts.Seed = store.DemoSeed(now)
	}
	return runtime.Config{
		EventBufferSize:      config.EventBufferSize,
		SinkTimeout:          config.SinkTimeout,
		RestartInterval:      config.RestartInterval,
		FeedInterval:         config.FeedInterval,
		FeedProbability:      config.FeedProbability,
		MetricInterval:       config.MetricInterval,
		LowCapacityThreshold: config.LowCapacityThreshold,
		Store:                opts,
	}
}

// newRandom returns a seeded source when FEED_SEED is set, a random one otherwise.
func newRandom(seed *int64) *rand.Rand {
	s := lo.FromPtrOr(seed, time.Now().UnixNano())
	return rand.New(rand.NewPCG(uint64(s), uint64(s)>>1|1))
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

func PreferenceMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	var p wrapperspb.BoolValue
	if err := proto.Unmarshal(val, &p); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = "PREFERENCE"
	row.Detail = fmt.Sprintf("%t", p.GetValue())
	return row
}
