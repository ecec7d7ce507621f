package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/guidepost/guidepost"
	"github.com/guidepost/guidepost/resume"
	"github.com/guidepost/guidepost/route"
	"github.com/guidepost/guidepost/session"
	"github.com/guidepost/guidepost/store"
	bunstore "github.com/guidepost/guidepost/store/bun"
	"github.com/guidepost/guidepost/store/memory"
	redisstore "github.com/guidepost/guidepost/store/redis"
)

var rootCmd = &cobra.Command{
	Use:   "guidepost",
	Short: "Workflow navigation inspector",
	Long: `Guidepost inspects and exercises the workflow navigation engine:
the route directory, per-session navigation context, and resume
recommendations, against a session snapshot exported as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./guidepost.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newRoutesCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newResumeCommand())
}

func initConfig() {
	viper.SetDefault("product", "Guidepost")
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.redis.addr", "localhost:6379")
	viper.SetDefault("store.sqlite.path", "guidepost.db")

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("guidepost")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/guidepost")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GUIDEPOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional.
	_ = viper.ReadInConfig()
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore builds the persistence backend named by store.backend:
// memory, redis, or sqlite.
func openStore(ctx context.Context, logger *slog.Logger) (store.Store, error) {
	switch backend := viper.GetString("store.backend"); backend {
	case "memory":
		return memory.New(), nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     viper.GetString("store.redis.addr"),
			Password: viper.GetString("store.redis.password"),
			DB:       viper.GetInt("store.redis.db"),
		})
		s := redisstore.New(client, redisstore.WithLogger(logger))
		if err := s.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis at %s: %w", viper.GetString("store.redis.addr"), err)
		}
		return s, nil

	case "sqlite":
		sqldb, err := sql.Open(sqliteshim.ShimName, viper.GetString("store.sqlite.path"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		s := bunstore.New(db, bunstore.WithLogger(logger))
		if err := s.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory, redis, or sqlite)", backend)
	}
}

// snapshotService serves one snapshot loaded from disk; it stands in for
// the live session service when inspecting exported sessions.
type snapshotService struct {
	snap *session.Snapshot
}

func (s snapshotService) GetSnapshot(_ context.Context, sessionID string) (*session.Snapshot, error) {
	if s.snap == nil || s.snap.SessionID != sessionID {
		return nil, nil
	}
	return s.snap, nil
}

func loadSnapshot(path string) (*session.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if snap.SessionID == "" {
		return nil, fmt.Errorf("%s: snapshot has no sessionId", path)
	}
	if !snap.CurrentStep.Valid() {
		return nil, fmt.Errorf("%s: unknown current step %q", path, snap.CurrentStep)
	}
	return &snap, nil
}

// newNavigator wires a navigator over the configured store for the given
// snapshot.
func newNavigator(ctx context.Context, snap *session.Snapshot) (*guidepost.Navigator, error) {
	logger := newLogger()
	st, err := openStore(ctx, logger)
	if err != nil {
		return nil, err
	}
	routes := route.New()
	return guidepost.New(routes, resume.NewAdvisor(routes), snapshotService{snap: snap},
		guidepost.WithLogger(logger),
		guidepost.WithStore(st),
		guidepost.WithProduct(viper.GetString("product")),
	)
}
