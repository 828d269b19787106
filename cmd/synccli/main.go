package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mirror/config"
	"mirror/internal/client/pairing"
	"mirror/internal/client/store"
	"mirror/internal/client/transport"
	"mirror/internal/domain/entity"
	"mirror/internal/errors"

	"github.com/spf13/cobra"
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   store.Store
	api     *transport.Client
	pairing *pairing.Manager
}

type rootFlags struct {
	configDir  string
	serverURL  string
	dataDir    string
	deviceName string
	deviceType string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Interrupting a stream is a normal way to exit.
		if errors.IsCanceled(err) && ctx.Err() != nil {
			return
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	cmd := &cobra.Command{
		Use:          "synccli",
		Short:        "Reference device client for the mirror sync service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), flags)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configDir, "config", "", "directory holding config.yaml")
	cmd.PersistentFlags().StringVar(&flags.serverURL, "server", "", "sync server base URL")
	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "local state directory")
	cmd.PersistentFlags().StringVar(&flags.deviceName, "device-name", "", "name shown to other devices")
	cmd.PersistentFlags().StringVar(&flags.deviceType, "device-type", "", "phone, desktop or web")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log sync activity to stderr")

	cmd.AddGroup(
		&cobra.Group{ID: "pairing", Title: "Pairing:"},
		&cobra.Group{ID: "sync", Title: "Sync:"},
	)
	cmd.AddCommand(
		newCreateCmd(a),
		newJoinCmd(a),
		newRecoverCmd(a),
		newLeaveCmd(a),
		newRemoveCmd(a),
		newInfoCmd(a),
		newHistoryCmd(a),
		newPlanCmd(a),
		newQRCmd(a),
		newStreamCmd(a),
		newStatsCmd(a),
		newClearCmd(a),
		newPutCmd(a),
		newDeleteCmd(a),
	)

	return cmd
}

// loadConfig reads config.yaml when present. The client runs fine on defaults.
func loadConfig(configDir string) (*config.Config, error) {
	var searchPaths []string
	if configDir != "" {
		searchPaths = append(searchPaths, configDir)
	}

	cfg, err := config.LoadWithEnv[config.Config]("config", searchPaths...)
	if err != nil {
		if configDir != "" {
			return nil, err
		}
		cfg = &config.Config{}
	}
	cfg.ApplyDefaults()

	return cfg, nil
}

func (a *app) open(ctx context.Context, flags *rootFlags) error {
	cfg, err := loadConfig(flags.configDir)
	if err != nil {
		return err
	}

	client := cfg.Client
	if flags.serverURL != "" {
		client.ServerURL = flags.serverURL
	}
	if flags.dataDir != "" {
		client.DataDir = flags.dataDir
	}
	if flags.deviceName != "" {
		client.DeviceName = flags.deviceName
	}
	if flags.deviceType != "" {
		client.DeviceType = flags.deviceType
	}

	level := slog.LevelWarn
	if flags.verbose || cfg.Env.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	a.cfg = cfg

	api, err := transport.New(client.ServerURL, &http.Client{Timeout: client.Timeout})
	if err != nil {
		return err
	}

	st, err := store.OpenSQLite(ctx, client.DataDir)
	if err != nil {
		return err
	}

	a.api = api
	a.store = st
	a.pairing = pairing.NewManager(api, st, a.logger)

	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}

	return a.store.Close()
}

func (a *app) profile() pairing.Profile {
	return pairing.Profile{
		DeviceName: a.cfg.Client.DeviceName,
		DeviceType: entity.DeviceType(a.cfg.Client.DeviceType),
	}
}

// requirePaired restores the saved token and fails with a hint when unpaired.
func (a *app) requirePaired(ctx context.Context) (*store.Membership, error) {
	membership, err := a.pairing.Restore(ctx)
	if errors.Is(err, store.ErrNoMembership) {
		return nil, errors.New("this device is not paired; run create, join or recover first")
	}

	return membership, err
}

func parseDataTypes(args []string) ([]entity.DataType, error) {
	if len(args) == 0 {
		return entity.DataTypes(), nil
	}

	types := make([]entity.DataType, 0, len(args))
	for _, arg := range args {
		dataType := entity.DataType(arg)
		if !dataType.IsValid() {
			return nil, errors.Wrapf(entity.ErrUnknownDataType, "%q", arg)
		}
		types = append(types, dataType)
	}

	return types, nil
}
