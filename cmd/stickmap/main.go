package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/stickmap/internal/adapters/fs"
	logAdapter "github.com/bft-labs/stickmap/internal/adapters/log"
	"github.com/bft-labs/stickmap/internal/cliconfig"
	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/pkg/stickmap"
)

const helpDescription = `
Map remote-control sticks to rate and thrust setpoints for a multi-rotor.

Highlights:
  - Deadzone and per-axis gains, tunable per airframe in the config file.
  - Motor enable follows the switch channel and drops on signal loss.
  - Always sends a final motor disable on exit, whatever the cause.
  - Endpoints come from a YAML socket map; configure via file, env, or flags.
`

var longHelp = "stickmap " + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  stickmap --sockets /etc/stickmap/sockets.yaml --pidfile /run/stickmap.pid
  stickmap --config $HOME/.stickmap/config.toml --watch-airframe --log-level debug
  STICKMAP_PITCH_GAIN=-0.5 stickmap --deadzone 0.08
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:          "stickmap",
		Short:        "Map remote-control sticks to multi-rotor setpoints",
		Long:         longHelp,
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Flag values (or defaults) are the base for every airframe reload.
			flagAirframe := cfg.Airframe

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// STICKMAP_* override the file; flags override both via the changed map.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, logCloser, err := cliconfig.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer logCloser.Close()
			log = logger
			log.Info().Interface("config", cfg).Msg("configuration")

			sockets, err := cliconfig.LoadSocketMap(cfg.Sockets)
			if err != nil {
				return fmt.Errorf("load sockets: %w", err)
			}

			if cfg.PIDFile != "" {
				pid, err := fs.AcquirePIDFile(cfg.PIDFile)
				if err != nil {
					return err
				}
				defer func() {
					if err := pid.Release(); err != nil {
						log.Warn().Err(err).Str("path", pid.Path()).Msg("remove pidfile")
					}
				}()
			}

			libCfg := stickmap.Config{
				Sockets:       sockets.Layout(),
				StartupDelay:  cfg.StartupDelay,
				DisarmLinger:  cfg.DisarmLinger,
				DisarmTimeout: cfg.DisarmTimeout,
				Airframe:      cfg.Airframe,
			}

			opts := []stickmap.Option{
				stickmap.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
			}
			if cfg.WatchAirframe {
				if cfgFile == "" {
					log.Warn().Msg("no config file path, airframe watching disabled")
				} else {
					opts = append(opts, stickmap.WithAirframeWatcher(cfgFile, func() (domain.Airframe, error) {
						return cliconfig.ResolveAirframe(cfgFile, flagAirframe, changed)
					}))
				}
			}

			svc, err := stickmap.New(libCfg, opts...)
			if err != nil {
				return fmt.Errorf("create stickmap: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start stickmap: %w", err)
			}

			select {
			case sig := <-sigCh:
				log.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
			case <-svc.Done():
				// The loop ended on its own; the final disable was already sent.
				return svc.Err()
			}

			if err := svc.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
				return fmt.Errorf("stop stickmap: %w", err)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.stickmap/config.toml)")
	root.Flags().StringVar(&cfg.Sockets, "sockets", cfg.Sockets, "YAML socket map (default: ipc:///tmp/stickmap_<channel>)")

	root.Flags().DurationVar(&cfg.StartupDelay, "startup-delay", cfg.StartupDelay, "wait before the first frame so consumers can connect")
	root.Flags().DurationVar(&cfg.DisarmLinger, "disarm-linger", cfg.DisarmLinger, "wait after the final disable before closing sockets")
	root.Flags().DurationVar(&cfg.DisarmTimeout, "disarm-timeout", cfg.DisarmTimeout, "upper bound for sending the final disable")
	if err := root.Flags().MarkHidden("disarm-timeout"); err != nil {
		log.Info().Err(err).Msg("failed to hide disarm-timeout flag")
	}

	root.Flags().StringVar(&cfg.PIDFile, "pidfile", cfg.PIDFile, "pidfile guarding against a second instance")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write JSON logs to this file, rotated by size")
	root.Flags().IntVar(&cfg.LogMaxSizeMB, "log-max-size", cfg.LogMaxSizeMB, "log file size in MB before rotation")
	root.Flags().BoolVar(&cfg.WatchAirframe, "watch-airframe", cfg.WatchAirframe, "reload the [airframe] section when the config file changes")

	root.Flags().Float64Var(&cfg.Airframe.ThrustGain, "thrust-gain", cfg.Airframe.ThrustGain, "thrust setpoint per unit of gas")
	root.Flags().Float64Var(&cfg.Airframe.PitchGain, "pitch-gain", cfg.Airframe.PitchGain, "pitch rate per unit of stick")
	root.Flags().Float64Var(&cfg.Airframe.RollGain, "roll-gain", cfg.Airframe.RollGain, "roll rate per unit of stick")
	root.Flags().Float64Var(&cfg.Airframe.YawRateGain, "yaw-rate-gain", cfg.Airframe.YawRateGain, "yaw rate per unit of stick")
	root.Flags().Float64Var(&cfg.Airframe.Deadzone, "deadzone", cfg.Airframe.Deadzone, "stick magnitude below which an axis reads zero")
	root.Flags().Float64Var(&cfg.Airframe.EnableThreshold, "enable-threshold", cfg.Airframe.EnableThreshold, "switch value above which motors are enabled")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("stickmap")
		os.Exit(1)
	}
}
