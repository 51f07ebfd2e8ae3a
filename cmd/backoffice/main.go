// Command backoffice runs the property back-office dashboard in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"backoffice/internal/badge"
	"backoffice/internal/config"
	"backoffice/internal/logging"
	"backoffice/internal/nav"
	"backoffice/internal/prefs"
	"backoffice/internal/telemetry"
	"backoffice/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type app struct {
	cfgFile  string
	cfg      *config.Config
	log      zerolog.Logger
	closeLog func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{closeLog: func() error { return nil }}

	root := &cobra.Command{
		Use:     "backoffice",
		Short:   "Property back-office dashboard",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.closeLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default: ./backoffice.yaml)")
	f.String("role", "", "signed-in role: admin, landlord or manager")
	f.String("user", "", "display name in the panel footer")
	f.String("state-dir", "", "directory for preferences and logs")
	f.Bool("dev", false, "panic on timer misuse")
	f.String("log-level", "", "trace, debug, info, warn or error")
	f.String("log-file", "", `log file ("-" for stderr)`)

	_ = root.RegisterFlagCompletionFunc("role", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"admin", "landlord", "manager"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newVersionCmd(), newPrefsCmd(a))
	return root
}

// setup loads and validates configuration, then opens the log.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, used, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	out, closeLog, err := logging.Open(cfg.LogPath())
	if err != nil {
		return err
	}

	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Log.Format
	lc.Output = out
	a.cfg = cfg
	a.log = logging.New(lc)
	a.closeLog = closeLog
	if used != "" {
		a.log.Debug().Str("file", used).Msg("config loaded")
	}
	cmd.SetContext(logging.WithContext(cmd.Context(), a.log))
	return nil
}

// openStore opens the preference database, falling back to memory so a
// broken state dir never blocks the dashboard.
func (a *app) openStore() (nav.Storage, func()) {
	store, err := prefs.Open(a.cfg.PrefsPath())
	if err != nil {
		a.log.Warn().Err(err).Msg("preferences unavailable, using memory")
		return prefs.NewMemoryStore(), func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close preferences")
		}
	}
}

func (a *app) run(ctx context.Context) error {
	store, closeStore := a.openStore()
	defer closeStore()

	observers := []nav.Observer{nav.LogObserver{Log: logging.Component(a.log, "nav")}}
	exporter, err := telemetry.NewOTLPExporter(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("tracing disabled")
	} else if exporter != nil {
		observers = append(observers, exporter)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := exporter.Shutdown(sctx); err != nil {
				a.log.Warn().Err(err).Msg("flush traces")
			}
		}()
	}

	model := ui.NewAppModel(ui.Options{
		Role:     a.cfg.ParsedRole(),
		User:     a.cfg.DisplayName(),
		Timings:  a.cfg.Timings(),
		Strict:   a.cfg.Dev,
		Storage:  store,
		Observer: nav.NewMultiObserver(observers...),
		Badges: badge.NewDemoSource(map[string]int{
			nav.BadgeApplications: 3,
			nav.BadgeMaintenance:  5,
		}),
		BadgeInterval: a.cfg.Badge.Interval,
		Logger:        a.log,
	})

	p := tea.NewProgram(model.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "backoffice %s\n", Version)
		},
	}
}

func newPrefsCmd(a *app) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset stored preferences",
	}
	prefsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List stored preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := prefs.Open(a.cfg.PrefsPath())
			if err != nil {
				return err
			}
			defer store.Close()
			keys, err := store.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				v, _, err := store.GetItem(k)
				if err != nil {
					return fmt.Errorf("read %s: %w", k, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, v)
			}
			return nil
		},
	})
	prefsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the pinned panel setting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := prefs.Open(a.cfg.PrefsPath())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Delete(nav.StorageKeyPinned); err != nil {
				return fmt.Errorf("reset %s: %w", nav.StorageKeyPinned, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s in %s\n", nav.StorageKeyPinned, store.Path())
			return nil
		},
	})
	return prefsCmd
}
