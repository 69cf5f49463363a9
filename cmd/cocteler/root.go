package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cocteler/cocteler/internal/app"
	"github.com/cocteler/cocteler/internal/config"
	"github.com/cocteler/cocteler/internal/prefs"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "cocteler",
		Short: "Discover cocktails and keep your favorites",
		Long: fmt.Sprintf(`cocteler (%s)

Browse a bundled cocktail catalog, mix by ingredients, keep favorites and
collections, and share recipes with the community board. Without a
subcommand the terminal UI starts.`, version),
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), c.options())
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ~/.config/cocteler/config.toml)")
	pf.String("data-dir", "", "directory for the database and log file")
	pf.String("log-file", "", "log file path")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("lang", "", "catalog language (en, es)")
	pf.String("theme", "", "TUI theme")
	pf.Bool("ephemeral", false, "keep all state in memory for this run")
	pf.Bool("metrics", false, "print storage write counters to stderr on exit")

	root.AddCommand(
		c.favoritesCmd(),
		c.collectionsCmd(),
		c.searchCmd(),
		c.mixCmd(),
		c.shelvesCmd(),
		c.recommendCmd(),
		c.onboardCmd(),
		c.communityCmd(),
		c.prefsCmd(),
		versionCmd(),
	)
	return root
}

// initConfig layers .env files, COCTELER_* variables and flags.
func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	c.v.SetEnvPrefix("cocteler")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return c.v.BindPFlags(cmd.Flags())
}

func (c *cli) options() app.Options {
	return app.Options{
		ConfigPath: c.v.GetString("config"),
		Overrides: config.Overrides{
			DataDir:   c.v.GetString("data-dir"),
			LogFile:   c.v.GetString("log-file"),
			LogLevel:  c.v.GetString("log-level"),
			Language:  c.v.GetString("lang"),
			Theme:     c.v.GetString("theme"),
			Ephemeral: c.v.GetBool("ephemeral"),
		},
	}
}

// withEnv opens and loads a session around fn and closes it afterwards,
// flushing any writes fn scheduled.
func (c *cli) withEnv(fn func(cmd *cobra.Command, args []string, env *app.Env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		env, err := app.Open(c.options())
		if err != nil {
			return err
		}
		defer func() {
			closeErr := env.Close(context.WithoutCancel(cmd.Context()))
			if c.v.GetBool("metrics") {
				env.Writer.WritePrometheus(cmd.ErrOrStderr())
			}
			if err == nil {
				err = closeErr
			}
		}()

		env.Load(cmd.Context())
		return fn(cmd, args, env)
	}
}

// language is the --lang flag when given, else the stored preference.
func (c *cli) language(env *app.Env) string {
	if lang := c.v.GetString("lang"); lang != "" {
		return prefs.NormalizeLanguage(lang)
	}
	return env.Prefs.Language
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cocteler version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cocteler %s\n", version)
		},
	}
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}
