package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/trapmeta/internal/app"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	prefsPath  string
	server     string
}

func (g globalOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		Server:     g.server,
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   "trapmeta",
		Short: "Terminal editor for camera trap image metadata",
		Long: `trapmeta browses a folder of camera trap pictures on a metadata server,
shows each picture with its metadata, and lets you edit and save the fields.
Footer text can be read from the picture or typed in, and a dragged region
can be sent for species identification.`,
		Example: `  # Start the editor against the configured server
  trapmeta

  # Use another server for this session
  trapmeta --server http://10.0.0.5:5000`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/trapmeta/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/trapmeta/prefs.toml)")
	flags.StringVar(&opts.server, "server", "", "metadata server URL, overrides config and TRAPMETA_SERVER")

	cmd.AddCommand(
		newExportCmd(&opts),
		newLogsCmd(&opts),
	)

	return cmd
}
