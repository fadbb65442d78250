package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/trapmeta/internal/app"
	"github.com/five82/trapmeta/internal/prefs"
)

func newExportCmd(global *globalOptions) *cobra.Command {
	var folder, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the metadata of every picture in a folder as YAML",
		Long: `Loads a folder on the metadata server and writes each picture's
metadata to stdout or a file as YAML. Without --folder the folder confirmed
in the last editor session is used.`,
		Example: `  trapmeta export --folder /data/cam1 > cam1.yaml
  trapmeta export -o cam1.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(global.appOptions())
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			if folder == "" {
				p, _ := prefs.Load(global.prefsPath)
				folder = p.LastFolder
			}
			if folder == "" {
				return fmt.Errorf("no folder given and none remembered; pass --folder")
			}

			var report app.Report
			export := func(w io.Writer) error {
				var err error
				report, err = app.Export(cmd.Context(), env.Client, env.Logger, folder, w)
				return err
			}
			if output == "" {
				return export(cmd.OutOrStdout())
			}
			if err := writeFile(output, export); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d images to %s\n", len(report.Images), output)
			return nil
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&folder, "folder", "", "folder on the server to export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// createOutput opens the export destination.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile runs write against a new file at path. A failed close is
// reported when the write itself succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createOutput(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return write(f)
}
