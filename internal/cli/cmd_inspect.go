package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/burstbuild/internal/app"
)

// defaultManifest is loaded when inspect gets no paths.
const defaultManifest = "build.hcl"

func newInspectCmd(o *options) *cobra.Command {
	var flags struct {
		files   []string
		stat    bool
		workers int
		output  string
	}

	cmd := &cobra.Command{
		Use:   "inspect [MANIFEST_PATH...]",
		Short: "Load manifests and report edges with their command fingerprints",
		Long: `Load one or more .hcl manifests (files or directories) into a fresh build
graph and print every edge with its evaluated command and fingerprint. Files
nothing produces are listed as sources. With --stat every node's modification
time is resolved first; any stat failure other than a missing file is fatal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := append(slices.Clone(flags.files), args...)
			if len(paths) == 0 {
				paths = []string{defaultManifest}
			}
			cfg, err := o.config(cmd, func(c *app.Config) {
				c.ManifestPaths = paths
				c.Stat = flags.stat
				c.Output = flags.output
				if cmd.Flags().Changed("workers") {
					c.Workers = flags.workers
				}
			})
			if err != nil {
				return err
			}
			return app.New(o.outW, o.errW, cfg).Inspect(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&flags.files, "file", "f", nil, "Manifest file or directory; repeatable.")
	f.BoolVar(&flags.stat, "stat", false, "Resolve every node's modification time.")
	f.IntVar(&flags.workers, "workers", app.DefaultConfig().Workers, "Number of concurrent stat calls.")
	f.StringVarP(&flags.output, "output", "o", "text", "Report format. Options: 'text', 'json', 'yaml'.")
	return cmd
}
