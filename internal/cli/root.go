// Package cli wires the vfstree commands on top of the filesystem package
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/brettbedarf/vfstree/requests"
)

// app holds state shared by every subcommand for a single invocation
type app struct {
	configPath string
	nodesPath  string
	verbose    int

	cfg *config.Config
	fs  *filesystem.FileSystem
}

// NewRootCmd returns the vfstree command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vfstree",
		Short: "Build, inspect and delete from an in-memory namespace tree",
		Long: `Build, inspect and delete from an in-memory namespace tree.

A tree is loaded from a YAML or JSON definition file (--nodes) and every
command operates on the root folder. Lookups are one level per name.

Examples:
  vfstree render -n tree.yaml
  vfstree get folder2/ file2 -n tree.yaml
  vfstree delete 6 -n tree.yaml
  vfstree demo`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	flags.StringVarP(&a.nodesPath, "nodes", "n", "", "Path to a YAML or JSON tree definition file")
	flags.IntVarP(&a.verbose, "verbose", "v", config.InfoVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))

	return rootCmd
}

// setup loads config, initializes logging and builds the tree from --nodes
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.NewDefaultConfig()
	if a.configPath != "" {
		loaded, err := config.NewConfigFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("verbose") {
		cfg.LogLvl = config.VerboseToLogLevel(a.verbose)
	}
	a.cfg = cfg

	util.InitializeLoggerTo(cmd.ErrOrStderr(), cfg.LogLvl)
	logger := util.GetLogger("cli")

	a.fs = a.newFS(cmd)
	if a.nodesPath == "" {
		logger.Debug().Msg("No tree definition provided; starting from an empty root")
		return nil
	}

	tree, err := requests.LoadTreeFile(a.nodesPath)
	if err != nil {
		return fmt.Errorf("load tree definition: %w", err)
	}
	if err := a.fs.Build(tree); err != nil {
		// partial trees are still usable; report what was skipped
		logger.Warn().Err(err).Str("nodes", a.nodesPath).Msg("Some nodes could not be added")
	}
	logger.Debug().Str("nodes", a.nodesPath).Int("count", a.fs.Len()).Msg("Tree loaded")
	return nil
}

func (a *app) newFS(cmd *cobra.Command) *filesystem.FileSystem {
	fs := filesystem.NewFS(a.cfg)
	fs.SetOutput(filesystem.NewWriterNotifier(cmd.OutOrStdout()))
	return fs
}
