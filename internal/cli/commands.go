package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/filesystem"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the canonical rendering of the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.fs.Render())
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	var showAttr bool

	cmd := &cobra.Command{
		Use:   "get <name> [name...]",
		Short: "Look up a node, one name per level starting at the root",
		Long: `Look up a node, one name per level starting at the root.

Each name is matched against the current node and its direct children only,
so reaching a grandchild takes one name per folder:

  vfstree get folder2/ file2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			e, ok := a.fs.Descend(args...)
			if !ok {
				fmt.Fprintf(out, "Unable to find %s!\n", args[len(args)-1])
				return fmt.Errorf("%w: %s", vfstree.ErrNotFound, strings.Join(args, " "))
			}
			printFound(cmd, e)
			if showAttr {
				printAttr(cmd, e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showAttr, "attr", "a", false, "Also print the node's file attributes")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var parentID uint64

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a direct child of a folder by id, with its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			if !cmd.Flags().Changed("parent") {
				parentID = a.cfg.RootID
			}

			removed, err := a.fs.DeleteID(parentID, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d\n", removed)
			fmt.Fprintln(out, a.fs.Render())
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&parentID, "parent", "p", 0, "Id of the folder holding the node (default root)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report duplicate ids and dangling links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.fs.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tree is valid (%d nodes)\n", a.fs.Len())
			return nil
		},
	}
}

// newDemoCmd walks through the reference scenario on a fresh tree
func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Build the sample tree and run lookups and deletes against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := a.newFS(cmd)
			if err := buildDemoTree(fs); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rootID := fs.Root().ID()

			fmt.Fprintf(out, "root: %s\n", fs.Render())
			lookup(cmd, fs, "file1")
			lookup(cmd, fs, "file2")

			if _, err := fs.DeleteID(rootID, 6); err != nil {
				return err
			}
			lookup(cmd, fs, "folder3/")
			lookup(cmd, fs, "folder2/", "file2")
			fmt.Fprintf(out, "root: %s\n", fs.Render())
			return nil
		},
	}
}

func buildDemoTree(fs *filesystem.FileSystem) error {
	rootID := fs.Root().ID()
	if _, err := fs.AddFile(rootID, "file1", 2); err != nil {
		return err
	}
	folder2, err := fs.AddFolder(rootID, "folder2/", 3)
	if err != nil {
		return err
	}
	if err := fs.Attach(folder2, filesystem.NewFile("file2", 4)); err != nil {
		return err
	}
	folder3, err := fs.AddFolder(rootID, "folder3/", 6)
	if err != nil {
		return err
	}
	return fs.Attach(folder3, filesystem.NewFile("file3", 5))
}

func lookup(cmd *cobra.Command, fs *filesystem.FileSystem, names ...string) {
	if e, ok := fs.Descend(names...); ok {
		printFound(cmd, e)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Unable to find %s!\n", names[len(names)-1])
}

func printFound(cmd *cobra.Command, e filesystem.View) {
	fmt.Fprintf(cmd.OutOrStdout(), "Found %s (%s, id %d): %s\n", e.Name(), e.Kind(), e.ID(), e.Render())
}

func printAttr(cmd *cobra.Command, e filesystem.View) {
	attr := e.Attr()
	fmt.Fprintf(cmd.OutOrStdout(), "ino %d mode %#o nlink %d size %d\n",
		attr.Ino, attr.Mode, attr.Nlink, attr.Size)
}
