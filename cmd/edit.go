package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var editEditor string

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the activity log in an editor",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editEditor, "editor", "e", "", "Editor command (default: config editor or $EDITOR)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	editor := editEditor
	if editor == "" {
		editor = cfg.Editor
	}
	command := strings.Fields(editor)
	if len(command) == 0 {
		return fmt.Errorf("no editor configured, use --editor or set $EDITOR")
	}

	c := exec.CommandContext(cmd.Context(), command[0], append(command[1:], tt.Path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running editor %q: %w", editor, err)
	}

	broken, err := tt.Check()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(broken) > 0 {
		printParseErrors(cmd.OutOrStdout(), broken)
	}
	return nil
}
