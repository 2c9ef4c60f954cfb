package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mindloom/mindloom/pkg/engine"
	"github.com/mindloom/mindloom/pkg/graphdoc"
	"github.com/mindloom/mindloom/pkg/persist"
)

// editCommand creates the edit command for the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [map.json]",
		Short: "Edit a map interactively in the terminal",
		Long: `Edit a map interactively in the terminal.

The editor shows the visible outline and routes every keystroke through
the same engine the other commands use, so collapse, focus, undo and
redo behave identically. Changes are saved to the map file a moment
after you stop typing, and once more on exit.

Keys:
  j/k or ↓/↑   move the cursor
  a            add a child under the cursor
  s            add a sibling of the cursor
  d            delete the cursor node and its edges
  space        collapse or expand the cursor's subtree
  f            focus the cursor's subtree   F  clear focus
  l            tree layout                  L  radial layout
  u            undo                         r  redo
  w            save now
  q            save and quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd, args[0])
		},
	}

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), ".json")

	store, err := persist.NewFileStore(dir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}

	doc := graphdoc.LoadOrEmpty(path, c.Logger)
	sess := engine.NewSession(name, doc, engine.Options{
		Layout:   c.Config.LayoutOptions(),
		Debounce: c.Config.Debounce(),
		Logger:   c.Logger,
		Store:    store,
	})

	model := NewEditorModel(sess)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		_ = sess.Close(ctx)
		return fmt.Errorf("editor: %w", err)
	}

	if err := sess.Close(ctx); err != nil {
		return err
	}
	printSuccess("saved")
	printFile(store.Path(name))
	return nil
}
