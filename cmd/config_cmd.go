package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/tasklist/internal/config"
)

// configCommand prints the effective configuration with the source of each
// value, or an example config file.
func configCommand(cfg *config.Config, args []string, w io.Writer) error {
	if len(args) > 0 {
		if args[0] == "example" && len(args) == 1 {
			fmt.Fprint(w, config.ExampleConfig())
			return nil
		}
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers("KEY", "VALUE", "SOURCE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, field := range config.Fields() {
		t.Row(field, cfg.Value(field), string(cfg.Sources[field]))
	}
	fmt.Fprintln(w, t.Render())

	if len(cfg.Files) == 0 {
		fmt.Fprintln(w, "No config files loaded.")
		return nil
	}
	fmt.Fprintln(w, "Config files:")
	for _, f := range cfg.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}
