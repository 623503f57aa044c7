package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/render"
	"github.com/nibzard/tasklist/internal/todo"
	"github.com/nibzard/tasklist/internal/ui"
)

// tuiCommand launches the interactive view.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	showIDs := fs.Bool("ids", false, "Show task ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.RunTUI(ctx, s.store,
		ui.WithLogger(s.logger),
		ui.WithStartupError(s.loadErr),
		ui.WithShowIDs(*showIDs),
	)
}

// addCommand appends a task built from the joined arguments.
func addCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	s.warnLoad(stderr)

	task, ok, err := s.store.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stdout, "Nothing to add.")
		return nil
	}
	fmt.Fprintln(stdout, render.Render([]todo.Task{task}, listOptions(stdout, true)))
	return nil
}

// lsCommand prints the task list.
func lsCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tasklist ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showIDs := fs.Bool("ids", true, "Show task ids")
	asJSON := fs.Bool("json", false, "Print the stored JSON instead of rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	s.warnLoad(stderr)

	tasks := s.store.Tasks()
	if *asJSON {
		data, err := todo.Encode(tasks)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	fmt.Fprintln(stdout, render.Render(tasks, listOptions(stdout, *showIDs)))
	if len(tasks) > 0 {
		open, done := s.store.Counts()
		fmt.Fprintf(stdout, "\n%d open, %d done\n", open, done)
	}
	return nil
}

// toggleCommand flips one task between open and done.
func toggleCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	s.warnLoad(stderr)

	found, err := s.store.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(stdout, "No task with id %d.\n", id)
		return nil
	}
	task, _ := s.store.Get(id)
	fmt.Fprintln(stdout, render.Render([]todo.Task{task}, listOptions(stdout, true)))
	return nil
}

// rmCommand deletes one task.
func rmCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	id, err := parseID("rm", args)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	s.warnLoad(stderr)

	task, _ := s.store.Get(id)
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(stdout, "No task with id %d.\n", id)
		return nil
	}
	fmt.Fprintf(stdout, "Deleted %q\n", task.Text)
	return nil
}

// allCommand marks every task done.
func allCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	s.warnLoad(stderr)

	if err := s.store.SelectAll(ctx); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Marked %d task(s) done.\n", s.store.Len())
	return nil
}

// clearCommand deletes every task.
func clearCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	s.warnLoad(stderr)

	n := s.store.Len()
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Deleted %d task(s).\n", n)
	return nil
}

func parseID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: tasklist %s <id>", command)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

// listOptions binds the row styles to w, so piped output carries no escape
// codes.
func listOptions(w io.Writer, showIDs bool) render.Options {
	return render.Options{
		Styles:  render.DefaultStyles(lipgloss.NewRenderer(w)),
		ShowIDs: showIDs,
	}
}
