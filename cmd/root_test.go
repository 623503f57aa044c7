package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/nibzard/tasklist/internal/todo"
	"github.com/nibzard/tasklist/internal/ui"
)

var configEnv = []string{
	"TASKLIST_CONFIG",
	"TASKLIST_BACKEND",
	"TASKLIST_KEY",
	"TASKLIST_STATE_DIR",
	"TASKLIST_SQLITE_FILE",
	"TASKLIST_REDIS_ADDR",
	"TASKLIST_REDIS_PASSWORD",
	"TASKLIST_REDIS_DB",
	"TASKLIST_LOG_DIR",
	"TASKLIST_LOG_LEVEL",
	"TASKLIST_LOG_FORMAT",
	"TASKLIST_LOG_TIMESTAMPS",
	"TASKLIST_LOG_CALLER",
}

// cli runs commands against an isolated state and log directory.
type cli struct {
	t        *testing.T
	stateDir string
	logDir   string
	extra    []string
}

func newCLI(t *testing.T, extra ...string) *cli {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range configEnv {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())
	return &cli{
		t:        t,
		stateDir: filepath.Join(home, "state"),
		logDir:   filepath.Join(home, "logs"),
		extra:    extra,
	}
}

func (c *cli) run(args ...string) (stdout, stderr string, err error) {
	c.t.Helper()
	full := append([]string{"-state-dir", c.stateDir, "-log-dir", c.logDir}, c.extra...)
	full = append(full, args...)
	var out, errOut bytes.Buffer
	err = run(context.Background(), full, &out, &errOut)
	return out.String(), errOut.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, errOut, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%v: %v\nstderr: %s", args, err, errOut)
	}
	return out
}

func (c *cli) tasks() []todo.Task {
	c.t.Helper()
	out := c.mustRun("ls", "-json")
	tasks, err := todo.Decode([]byte(strings.TrimSpace(out)))
	if err != nil {
		c.t.Fatalf("ls -json output does not decode: %v\n%s", err, out)
	}
	return tasks
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"help flag", []string{"--help"}, "Usage:", ""},
		{"short help flag", []string{"-h"}, "Commands:", ""},
		{"help command", []string{"help"}, "Global Options:", ""},
		{"version flag", []string{"--version"}, "tasklist dev", ""},
		{"short version flag", []string{"-v"}, "tasklist dev", ""},
		{"version command", []string{"version"}, "tasklist dev", ""},
		{"unknown command", []string{"unknown-command"}, "", "unknown command"},
		{"unknown flag", []string{"-nope"}, "", "loading config"},
		{"bad backend", []string{"-backend", "floppy", "ls"}, "", "unknown storage backend"},
		{"toggle without id", []string{"toggle"}, "", "usage"},
		{"rm bad id", []string{"rm", "abc"}, "", "invalid task id"},
		{"all with args", []string{"all", "now"}, "", "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)
			out, _, err := c.run(tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestTaskCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("ls")
	if !strings.Contains(out, "No tasks yet") {
		t.Errorf("empty ls:\n%s", out)
	}

	out = c.mustRun("add", "buy", "milk")
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "[ ]") {
		t.Errorf("add output:\n%s", out)
	}
	c.mustRun("add", "walk dog")

	tasks := c.tasks()
	if len(tasks) != 2 || tasks[0].Text != "buy milk" || tasks[1].Text != "walk dog" {
		t.Fatalf("tasks: %+v", tasks)
	}
	first := strconv.FormatInt(tasks[0].ID, 10)

	out = c.mustRun("toggle", first)
	if !strings.Contains(out, "[x]") {
		t.Errorf("toggle output:\n%s", out)
	}
	out = c.mustRun("ls")
	if !strings.Contains(out, first) || !strings.Contains(out, "1 open, 1 done") {
		t.Errorf("ls after toggle:\n%s", out)
	}

	out = c.mustRun("rm", first)
	if !strings.Contains(out, `Deleted "buy milk"`) {
		t.Errorf("rm output:\n%s", out)
	}
	if tasks := c.tasks(); len(tasks) != 1 || tasks[0].Text != "walk dog" {
		t.Errorf("after rm: %+v", tasks)
	}

	out = c.mustRun("all")
	if !strings.Contains(out, "Marked 1 task(s) done") {
		t.Errorf("all output:\n%s", out)
	}
	if tasks := c.tasks(); !tasks[0].Completed {
		t.Errorf("all did not complete: %+v", tasks)
	}

	out = c.mustRun("clear")
	if !strings.Contains(out, "Deleted 1 task(s)") {
		t.Errorf("clear output:\n%s", out)
	}
	data, err := os.ReadFile(filepath.Join(c.stateDir, "todos.json"))
	if err != nil {
		t.Fatalf("reading state file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("state after clear: got %s, want []", data)
	}
}

func TestUnknownIDIsNotAnError(t *testing.T) {
	c := newCLI(t)
	c.mustRun("add", "keep")

	for _, command := range []string{"toggle", "rm"} {
		out := c.mustRun(command, "12345")
		if !strings.Contains(out, "No task with id 12345") {
			t.Errorf("%s output:\n%s", command, out)
		}
	}
	if tasks := c.tasks(); len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("tasks changed: %+v", tasks)
	}
}

func TestAddBlank(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("add", "  ")
	if !strings.Contains(out, "Nothing to add") {
		t.Errorf("output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(c.stateDir, "todos.json")); !os.IsNotExist(err) {
		t.Errorf("blank add wrote state: %v", err)
	}
}

func TestAddMultiLineText(t *testing.T) {
	c := newCLI(t)
	c.mustRun("add", "first\nline", "two\tthree")
	tasks := c.tasks()
	if len(tasks) != 1 || tasks[0].Text != "first line two three" {
		t.Errorf("tasks: %+v", tasks)
	}
}

func TestCorruptStateWarns(t *testing.T) {
	c := newCLI(t)
	if err := os.MkdirAll(c.stateDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(c.stateDir, "todos.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := c.run("ls")
	if err != nil {
		t.Fatalf("ls on corrupt state: %v", err)
	}
	if !strings.Contains(errOut, "Warning") || !strings.Contains(errOut, "todos.corrupt") {
		t.Errorf("stderr:\n%s", errOut)
	}
	if !strings.Contains(out, "No tasks yet") {
		t.Errorf("stdout:\n%s", out)
	}
	backup, err := os.ReadFile(filepath.Join(c.stateDir, "todos.corrupt.json"))
	if err != nil || string(backup) != "not json" {
		t.Errorf("backup: %q, %v", backup, err)
	}
}

func TestStorageKeyFlag(t *testing.T) {
	c := newCLI(t)
	c.mustRun("-key", "work", "add", "report")
	if tasks := c.tasks(); len(tasks) != 0 {
		t.Errorf("default key sees work tasks: %+v", tasks)
	}
	out := c.mustRun("-key", "work", "ls")
	if !strings.Contains(out, "report") {
		t.Errorf("work list:\n%s", out)
	}
}

func TestBackends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name  string
		flags []string
	}{
		{"sqlite", []string{"-backend", "sqlite"}},
		{"redis", []string{"-backend", "redis", "-redis-addr", mr.Addr()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t, tt.flags...)
			c.mustRun("add", "persisted")
			tasks := c.tasks()
			if len(tasks) != 1 || tasks[0].Text != "persisted" {
				t.Fatalf("tasks: %+v", tasks)
			}
			c.mustRun("toggle", strconv.FormatInt(tasks[0].ID, 10))
			if tasks := c.tasks(); !tasks[0].Completed {
				t.Errorf("toggle not persisted: %+v", tasks)
			}
		})
	}
}

func TestMemoryBackendForgets(t *testing.T) {
	c := newCLI(t, "-backend", "memory")
	c.mustRun("add", "ephemeral")
	if tasks := c.tasks(); len(tasks) != 0 {
		t.Errorf("memory backend kept tasks across runs: %+v", tasks)
	}
}

func TestConfigCommand(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("-backend", "sqlite", "config")
	for _, want := range []string{"backend", "sqlite", "flag", "storage_key", "default", "No config files loaded."} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	out = c.mustRun("config", "example")
	if !strings.Contains(out, "storage_key = \"todos\"") {
		t.Errorf("example config:\n%s", out)
	}

	if _, _, err := c.run("config", "bogus"); err == nil {
		t.Error("expected error for unknown config argument")
	}
}

func TestLogsCommand(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("logs")
	if !strings.Contains(out, "No log files found.") {
		t.Errorf("logs before any run:\n%s", out)
	}

	c.mustRun("add", "logged")
	out = c.mustRun("logs", "-n", "50")
	if !strings.Contains(out, "Tailing:") || !strings.Contains(out, "session start") {
		t.Errorf("logs output:\n%s", out)
	}
}

func TestTUIRequiresTTY(t *testing.T) {
	if ui.IsTTY(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	c := newCLI(t)
	_, _, err := c.run("tui")
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Errorf("expected TTY error, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		args    []string
		want    int64
		wantErr bool
	}{
		{[]string{"1718000000000"}, 1718000000000, false},
		{[]string{" 42 "}, 42, false},
		{[]string{"-3"}, -3, false},
		{[]string{"x"}, 0, true},
		{[]string{"1.5"}, 0, true},
		{nil, 0, true},
		{[]string{"1", "2"}, 0, true},
	}
	for _, tt := range tests {
		got, err := parseID("toggle", tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%v): err=%v, wantErr=%v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%v): got %d, want %d", tt.args, got, tt.want)
		}
	}
}
