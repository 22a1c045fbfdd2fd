package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "listview.toml")
}

func TestConfigInitAndShow(t *testing.T) {
	path := tempConfig(t)

	out, err := run(t, "config", "init", "-c", path)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("output = %q, want Created", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out, err = run(t, "config", "init", "-c", path)
	if err != nil {
		t.Fatalf("second config init error = %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("output = %q, want already exists", out)
	}

	out, err = run(t, "config", "show", "-c", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"[list]", "total_count = 100", "[physics]"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestSimulateVelocity(t *testing.T) {
	out, err := run(t, "simulate", "--velocity", "-3000", "-c", tempConfig(t))
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}
	if !strings.Contains(out, "start ") || !strings.Contains(out, "final ") {
		t.Fatalf("output = %q, want start and final lines", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if last := lines[len(lines)-1]; strings.Contains(last, "window=[0,3)") {
		t.Errorf("final = %q, want the list to have moved", last)
	}
}

func TestSimulateShortList(t *testing.T) {
	out, err := run(t, "simulate", "--drag", "-300", "--total", "2", "-c", tempConfig(t))
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if last := lines[len(lines)-1]; !strings.Contains(last, "window=[0,2)") {
		t.Errorf("final = %q, want both items shown", last)
	}
}

func TestScrollTo(t *testing.T) {
	out, err := run(t, "scroll-to", "30", "-c", tempConfig(t))
	if err != nil {
		t.Fatalf("scroll-to error = %v", err)
	}
	if got := strings.Count(out, "state move-complete"); got != 1 {
		t.Errorf("move-complete printed %d times, want 1:\n%s", got, out)
	}
}

func TestScrollToErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no index", []string{"scroll-to"}},
		{"bad index", []string{"scroll-to", "ten"}},
		{"bad bounce", []string{"scroll-to", "3", "--bounce", "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-c", tempConfig(t))
			if _, err := run(t, args...); err == nil {
				t.Error("Execute() error = nil, want error")
			}
		})
	}
}

func TestSnapPages(t *testing.T) {
	out, err := run(t, "snap", "--steps", "2", "--immediate", "-c", tempConfig(t))
	if err != nil {
		t.Fatalf("snap error = %v", err)
	}
	for _, want := range []string{"page 1/100", "page 2/100", "nearest=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfigFile(t *testing.T) {
	path := tempConfig(t)
	if err := os.WriteFile(path, []byte("[list]\ndirection = \"up\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := run(t, "simulate", "-c", path); err == nil {
		t.Error("simulate error = nil, want invalid config")
	}
}
