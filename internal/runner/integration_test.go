package runner_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const (
	unformatted = "class A {\n    int m ;\n}\n"
	formatted   = "class A {\n    int m;\n}\n"
)

// binaryPath builds the stylefix binary and returns its path.
func binaryPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "stylefix")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	cmd := exec.CommandContext(t.Context(), "go", "build", "-o", bin, "../../cmd/stylefix")
	cmd.Dir = filepath.Join(projectRoot(t), "internal", "runner")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// command runs bin in an empty directory so that no config file is
// discovered.
func command(t *testing.T, bin string, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.CommandContext(t.Context(), bin, args...)
	cmd.Dir = t.TempDir()
	return cmd
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return exitErr.ExitCode()
}

func TestIntegrationStdinFormat(t *testing.T) {
	bin := binaryPath(t)

	cmd := command(t, bin)
	cmd.Stdin = strings.NewReader(unformatted)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != formatted {
		t.Errorf("stdin format: got %q, want %q", string(out), formatted)
	}
}

func TestIntegrationCheck(t *testing.T) {
	bin := binaryPath(t)

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"formatted", formatted, 0},
		{"unformatted", unformatted, 1},
		{"syntax error", "class A {", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := command(t, bin, "--check")
			cmd.Stdin = strings.NewReader(tt.input)
			if got := exitCode(t, cmd.Run()); got != tt.want {
				t.Errorf("exit code: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIntegrationDiff(t *testing.T) {
	bin := binaryPath(t)

	cmd := command(t, bin, "--diff", "--color", "off")
	cmd.Stdin = strings.NewReader(unformatted)
	out, err := cmd.CombinedOutput()
	if got := exitCode(t, err); got != 1 {
		t.Errorf("diff with changes: expected exit 1, got %d", got)
	}

	output := string(out)
	if !strings.Contains(output, "-    int m ;") {
		t.Errorf("diff missing old line: %s", output)
	}
	if !strings.Contains(output, "+    int m;") {
		t.Errorf("diff missing new line: %s", output)
	}
}

func TestIntegrationWrite(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")

	if err := os.WriteFile(path, []byte(unformatted), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := command(t, bin, "-w", path).CombinedOutput()
	if err != nil {
		t.Fatalf("write: %v\n%s", err, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != formatted {
		t.Errorf("file after write: got %q", string(data))
	}
}

func TestIntegrationVersion(t *testing.T) {
	bin := binaryPath(t)

	out, err := command(t, bin, "--version").Output()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(string(out), "stylefix ") {
		t.Errorf("version: got %q", string(out))
	}
}

func TestIntegrationBadFlag(t *testing.T) {
	bin := binaryPath(t)

	if got := exitCode(t, command(t, bin, "--frobnicate").Run()); got != 2 {
		t.Errorf("bad flag: expected exit 2, got %d", got)
	}
}

func TestIntegrationMissingFile(t *testing.T) {
	bin := binaryPath(t)

	if got := exitCode(t, command(t, bin, "/nonexistent/A.java").Run()); got != 2 {
		t.Errorf("missing file: expected exit 2, got %d", got)
	}
}

func TestIntegrationExplicitConfig(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	configPath := filepath.Join(dir, "custom.yml")
	cfg := "modules:\n  MethodParamPad:\n    option: space\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := command(t, bin, "--config", configPath)
	cmd.Stdin = strings.NewReader("class A {\n    void f() {\n    }\n}\n")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	want := "class A {\n    void f () {\n    }\n}\n"
	if string(out) != want {
		t.Errorf("config space: got %q, want %q", string(out), want)
	}
}

func TestIntegrationMultipleFiles(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "Good.java")
	bad := filepath.Join(dir, "Bad.java")
	if err := os.WriteFile(good, []byte(formatted), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(unformatted), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := command(t, bin, "--check", dir)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if got := exitCode(t, cmd.Run()); got != 1 {
		t.Errorf("check mixed: expected exit 1, got %d", got)
	}
	if strings.TrimSpace(stderr.String()) != bad {
		t.Errorf("check mixed: listed %q, want %q", stderr.String(), bad)
	}
}
