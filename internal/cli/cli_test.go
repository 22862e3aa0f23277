package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/perfectmaze/pkg/maze"
	"github.com/matzehuels/perfectmaze/pkg/observability"
)

type testCLI struct {
	*CLI
	out, errOut, logs bytes.Buffer
	configPath        string
	cacheDir          string
}

// newTestCLI isolates every user directory under t.TempDir().
func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))

	tc := &testCLI{
		configPath: filepath.Join(root, "config.toml"),
		cacheDir:   filepath.Join(root, "cache"),
	}
	cfg := "[cache]\ndir = \"" + filepath.ToSlash(tc.cacheDir) + "\"\n"
	if err := os.WriteFile(tc.configPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	tc.CLI = New(&tc.logs, LogInfo)
	tc.SetOutput(&tc.out, &tc.errOut)
	t.Cleanup(observability.Reset)
	return tc
}

func (tc *testCLI) run(args ...string) error {
	tc.out.Reset()
	tc.errOut.Reset()
	root := tc.RootCommand()
	root.SetArgs(append([]string{"--config", tc.configPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestGenerateToStdout(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("generate", "-W", "10", "-H", "5", "--seed", "3", "--pattern", "none"); err != nil {
		t.Fatalf("generate: %v\n%s", err, tc.logs.String())
	}

	lines := strings.Split(strings.TrimSuffix(tc.out.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11:\n%s", len(lines), tc.out.String())
	}
	if !strings.Contains(tc.logs.String(), "seed=3") {
		t.Errorf("log should report the seed:\n%s", tc.logs.String())
	}
	if !strings.Contains(tc.errOut.String(), "49 walls carved") {
		t.Errorf("stats line = %q, want 49 walls carved", tc.errOut.String())
	}
}

func TestGenerateDeterministic(t *testing.T) {
	tc := newTestCLI(t)
	args := []string{"generate", "--seed", "11", "-f", "hex", "--no-cache"}
	if err := tc.run(args...); err != nil {
		t.Fatal(err)
	}
	first := tc.out.String()
	if err := tc.run(append(args, "--strategy", "recursive")...); err != nil {
		t.Fatal(err)
	}
	if tc.out.String() != first {
		t.Error("same seed should carve the same maze with either strategy")
	}
}

func TestGeneratePatternSkippedWarning(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("generate", "-W", "4", "-H", "4", "--seed", "1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.logs.String(), "too small for the pattern") {
		t.Errorf("expected a pattern-skipped warning:\n%s", tc.logs.String())
	}
}

func TestGenerateInvalidFlags(t *testing.T) {
	tc := newTestCLI(t)
	tests := [][]string{
		{"generate", "--width=-1"},
		{"generate", "--strategy", "bfs"},
		{"generate", "--pattern", "smiley"},
		{"generate", "-f", "gif"},
		{"generate", "--glyphs", "emoji"},
		{"generate", "--fit", "stretch"},
	}
	for _, args := range tests {
		if err := tc.run(args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestGeneratePatternFile(t *testing.T) {
	tc := newTestCLI(t)
	pf := filepath.Join(t.TempDir(), "plus.toml")
	src := "rows = [\".#.\", \"###\", \".#.\"]\nfit = \"exact\"\n"
	if err := os.WriteFile(pf, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "plus.json")
	if err := tc.run("generate", "-W", "5", "-H", "5", "--seed", "2", "--pattern-file", pf, "-f", "json", "-o", out); err != nil {
		t.Fatal(err)
	}
	m, err := maze.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if m.Pattern != maze.PatternCustom || len(m.Reserved) != 5 {
		t.Errorf("pattern = %s with %d reserved cells, want custom with 5", m.Pattern, len(m.Reserved))
	}
}

func TestGenerateRenderVerify(t *testing.T) {
	tc := newTestCLI(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "maze")

	if err := tc.run("generate", "--seed", "5", "-f", "json,hex", "-o", base); err != nil {
		t.Fatal(err)
	}
	for _, ext := range []string{".json", ".hex"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
	hex, err := os.ReadFile(base + ".hex")
	if err != nil {
		t.Fatal(err)
	}

	if err := tc.run("render", base+".json", "-f", "hex"); err != nil {
		t.Fatal(err)
	}
	if tc.out.String() != string(hex) {
		t.Error("render should reproduce the generated hex")
	}

	if err := tc.run("verify", base+".json"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(tc.out.String(), "acyclic") {
		t.Errorf("verify should print a report table:\n%s", tc.out.String())
	}
}

func TestVerifyRejectsCycle(t *testing.T) {
	tc := newTestCLI(t)
	// A 2x2 grid with every inner wall open: one loop through all four cells.
	doc := `{"id": "6f1c0f2e-8a4b-4d7e-9a51-0c2f3b4d5e6f", "width": 2, "height": 2,
		"seed": 0, "strategy": "iterative", "pattern": "none",
		"start": {"x": 0, "y": 0}, "walls": ["93", "C6"], "visited": 4, "carved": 4}`
	path := filepath.Join(t.TempDir(), "loop.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tc.run("verify", path); err != errNotPerfect {
		t.Errorf("verify error = %v, want errNotPerfect", err)
	}
}

func TestHistory(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("history"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.errOut.String(), "No saved mazes") {
		t.Errorf("empty history = %q", tc.errOut.String())
	}

	for i := 0; i < 2; i++ {
		if err := tc.run("generate", "-W", "6", "-H", "4", "--save", "-f", "hex"); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(tc.errOut.String(), "Saved maze") {
			t.Errorf("generate --save output = %q", tc.errOut.String())
		}
	}

	if err := tc.run("history", "-n", "1"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(tc.out.String(), "6x4"); got != 1 {
		t.Errorf("history -n 1 listed %d mazes:\n%s", got, tc.out.String())
	}
}

func TestCacheCommands(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("cache", "path"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(tc.out.String()); got != tc.cacheDir {
		t.Errorf("cache path = %q, want %q", got, tc.cacheDir)
	}

	if err := tc.run("generate", "--seed", "8", "-f", "hex"); err != nil {
		t.Fatal(err)
	}
	if err := tc.run("generate", "--seed", "8", "-f", "hex"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.errOut.String(), "cached") {
		t.Errorf("second seeded run should be cached: %q", tc.errOut.String())
	}

	if err := tc.run("cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if err := tc.run("generate", "--seed", "8", "-f", "hex"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.errOut.String(), "fresh") {
		t.Errorf("run after clear should be fresh: %q", tc.errOut.String())
	}
}

func TestConfigCommands(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("config", "path"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(tc.out.String()); got != tc.configPath {
		t.Errorf("config path = %q, want %q", got, tc.configPath)
	}

	if err := tc.run("config", "show"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), "[maze]") || !strings.Contains(tc.out.String(), tc.cacheDir) {
		t.Errorf("config show:\n%s", tc.out.String())
	}
}

func TestCompletion(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("completion", "bash"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), "perfectmaze") {
		t.Error("bash completion should mention the command name")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"text"}},
		{"hex", []string{"hex"}},
		{"text, svg", []string{"text", "svg"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, fallback, want string
	}{
		{"", "maze", "maze"},
		{"", "saved/maze.json", "saved/maze"},
		{"out/big.svg", "maze", "out/big"},
		{"out/big", "maze", "out/big"},
		{"out/big.v2", "maze", "out/big.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.fallback); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.fallback, got, tt.want)
		}
	}
}
