package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/perfectmaze/pkg/cache"
	"github.com/matzehuels/perfectmaze/pkg/core/backtrack"
	"github.com/matzehuels/perfectmaze/pkg/maze"
	"github.com/matzehuels/perfectmaze/pkg/pipeline"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testViewModel(t *testing.T) viewModel {
	t.Helper()
	seed := uint64(9)
	base := pipeline.Options{Width: 8, Height: 6, Seed: &seed}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return newViewModel(context.Background(), pipeline.NewRunner(cache.NewNullCache(), nil, nil), base)
}

// step applies msg and, when it yields a command, feeds the command's
// message back in.
func step(t *testing.T, m viewModel, msg tea.Msg) viewModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(viewModel)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(viewModel)
	}
	return m
}

func TestViewModelInit(t *testing.T) {
	m := testViewModel(t)
	if !strings.Contains(m.View(), "carving...") {
		t.Error("view before the first maze should show a placeholder")
	}

	next, _ := m.Update(m.Init()())
	m = next.(viewModel)
	if m.err != nil {
		t.Fatal(m.err)
	}
	if m.generated != 1 || m.seed != 9 {
		t.Errorf("generated = %d, seed = %d; want 1, 9", m.generated, m.seed)
	}
	if !strings.Contains(m.View(), string(m.result.Artifacts[pipeline.FormatText])) {
		t.Error("view should show the text maze")
	}
}

func TestViewModelToggles(t *testing.T) {
	m := testViewModel(t)
	m = step(t, m, m.Init()())

	m = step(t, m, key("x"))
	if !m.hex || !strings.Contains(m.View(), string(m.result.Artifacts[pipeline.FormatHex])) {
		t.Error("x should switch the view to hex")
	}
	if m.generated != 1 {
		t.Error("x should not regenerate")
	}

	m = step(t, m, key("s"))
	if m.strategy != backtrack.Recursive || m.generated != 2 || m.busy {
		t.Errorf("after s: strategy %s, generated %d, busy %v", m.strategy, m.generated, m.busy)
	}
	if m.result.Maze.Strategy != backtrack.Recursive.String() {
		t.Errorf("maze strategy = %s, want recursive", m.result.Maze.Strategy)
	}

	m = step(t, m, key("p"))
	if m.patternName() != maze.PatternNone || m.result.Maze.Pattern != maze.PatternNone {
		t.Errorf("p should drop the pattern, got %s", m.result.Maze.Pattern)
	}
	m = step(t, m, key("p"))
	if m.patternName() != maze.Pattern42 {
		t.Errorf("second p should restore 42, got %s", m.patternName())
	}
}

func TestViewModelIgnoresKeysWhileBusy(t *testing.T) {
	m := testViewModel(t)
	m.busy = true

	next, cmd := m.Update(key("s"))
	if cmd != nil || next.(viewModel).strategy != m.strategy {
		t.Error("s while busy should be ignored")
	}
	next, _ = m.Update(key("x"))
	if !next.(viewModel).hex {
		t.Error("x should toggle hex while busy")
	}
}

func TestViewModelQuit(t *testing.T) {
	m := testViewModel(t)
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", msg)
		}
	}
}

func TestViewModelError(t *testing.T) {
	m := testViewModel(t)
	next, _ := m.Update(generatedMsg{err: context.Canceled})
	if !strings.Contains(next.(viewModel).View(), "context canceled") {
		t.Error("view should show the generation error")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "May 16, 2025"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatRelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestHistoryTable(t *testing.T) {
	now := time.Now()
	m := &maze.Maze{ID: "abc", Width: 12, Height: 7, Seed: 42, Strategy: "iterative", Pattern: "42", CreatedAt: now}
	out := historyTable([]*maze.Maze{m}, now)
	for _, want := range []string{"abc", "12x7", "iterative", "just now"} {
		if !strings.Contains(out, want) {
			t.Errorf("history table missing %q:\n%s", want, out)
		}
	}
}
