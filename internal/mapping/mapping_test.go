package mapping

import (
	"strings"
	"testing"
)

func TestApply_Colloquial(t *testing.T) {
	table := MustDefault()

	got := table.Apply("자스 공부하다가 막혔어요")

	if !strings.Contains(got, "JavaScript") {
		t.Errorf("Expected 자스 rewritten to JavaScript, got %q", got)
	}
}

func TestApply_TypoWholeWordOnly(t *testing.T) {
	table := MustDefault()

	if got := table.Apply("vsc 설정 방법"); !strings.Contains(got, "VSCode") {
		t.Errorf("Expected whole-word vsc rewritten, got %q", got)
	}

	// "vscx" has no word boundary after "vsc" so the typo entry must not fire.
	if got := table.Apply("vscx"); got != "vscx" {
		t.Errorf("Expected partial word untouched, got %q", got)
	}
}

func TestApply_CaseInsensitive(t *testing.T) {
	table := MustDefault()

	got := table.Apply("VSCODE 테마 바꾸기")

	if !strings.Contains(got, "VSCode") {
		t.Errorf("Expected case-insensitive rewrite, got %q", got)
	}
}

func TestApply_Empty(t *testing.T) {
	table := MustDefault()

	if got := table.Apply(""); got != "" {
		t.Errorf("Expected empty passthrough, got %q", got)
	}
}

func TestApply_PhaseOrder(t *testing.T) {
	table, err := New(
		[]Entry{{From: "노드", To: "Node.js"}},
		[]Entry{{From: "js", To: "JavaScript"}},
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The colloquial phase's output feeds the typo phase. "노드" becomes
	// "Node.js" and the typo phase then rewrites its "js" suffix. This
	// cross-phase interaction is the documented table behavior.
	got := table.Apply("노드 버전")
	if got != "Node.JavaScript 버전" {
		t.Errorf("Expected typo phase to see colloquial output, got %q", got)
	}
}

func TestStandardTerm(t *testing.T) {
	table := MustDefault()

	tests := []struct {
		in   string
		want string
	}{
		{"vsc", "VSCode"},
		{"VSC", "VSCode"},
		{"자스", "JavaScript"},
		{"JAVASCRIPT", "JavaScript"},
		{"unknown-term", "unknown-term"},
	}

	for _, tt := range tests {
		if got := table.StandardTerm(tt.in); got != tt.want {
			t.Errorf("StandardTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStandardTerm_ColloquialFirst(t *testing.T) {
	table, err := New(
		[]Entry{{From: "dup", To: "FromColloquial"}},
		[]Entry{{From: "dup", To: "FromTypo"}},
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := table.StandardTerm("dup"); got != "FromColloquial" {
		t.Errorf("Expected colloquial table to win, got %q", got)
	}
}
