package view

import (
	"strings"
	"testing"

	"torlife/src/simulation"
	"torlife/src/universe"
)

func TestFieldText(t *testing.T) {
	u := universe.New(3, 2, universe.Dead)
	u.SetCells([][2]int{{0, 0}, {1, 2}})

	if got, expected := fieldText(u, 10, 10, "#", "."), "#..\n..#"; got != expected {
		t.Fatalf("field %q, expected %q", got, expected)
	}
	//cropped by width only
	lines := strings.Split(fieldText(u, 2, 10, "#", "."), "\n")
	if len(lines) != 2 || lines[0] != "#." || !strings.Contains(lines[1], "larger than the viewing area") {
		t.Fatalf("cropped field %q", lines)
	}
}

func TestFieldTextCropWarning(t *testing.T) {
	u := universe.New(5, 5, universe.Pattern)
	lines := strings.Split(fieldText(u, 3, 3, "#", "."), "\n")
	if len(lines) != 3 {
		t.Fatalf("%v lines, expected 3", len(lines))
	}
	if lines[0] != "#.#" || lines[1] != ".##" {
		t.Fatalf("field lines %q", lines[:2])
	}
	if !strings.Contains(lines[2], "larger than the viewing area") {
		t.Fatalf("last line %q is not the warning", lines[2])
	}
}

func TestHelpLine(t *testing.T) {
	keys := []keyBinding{
		{key: 'n', label: "N", descr: "Next step"},
		{key: 'x', descr: "hidden"},
		{key: 'r', label: "R", descr: "Run"},
	}
	got := helpLine(keys)
	if !strings.HasPrefix(got, "KEYBINDINGS: ") {
		t.Fatalf("help line %q", got)
	}
	if !strings.Contains(got, ": Next step, ") || !strings.HasSuffix(got, ": Run") {
		t.Fatalf("help line %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("unlabelled binding is shown: %q", got)
	}
}

func TestCentered(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		height   int
		expected string
	}{
		{"ab", 6, 2, "\n  ab"},
		{"abcdef", 4, 3, "\nabcd"},
		{"ab", -1, 1, ""},
		{"тор", 5, 0, " тор"},
	}
	for _, tt := range tests {
		if got := centered(tt.text, tt.width, tt.height); got != tt.expected {
			t.Errorf("centered(%q, %v, %v) = %q, expected %q", tt.text, tt.width, tt.height, got, tt.expected)
		}
	}
}

func TestPropsAndDetail(t *testing.T) {
	st := simulation.Status{Details: map[string]interface{}{simulation.DetailBorn: 4}}
	got := props("Born", detail(st, simulation.DetailBorn), "Died", detail(st, simulation.DetailDied))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("%v lines, expected 2: %q", len(lines), got)
	}
	if !strings.HasSuffix(lines[0], ": 4") || !strings.HasSuffix(lines[1], ": -") {
		t.Fatalf("props %q", got)
	}
}
