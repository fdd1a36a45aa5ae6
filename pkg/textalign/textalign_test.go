package textalign

import "testing"

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		align Alignment
		fill  rune
		want  string
	}{
		{"no width", "1.0 KiB", 0, Right, 0, "1.0 KiB"},
		{"left", "42 B", 8, Left, 0, "42 B    "},
		{"right", "42 B", 8, Right, 0, "    42 B"},
		{"center even", "42 B", 8, Center, 0, "  42 B  "},
		{"center odd", "42 B", 7, Center, '-', "-42 B--"},
		{"fill", "7", 3, Right, '0', "007"},
		{"already wide", "1023.9 KiB", 4, Right, 0, "1023.9 KiB"},
		{"wide text", "大小", 6, Left, '.', "大小.."},
		{"wide fill", "x", 5, Right, '大', "大大x"},
		{"zero width fill", "x", 3, Left, '\u200b', "x  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pad(tt.text, tt.width, tt.align, tt.fill); got != tt.want {
				t.Fatalf("Pad(%q, %d, %s, %q) = %q, want %q", tt.text, tt.width, tt.align, tt.fill, got, tt.want)
			}
		})
	}
}

func TestSpecApply(t *testing.T) {
	spec := Spec{Width: 6, Align: Center, Fill: '*'}
	if got := spec.Apply("ab"); got != "**ab**" {
		t.Fatalf("Apply = %q, want %q", got, "**ab**")
	}
	var zero Spec
	if got := zero.Apply("ab"); got != "ab" {
		t.Fatalf("zero Spec Apply = %q, want %q", got, "ab")
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
	}{
		{"left", Left},
		{"<", Left},
		{"", Left},
		{"RIGHT", Right},
		{">", Right},
		{"center", Center},
		{"^", Center},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlignment(tt.in)
			if err != nil {
				t.Fatalf("ParseAlignment(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseAlignment(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Fatalf("expected error for unknown alignment")
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"1.5 KiB", 7},
		{"容量", 4},
	}
	for _, tt := range tests {
		if got := Width(tt.text); got != tt.want {
			t.Fatalf("Width(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
