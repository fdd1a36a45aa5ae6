// Package textalign pads rendered strings to a display width.
package textalign

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment places text inside a padded field.
type Alignment int

const (
	// Left keeps text at the start of the field and fills on the right.
	Left Alignment = iota
	// Right fills on the left.
	Right
	// Center splits the fill, putting the odd column on the right.
	Center
)

func (a Alignment) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case Center:
		return "center"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment accepts "left", "right", "center" and the format-string
// shorthands "<", ">" and "^".
func ParseAlignment(raw string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left", "<", "":
		return Left, nil
	case "right", ">":
		return Right, nil
	case "center", "centre", "^":
		return Center, nil
	default:
		return Left, fmt.Errorf("invalid alignment %q (valid: left|right|center)", raw)
	}
}

// Spec describes a padded field. A zero Width disables padding and a zero
// Fill pads with spaces.
type Spec struct {
	Width int
	Align Alignment
	Fill  rune
}

// Apply pads text to s.Width display columns. Text already at least that
// wide is returned unchanged.
func (s Spec) Apply(text string) string {
	return Pad(text, s.Width, s.Align, s.Fill)
}

// Width returns the number of terminal columns text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Pad pads text to width display columns using fill.
func Pad(text string, width int, align Alignment, fill rune) string {
	if fill == 0 {
		fill = ' '
	}
	pad := width - Width(text)
	if pad <= 0 {
		return text
	}
	fillWidth := runewidth.RuneWidth(fill)
	if fillWidth <= 0 {
		fill, fillWidth = ' ', 1
	}
	count := pad / fillWidth

	var left, right int
	switch align {
	case Right:
		left = count
	case Center:
		left = count / 2
		right = count - left
	default:
		right = count
	}

	var b strings.Builder
	b.Grow(len(text) + count*len(string(fill)))
	for i := 0; i < left; i++ {
		b.WriteRune(fill)
	}
	b.WriteString(text)
	for i := 0; i < right; i++ {
		b.WriteRune(fill)
	}
	return b.String()
}
