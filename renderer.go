package form

import (
	"fmt"
	"io"
	"strings"
)

// renderer writes everything a form displays.
//
// The renderer is line oriented: it never moves the cursor or
// rewrites earlier output. Redrawing a form means clearing the display and
// rendering it again from the top.
//
// Styling is limited to two things:
//   - Error messages are painted with the ERROR_COLOR setting
//   - Caller supplied text that carries its own escape codes gets a trailing reset
//     so the styling does not bleed into the next line
type renderer struct {
	output   io.Writer // Target output writer (typically stdout or colorable wrapper)
	settings *Settings // Settings the form currently uses, swapped by SetSettings
}

// newRenderer creates a new renderer with the given output and settings.
func newRenderer(output io.Writer, settings *Settings) *renderer {
	return &renderer{
		output:   output,
		settings: settings,
	}
}

// lines writes each string followed by a newline.
func (r *renderer) lines(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// prompt writes text without a trailing newline. The user's answer follows it.
func (r *renderer) prompt(text string) error {
	_, err := fmt.Fprint(r.output, text)
	return err
}

// error writes msg on its own line in the error color.
func (r *renderer) error(msg string) error {
	if color := r.settings.ErrorColor(); color != nil {
		msg = color.Paint(msg)
	}
	return r.lines(msg)
}

// styled appends a reset to text that contains escape codes.
func (r *renderer) styled(text string) string {
	if strings.Contains(text, "\x1b[") {
		return text + Reset()
	}
	return text
}

// optionLine formats a selectable option as `  <index>. <name>[ --> <tooltip>]`.
func (r *renderer) optionLine(index int, name, tooltip string) string {
	line := fmt.Sprintf("  %d. %s", index, name)
	if tooltip != "" {
		line += " --> " + r.styled(tooltip)
	}
	return r.styled(line)
}

// separatorLine formats separator text inside an option list.
func (r *renderer) separatorLine(text string) string {
	return "  " + r.styled(text)
}

// fieldPrompt formats the prompt shown before reading a field:
// `<name>[ (Default: <default>)][ --> <tooltip>][ (y/n)]: `.
func (r *renderer) fieldPrompt(f *field) string {
	var sb strings.Builder
	sb.WriteString(f.name)
	if f.hasDefault {
		fmt.Fprintf(&sb, " (Default: %s)", formatValue(f.def))
	}
	if f.tooltip != "" {
		sb.WriteString(" --> ")
		sb.WriteString(f.tooltip)
	}
	if f.kind == KindBool {
		sb.WriteString(" (y/n)")
	}
	sb.WriteString(": ")
	return r.styled(sb.String())
}
