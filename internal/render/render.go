// Package render prints actions for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/view"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(ac("24", "117"))
	mutedStyle = lipgloss.NewStyle().Foreground(ac("240", "245"))
	indexStyle = lipgloss.NewStyle().Foreground(ac("240", "243")).Width(5)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ac("250", "243")).
			Padding(0, 1)
)

// Renderer writes human-readable output. With Color off it emits plain text
// with no escape sequences.
type Renderer struct {
	Out   io.Writer
	Color bool
	// Positions labels cards with store positions instead of visible indices.
	Positions bool
}

// Cards prints one line per entry, prefixed by its visible index or, with
// Positions set, by its store position.
func (r Renderer) Cards(entries []view.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(r.Out, r.muted("No actions."))
		return
	}
	for i, e := range entries {
		idx := fmt.Sprintf("%d", i)
		if r.Positions {
			idx = fmt.Sprintf("%d", e.Position)
		}
		name := e.DisplayName()
		pack := "(" + e.Pack + ")"
		if r.Color {
			fmt.Fprintln(r.Out, indexStyle.Render(idx)+nameStyle.Render(name)+" "+mutedStyle.Render(pack))
			continue
		}
		fmt.Fprintf(r.Out, "%-5s%s %s\n", idx, name, pack)
	}
}

// Detail prints the expanded view of one action.
func (r Renderer) Detail(a model.Action) {
	var b strings.Builder
	alias := a.Alias
	if alias == "" {
		alias = "No Alias Set"
	}
	r.field(&b, "", "Alias", alias)
	r.field(&b, "", "Original Name", a.Name)
	r.field(&b, "", "Description", a.Description)
	r.field(&b, "", "Transition Mode", a.TransitionMode)

	if len(a.Transitions) == 0 {
		r.field(&b, "", "Transitions", "No Transitions Available")
	} else {
		r.field(&b, "", "Transitions", "")
		for _, t := range a.Transitions {
			r.field(&b, "  ", "Condition", t.When)
			if len(t.Publish) == 0 {
				r.field(&b, "  ", "Publish", "No Data Aliases")
				continue
			}
			r.field(&b, "  ", "Publish", "")
			for _, p := range t.Publish {
				b.WriteString("    • " + p + "\n")
			}
		}
	}
	r.field(&b, "", "Pack", a.Pack)

	if r.Color {
		fmt.Fprintln(r.Out, cardStyle.Render(nameStyle.Render(a.DisplayName())+"\n"+strings.TrimRight(b.String(), "\n")))
		return
	}
	io.WriteString(r.Out, b.String())
}

func (r Renderer) field(b *strings.Builder, indent, label, value string) {
	l := label + ":"
	if r.Color {
		l = labelStyle.Render(l)
	}
	b.WriteString(indent + l)
	if value != "" {
		b.WriteString(" " + value)
	}
	b.WriteString("\n")
}

// Raw prints the stored JSON pretty-printed. Text that is not JSON is
// printed verbatim.
func (r Renderer) Raw(a model.Action) {
	if !gjson.Valid(a.Raw) {
		fmt.Fprintln(r.Out, a.Raw)
		return
	}
	out := pretty.Pretty([]byte(a.Raw))
	if r.Color {
		out = pretty.Color(out, nil)
	}
	r.Out.Write(out)
}

// Notice prints a success line.
func (r Renderer) Notice(format string, args ...any) {
	c := color.New(color.FgGreen)
	r.line(c, format, args...)
}

// Warn prints a non-blocking warning line.
func (r Renderer) Warn(format string, args ...any) {
	c := color.New(color.FgYellow)
	r.line(c, "warning: "+format, args...)
}

func (r Renderer) line(c *color.Color, format string, args ...any) {
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(r.Out, format+"\n", args...)
}

func (r Renderer) muted(s string) string {
	if r.Color {
		return mutedStyle.Render(s)
	}
	return s
}
