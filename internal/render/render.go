// Package render turns an [schema.Availability] into the label and list
// markup shown in the two presentation targets.
package render

import (
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jpalmerr/courtboard/internal/schema"
)

// Color is the CSS colour applied to the status label.
type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
)

// Rendered is the output of one render pass.
type Rendered struct {
	Available bool
	Label     string
	Color     Color

	// ListHTML is the room list fragment. Empty when nothing is available.
	ListHTML string
}

// Renderer renders availability in a fixed locale. Safe for concurrent use.
type Renderer struct {
	locale  language.Tag
	printer *message.Printer
}

// NewRenderer returns a Renderer for the given locale.
func NewRenderer(locale language.Tag) *Renderer {
	return &Renderer{
		locale:  locale,
		printer: newPrinter(locale),
	}
}

// Locale returns the renderer's locale.
func (r *Renderer) Locale() language.Tag {
	return r.locale
}

// Render builds the label and list for a.
//
// Daily groups are emitted as a bold heading followed by a <ul>, today
// before tomorrow; a group without rooms is skipped. A flat group is a bare
// <ul> with one <li> per room, possibly empty. Room names are HTML-escaped.
func (r *Renderer) Render(a schema.Availability) Rendered {
	if !a.Available {
		return Rendered{
			Available: false,
			Label:     r.printer.Sprintf(msgUnavailable),
			Color:     ColorRed,
		}
	}

	var sb strings.Builder
	for _, g := range a.Groups {
		switch g.Day {
		case schema.Today:
			if len(g.Rooms) == 0 {
				continue
			}
			r.writeHeading(&sb, msgToday)
		case schema.Tomorrow:
			if len(g.Rooms) == 0 {
				continue
			}
			r.writeHeading(&sb, msgTomorrow)
		}
		writeList(&sb, g.Rooms)
	}

	return Rendered{
		Available: true,
		Label:     r.printer.Sprintf(msgAvailable),
		Color:     ColorGreen,
		ListHTML:  sb.String(),
	}
}

func (r *Renderer) writeHeading(sb *strings.Builder, key string) {
	sb.WriteString("<strong>")
	sb.WriteString(html.EscapeString(r.printer.Sprintf(key)))
	sb.WriteString("</strong>")
}

func writeList(sb *strings.Builder, rooms []string) {
	sb.WriteString("<ul>")
	for _, room := range rooms {
		sb.WriteString("<li>")
		sb.WriteString(html.EscapeString(room))
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
}
