package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/session"
)

var palette = struct {
	header, info, change, sent, err *color.Color
}{
	header: color.New(color.FgWhite, color.Bold),
	info:   color.New(color.FgCyan),
	change: color.New(color.FgGreen),
	sent:   color.New(color.FgMagenta),
	err:    color.New(color.FgRed),
}

func printHelp(out io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Command", "Description"})
	t.AppendRows([]table.Row{
		{"state | checksum", "Show the mirrored game state or its digest."},
		{"draw [n] | shuffle | mulligan | undo", "Library actions. Without n, draw asks."},
		{"roll [sides]", "Roll a die, 2 to 1000 sides."},
		{"mill [n] | exile-top [n] | bottom", "Move top cards of the library."},
		{"untap-all", "Untap every permanent."},
		{"token <name> [pt] [color] | again", "Create a token, or repeat the last one."},
		{"say <text>", "Chat."},
		{"play <zone> <id> [facedown] [tapped]", "Play a card to the table or the stack."},
		{"select <zone> <id>...", "Select cards for the commands below."},
		{"tap | untap | doesnt-untap | flip | clone", "Act on the selection."},
		{"move <top|bottom|grave|exile>", "Move the selection."},
		{"pt [dp dt] | annotate", "Change power/toughness or annotation."},
		{"counter <id> [+|-|set]", "Change a card counter on the selection."},
		{"attach <player> <zone> <id> | unattach", "Attach the selection to a card."},
		{"reveal <hand|random|top|library> [player]", "Reveal cards."},
		{"view <deck|grave|exile|sb|top>", "Toggle a zone view."},
		{"quit", "Leave."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// printState renders one table per player followed by the state checksum.
func printState(out io.Writer, s *session.Session) {
	for _, p := range s.Players() {
		title := fmt.Sprintf("player %d %s", p.ID(), p.Name())
		if p.IsLocal() {
			title += " (you)"
		}
		if life, ok := p.Target().Life(); ok {
			title += fmt.Sprintf(" life %d", life)
		}
		if p.Conceded() {
			title += " conceded"
		}

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetTitle(title)
		t.AppendHeader(table.Row{"Zone", "Cards", "Contents"})
		for _, z := range p.Zones() {
			contents := ""
			if z.ContentsKnown() && z.Name != protocol.ZoneDeck {
				contents = describeCards(z.Cards())
			}
			t.AppendRow(table.Row{z.Name, z.Len(), contents})
		}
		for _, c := range p.Counters() {
			t.AppendRow(table.Row{"counter", c.Value, c.Name})
		}
		for _, a := range p.Arrows() {
			t.AppendRow(table.Row{"arrow", a.ID, "to " + a.Target.Kind.String()})
		}
		t.SetStyle(table.StyleRounded)
		t.Style().Title.Align = text.AlignCenter
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
		t.Render()
	}
	palette.info.Fprintf(out, "checksum %s\n", s.Checksum())
}

func describeCards(list []*cards.Card) string {
	parts := make([]string, 0, len(list))
	for _, c := range list {
		var b strings.Builder
		fmt.Fprintf(&b, "#%d %s", c.ID, c.Name)
		if c.PT != "" {
			b.WriteString(" " + c.PT)
		}
		if c.Tapped {
			b.WriteString(" (tapped)")
		}
		if c.IsAttached() {
			b.WriteString(" (attached)")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
