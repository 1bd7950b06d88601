package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/magefree/mage-client-go/internal/game/player"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/session"
)

var errQuit = errors.New("quit")

// repl executes one command per input line on the session goroutine until input ends, the user
// quits or ctx is done.
func repl(ctx context.Context, s *session.Session, lines <-chan string, out io.Writer) error {
	palette.info.Fprintln(out, `type "help" for commands`)
	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		var cmdErr error
		err := s.Do(ctx, func(s *session.Session) {
			cmdErr = execute(ctx, s, args, out)
		})
		if err != nil {
			return err
		}
		if errors.Is(cmdErr, errQuit) {
			return nil
		}
		if cmdErr != nil {
			palette.err.Fprintln(out, cmdErr)
		}
	}
}

func execute(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help":
		printHelp(out)
		return nil
	case "quit", "exit":
		return errQuit
	case "state":
		printState(out, s)
		return nil
	case "checksum":
		fmt.Fprintln(out, s.Checksum())
		return nil
	}

	p := s.Local()
	if p == nil {
		return fmt.Errorf("no local player %d in this game", s.LocalPlayerID())
	}
	switch cmd {
	case "draw":
		return withCount(rest, func(n int) { p.DrawCards(n) }, func() { p.PromptDrawCards(ctx) })
	case "shuffle":
		p.Shuffle()
	case "mulligan":
		p.Mulligan()
	case "undo":
		p.UndoDraw()
	case "roll":
		return withCount(rest, p.RollDie, func() { p.PromptRollDie(ctx) })
	case "mill":
		return withCount(rest, func(n int) { p.MoveTopCardsTo(protocol.ZoneGrave, n) },
			func() { p.PromptMoveTopCardsToGrave(ctx) })
	case "exile-top":
		return withCount(rest, func(n int) { p.MoveTopCardsTo(protocol.ZoneExile, n) },
			func() { p.PromptMoveTopCardsToExile(ctx) })
	case "bottom":
		p.MoveTopCardToBottom()
	case "untap-all":
		p.UntapAll()
	case "token":
		if len(rest) == 0 {
			return fmt.Errorf("usage: token <name> [pt] [color]")
		}
		params := player.DefaultTokenParams()
		params.Name = rest[0]
		if len(rest) > 1 {
			params.PT = rest[1]
		}
		if len(rest) > 2 {
			params.Color = rest[2]
		}
		p.CreateToken(params)
	case "again":
		p.CreateAnotherToken()
	case "say":
		p.SayMessage(strings.Join(rest, " "))
	case "play":
		if len(rest) < 2 {
			return fmt.Errorf("usage: play <zone> <id> [facedown] [tapped]")
		}
		h, err := handleOf(p, rest[0], rest[1])
		if err != nil {
			return err
		}
		p.PlayCard(h, hasFlag(rest[2:], "facedown"), hasFlag(rest[2:], "tapped"))
	case "select":
		if len(rest) < 2 {
			return fmt.Errorf("usage: select <zone> <id>...")
		}
		var handles []uuid.UUID
		for _, id := range rest[1:] {
			h, err := handleOf(p, rest[0], id)
			if err != nil {
				return err
			}
			handles = append(handles, h)
		}
		p.Select(handles...)
	case "tap":
		p.TapSelected()
	case "untap":
		p.UntapSelected()
	case "doesnt-untap":
		p.ToggleDoesntUntapSelected()
	case "flip":
		p.FlipSelected()
	case "clone":
		p.CloneSelected()
	case "move":
		return moveSelected(p, rest)
	case "pt":
		if len(rest) == 2 {
			dp, err1 := strconv.Atoi(rest[0])
			dt, err2 := strconv.Atoi(rest[1])
			if err1 != nil || err2 != nil {
				return fmt.Errorf("usage: pt [dp dt]")
			}
			p.IncPTSelected(dp, dt)
			return nil
		}
		p.PromptSetPTSelected(ctx)
	case "annotate":
		p.PromptSetAnnotationSelected(ctx)
	case "counter":
		return cardCounter(ctx, p, rest)
	case "attach":
		if len(rest) != 3 {
			return fmt.Errorf("usage: attach <player> <zone> <id>")
		}
		playerID, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("bad player id %q", rest[0])
		}
		target := s.Player(playerID)
		if target == nil {
			return fmt.Errorf("no player %d", playerID)
		}
		h, err := handleOf(target, rest[1], rest[2])
		if err != nil {
			return err
		}
		p.AttachSelected(h)
	case "unattach":
		for _, h := range p.Selection() {
			p.Unattach(h)
		}
	case "reveal":
		return reveal(p, rest)
	case "view":
		return view(ctx, p, rest)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func withCount(args []string, run func(int), prompt func()) error {
	if len(args) == 0 {
		prompt()
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad number %q", args[0])
	}
	run(n)
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func handleOf(p *player.Player, zone, id string) (uuid.UUID, error) {
	cardID, err := strconv.Atoi(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bad card id %q", id)
	}
	c := p.Card(zone, cardID)
	if c == nil {
		return uuid.Nil, fmt.Errorf("no card %d in %s of player %d", cardID, zone, p.ID())
	}
	return c.Handle, nil
}

func moveSelected(p *player.Player, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: move <top|bottom|grave|exile>")
	}
	switch args[0] {
	case "top":
		p.MoveSelectedTo(player.DeckTop)
	case "bottom":
		p.MoveSelectedTo(player.DeckBottom)
	case "grave":
		p.MoveSelectedTo(player.Graveyard)
	case "exile":
		p.MoveSelectedTo(player.Exile)
	default:
		return fmt.Errorf("unknown destination %q", args[0])
	}
	return nil
}

func cardCounter(ctx context.Context, p *player.Player, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: counter <id> [+|-|set]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad counter id %q", args[0])
	}
	op := "+"
	if len(args) > 1 {
		op = args[1]
	}
	switch op {
	case "+":
		p.IncCardCounterSelected(id)
	case "-":
		p.DecCardCounterSelected(id)
	case "set":
		p.PromptSetCardCounterSelected(ctx, id)
	default:
		return fmt.Errorf("unknown counter operation %q", op)
	}
	return nil
}

func reveal(p *player.Player, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: reveal <hand|random|top|library> [player]")
	}
	to := protocol.NoPlayer
	if len(args) > 1 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad player id %q", args[1])
		}
		to = id
	}
	switch args[0] {
	case "hand":
		p.RevealHand(to)
	case "random":
		p.RevealRandomHandCard(to)
	case "top":
		p.RevealTopCard(to)
	case "library":
		p.RevealLibrary(to)
	default:
		return fmt.Errorf("unknown reveal %q", args[0])
	}
	return nil
}

func view(ctx context.Context, p *player.Player, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: view <deck|grave|exile|sb|top>")
	}
	switch args[0] {
	case "deck":
		p.ViewLibrary()
	case "grave":
		p.ViewGraveyard()
	case "exile":
		p.ViewExile()
	case "sb":
		p.ViewSideboard()
	case "top":
		p.PromptViewTopCards(ctx)
	default:
		return fmt.Errorf("unknown zone view %q", args[0])
	}
	return nil
}
