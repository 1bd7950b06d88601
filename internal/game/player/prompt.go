package player

import (
	"context"

	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/cards"
)

// IntRequest asks the user for a number within [Min, Max]. Max is ignored unless it is greater
// than Min. Answers outside the range count as cancelled.
type IntRequest struct {
	Title   string
	Label   string
	Default int
	Min     int
	Max     int
}

// TextRequest asks the user for a line of text.
type TextRequest struct {
	Title   string
	Label   string
	Default string
}

// Prompter asks the user for input. A false result means the prompt was cancelled.
//
// Prompts run on the session goroutine and may apply queued server events while they wait
// (see session.PumpPending); the player defers card deletion until the prompt returns.
type Prompter interface {
	PromptInt(ctx context.Context, req IntRequest) (int, bool)
	PromptText(ctx context.Context, req TextRequest) (string, bool)
}

// promptInt runs an integer prompt. guarded prompts work on the current selection and are
// aborted when a card was deleted while the prompt was open.
func (p *Player) promptInt(ctx context.Context, req IntRequest, guarded bool) (int, bool) {
	if p.prompter == nil {
		return 0, false
	}
	p.promptDepth++
	value, ok := p.prompter.PromptInt(ctx, req)
	p.promptDepth--
	if p.clearCardsToDelete() && guarded {
		p.logger.Debug("prompt aborted, selected cards were deleted", zap.String("prompt", req.Title))
		return 0, false
	}
	if !ok {
		return 0, false
	}
	if value < req.Min || (req.Max > req.Min && value > req.Max) {
		p.logger.Debug("prompt answer out of range",
			zap.String("prompt", req.Title),
			zap.Int("value", value),
			zap.Int("min", req.Min),
			zap.Int("max", req.Max))
		return 0, false
	}
	return value, true
}

func (p *Player) promptText(ctx context.Context, req TextRequest, guarded bool) (string, bool) {
	if p.prompter == nil {
		return "", false
	}
	p.promptDepth++
	value, ok := p.prompter.PromptText(ctx, req)
	p.promptDepth--
	if p.clearCardsToDelete() && guarded {
		p.logger.Debug("prompt aborted, selected cards were deleted", zap.String("prompt", req.Title))
		return "", false
	}
	if !ok {
		return "", false
	}
	return value, true
}

// PromptOpen reports whether a prompt is waiting for the user.
func (p *Player) PromptOpen() bool {
	return p.promptDepth > 0
}

// PendingDeletions returns the cards whose deletion waits for the open prompt to close.
func (p *Player) PendingDeletions() []*cards.Card {
	out := make([]*cards.Card, len(p.cardsToDelete))
	copy(out, p.cardsToDelete)
	return out
}

// deleteCard drops a card that left the game. While a prompt is open the card is kept alive
// until the prompt closes.
func (p *Player) deleteCard(c *cards.Card) bool {
	if p.promptDepth > 0 {
		p.cardsToDelete = append(p.cardsToDelete, c)
		return true
	}
	return false
}

// clearCardsToDelete releases deferred cards and reports whether there were any. Nested prompts
// leave the queue to the outermost one.
func (p *Player) clearCardsToDelete() bool {
	if p.promptDepth > 0 || len(p.cardsToDelete) == 0 {
		return false
	}
	p.cardsToDelete = nil
	return true
}
