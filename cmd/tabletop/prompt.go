package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/magefree/mage-client-go/internal/game/player"
)

// linePrompter answers prompts from the command line. It runs on the session goroutine and keeps
// applying queued server events while it waits for the user.
type linePrompter struct {
	out      io.Writer
	lines    <-chan string
	pump     func() int
	interval time.Duration
}

func (lp *linePrompter) PromptInt(ctx context.Context, req player.IntRequest) (int, bool) {
	text, ok := lp.ask(ctx, fmt.Sprintf("%s: %s [%d]", req.Title, req.Label, req.Default))
	if !ok {
		return 0, false
	}
	if text == "" {
		return req.Default, true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		fmt.Fprintf(lp.out, "not a number: %q\n", text)
		return 0, false
	}
	return n, true
}

func (lp *linePrompter) PromptText(ctx context.Context, req player.TextRequest) (string, bool) {
	text, ok := lp.ask(ctx, fmt.Sprintf("%s: %s [%s]", req.Title, req.Label, req.Default))
	if !ok {
		return "", false
	}
	if text == "" {
		return req.Default, true
	}
	return text, true
}

// ask returns false when the user enters "cancel", input ends or ctx is done.
func (lp *linePrompter) ask(ctx context.Context, prompt string) (string, bool) {
	fmt.Fprint(lp.out, prompt+" > ")
	ticker := time.NewTicker(lp.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-lp.lines:
			if !ok {
				return "", false
			}
			line = strings.TrimSpace(line)
			if line == "cancel" {
				return "", false
			}
			return line, true
		case <-ticker.C:
			if lp.pump != nil {
				lp.pump()
			}
		}
	}
}
