package assist

import (
	"context"
	"fmt"
	"strings"
)

const hookSystem = `You are a memory coach. Given a piece of knowledge a
learner wants to retain, produce a short "memory hook": a mnemonic,
analogy, or vivid framing that makes the material easier to recall.
Answer in plain prose, at most three sentences. Do not repeat the
material back verbatim.`

const (
	hookMaxTokens   = 400
	hookTemperature = 0.7
)

// MemoryHook asks the provider for a recall aid for the given item.
func MemoryHook(ctx context.Context, p Provider, title, content string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", title)
	fmt.Fprintf(&b, "Material:\n%s\n", content)

	resp, err := p.Complete(ctx, Request{
		System:      hookSystem,
		Prompt:      b.String(),
		MaxTokens:   hookMaxTokens,
		Temperature: hookTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate memory hook: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
