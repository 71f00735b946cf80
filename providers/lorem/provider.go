// Package lorem provides an offline provider that streams generated
// placeholder content. Examples and integration-style tests use it to
// exercise the full event contract without API keys or network access.
package lorem

import (
	"context"
	"math/rand"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	"github.com/haowjy/agentwire-go"
)

// Maximum fragment size when chopping scripted tool markup.
const maxFragmentRunes = 12

// Script pins the emitted stream for one exchange. The zero value streams
// a random lorem paragraph.
type Script struct {
	// Reasoning is streamed first as reasoning deltas, word by word.
	Reasoning string

	// Text is streamed as text deltas, word by word. Delta concatenation
	// reproduces the string exactly.
	Text string

	// ToolCall is streamed after Text as text deltas chopped into
	// random-sized fragments, the way tool markup arrives from real
	// models. It should be well-formed markup such as
	// "<read_file>\n<path>main.go</path>\n</read_file>".
	ToolCall string

	// Usage overrides the trailing usage report. Nil reports word-count
	// estimates.
	Usage *agentwire.UsageDelta
}

// Config holds construction-time configuration for the lorem provider.
type Config struct {
	// Options selects the model, which controls pacing. No API key is
	// needed.
	Options agentwire.Options

	// Script pins the emitted content.
	Script Script
}

// Provider implements agentwire.Provider with generated content.
type Provider struct {
	generator *loremgen.Lorem
	script    Script
	model     agentwire.SelectedModel
	delay     time.Duration
}

// New creates a lorem provider. Model ids must carry the "lorem-" prefix;
// the suffix picks the pacing (lorem-fast, lorem-medium, lorem-slow).
func New(cfg Config) (*Provider, error) {
	if err := agentwire.ValidateOptions(&cfg.Options); err != nil {
		return nil, err
	}

	catalog := agentwire.GetCatalog()
	modelID := cfg.Options.GetModel(catalog.DefaultModel(agentwire.ProviderLorem))
	if !strings.HasPrefix(modelID, "lorem-") {
		return nil, &agentwire.ModelError{
			Model:    modelID,
			Provider: string(agentwire.ProviderLorem),
			Reason:   "model ids must start with 'lorem-'",
			Err:      agentwire.ErrInvalidModel,
		}
	}

	return &Provider{
		generator: loremgen.New(),
		script:    cfg.Script,
		model: agentwire.SelectedModel{
			ID:   modelID,
			Info: catalog.ModelInfoOrDefault(agentwire.ProviderLorem, modelID),
		},
		delay: streamDelay(modelID),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() agentwire.ProviderID {
	return agentwire.ProviderLorem
}

// Model returns the model this provider was configured with.
func (p *Provider) Model() agentwire.SelectedModel {
	return p.model
}

// streamDelay maps the model id onto the pause between deltas.
func streamDelay(model string) time.Duration {
	switch {
	case strings.Contains(model, "slow"):
		return 500 * time.Millisecond // 2 deltas/second
	case strings.Contains(model, "fast"):
		return 33 * time.Millisecond // 30 deltas/second
	}
	return 100 * time.Millisecond // 10 deltas/second
}

// CreateMessage streams the configured script: reasoning prelude, text,
// tool markup fragments, then a usage report. The context is checked
// between deltas; cancellation becomes the terminal Err event.
func (p *Provider) CreateMessage(ctx context.Context, systemPrompt string, history []agentwire.Message) (<-chan agentwire.StreamEvent, error) {
	eventChan := make(chan agentwire.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(eventChan)

		scripted := p.script.Reasoning != "" || p.script.Text != "" || p.script.ToolCall != ""
		text := p.script.Text
		if !scripted {
			text = p.generator.Paragraph(2, 3)
		}

		outputWords := 0

		n, err := p.streamWords(ctx, eventChan, p.script.Reasoning, agentwire.ReasoningEvent)
		outputWords += n
		if err != nil {
			eventChan <- agentwire.ErrorEvent(err)
			return
		}

		n, err = p.streamWords(ctx, eventChan, text, agentwire.TextEvent)
		outputWords += n
		if err != nil {
			eventChan <- agentwire.ErrorEvent(err)
			return
		}

		n, err = p.streamFragments(ctx, eventChan, p.script.ToolCall)
		outputWords += n
		if err != nil {
			eventChan <- agentwire.ErrorEvent(err)
			return
		}

		usage := agentwire.UsageDelta{
			InputTokens:  estimateTokens(systemPrompt, history),
			OutputTokens: outputWords,
		}
		if p.script.Usage != nil {
			usage = *p.script.Usage
		}
		eventChan <- agentwire.UsageEvent(usage)
	}()

	return eventChan, nil
}

// streamWords sends s as word-sized deltas whose concatenation reproduces
// s exactly. Returns the number of deltas sent.
func (p *Provider) streamWords(ctx context.Context, eventChan chan<- agentwire.StreamEvent, s string, wrap func(string) agentwire.StreamEvent) (int, error) {
	if s == "" {
		return 0, nil
	}

	sent := 0
	for _, delta := range strings.SplitAfter(s, " ") {
		if delta == "" {
			continue
		}

		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		default:
		}

		// The buffer absorbs sends while the consumer catches up.
		eventChan <- wrap(delta)
		sent++

		time.Sleep(p.delay)
	}

	return sent, nil
}

// streamFragments sends s as text deltas of random size, split without
// regard for tag or word boundaries. Returns the word count of s.
func (p *Provider) streamFragments(ctx context.Context, eventChan chan<- agentwire.StreamEvent, s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	runes := []rune(s)
	for start := 0; start < len(runes); {
		n := 1 + rand.Intn(maxFragmentRunes)
		if start+n > len(runes) {
			n = len(runes) - start
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		eventChan <- agentwire.TextEvent(string(runes[start : start+n]))
		start += n

		time.Sleep(p.delay)
	}

	return len(strings.Fields(s)), nil
}

// estimateTokens approximates prompt tokens by word count.
func estimateTokens(systemPrompt string, history []agentwire.Message) int {
	total := len(strings.Fields(systemPrompt))
	for _, msg := range history {
		total += len(strings.Fields(msg.JoinText()))
	}
	return total
}
