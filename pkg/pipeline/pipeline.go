// Package pipeline turns aggregated items into a finished dossier text in three stages:
// selection of the most relevant items, per-item fact extraction and styled synthesis.
// Selection and extraction degrade to their input on failure, synthesis failure fails the run.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/llm"
)

//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator StyleLookup

// Generator performs a single non-streaming text generation call
type Generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// StyleLookup resolves a style name to its instruction text
type StyleLookup interface {
	Lookup(ctx context.Context, name string) (string, error)
}

// Config defines pipeline parameters
type Config struct {
	SelectionThreshold int    // selection runs only for more items than this
	TargetCount        int    // items requested from selection
	ExtractConcurrency int    // items cleaned in parallel, 1 is sequential
	DefaultLanguage    string // no language directive for this language
	UnrestrictedStyle  string // style switching synthesis to the unrestricted profile
	SummarizeTimeout   time.Duration
}

// DefaultStyleInstructions is used when the dossier style can't be resolved
const DefaultStyleInstructions = "Write in a neutral, professional tone. Be clear, concise and informative, " +
	"the way a well-edited news briefing reads."

const descriptionLimit = 200

const formatDirectives = `Output requirements:
- Write flowing prose in paragraphs. Do not use bullet points, numbered lists or headings.
- Reference every item you cover with an inline markdown hyperlink on a meaningful phrase, e.g. [new compiler release](https://example.com/post). Never print bare URLs.
- Do not add a subject line, greeting, sign-off or any commentary about these instructions.
- The output must be usable as an email body as is.`

// Orchestrator runs the distillation stages over a generation collaborator
type Orchestrator struct {
	gen    Generator
	styles StyleLookup
	cfg    Config
}

// New makes an orchestrator, zero config values are replaced by defaults
func New(gen Generator, styles StyleLookup, cfg Config) *Orchestrator {
	if cfg.SelectionThreshold <= 0 {
		cfg.SelectionThreshold = 10
	}
	if cfg.TargetCount <= 0 {
		cfg.TargetCount = 10
	}
	if cfg.ExtractConcurrency <= 0 {
		cfg.ExtractConcurrency = 1
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	if cfg.UnrestrictedStyle == "" {
		cfg.UnrestrictedStyle = "unfiltered"
	}
	if cfg.SummarizeTimeout <= 0 {
		cfg.SummarizeTimeout = 2 * time.Minute
	}
	return &Orchestrator{gen: gen, styles: styles, cfg: cfg}
}

// Run executes select, extract and synthesize for the dossier and returns the final text.
// The caller owns the deadline of the whole run.
func (o *Orchestrator) Run(ctx context.Context, d domain.Dossier, items []domain.Item) (string, error) {
	st := time.Now()
	selected := o.Select(ctx, items)
	cleaned := o.Extract(ctx, selected)
	text, err := o.Synthesize(ctx, d, cleaned)
	if err != nil {
		return "", err
	}
	lgr.Printf("[INFO] dossier %d generated from %d of %d items in %v", d.ID, len(cleaned), len(items),
		time.Since(st).Round(time.Millisecond))
	return text, nil
}

// Select narrows items down to the most relevant ones. Small sets pass through without a call,
// a failed call or an unusable answer returns the full set.
func (o *Orchestrator) Select(ctx context.Context, items []domain.Item) []domain.Item {
	if len(items) <= o.cfg.SelectionThreshold {
		return items
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Below are %d news items. Pick the %d most important and interesting ones, "+
		"avoiding items that cover the same story.\n\n", len(items), o.cfg.TargetCount)
	for i, it := range items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, it.Title)
		if desc := strings.TrimSpace(stripMarkup(it.Text())); desc != "" {
			fmt.Fprintf(&sb, "   %s\n", truncateRunes(desc, descriptionLimit))
		}
	}
	fmt.Fprintf(&sb, "\nAnswer with exactly %d item numbers separated by commas, e.g. 1, 4, 7. "+
		"Numbers only, no other text.", o.cfg.TargetCount)

	resp, err := o.gen.Generate(ctx, llm.Request{
		Profile: llm.ProfileDefault,
		Prompt:  sb.String(),
		System:  "You are a news editor choosing stories for a briefing. You answer with numbers only.",
	})
	if err != nil {
		lgr.Printf("[WARN] selection failed, using all %d items: %v", len(items), err)
		return items
	}

	indices := FilterIndices(ParseIndices(resp), len(items))
	if len(indices) == 0 {
		lgr.Printf("[WARN] selection returned no usable indices, using all %d items, response: %q",
			len(items), truncateRunes(resp, 100))
		return items
	}

	seen := make(map[int]bool, len(indices))
	res := make([]domain.Item, 0, len(indices))
	for _, idx := range indices {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		res = append(res, items[idx-1])
	}
	lgr.Printf("[DEBUG] selected %d of %d items", len(res), len(items))
	return res
}

// Extract replaces each item's text with a short fact-only rewrite. Items are processed with the
// configured concurrency, a failed item keeps its original text. The input slice is not modified.
func (o *Orchestrator) Extract(ctx context.Context, items []domain.Item) []domain.Item {
	res := make([]domain.Item, len(items))
	copy(res, items)

	g := errgroup.Group{}
	g.SetLimit(o.cfg.ExtractConcurrency)
	for i := range res {
		src := res[i].Text()
		if strings.TrimSpace(src) == "" {
			continue
		}
		g.Go(func() error {
			facts, err := o.extractFacts(ctx, res[i].Title, src)
			if err != nil {
				lgr.Printf("[WARN] fact extraction failed for %q, keeping original: %v", res[i].Title, err)
				return nil
			}
			if res[i].Description != "" {
				res[i].Description = facts
			} else {
				res[i].Body = facts
			}
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func (o *Orchestrator) extractFacts(ctx context.Context, title, text string) (string, error) {
	prompt := fmt.Sprintf("Title: %s\n\nText:\n%s\n\nRewrite the text above as 2-3 objective sentences "+
		"stating only the facts it contains. No opinions, no speculation, no markup, no preamble.", title, text)
	resp, err := o.gen.Generate(ctx, llm.Request{
		Profile: llm.ProfileDefault,
		Prompt:  prompt,
		System:  "You extract facts from news text. You answer with plain sentences only.",
	})
	if err != nil {
		return "", err
	}
	facts := stripMarkup(resp)
	if facts == "" {
		return "", fmt.Errorf("empty facts")
	}
	return facts, nil
}

// Synthesize writes the final dossier text from cleaned items in the dossier's style and language
func (o *Orchestrator) Synthesize(ctx context.Context, d domain.Dossier, items []domain.Item) (string, error) {
	var sb strings.Builder
	sb.WriteString(o.styleInstructions(ctx, d.Style))
	sb.WriteString("\n\n")
	if directive := o.languageDirective(d.Language); directive != "" {
		sb.WriteString(directive)
		sb.WriteString("\n\n")
	}
	if instr := strings.TrimSpace(d.Instructions); instr != "" {
		sb.WriteString("Special instructions: ")
		sb.WriteString(instr)
		sb.WriteString("\n\n")
	}
	sb.WriteString(formatDirectives)
	sb.WriteString("\n\nWrite a briefing covering these items:\n\n")
	for i, it := range items {
		fmt.Fprintf(&sb, "%d. %s\n   Facts: %s\n   Link: %s\n\n", i+1, it.Title, it.Text(), it.Link)
	}

	req := llm.Request{Profile: llm.ProfileDefault, Prompt: strings.TrimSpace(sb.String())}
	if strings.EqualFold(strings.TrimSpace(d.Style), o.cfg.UnrestrictedStyle) {
		req.Profile = llm.ProfileUnrestricted
	}

	resp, err := o.gen.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("synthesize dossier %d: %w", d.ID, err)
	}
	text := collapseBlankLines(resp)
	if text == "" {
		return "", fmt.Errorf("synthesize dossier %d: empty result", d.ID)
	}
	return text, nil
}

// Summarize makes a one-shot summary of arbitrary text, bounded by the summarize timeout
func (o *Orchestrator) Summarize(ctx context.Context, text, style, lang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to summarize")
	}
	ctx, cancel := context.WithTimeout(ctx, o.cfg.SummarizeTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(o.styleInstructions(ctx, style))
	sb.WriteString("\n\n")
	if directive := o.languageDirective(lang); directive != "" {
		sb.WriteString(directive)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Summarize the following text in one or two short paragraphs of flowing prose. " +
		"Keep only the essential facts.\n\n")
	sb.WriteString(stripMarkup(text))

	req := llm.Request{Profile: llm.ProfileDefault, Prompt: sb.String()}
	if strings.EqualFold(strings.TrimSpace(style), o.cfg.UnrestrictedStyle) {
		req.Profile = llm.ProfileUnrestricted
	}
	resp, err := o.gen.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return collapseBlankLines(resp), nil
}

// styleInstructions resolves the style, any failure falls back to the default instructions
func (o *Orchestrator) styleInstructions(ctx context.Context, name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultStyleInstructions
	}
	instr, err := o.styles.Lookup(ctx, name)
	if err != nil || strings.TrimSpace(instr) == "" {
		lgr.Printf("[WARN] style %q unavailable, using default: %v", name, err)
		return DefaultStyleInstructions
	}
	return instr
}

// languageDirective asks for output in lang unless it is the default language
func (o *Orchestrator) languageDirective(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || sameLanguage(lang, o.cfg.DefaultLanguage) {
		return ""
	}
	return fmt.Sprintf("Write the entire text in %s, regardless of the language of the source items.", languageName(lang))
}
