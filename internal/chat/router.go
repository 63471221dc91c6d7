// Package chat routes applicant messages through a three-tier pipeline:
// instant rule table, bounded upstream generation, fixed fallback. A caller
// always gets a usable answer; upstream failures degrade, they never surface.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"supportapi/internal/llm"
	"supportapi/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Source identifies which tier produced a response.
type Source string

const (
	SourceInstant  Source = "instant"
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// FallbackResponse is returned whenever no rule matched and the upstream
// could not answer in time.
const FallbackResponse = "I'm here to help with your social support application. " +
	"Could you please rephrase your question? I can assist with applications, " +
	"documents, eligibility, and status updates."

// systemPrompt frames every upstream generation call.
const systemPrompt = `You are a UAE Social Support Assistant. Give short, helpful answers.

I help with:
- Application process & eligibility
- Document requirements
- Financial support programs

Quick facts:
- Eligibility: UAE residency, income <AED 4,000/month
- Docs needed: Emirates ID, bank statements, income proof
- Fast processing: 2-5 minutes

Keep responses under 50 words and be friendly.`

// Result is the routed answer plus where it came from and how long it took.
type Result struct {
	Text    string
	Source  Source
	Elapsed time.Duration
}

// Router produces a response for every message. Respond never fails: when
// the upstream adapter errors or exceeds its deadline the fixed fallback is
// returned instead.
type Router interface {
	Respond(ctx context.Context, message string, app *model.Application) Result
}

// Config assembles a router. Client may be nil, in which case unmatched
// messages go straight to the fallback. Responses, when set, counts routed
// answers by source.
type Config struct {
	Rules            []Rule
	Client           llm.Client
	Timeout          time.Duration
	MaxResponseChars int
	Responses        *prometheus.CounterVec
}

type router struct {
	rules    []Rule
	client   llm.Client
	timeout  time.Duration
	maxChars int
	counter  *prometheus.CounterVec
}

const (
	defaultTimeout  = 5 * time.Second
	defaultMaxChars = 600
)

func NewRouter(cfg Config) Router {
	r := &router{
		rules:    cfg.Rules,
		client:   cfg.Client,
		timeout:  cfg.Timeout,
		maxChars: cfg.MaxResponseChars,
		counter:  cfg.Responses,
	}
	if r.rules == nil {
		r.rules = DefaultRules()
	}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	if r.maxChars <= 0 {
		r.maxChars = defaultMaxChars
	}
	return r
}

func (r *router) Respond(ctx context.Context, message string, app *model.Application) Result {
	start := time.Now()
	normalized := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range r.rules {
		if rule.Match(normalized) {
			return r.finish(rule.Response, SourceInstant, start)
		}
	}

	if r.client != nil {
		genCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		text, err := r.client.Generate(genCtx, systemPrompt, r.prompt(message, app))
		if err == nil && strings.TrimSpace(text) != "" {
			return r.finish(text, SourceLLM, start)
		}
	}

	return r.finish(FallbackResponse, SourceFallback, start)
}

// prompt prefixes the message with the applicant's record state so the
// model can answer status questions without tool access.
func (r *router) prompt(message string, app *model.Application) string {
	if app == nil {
		return message
	}
	return fmt.Sprintf("User has application ID %d with status %s and %d uploaded documents. %s",
		app.ID, app.Status, len(app.Documents), message)
}

func (r *router) finish(text string, source Source, start time.Time) Result {
	if r.counter != nil {
		r.counter.WithLabelValues(string(source)).Inc()
	}
	return Result{
		Text:    truncate(strings.TrimSpace(text), r.maxChars),
		Source:  source,
		Elapsed: time.Since(start),
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
