package transform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/varunmitra/altgrammarly/internal/adapter"
	"github.com/varunmitra/altgrammarly/internal/operation"
	"github.com/varunmitra/altgrammarly/internal/persona"
)

// Policy controls how often and how patiently a request is retried.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy allows 5 attempts with delays of 1s, 2s, 4s and 8s between
// them.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 5, BaseDelay: time.Second}
}

// MaxDelay caps a single backoff sleep.
const MaxDelay = time.Minute

// Delay is the wait after failed attempt i (0-based): BaseDelay * 2^i,
// capped at MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	if attempt < 0 {
		attempt = 0
	}
	d := p.BaseDelay
	for i := 0; i < attempt && d < MaxDelay; i++ {
		d *= 2
	}
	return min(d, MaxDelay)
}

// TotalBackoff is the sum of every sleep a fully retried call makes.
func (p Policy) TotalBackoff() time.Duration {
	var total time.Duration
	for i := 0; i < p.MaxAttempts-1; i++ {
		total += p.Delay(i)
	}
	return total
}

// Request is one rewrite. App optionally names the application the text
// came from and selects a persona.
type Request struct {
	Text      string
	Operation operation.Operation
	App       string
}

// Result is a successful rewrite.
type Result struct {
	Text      string
	Operation operation.Operation
	Provider  string
	Attempts  int
	Elapsed   time.Duration
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client is the retrying text transform client.
type Client struct {
	adapter  adapter.LLMAdapter
	policy   Policy
	personas *persona.Table
	observer Observer
	sleep    SleepFunc
}

type Option func(*Client)

func WithPolicy(p Policy) Option {
	return func(c *Client) {
		if p.MaxAttempts > 0 {
			c.policy.MaxAttempts = p.MaxAttempts
		}
		if p.BaseDelay > 0 {
			c.policy.BaseDelay = p.BaseDelay
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithPersonas enables persona enrichment of instructions by Request.App.
func WithPersonas(t *persona.Table) Option {
	return func(c *Client) { c.personas = t }
}

// WithSleep replaces the backoff sleep. Tests use it to record delays.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// New returns a Client that calls a.
func New(a adapter.LLMAdapter, opts ...Option) *Client {
	c := &Client{
		adapter:  a,
		policy:   DefaultPolicy(),
		observer: Observers(nil),
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider names the adapter behind c.
func (c *Client) Provider() string { return c.adapter.Name() }

// Policy returns the retry policy in effect.
func (c *Client) Policy() Policy { return c.policy }

// Transform rewrites req.Text. Blank text and unknown operations fail with
// KindInvalidInput before any call is made. Rate-limited and transient
// failures are retried up to Policy.MaxAttempts calls in total; permanent
// failures end the loop at once. Every failure is an *Error.
func (c *Client) Transform(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	op := req.Operation

	instruction := op.Instruction()
	if instruction == "" {
		return Result{}, c.fail(op, start, &Error{
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("%w: %q", operation.ErrUnknown, string(op)),
		})
	}
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, c.fail(op, start, &Error{Kind: KindInvalidInput, Err: ErrEmptyText})
	}
	if c.personas != nil {
		instruction = c.personas.Enhance(instruction, req.App)
	}

	maxAttempts := c.policy.MaxAttempts
	chars := len(req.Text)
	var (
		lastErr  error
		lastKind Kind
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c.observer.Attempt(op, attempt, maxAttempts, chars)

		out, err := c.adapter.Generate(ctx, instruction, req.Text)
		if err == nil {
			out = strings.TrimSpace(out)
			if out != "" {
				elapsed := time.Since(start)
				c.observer.Success(op, attempt+1, elapsed, len(out))
				return Result{
					Text:      out,
					Operation: op,
					Provider:  c.adapter.Name(),
					Attempts:  attempt + 1,
					Elapsed:   elapsed,
				}, nil
			}
			err = fmt.Errorf("transform: %w", adapter.ErrEmptyResponse)
		}

		if ctx.Err() != nil {
			return Result{}, c.fail(op, start, &Error{Kind: KindCanceled, Attempts: attempt + 1, Err: err})
		}

		lastErr = err
		switch adapter.Classify(err) {
		case adapter.ClassPermanent:
			return Result{}, c.fail(op, start, &Error{Kind: KindPermanent, Attempts: attempt + 1, Err: err})
		case adapter.ClassRateLimited:
			lastKind = KindRateLimited
		default:
			lastKind = KindTransient
		}

		if attempt == maxAttempts-1 {
			break
		}

		delay := c.policy.Delay(attempt)
		c.observer.Retry(op, attempt, delay, err, lastKind)
		if err := c.sleep(ctx, delay); err != nil {
			return Result{}, c.fail(op, start, &Error{Kind: KindCanceled, Attempts: attempt + 1, Err: err})
		}
	}

	return Result{}, c.fail(op, start, &Error{
		Kind:     KindExhaustedRetries,
		Last:     lastKind,
		Attempts: maxAttempts,
		Err:      lastErr,
	})
}

func (c *Client) fail(op operation.Operation, start time.Time, err *Error) *Error {
	c.observer.Failure(op, err, time.Since(start))
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
