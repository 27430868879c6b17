package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/allisson/piiguard/internal/errors"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	"github.com/allisson/piiguard/internal/pii/masking"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
)

// DefaultBatchConcurrency is used when ScrubBatch is called with a non-positive concurrency.
const DefaultBatchConcurrency = 4

// Config holds coordinator settings.
type Config struct {
	// DefaultContext applies to requests without a context.
	DefaultContext piiDomain.Context

	// DefaultStrategy, when set, overrides the context profile's default for
	// requests without a strategy.
	DefaultStrategy piiDomain.StrategyKind

	// StrategyDefaults parameterize strategies chosen by kind.
	StrategyDefaults piiDomain.StrategyDefaults

	// Fallback is applied when tokenization fails because the store is exhausted.
	// Nil surfaces the error instead.
	Fallback piiDomain.Strategy
}

type coordinator struct {
	detector  Detector
	masker    Masker
	profiles  ProfileSource
	vault     TokenVault
	audit     scrubDomain.AuditSink
	limiter   *rate.Limiter
	tokens    *regexp.Regexp
	config    Config
	logger    *slog.Logger
}

// NewCoordinator creates a Coordinator. vault, audit and limiter are optional;
// without a vault every detokenize outcome reports the token as not found.
func NewCoordinator(
	detector Detector,
	masker Masker,
	profiles ProfileSource,
	vault TokenVault,
	audit scrubDomain.AuditSink,
	limiter *rate.Limiter,
	config Config,
	logger *slog.Logger,
) Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if config.DefaultContext == "" {
		config.DefaultContext = piiDomain.ContextGeneral
	}

	return &coordinator{
		detector:  detector,
		masker:    masker,
		profiles:  profiles,
		vault:     vault,
		audit:     audit,
		limiter:   limiter,
		tokens:    masking.TokenPattern(config.StrategyDefaults.TokenPrefix),
		config:    config,
		logger:    logger,
	}
}

// run accumulates the output of one scrub pass.
type run struct {
	c          *coordinator
	detectCtx  piiDomain.Context
	strategy   piiDomain.Strategy
	detail     piiDomain.DetailLevel
	detections []scrubDomain.Detection
	tokens     []string
	seen       map[string]struct{}
	truncated  bool

	// minted holds tokens this pass created rather than reused.
	minted []string
}

func (r *run) scrubText(ctx context.Context, path, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	set := r.c.detector.Detect(text, r.detectCtx)
	if set.Truncated {
		r.truncated = true
	}

	masked, err := r.c.masker.Apply(ctx, text, set, r.strategy, r.detail)
	if err != nil {
		return "", err
	}

	for _, m := range masked.Matches {
		r.detections = append(r.detections, scrubDomain.Detection{
			Category: m.Category,
			Pattern:  m.Pattern,
			Strategy: m.Strategy,
			Path:     path,
			Start:    m.Start,
			End:      m.End,
			Token:    m.Token,
			Original: m.Original,
		})
		if m.Token != "" && !m.Reused {
			r.minted = append(r.minted, m.Token)
		}
	}
	for _, token := range masked.Tokens {
		if _, ok := r.seen[token]; ok {
			continue
		}
		r.seen[token] = struct{}{}
		r.tokens = append(r.tokens, token)
	}
	return masked.MaskedText, nil
}

func (c *coordinator) newRun(
	detectCtx piiDomain.Context,
	strategy piiDomain.Strategy,
	detail piiDomain.DetailLevel,
) *run {
	return &run{
		c:          c,
		detectCtx:  detectCtx,
		strategy:   strategy,
		detail:     detail,
		detections: []scrubDomain.Detection{},
		seen:       make(map[string]struct{}),
	}
}

// strategyFor picks the request strategy, then the configured override, then
// the context profile default.
func (c *coordinator) strategyFor(req scrubDomain.Request, detectCtx piiDomain.Context) (piiDomain.Strategy, error) {
	if req.Strategy != nil {
		return req.Strategy, nil
	}

	kind := c.config.DefaultStrategy
	if kind == "" && c.profiles != nil {
		kind = c.profiles.Profile(detectCtx).DefaultStrategy
	}
	if kind == "" {
		kind = piiDomain.StrategyPartialMask
	}
	return piiDomain.ParseStrategy(kind.String(), c.config.StrategyDefaults)
}

// execute runs one pass. A failed pass erases the tokens it minted, so nothing
// it created outlives the error.
func (c *coordinator) execute(ctx context.Context, req scrubDomain.Request, r *run) (*scrubDomain.Result, error) {
	result := &scrubDomain.Result{}
	if req.IsRecord() {
		record, err := r.scrubRecord(ctx, req.Record)
		if err != nil {
			return nil, c.rollback(ctx, r, err)
		}
		result.MaskedRecord = record
	} else {
		text, err := r.scrubText(ctx, "", req.Text)
		if err != nil {
			return nil, c.rollback(ctx, r, err)
		}
		result.MaskedText = text
	}

	result.Detections = r.detections
	result.Tokens = r.tokens
	result.Truncated = r.truncated
	return result, nil
}

func (c *coordinator) rollback(ctx context.Context, r *run, cause error) error {
	if c.vault == nil || len(r.minted) == 0 {
		return cause
	}

	ctx = context.WithoutCancel(ctx)
	errs := []error{cause}
	for _, token := range r.minted {
		if err := c.vault.Erase(ctx, token); err != nil && !errors.Is(err, tokenstoreDomain.ErrTokenNotFound) {
			errs = append(errs, errors.Wrap(err, "failed to roll back token"))
		}
	}
	c.logger.Debug("rolled back minted tokens", slog.Int("tokens", len(r.minted)))
	return errors.Join(errs...)
}

// Scrub detects and masks PII in the request.
func (c *coordinator) Scrub(ctx context.Context, req scrubDomain.Request) (*scrubDomain.Result, error) {
	start := time.Now()

	if req.IsRecord() && req.Text != "" {
		return nil, scrubDomain.ErrInvalidRequest
	}

	detectCtx := req.Context
	if detectCtx == "" {
		detectCtx = c.config.DefaultContext
	}
	detectCtx = detectCtx.OrGeneral()

	strategy, err := c.strategyFor(req, detectCtx)
	if err != nil {
		return nil, err
	}

	requestID := req.RequestID
	if requestID == uuid.Nil {
		requestID, err = uuid.NewV7()
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate request id")
		}
	}

	result, err := c.execute(ctx, req, c.newRun(detectCtx, strategy, req.Detail))
	if err != nil && c.config.Fallback != nil && errors.Is(err, tokenstoreDomain.ErrStoreExhausted) {
		c.logger.Warn("token store exhausted, applying fallback strategy",
			slog.String("request_id", requestID.String()),
			slog.String("fallback", c.config.Fallback.Kind().String()),
		)
		strategy = c.config.Fallback
		result, err = c.execute(ctx, req, c.newRun(detectCtx, strategy, req.Detail))
		if result != nil {
			result.Fallback = true
		}
	}
	if err != nil {
		return nil, err
	}

	result.RequestID = requestID
	result.Summary = scrubDomain.Summarize(result.Detections, strategy.Kind(), detectCtx, time.Since(start))

	c.logger.Debug("scrubbed request",
		slog.String("request_id", requestID.String()),
		slog.String("context", detectCtx.String()),
		slog.String("strategy", strategy.Kind().String()),
		slog.Int("detections", result.Summary.Total),
		slog.Bool("truncated", result.Truncated),
	)

	c.emit(ctx, scrubDomain.AuditEvent{
		RequestID:  requestID,
		Operation:  scrubDomain.AuditOperationScrub,
		Context:    detectCtx,
		Strategy:   strategy.Kind(),
		Total:      result.Summary.Total,
		ByCategory: result.Summary.ByCategory,
		Truncated:  result.Truncated,
		Fallback:   result.Fallback,
		OccurredAt: time.Now().UTC(),
	})

	return result, nil
}

// ScrubBatch scrubs requests concurrently, keeping request order in the results.
func (c *coordinator) ScrubBatch(
	ctx context.Context,
	reqs []scrubDomain.Request,
	concurrency int,
) ([]*scrubDomain.Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]*scrubDomain.Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			result, err := c.Scrub(gctx, req)
			if err != nil {
				return errors.Wrapf(err, "request %d", i)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Detokenize restores tokens approved by authorize. A nil authorize refuses every
// token. Refused tokens are never looked up.
func (c *coordinator) Detokenize(
	ctx context.Context,
	tokens []string,
	authorize scrubDomain.AuthorizationCheck,
) ([]scrubDomain.DetokenizeOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.limiter != nil && !c.limiter.Allow() {
		c.logger.Warn("detokenize rate limit exceeded", slog.Int("tokens", len(tokens)))
		return nil, scrubDomain.ErrRateLimited
	}

	event := scrubDomain.AuditEvent{
		RequestID: uuid.Must(uuid.NewV7()),
		Operation: scrubDomain.AuditOperationDetokenize,
		Total:     len(tokens),
	}

	outcomes := make([]scrubDomain.DetokenizeOutcome, 0, len(tokens))
	for _, token := range tokens {
		outcome := scrubDomain.DetokenizeOutcome{Token: token}

		switch {
		case authorize == nil || !authorize(ctx, token):
			outcome.Err = scrubDomain.ErrUnauthorized
			event.Denied++
		case c.vault == nil:
			outcome.Err = tokenstoreDomain.ErrTokenNotFound
			event.Failed++
		default:
			value, err := c.vault.Retrieve(ctx, token)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				outcome.Err = err
				event.Failed++
			} else {
				outcome.Value = value
				event.Restored++
			}
		}

		outcomes = append(outcomes, outcome)
	}

	c.logger.Debug("detokenized tokens",
		slog.Int("restored", event.Restored),
		slog.Int("denied", event.Denied),
		slog.Int("failed", event.Failed),
	)

	event.OccurredAt = time.Now().UTC()
	c.emit(ctx, event)

	return outcomes, nil
}

// DetokenizeText restores approved tokens found in text.
func (c *coordinator) DetokenizeText(
	ctx context.Context,
	text string,
	authorize scrubDomain.AuthorizationCheck,
) (*scrubDomain.DetokenizeTextResult, error) {
	found := c.tokens.FindAllString(text, -1)
	tokens := make([]string, 0, len(found))
	for _, token := range found {
		if !slices.Contains(tokens, token) {
			tokens = append(tokens, token)
		}
	}

	outcomes, err := c.Detokenize(ctx, tokens, authorize)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(outcomes))
	for _, o := range outcomes {
		if o.Restored() {
			values[o.Token] = o.Value
		}
	}

	restored := c.tokens.ReplaceAllStringFunc(text, func(token string) string {
		if value, ok := values[token]; ok {
			return value
		}
		return token
	})

	return &scrubDomain.DetokenizeTextResult{Text: restored, Outcomes: outcomes}, nil
}

func (c *coordinator) emit(ctx context.Context, event scrubDomain.AuditEvent) {
	if c.audit == nil {
		return
	}
	if err := c.audit.Record(ctx, event); err != nil {
		c.logger.Error("failed to record audit event",
			slog.String("operation", event.Operation),
			slog.String("request_id", event.RequestID.String()),
			slog.Any("error", err),
		)
	}
}
