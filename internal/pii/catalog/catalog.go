// Package catalog holds the immutable registry of PII detection patterns, their
// partial-mask templates and the per-context profiles that reweight them.
//
// A Catalog is built once from a list of PatternDefinition values. Definitions that
// fail validation or compilation are dropped and reported through Issues; building
// never fails. After Build returns, the catalog is read-only and safe for
// concurrent use.
package catalog

import (
	"log/slog"
	"regexp"
	"slices"

	validation "github.com/jellydator/validation"

	"github.com/allisson/piiguard/internal/errors"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	appValidation "github.com/allisson/piiguard/internal/validation"
)

// PreferredBoost is added to the priority of categories preferred by a context profile.
const PreferredBoost = 100

// valueGroup is the named capture group that narrows a match to the sensitive value.
const valueGroup = "value"

// PatternDefinition is the uncompiled description of one detection pattern.
type PatternDefinition struct {
	Category      piiDomain.Category
	Name          string
	Expression    string
	Priority      int
	Confidence    float64
	Contexts      []piiDomain.Context // empty enables the pattern in every context
	CaseSensitive bool
	Template      *piiDomain.MaskTemplate
}

// Validate checks the definition fields before compilation.
func (d PatternDefinition) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Category, validation.Required),
		validation.Field(&d.Name, validation.Required, appValidation.NotBlank, appValidation.NoWhitespace),
		validation.Field(&d.Expression, validation.Required, appValidation.NotBlank, appValidation.RegexpSyntax),
		validation.Field(&d.Priority, validation.Min(0)),
		validation.Field(&d.Confidence, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&d.Contexts, validation.Each(validation.By(validateContext))),
	)
	return appValidation.WrapValidationError(err)
}

func validateContext(value interface{}) error {
	c, ok := value.(piiDomain.Context)
	if !ok {
		return validation.NewError("validation_context_type", "must be a context")
	}
	if err := c.Validate(); err != nil {
		return validation.NewError("validation_context", "must be a known context")
	}
	return nil
}

// Profile describes how a context reweights detection and which strategy it defaults to.
type Profile struct {
	Preferred       []piiDomain.Category
	DefaultStrategy piiDomain.StrategyKind
}

// Prefers reports whether the profile boosts the category.
func (p Profile) Prefers(c piiDomain.Category) bool {
	return slices.Contains(p.Preferred, c)
}

// BuildIssue records a definition dropped during Build.
type BuildIssue struct {
	Name     string
	Category piiDomain.Category
	Err      error
}

// Error implements error.
func (i BuildIssue) Error() string {
	return i.Err.Error()
}

// Unwrap returns the underlying error.
func (i BuildIssue) Unwrap() error {
	return i.Err
}

// PatternSpec is a compiled, immutable detection pattern.
type PatternSpec struct {
	category   piiDomain.Category
	name       string
	expression string
	re         *regexp.Regexp
	group      int
	priority   int
	confidence float64
	contexts   []piiDomain.Context
	order      int
}

func (p *PatternSpec) Category() piiDomain.Category { return p.category }
func (p *PatternSpec) Name() string                 { return p.name }
func (p *PatternSpec) Expression() string           { return p.expression }
func (p *PatternSpec) Priority() int                { return p.priority }
func (p *PatternSpec) Confidence() float64          { return p.confidence }

// Order is the position of the pattern in the catalog; it is the final tie-breaker
// during overlap resolution.
func (p *PatternSpec) Order() int { return p.order }

// Contexts returns the contexts the pattern is restricted to, or nil when it is
// enabled everywhere.
func (p *PatternSpec) Contexts() []piiDomain.Context {
	return slices.Clone(p.contexts)
}

// EnabledFor reports whether the pattern runs in the given context.
func (p *PatternSpec) EnabledFor(ctx piiDomain.Context) bool {
	return len(p.contexts) == 0 || slices.Contains(p.contexts, ctx)
}

// FindAll returns every non-empty [start, end) span the pattern matches in text.
// When the expression declares a "value" group the span is narrowed to that group.
func (p *PatternSpec) FindAll(text string) [][2]int {
	locs := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if p.group > 0 {
			start, end = loc[2*p.group], loc[2*p.group+1]
		}
		if start < 0 || end <= start {
			continue
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

// MatchString reports whether the pattern matches anywhere in s.
func (p *PatternSpec) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// RankedPattern pairs a pattern with its priority in a given context.
type RankedPattern struct {
	*PatternSpec
	EffectivePriority int
}

// Catalog is the immutable pattern registry.
type Catalog struct {
	patterns  []*PatternSpec
	templates map[piiDomain.Category]piiDomain.MaskTemplate
	profiles  map[piiDomain.Context]Profile
	ranked    map[piiDomain.Context][]RankedPattern
	issues    []BuildIssue
}

// Build compiles definitions into a Catalog. Invalid definitions are logged at warn
// level and recorded in Issues. A nil logger discards the warnings; a nil profiles
// map uses DefaultProfiles.
func Build(defs []PatternDefinition, profiles map[piiDomain.Context]Profile, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if profiles == nil {
		profiles = DefaultProfiles()
	}

	c := &Catalog{
		templates: DefaultTemplates(),
		profiles:  make(map[piiDomain.Context]Profile, len(profiles)),
		ranked:    make(map[piiDomain.Context][]RankedPattern),
	}
	for ctx, p := range profiles {
		c.profiles[ctx] = Profile{Preferred: slices.Clone(p.Preferred), DefaultStrategy: p.DefaultStrategy}
	}

	customTemplates := make(map[piiDomain.Category]bool)
	for _, def := range defs {
		spec, err := compile(def, len(c.patterns))
		if err != nil {
			issue := BuildIssue{Name: def.Name, Category: def.Category, Err: err}
			c.issues = append(c.issues, issue)
			logger.Warn("dropping invalid pattern definition",
				slog.String("pattern", def.Name),
				slog.String("category", def.Category.String()),
				slog.Any("error", err),
			)
			continue
		}
		c.patterns = append(c.patterns, spec)

		if def.Template != nil && !customTemplates[def.Category] {
			c.templates[def.Category] = *def.Template
			customTemplates[def.Category] = true
		}
	}

	for _, ctx := range piiDomain.AllContexts() {
		c.ranked[ctx] = c.rank(ctx)
	}

	logger.Debug("pattern catalog built",
		slog.Int("patterns", len(c.patterns)),
		slog.Int("issues", len(c.issues)),
	)
	return c
}

// Default builds the catalog from DefaultDefinitions and DefaultProfiles.
func Default(logger *slog.Logger) *Catalog {
	return Build(DefaultDefinitions(), DefaultProfiles(), logger)
}

func compile(def PatternDefinition, order int) (*PatternSpec, error) {
	if err := def.Validate(); err != nil {
		return nil, errors.Wrap(piiDomain.ErrPatternCompile, err.Error())
	}

	expr := def.Expression
	if !def.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(piiDomain.ErrPatternCompile, err.Error())
	}

	return &PatternSpec{
		category:   def.Category,
		name:       def.Name,
		expression: def.Expression,
		re:         re,
		group:      re.SubexpIndex(valueGroup),
		priority:   def.Priority,
		confidence: def.Confidence,
		contexts:   slices.Clone(def.Contexts),
		order:      order,
	}, nil
}

func (c *Catalog) rank(ctx piiDomain.Context) []RankedPattern {
	profile := c.profiles[ctx]
	ranked := make([]RankedPattern, 0, len(c.patterns))
	for _, p := range c.patterns {
		if !p.EnabledFor(ctx) {
			continue
		}
		priority := p.priority
		if profile.Prefers(p.category) {
			priority += PreferredBoost
		}
		ranked = append(ranked, RankedPattern{PatternSpec: p, EffectivePriority: priority})
	}
	slices.SortStableFunc(ranked, func(a, b RankedPattern) int {
		return b.EffectivePriority - a.EffectivePriority
	})
	return ranked
}

// PatternsFor returns the patterns enabled for ctx ordered by descending effective
// priority. Unknown contexts resolve to general.
func (c *Catalog) PatternsFor(ctx piiDomain.Context) []RankedPattern {
	return slices.Clone(c.ranked[ctx.OrGeneral()])
}

// Patterns returns every compiled pattern in catalog order.
func (c *Catalog) Patterns() []*PatternSpec {
	return slices.Clone(c.patterns)
}

// Len returns the number of compiled patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}

// Issues returns the definitions dropped during Build.
func (c *Catalog) Issues() []BuildIssue {
	return slices.Clone(c.issues)
}

// Template returns the partial-mask template for the category.
func (c *Catalog) Template(category piiDomain.Category) piiDomain.MaskTemplate {
	if t, ok := c.templates[category]; ok {
		return t
	}
	return piiDomain.DefaultTemplate
}

// Profile returns the profile for ctx. Unknown contexts resolve to general.
func (c *Catalog) Profile(ctx piiDomain.Context) Profile {
	p := c.profiles[ctx.OrGeneral()]
	return Profile{Preferred: slices.Clone(p.Preferred), DefaultStrategy: p.DefaultStrategy}
}

// MatchesAny reports whether any registered pattern matches s.
func (c *Catalog) MatchesAny(s string) bool {
	for _, p := range c.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
