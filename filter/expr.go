package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/s0up4200/arrcore/domain"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	funcs      map[string]any
	logger     zerolog.Logger
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache keeps compiled programs for ttl after their last compile.
func WithCache(ttl time.Duration) ExprCompilerOption {
	return func(c *ExprCompiler) {
		if ttl > 0 {
			c.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// WithLogger reports runtime evaluation errors at debug level.
func WithLogger(logger zerolog.Logger) ExprCompilerOption {
	return func(c *ExprCompiler) {
		c.logger = logger
	}
}

// ExprCompiler compiles expr-lang expressions, optionally caching them.
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *cache.Cache
	logger      zerolog.Logger
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: helperFunctions(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into an executable filter
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached.(CompiledFilter), nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{expression: expression, program: program, funcs: c.helperFuncs, logger: c.logger}
	if c.cache != nil {
		c.cache.SetDefault(expression, f)
	}
	return f, nil
}

// Clear drops all cached programs.
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

// Size returns the number of cached programs.
func (c *ExprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.ItemCount()
	}
	return 0
}

// Evaluate runs the program against one item. Items that make the program
// fail do not match.
func (f *exprFilter) Evaluate(item domain.DownloadItem) bool {
	ok, err := f.Run(item)
	if err != nil {
		f.logger.Debug().Err(err).Msg("filter evaluation failed")
		return false
	}
	return ok
}

// Run is Evaluate with the runtime error exposed.
func (f *exprFilter) Run(item domain.DownloadItem) (bool, error) {
	result, err := expr.Run(f.program, environment(item, f.funcs))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, ItemName: item.Name, Err: err}
	}
	return result.(bool), nil
}

func (f *exprFilter) Expression() string {
	return f.expression
}

func helperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

func addHelperFunctions(env map[string]any) {
	env["daysSince"] = func(t time.Time) int {
		if t.IsZero() {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	}
	env["hoursSince"] = func(t time.Time) float64 {
		if t.IsZero() {
			return 0
		}
		return time.Since(t).Hours()
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["includes"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
	env["gb"] = func(n float64) int64 { return int64(n * (1 << 30)) }
	env["mb"] = func(n float64) int64 { return int64(n * (1 << 20)) }
}

// environment exposes an item to expressions next to funcs, the helpers
// the program was compiled with. Sizes are bytes, Progress is a percentage
// and ETA is in seconds (-1 when unknown). Item fields win over helpers of
// the same name.
func environment(item domain.DownloadItem, funcs map[string]any) map[string]any {
	env := make(map[string]any, len(funcs)+24)
	maps.Copy(env, funcs)

	st := item.Status
	env["isStatus"] = func(names ...string) bool {
		return slices.ContainsFunc(names, func(n string) bool {
			return strings.EqualFold(n, st.String())
		})
	}
	env["fromSource"] = func(name string) bool {
		return strings.EqualFold(item.Source.String(), name)
	}

	eta := int64(-1)
	if item.ETA != nil {
		eta = item.ETA.Seconds()
	}
	var added time.Time
	if item.AddedAt != nil {
		added = item.AddedAt.Time()
	}

	env["Item"] = item
	env["ID"] = item.ID.String()
	env["Name"] = item.Name
	env["Title"] = item.DisplayTitle()
	env["MediaTitle"] = item.MediaTitle
	env["Status"] = st.String()
	env["Source"] = item.Source.String()
	env["Client"] = item.DownloadClient
	env["Indexer"] = item.Indexer
	env["Category"] = item.Category
	env["Path"] = item.OutputPath
	env["Error"] = item.ErrorMessage
	env["Size"] = item.Size.Bytes()
	env["Remaining"] = item.SizeRemaining.Bytes()
	env["Downloaded"] = item.DownloadedSize().Bytes()
	env["Progress"] = item.Progress.Percentage()
	env["ETA"] = eta
	env["Added"] = added
	env["Active"] = item.IsActive()
	env["Waiting"] = item.IsWaiting()
	env["Complete"] = item.IsComplete()
	env["HasError"] = item.HasError()
	return env
}
