package template

import (
	"context"

	"github.com/john-parker1/libauth/logger"
)

// SubSystem gates logging from this package. Callers enable it via
// logger.Config.EnableSubSystem(template.SubSystem).
const SubSystem = "Template"

// CompileResult is the outcome of compiling BTL source all the way to bytecode.
type CompileResult struct {
	Success  bool
	Bytecode []byte
	Resolved ResolvedScript
	Range    Range
	Errors   []CompilationError
}

// Compile parses, resolves, and reduces BTL source text in one call: Parse -> Build ->
// Reduce. It is also the function the resolver invokes recursively for nested script
// identifiers, with an extended SourceScriptIDs chain for cycle detection.
func Compile(source string, data CompilationData, env *CompilationEnvironment, evaluator Evaluator) CompileResult {
	return CompileContext(context.Background(), source, data, env, evaluator)
}

// CompileContext is Compile with an explicit context, used to carry logging subsystem/trace
// values through each pipeline stage.
func CompileContext(ctx context.Context, source string, data CompilationData, env *CompilationEnvironment, evaluator Evaluator) CompileResult {
	ctx = logger.ContextWithLogSubSystem(ctx, SubSystem)

	segments, err := Parse(source)
	if err != nil {
		logger.Verbose(ctx, "Parse failed : %s", err)
		message := err.Error()
		rng := Range{}
		if pe, ok := err.(*ParseError); ok {
			rng = pe.Range
		}
		return CompileResult{Success: false, Errors: []CompilationError{{Message: message, Range: rng}}}
	}

	resolveCtx := ResolveContext{Data: data, Environment: env, Evaluator: evaluator}
	resolved := Build(segments, resolveCtx)

	logger.Verbose(ctx, "Resolved %d top level segments", len(resolved))

	reduced := Reduce(resolved, evaluator)

	if len(reduced.Errors) > 0 {
		logger.Verbose(ctx, "Reduction produced %d errors", len(reduced.Errors))
		return CompileResult{
			Success:  false,
			Bytecode: reduced.Bytecode,
			Resolved: resolved,
			Range:    reduced.Range,
			Errors:   reduced.Errors,
		}
	}

	return CompileResult{
		Success:  true,
		Bytecode: reduced.Bytecode,
		Resolved: resolved,
		Range:    reduced.Range,
	}
}
