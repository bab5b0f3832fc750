package template

import (
	"strings"
)

// Evaluator runs compiled bytecode as a standalone script and returns the top stack item of
// its final state (or an error list). It is the compile-time counterpart of $(...)
// evaluation segments. Defined here, not in vm, so template never imports vm: template
// depends only on this narrow interface, and vm.NewEvaluator returns an adapter that
// satisfies it.
type Evaluator interface {
	Evaluate(bytecode []byte) ([]byte, []error)
}

// ResolutionKind discriminates a successful Resolve result.
type ResolutionKind uint8

const (
	ResolutionKindOpcode ResolutionKind = iota + 1
	ResolutionKindVariable
	ResolutionKindScript
)

// ResolutionErrorKind discriminates a failed Resolve result.
type ResolutionErrorKind uint8

const (
	ResolutionErrorUnknown ResolutionErrorKind = iota + 1
	ResolutionErrorVariable
	ResolutionErrorScript
)

// ResolutionResult is the outcome of resolving a single identifier: exactly one of Bytecode
// (success) or Message (failure) is meaningful, never both, never neither.
type ResolutionResult struct {
	OK       bool
	Kind     ResolutionKind
	Bytecode []byte
	Source   ResolvedScript // set when Kind == ResolutionKindScript

	ErrorKind ResolutionErrorKind
	Message   string
	ScriptID  string
}

// ResolveContext carries everything Resolve needs beyond the identifier itself: the runtime
// compilation data, the environment being compiled against, and the evaluator used to run
// nested scripts' $(...) segments.
type ResolveContext struct {
	Data        CompilationData
	Environment *CompilationEnvironment
	Evaluator   Evaluator
}

// Resolve implements the identifier resolution order of an authentication template compiler:
// opcodes first, then variables and built-ins, then nested scripts, in that order, first
// match wins.
func Resolve(identifier string, ctx ResolveContext) ResolutionResult {
	env := ctx.Environment

	if b, ok := env.Opcodes[identifier]; ok {
		return ResolutionResult{OK: true, Kind: ResolutionKindOpcode, Bytecode: []byte{b}}
	}

	if result, matched := resolveVariable(identifier, ctx); matched {
		return result
	}

	if result, matched := resolveScript(identifier, ctx); matched {
		return result
	}

	return ResolutionResult{
		OK:        false,
		ErrorKind: ResolutionErrorUnknown,
		Message:   "Unknown identifier '" + identifier + "'.",
	}
}

func resolveVariable(identifier string, ctx ResolveContext) (ResolutionResult, bool) {
	env := ctx.Environment

	variableID := identifier
	operationID := ""
	if i := strings.IndexByte(identifier, '.'); i >= 0 {
		variableID = identifier[:i]
		operationID = identifier[i+1:]
	}

	var entry OperationEntry
	if builtinEntry, ok := builtinEntry(env.Operations, variableID); ok {
		entry = builtinEntry
	} else {
		def, ok := env.Variables[variableID]
		if !ok {
			return ResolutionResult{}, false
		}
		entry = env.Operations.entryFor(def.Type)
	}

	if entry.IsZero() {
		return ResolutionResult{
			OK:        false,
			ErrorKind: ResolutionErrorVariable,
			Message:   "Identifier '" + identifier + "' refers to a variable type with no operations included in this compiler configuration.",
		}, true
	}

	var op CompilerOperation
	if entry.Dispatch != nil {
		if operationID == "" {
			return ResolutionResult{
				OK:        false,
				ErrorKind: ResolutionErrorVariable,
				Message:   "This operation requires an operation identifier, e.g. '" + variableID + ".example'.",
			}, true
		}
		found, ok := entry.Dispatch[operationID]
		if !ok {
			return ResolutionResult{
				OK:        false,
				ErrorKind: ResolutionErrorVariable,
				Message:   "Identifier '" + identifier + "' refers to an operation that is not available.",
			}, true
		}
		op = found
	} else {
		op = entry.Single
	}

	bytecode, errMessage := op(identifier, ctx.Data, env)
	if errMessage != "" {
		return ResolutionResult{OK: false, ErrorKind: ResolutionErrorVariable, Message: errMessage}, true
	}

	return ResolutionResult{OK: true, Kind: ResolutionKindVariable, Bytecode: bytecode}, true
}

func resolveScript(identifier string, ctx ResolveContext) (ResolutionResult, bool) {
	env := ctx.Environment

	source, ok := env.Scripts[identifier]
	if !ok {
		return ResolutionResult{}, false
	}

	for _, id := range env.SourceScriptIDs {
		if id == identifier {
			chain := append(append([]string{}, env.SourceScriptIDs...), identifier)
			return ResolutionResult{
				OK:        false,
				ErrorKind: ResolutionErrorScript,
				Message:   "A circular dependency was detected: " + strings.Join(chain, ", "),
				ScriptID:  identifier,
			}, true
		}
	}

	nestedEnv := *env
	nestedEnv.SourceScriptIDs = append(append([]string{}, env.SourceScriptIDs...), identifier)

	result := Compile(source, ctx.Data, &nestedEnv, ctx.Evaluator)
	if !result.Success {
		return ResolutionResult{
			OK:        false,
			ErrorKind: ResolutionErrorScript,
			Message:   "Compilation of script '" + identifier + "' failed: " + result.Errors[0].Message,
			ScriptID:  identifier,
		}, true
	}

	return ResolutionResult{
		OK:       true,
		Kind:     ResolutionKindScript,
		Bytecode: result.Bytecode,
		Source:   result.Resolved,
	}, true
}
