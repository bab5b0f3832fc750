package template

import (
	"strings"
	"testing"
)

func TestResolveScriptCycleDetected(t *testing.T) {
	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Scripts: map[string]string{
			"a": "b",
			"b": "a",
		},
	}

	result := Compile("a", CompilationData{}, env, nil)
	if result.Success {
		t.Fatalf("expected a circular dependency error")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d : %+v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, "circular dependency") {
		t.Fatalf("expected circular dependency message, got %q", result.Errors[0].Message)
	}
}

func TestResolveUnknownVariableType(t *testing.T) {
	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Variables: map[string]VariableDefinition{
			"addr": {Type: VariableTypeAddressData},
		},
		// Operations left empty: AddressData has no wired operation.
	}

	result := Compile("addr.something", CompilationData{}, env, nil)
	if result.Success {
		t.Fatalf("expected failure for an unwired variable type")
	}
}

func TestResolveDispatchRequiresOperationID(t *testing.T) {
	env := &CompilationEnvironment{
		Opcodes:    testOpcodes(),
		Variables:  map[string]VariableDefinition{"key1": {Type: VariableTypeKey}},
		Operations: DefaultOperations(),
	}

	result := Compile("key1", CompilationData{}, env, nil)
	if result.Success {
		t.Fatalf("expected failure: dispatch-style operations require a sub-identifier")
	}
}
