package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foolang-project/flc/internal/codegen"
	"github.com/foolang-project/flc/internal/ir"
)

// linkAndRun writes unit's compiled object to a temp file, links it with
// the system linker via cc, runs the resulting binary, and returns its
// stdout. It skips the test outright when the host can't actually run the
// result: a non-linux/amd64 runner, a missing cc, or -short.
func linkAndRun(t *testing.T, unit ir.CompilationUnit) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping link-and-run end-to-end test in short mode")
	}
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skipf("end-to-end scenarios link a linux-amd64 object; host is %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	ccPath, err := exec.LookPath("cc")
	if err != nil {
		ccPath, err = exec.LookPath("gcc")
	}
	if err != nil {
		t.Skip("no system linker (cc or gcc) found on PATH")
	}

	obj, err := codegen.Compile("linux-amd64", unit)
	require.NoError(t, err)

	dir := t.TempDir()
	objPath := filepath.Join(dir, "unit.o")
	require.NoError(t, os.WriteFile(objPath, obj.Encode(), 0644))

	exePath := filepath.Join(dir, "a.out")
	link := exec.Command(ccPath, "-o", exePath, objPath)
	linkOutput, err := link.CombinedOutput()
	require.NoError(t, err, "linking failed: %s", linkOutput)

	run := exec.Command(exePath)
	stdout, err := run.Output()
	require.NoError(t, err)
	return string(stdout)
}

// stringConst is an identifier referencing a named global that holds a
// NUL-terminated string, the shape materializeIdentifier expects for a
// call argument or return value sourced from a Constant global.
func stringConst(name string) ir.Operand {
	return ir.IdentifierOperand(ir.Identifier{Name: name, Type: ir.NewPointer(ir.Type{Kind: ir.UInt8})})
}

func TestEndToEndHelloWorldViaStringLiteral(t *testing.T) {
	unit := ir.CompilationUnit{
		Filename: "scenario1.json",
		Globals: []ir.Global{
			ir.FunctionGlobal(ir.Function{
				Name: "main",
				Body: []ir.Statement{
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{
						ir.LiteralOperand(ir.StringLiteral("Hello, world!")),
					})),
					ir.InstructionStatement(ir.Return(nil)),
				},
			}),
		},
	}
	assert.Equal(t, "Hello, world!\n", linkAndRun(t, unit))
}

func TestEndToEndHelloWorldViaIntermediateFunctionCall(t *testing.T) {
	unit := ir.CompilationUnit{
		Filename: "scenario2.json",
		Globals: []ir.Global{
			ir.ConstantGlobal(ir.Constant{Name: "HELLO", Value: ir.StringLiteral("Hello, world!")}),
			ir.FunctionGlobal(ir.Function{
				Name: "get_text",
				Body: []ir.Statement{
					func() ir.Statement {
						v := stringConst("HELLO")
						return ir.InstructionStatement(ir.Return(&v))
					}(),
				},
			}),
			ir.FunctionGlobal(ir.Function{
				Name: "main",
				Body: []ir.Statement{
					ir.AssignInstruction("t", ir.Call("get_text", nil)),
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{
						ir.IdentifierOperand(ir.NewIdentifier("t")),
					})),
					ir.InstructionStatement(ir.Return(nil)),
				},
			}),
		},
	}
	assert.Equal(t, "Hello, world!\n", linkAndRun(t, unit))
}

func TestEndToEndUnconditionalJumpSkipsDeadCode(t *testing.T) {
	unit := ir.CompilationUnit{
		Filename: "scenario3.json",
		Globals: []ir.Global{
			ir.ConstantGlobal(ir.Constant{Name: "FAIL", Value: ir.StringLiteral("FAILED!")}),
			ir.ConstantGlobal(ir.Constant{Name: "OK", Value: ir.StringLiteral("SUCCEEDED!")}),
			ir.FunctionGlobal(ir.Function{
				Name: "main",
				Body: []ir.Statement{
					ir.InstructionStatement(ir.Jump("L")),
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{stringConst("FAIL")})),
					ir.LabelStatement("L"),
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{stringConst("OK")})),
					ir.InstructionStatement(ir.Return(nil)),
				},
			}),
		},
	}
	assert.Equal(t, "SUCCEEDED!\n", linkAndRun(t, unit))
}

// branchScenario builds the shared body shape for scenarios 4 and 5: a
// local flag variable seeded with flagValue, branched on to pick between
// two string constants.
func branchScenario(flagValue int64) ir.CompilationUnit {
	return ir.CompilationUnit{
		Filename: "branch.json",
		Globals: []ir.Global{
			ir.ConstantGlobal(ir.Constant{Name: "T", Value: ir.StringLiteral("TRUE!")}),
			ir.ConstantGlobal(ir.Constant{Name: "F", Value: ir.StringLiteral("FALSE!")}),
			ir.FunctionGlobal(ir.Function{
				Name: "main",
				Body: []ir.Statement{
					ir.AssignLiteral("flag", ir.IntLiteral(flagValue)),
					ir.InstructionStatement(ir.Branch(ir.NewIdentifier("flag"), "Ltrue", "Lfalse")),
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{stringConst("F")})),
					ir.LabelStatement("Ltrue"),
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{stringConst("T")})),
					ir.InstructionStatement(ir.Return(nil)),
					ir.LabelStatement("Lfalse"),
					ir.InstructionStatement(ir.Call("puts", []ir.Operand{stringConst("F")})),
					ir.InstructionStatement(ir.Return(nil)),
				},
			}),
		},
	}
}

func TestEndToEndBranchTakesTrueBranch(t *testing.T) {
	assert.Equal(t, "TRUE!\n", linkAndRun(t, branchScenario(1)))
}

func TestEndToEndBranchTakesFalseBranch(t *testing.T) {
	assert.Equal(t, "FALSE!\n", linkAndRun(t, branchScenario(0)))
}

func TestEndToEndJumpToUndefinedLabelFails(t *testing.T) {
	unit := ir.CompilationUnit{
		Filename: "scenario6.json",
		Globals: []ir.Global{
			ir.FunctionGlobal(ir.Function{
				Name: "main",
				Body: []ir.Statement{
					ir.InstructionStatement(ir.Jump("NOPE")),
				},
			}),
		},
	}
	_, err := codegen.Compile("linux-amd64", unit)
	require.Error(t, err)
	assert.Equal(t, codegen.LabelNotFound, err.(*codegen.Error).Kind)
}
