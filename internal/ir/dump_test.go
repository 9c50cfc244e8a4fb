package ir

import (
	"strings"
	"testing"
)

func TestDumpHelloWorld(t *testing.T) {
	unit := CompilationUnit{
		Filename: "hello.fl",
		Globals: []Global{
			ConstantGlobal(Constant{Name: "greeting", Value: StringLiteral("hello")}),
			FunctionGlobal(Function{
				Name:       "main",
				ReturnType: Type{Kind: Int64},
				Body: []Statement{
					InstructionStatement(Call("puts", []Operand{
						IdentifierOperand(NewIdentifier("greeting")),
					})),
					AssignLiteral("code", IntLiteral(0)),
					InstructionStatement(Return(nil)),
				},
			}),
		},
	}

	out := Dump(unit)
	if !strings.Contains(out, "const greeting") {
		t.Errorf("dump missing constant declaration:\n%s", out)
	}
	if !strings.Contains(out, "func main") {
		t.Errorf("dump missing function header:\n%s", out)
	}
	if !strings.Contains(out, "call puts(greeting)") {
		t.Errorf("dump missing call statement:\n%s", out)
	}
}

func TestDumpBinaryInstructions(t *testing.T) {
	stmt := AssignInstruction("sum", Add(
		IdentifierOperand(NewIdentifier("a")),
		IdentifierOperand(NewIdentifier("b")),
	))
	out := dumpStatement(stmt)
	if out != "sum = add a, b" {
		t.Errorf("dumpStatement(add) = %q, want %q", out, "sum = add a, b")
	}
}
