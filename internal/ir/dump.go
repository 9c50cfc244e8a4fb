package ir

import (
	"fmt"
	"strings"
)

// Dump returns a human-readable rendering of a compilation unit's IR, for
// inspection with `flc dump`.
func Dump(unit CompilationUnit) string {
	var out strings.Builder
	fmt.Fprintf(&out, "; %s\n", unit.Filename)
	for _, g := range unit.Globals {
		switch g.Kind {
		case GlobalConstant:
			fmt.Fprintf(&out, "const %s = %s\n", g.Constant.Name, dumpLiteral(g.Constant.Value))
		case GlobalFunction:
			dumpFunction(&out, g.Function)
		}
	}
	return out.String()
}

func dumpFunction(out *strings.Builder, fn *Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(out, "func %s(%s) -> %s {\n", fn.Name, strings.Join(params, ", "), fn.ReturnType)
	for i, stmt := range fn.Body {
		fmt.Fprintf(out, "%03d: %s\n", i, dumpStatement(stmt))
	}
	out.WriteString("}\n")
}

func dumpStatement(stmt Statement) string {
	switch stmt.Kind {
	case StmtLabel:
		return stmt.LabelName + ":"
	case StmtAssignment:
		if stmt.Literal != nil {
			return fmt.Sprintf("%s = %s", stmt.Target, dumpLiteral(*stmt.Literal))
		}
		return fmt.Sprintf("%s = %s", stmt.Target, dumpInstruction(*stmt.Instruction))
	default:
		return dumpInstruction(*stmt.Instruction)
	}
}

func dumpInstruction(instr Instruction) string {
	switch instr.Kind {
	case InstCall:
		args := make([]string, len(instr.Parameters))
		for i, p := range instr.Parameters {
			args[i] = dumpOperand(p)
		}
		return fmt.Sprintf("call %s(%s)", instr.FunctionName, strings.Join(args, ", "))
	case InstReturn:
		if instr.ReturnValue == nil {
			return "return"
		}
		return "return " + dumpOperand(*instr.ReturnValue)
	case InstJump:
		return "jump " + instr.Target
	case InstBranch:
		return fmt.Sprintf("branch %s ? %s : %s", instr.Condition.Name, instr.TrueLabel, instr.FalseLabel)
	case InstAlloca:
		return "alloca " + instr.AllocType.String()
	case InstLoad:
		return "load " + instr.Pointer.Name
	case InstStore:
		return fmt.Sprintf("store %s, %s", instr.Pointer.Name, dumpOperand(*instr.Value))
	default:
		return fmt.Sprintf("%s %s, %s", instr.Kind, dumpOperand(*instr.Left), dumpOperand(*instr.Right))
	}
}

func dumpOperand(op Operand) string {
	if op.Kind == OperandLiteral {
		return dumpLiteral(op.Literal)
	}
	return op.Identifier.Name
}

func dumpLiteral(lit Literal) string {
	switch lit.Kind {
	case LiteralInt64:
		return fmt.Sprintf("%d", lit.Int)
	case LiteralFloat64:
		return fmt.Sprintf("%g", lit.Flt)
	case LiteralBool:
		return fmt.Sprintf("%t", lit.Bln)
	case LiteralString:
		return fmt.Sprintf("%q", lit.Str)
	default:
		return "<?>"
	}
}
