package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

func compileStatement(stmt ir.Statement, ctx *functionContext, obj *elf.Object) error {
	switch stmt.Kind {
	case ir.StmtLabel:
		return compileLabel(stmt.LabelName, ctx, obj)
	case ir.StmtInstruction:
		producesValue, err := compileInstruction(*stmt.Instruction, ctx, obj)
		if err != nil {
			return err
		}
		if producesValue && stmt.Instruction.Kind != ir.InstCall {
			return codegen.ErrAssignmentRequired(stmt.Instruction.Kind.String())
		}
		return nil
	case ir.StmtAssignment:
		return compileAssignment(stmt, ctx, obj)
	default:
		return codegen.ErrNotImplemented("statement kind %v", stmt.Kind)
	}
}

// compileAssignment binds stmt.Target's already-allocated storage to the
// value its literal or instruction produces.
func compileAssignment(stmt ir.Statement, ctx *functionContext, obj *elf.Object) error {
	loc, ok := ctx.variable(stmt.Target)
	if !ok {
		return codegen.ErrVariableNotFound(stmt.Target)
	}
	if stmt.Literal != nil {
		if err := materializeLiteral(*stmt.Literal, amd64.RAX, obj); err != nil {
			return err
		}
		storeVariable(&obj.Text, loc, amd64.RAX)
		return nil
	}
	if stmt.Instruction == nil {
		return codegen.ErrAssignmentRequired("a literal or instruction")
	}
	if stmt.Instruction.Kind == ir.InstAlloca {
		leaRBP(&obj.Text, amd64.RAX, ctx.allocaSlots[stmt.Target])
		storeVariable(&obj.Text, loc, amd64.RAX)
		return nil
	}
	producesValue, err := compileInstruction(*stmt.Instruction, ctx, obj)
	if err != nil {
		return err
	}
	if !producesValue {
		return codegen.ErrAssignmentRequired(stmt.Instruction.Kind.String())
	}
	storeVariable(&obj.Text, loc, amd64.RAX)
	return nil
}

// compileInstruction lowers instr and reports whether it leaves a result
// in RAX that an enclosing assignment may capture.
func compileInstruction(instr ir.Instruction, ctx *functionContext, obj *elf.Object) (bool, error) {
	switch instr.Kind {
	case ir.InstCall:
		return true, compileCall(instr, ctx, obj)
	case ir.InstReturn:
		return false, compileReturn(instr, ctx, obj)
	case ir.InstJump:
		return false, compileJump(instr.Target, ctx, obj)
	case ir.InstBranch:
		return false, compileBranch(instr, ctx, obj)
	case ir.InstAdd:
		return true, compileAdd(instr, ctx, obj)
	case ir.InstSub:
		return true, compileSub(instr, ctx, obj)
	case ir.InstMul:
		return true, compileMul(instr, ctx, obj)
	case ir.InstDiv:
		return true, compileDiv(instr, ctx, obj)
	case ir.InstRem:
		return true, compileRem(instr, ctx, obj)
	case ir.InstCompare:
		return true, compileCompare(instr, ctx, obj)
	case ir.InstAlloca:
		return false, codegen.ErrAssignmentRequired("alloca")
	case ir.InstLoad:
		return true, compileLoad(instr, ctx, obj)
	case ir.InstStore:
		return false, compileStore(instr, ctx, obj)
	default:
		return false, codegen.ErrNotImplemented("instruction kind %v", instr.Kind)
	}
}
