package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// compileLoad dereferences instr.Pointer, leaving the loaded value in RAX.
// A pointer held in a stack slot is itself loaded first, then dereferenced
// as a second step.
func compileLoad(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	loc, ok := ctx.variable(instr.Pointer.Name)
	if !ok {
		return codegen.ErrVariableNotFound(instr.Pointer.Name)
	}
	if loc.inRegister {
		movIndirectLoad(&obj.Text, amd64.RAX, loc.reg)
		return nil
	}
	movLoadRBP(&obj.Text, amd64.RAX, loc.offset)
	movIndirectLoad(&obj.Text, amd64.RAX, amd64.RAX)
	return nil
}

// compileStore materializes instr.Value into RAX, then writes it through
// instr.Pointer.
func compileStore(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	loc, ok := ctx.variable(instr.Pointer.Name)
	if !ok {
		return codegen.ErrVariableNotFound(instr.Pointer.Name)
	}
	if err := materializeOperand(*instr.Value, amd64.RAX, ctx, obj); err != nil {
		return err
	}
	if loc.inRegister {
		movIndirectStore(&obj.Text, loc.reg, amd64.RAX)
		return nil
	}
	movLoadRBP(&obj.Text, amd64.RCX, loc.offset)
	movIndirectStore(&obj.Text, amd64.RCX, amd64.RAX)
	return nil
}
