package linux

import (
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

func compileReturn(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if instr.ReturnValue != nil {
		if err := materializeOperand(*instr.ReturnValue, amd64.RAX, ctx, obj); err != nil {
			return err
		}
	} else {
		xorZeroEAX(&obj.Text)
	}
	generateEpilogue(ctx, obj)
	return nil
}
