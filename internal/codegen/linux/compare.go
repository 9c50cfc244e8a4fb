package linux

import (
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/elf"
)

// compileCompare lowers an equality test, leaving a 0/1 result in RAX.
func compileCompare(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if err := loadBinaryOperands(*instr.Left, *instr.Right, "compare", ctx, obj); err != nil {
		return err
	}
	cmpRAXRCX(&obj.Text)
	seteAL(&obj.Text)
	movzxRAXAL(&obj.Text)
	return nil
}
