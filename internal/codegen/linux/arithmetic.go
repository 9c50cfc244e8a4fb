package linux

import (
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// loadBinaryOperands validates left and right for opName, then leaves
// left in RAX and right in RCX, the fixed pair every binary lowerer here
// operates on.
func loadBinaryOperands(left, right ir.Operand, opName string, ctx *functionContext, obj *elf.Object) error {
	if err := validateOperandTypes(left, right, opName); err != nil {
		return err
	}
	if err := materializeOperand(left, amd64.RAX, ctx, obj); err != nil {
		return err
	}
	return materializeOperand(right, amd64.RCX, ctx, obj)
}

func compileAdd(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if err := loadBinaryOperands(*instr.Left, *instr.Right, "add", ctx, obj); err != nil {
		return err
	}
	binaryRAXRCX(&obj.Text, amd64.OpAdd, amd64.RCX, amd64.RAX)
	return nil
}

func compileSub(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if err := loadBinaryOperands(*instr.Left, *instr.Right, "sub", ctx, obj); err != nil {
		return err
	}
	binaryRAXRCX(&obj.Text, amd64.OpSub, amd64.RCX, amd64.RAX)
	return nil
}

func compileMul(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if err := loadBinaryOperands(*instr.Left, *instr.Right, "mul", ctx, obj); err != nil {
		return err
	}
	imulRAXRCX(&obj.Text)
	return nil
}

func compileDiv(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if err := loadBinaryOperands(*instr.Left, *instr.Right, "div", ctx, obj); err != nil {
		return err
	}
	cqo(&obj.Text)
	idivRCX(&obj.Text)
	return nil
}

// compileRem lowers a remainder: idiv leaves the quotient in RAX and the
// remainder in RDX, so the result is moved into RAX afterward.
func compileRem(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if err := loadBinaryOperands(*instr.Left, *instr.Right, "rem", ctx, obj); err != nil {
		return err
	}
	cqo(&obj.Text)
	idivRCX(&obj.Text)
	movRR(&obj.Text, amd64.RAX, amd64.RDX)
	return nil
}
