package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// compileLabel defines name at the current end of .text, backpatching
// every jump that referenced it before this point was reached.
func compileLabel(name string, ctx *functionContext, obj *elf.Object) error {
	offset := obj.Text.Len()
	if err := ctx.defineLabel(name, offset); err != nil {
		return err
	}
	st := ctx.labelFor(name)
	for _, dispOffset := range st.patchSites {
		patchDisplacement(obj, dispOffset, offset)
	}
	st.patchSites = nil
	return nil
}

// patchDisplacement writes the rel32 at dispOffset so that RIP (the
// address just past the 4-byte displacement field) plus that value lands
// on target.
func patchDisplacement(obj *elf.Object, dispOffset, target uint64) {
	rel := int32(int64(target) - int64(dispOffset+amd64.DisplacementSize))
	amd64.PatchLE32(obj.Text.Bytes(), int(dispOffset), rel)
}

// resolveOrDefer patches dispOffset immediately if label is already
// defined, or records it as a pending reference to patch once it is.
func resolveOrDefer(label string, dispOffset uint64, ctx *functionContext, obj *elf.Object) error {
	st := ctx.labelFor(label)
	if st.defined {
		patchDisplacement(obj, dispOffset, st.offset)
		return nil
	}
	ctx.addLabelReference(label, dispOffset)
	return nil
}

func compileJump(target string, ctx *functionContext, obj *elf.Object) error {
	dispOffset := jmpRel32Placeholder(&obj.Text) + 1
	return resolveOrDefer(target, dispOffset, ctx, obj)
}

// compileBranch loads instr.Condition and jumps to FalseLabel when it's
// zero; otherwise an unconditional jmp that follows takes it to TrueLabel.
func compileBranch(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	loc, ok := ctx.variable(instr.Condition.Name)
	if !ok {
		return codegen.ErrVariableNotFound(instr.Condition.Name)
	}
	loadVariable(&obj.Text, amd64.RAX, loc)
	testRAXSelf(&obj.Text)

	falseDisp := jeRel32Placeholder(&obj.Text) + 2
	if err := resolveOrDefer(instr.FalseLabel, falseDisp, ctx, obj); err != nil {
		return err
	}
	trueDisp := jmpRel32Placeholder(&obj.Text) + 1
	return resolveOrDefer(instr.TrueLabel, trueDisp, ctx, obj)
}
