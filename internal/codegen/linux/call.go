package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// compileCall lowers a call to instr.FunctionName, leaving its result in
// RAX by the System V return-value convention. Callers that discard the
// result (a bare InstructionStatement) simply don't read RAX afterward.
func compileCall(instr ir.Instruction, ctx *functionContext, obj *elf.Object) error {
	if len(instr.Parameters) > len(amd64.ArgumentRegisters) {
		return codegen.ErrNotImplemented("call to %q: more than 6 arguments", instr.FunctionName)
	}
	for i, param := range instr.Parameters {
		if err := materializeOperand(param, amd64.ArgumentRegisters[i], ctx, obj); err != nil {
			return err
		}
	}

	dispOffset := callRel32Placeholder(&obj.Text)

	if !obj.Symbols.Has(instr.FunctionName) {
		obj.Symbols.Add(elf.Symbol{
			Name: instr.FunctionName, Section: elf.SectionUndefined,
			Type: elf.SymbolTypeFunc, Binding: elf.BindGlobal,
		})
	}
	obj.AddRelocation(elf.Relocation{
		Section: elf.SectionText, Offset: dispOffset, Symbol: instr.FunctionName,
		Type: elf.RelocPLTPCRel32, Addend: -4,
	})
	return nil
}
