// Package linux implements the linux-amd64 backend target: it lowers a
// compilation unit's typed linear IR directly into x86-64 machine code
// and an ELF64 relocatable object, with no assembler or external linker
// step in between.
package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/elf"
)

// Compile lowers unit into a freestanding ELF64 relocatable object.
// Globals are compiled in declaration order, but a function may freely
// reference a constant or another function declared later in the same
// unit: every cross-global reference becomes a relocation the linker
// resolves, never an address this backend computes itself.
func Compile(unit ir.CompilationUnit) (*elf.Object, error) {
	obj := elf.NewObject()

	knownGlobals := make(map[string]bool, len(unit.Globals))
	for _, g := range unit.Globals {
		switch g.Kind {
		case ir.GlobalFunction:
			knownGlobals[g.Function.Name] = true
		case ir.GlobalConstant:
			knownGlobals[g.Constant.Name] = true
		}
	}

	for _, g := range unit.Globals {
		switch g.Kind {
		case ir.GlobalConstant:
			if err := compileConstant(*g.Constant, obj); err != nil {
				return nil, err
			}
		case ir.GlobalFunction:
			if g.Function.Name == "main" {
				obj.EntryHint = "main"
			}
			if err := compileFunction(*g.Function, obj, knownGlobals); err != nil {
				return nil, err
			}
		default:
			return nil, codegen.ErrNotImplemented("global kind %v", g.Kind)
		}
	}
	return obj, nil
}
