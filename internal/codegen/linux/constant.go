package linux

import (
	"math"

	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// compileConstant emits c's value into .rodata — every global this IR
// models is immutable, so there's no need for a writable .data entry —
// and records a global OBJECT symbol naming it.
func compileConstant(c ir.Constant, obj *elf.Object) error {
	var bytes []byte
	switch c.Value.Kind {
	case ir.LiteralInt64:
		bytes = amd64.AppendLE64(nil, uint64(c.Value.Int))
	case ir.LiteralFloat64:
		bytes = amd64.AppendLE64(nil, math.Float64bits(c.Value.Flt))
	case ir.LiteralBool:
		v := byte(0)
		if c.Value.Bln {
			v = 1
		}
		bytes = []byte{v}
	case ir.LiteralString:
		bytes = append([]byte(c.Value.Str), 0)
	default:
		return codegen.ErrNotImplemented("constant literal kind %v", c.Value.Kind)
	}

	offset := obj.Rodata.Append(bytes)
	obj.Symbols.Add(elf.Symbol{
		Name: c.Name, Section: elf.SectionRodata, Offset: offset,
		Size: uint64(len(bytes)), Type: elf.SymbolTypeObject, Binding: elf.BindGlobal,
	})
	return nil
}
