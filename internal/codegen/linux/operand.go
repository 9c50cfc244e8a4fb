package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// materializeOperand emits code that leaves op's value in dst: an
// immediate load for a literal, a register/stack read for a local
// variable, or a RIP-relative lea of a global's address for a name the
// unit declares as a global. Any other identifier is a VariableNotFound
// error.
func materializeOperand(op ir.Operand, dst amd64.Register, ctx *functionContext, obj *elf.Object) error {
	if op.Kind == ir.OperandLiteral {
		return materializeLiteral(op.Literal, dst, obj)
	}
	return materializeIdentifier(op.Identifier, dst, ctx, obj)
}

func materializeLiteral(lit ir.Literal, dst amd64.Register, obj *elf.Object) error {
	switch lit.Kind {
	case ir.LiteralInt64:
		movImm64(&obj.Text, dst, lit.Int)
		return nil
	case ir.LiteralBool:
		v := int64(0)
		if lit.Bln {
			v = 1
		}
		movImm64(&obj.Text, dst, v)
		return nil
	case ir.LiteralString:
		return leaGlobal(internStringLiteral(lit.Str, obj), dst, obj)
	case ir.LiteralFloat64:
		return codegen.ErrNotImplemented("floating-point literal")
	default:
		return codegen.ErrNotImplemented("literal kind %v", lit.Kind)
	}
}

// internStringLiteral appends s, NUL-terminated, to .rodata and returns a
// local symbol naming its start, reusing one already interned for the
// same content.
func internStringLiteral(s string, obj *elf.Object) string {
	name := ".Lstr." + s
	if obj.Symbols.Has(name) {
		return name
	}
	offset := obj.Rodata.Append(append([]byte(s), 0))
	obj.Symbols.Add(elf.Symbol{
		Name: name, Section: elf.SectionRodata, Offset: offset,
		Size: uint64(len(s) + 1), Type: elf.SymbolTypeObject, Binding: elf.BindLocal,
	})
	return name
}

func materializeIdentifier(id ir.Identifier, dst amd64.Register, ctx *functionContext, obj *elf.Object) error {
	if loc, ok := ctx.variable(id.Name); ok {
		loadVariable(&obj.Text, dst, loc)
		return nil
	}
	if !ctx.knownGlobals[id.Name] {
		return codegen.ErrVariableNotFound(id.Name)
	}
	return leaGlobal(id.Name, dst, obj)
}

// leaGlobal emits a RIP-relative lea of name's address into dst and
// records a PC-relative relocation against it, resolved once the linker
// knows every symbol's final address. The addend of -4 accounts for the
// displacement field itself: RIP at execution time is the address just
// past it, not the start of this instruction.
func leaGlobal(name string, dst amd64.Register, obj *elf.Object) error {
	dispOffset := leaRIPPlaceholder(&obj.Text, dst)
	obj.AddRelocation(elf.Relocation{
		Section: elf.SectionText, Offset: dispOffset, Symbol: name,
		Type: elf.RelocPCRel32, Addend: -4,
	})
	return nil
}

// operandType reports op's static type: an identifier's declared type, or
// the type its literal kind implies.
func operandType(op ir.Operand) ir.Type {
	if op.Kind == ir.OperandIdentifier {
		return op.Identifier.Type
	}
	switch op.Literal.Kind {
	case ir.LiteralFloat64:
		return ir.Type{Kind: ir.Float64}
	case ir.LiteralBool:
		return ir.Type{Kind: ir.Bool}
	case ir.LiteralString:
		return ir.NewPointer(ir.Type{Kind: ir.UInt8})
	default:
		return ir.Int64Type
	}
}

// validateOperandTypes rejects operand pairings this backend's integer
// arithmetic and comparisons can't lower: any float operand (not yet
// implemented) or a non-integer, non-float operand such as a bool or
// string used directly in arithmetic.
func validateOperandTypes(left, right ir.Operand, opName string) error {
	lt, rt := operandType(left), operandType(right)
	if lt.IsFloat() || rt.IsFloat() {
		return codegen.ErrNotImplemented("floating-point operand in %s", opName)
	}
	if !lt.IsInteger() || !rt.IsInteger() {
		return codegen.ErrTypeError("%s requires integer operands, got %s and %s", opName, lt, rt)
	}
	return nil
}
