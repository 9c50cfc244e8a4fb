package linux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/elf"
)

func TestCompileLoadMissingPointerFails(t *testing.T) {
	ctx := newFunctionContext(nil)
	obj := elf.NewObject()
	err := compileLoad(ir.Load(ir.NewIdentifier("p")), ctx, obj)
	require.Error(t, err)
	assert.Equal(t, codegen.VariableNotFound, err.(*codegen.Error).Kind)
}

func TestCompileLoadRegisterHeldPointerIsOneIndirection(t *testing.T) {
	ctx := newFunctionContext(nil)
	ctx.allocateVariable("p") // first local lands in a register, per allocateVariable
	obj := elf.NewObject()
	require.NoError(t, compileLoad(ir.Load(ir.NewIdentifier("p")), ctx, obj))
	assert.NotZero(t, obj.Text.Len())
}

func TestCompileLoadStackHeldPointerLoadsTwice(t *testing.T) {
	ctx := newFunctionContext(nil)
	for i := 0; i < 5; i++ {
		ctx.allocateVariable(string(rune('a' + i))) // exhaust the 5-slot register pool
	}
	ctx.allocateVariable("p") // now forced onto the stack
	loc, _ := ctx.variable("p")
	require.False(t, loc.inRegister)

	obj := elf.NewObject()
	require.NoError(t, compileLoad(ir.Load(ir.NewIdentifier("p")), ctx, obj))

	registerHeld := newFunctionContext(nil)
	registerHeld.allocateVariable("q")
	regObj := elf.NewObject()
	require.NoError(t, compileLoad(ir.Load(ir.NewIdentifier("q")), registerHeld, regObj))

	assert.Greater(t, obj.Text.Len(), regObj.Text.Len(),
		"a stack-held pointer needs an extra load before the indirection")
}

func TestCompileStoreMissingPointerFails(t *testing.T) {
	ctx := newFunctionContext(nil)
	obj := elf.NewObject()
	value := ir.LiteralOperand(ir.IntLiteral(1))
	err := compileStore(ir.Store(ir.NewIdentifier("p"), value), ctx, obj)
	require.Error(t, err)
	assert.Equal(t, codegen.VariableNotFound, err.(*codegen.Error).Kind)
}

func TestCompileStoreRegisterHeldPointer(t *testing.T) {
	ctx := newFunctionContext(nil)
	ctx.allocateVariable("p")
	obj := elf.NewObject()
	value := ir.LiteralOperand(ir.IntLiteral(42))
	require.NoError(t, compileStore(ir.Store(ir.NewIdentifier("p"), value), ctx, obj))
	assert.NotZero(t, obj.Text.Len())
}
