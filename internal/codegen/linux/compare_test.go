package linux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

func TestCompileCompareEndsWithMovzx(t *testing.T) {
	left, right := intPair(1, 1)
	obj := elf.NewObject()
	require.NoError(t, compileCompare(ir.Compare(left, right), newFunctionContext(nil), obj))

	trail := obj.Text.Bytes()
	// movzxRAXAL is the final four bytes: REX.W, 0F, B6, ModRM.
	last4 := trail[len(trail)-4:]
	assert.Equal(t, byte(0x48), last4[0])
	assert.Equal(t, byte(amd64.OpTwoByte), last4[1])
	assert.Equal(t, byte(amd64.OpMovzxByte), last4[2])
}
