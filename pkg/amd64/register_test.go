package amd64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterString(t *testing.T) {
	assert.Equal(t, "rax", RAX.String())
	assert.Equal(t, "r15", R15.String())
}

func TestRegisterNumber(t *testing.T) {
	assert.Equal(t, byte(5), RBP.Number())
	assert.Equal(t, byte(12), R12.Number())
}

func TestCalleeSavedPoolOrder(t *testing.T) {
	pool := CalleeSavedPool()
	want := []Register{RBX, R12, R13, R14, R15}
	require.Len(t, pool, len(want))
	assert.Equal(t, want, pool)
}

func TestArgumentRegistersOrder(t *testing.T) {
	want := []Register{RDI, RSI, RDX, RCX, R8, R9}
	require.Len(t, ArgumentRegisters, len(want))
	assert.Equal(t, want, ArgumentRegisters)
}
