package amd64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestREX(t *testing.T) {
	rax, r15 := RAX, R15
	cases := []struct {
		name    string
		reg, rm *Register
		want    byte
	}{
		{"no extension", &rax, &rax, 0x48},
		{"reg needs extension", &r15, &rax, 0x4C},
		{"rm needs extension", &rax, &r15, 0x49},
		{"both need extension", &r15, &r15, 0x4D},
		{"nil fields", nil, nil, 0x48},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, REX(c.reg, c.rm))
		})
	}
}

func TestRequiresREX(t *testing.T) {
	for r := RAX; r <= RDI; r++ {
		assert.False(t, r.RequiresREX(), "%s.RequiresREX() should be false", r)
	}
	for r := R8; r <= R15; r++ {
		assert.True(t, r.RequiresREX(), "%s.RequiresREX() should be true", r)
	}
}
