package elf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEmptyObjectHeader(t *testing.T) {
	obj := NewObject()
	out := obj.Encode()

	require.GreaterOrEqual(t, len(out), ELF64HeaderSize, "encoded object shorter than ELF header")
	assert.Equal(t, []byte{ELFMAG0, ELFMAG1, ELFMAG2, ELFMAG3}, out[:4], "bad ELF magic")
	assert.Equal(t, byte(ELFCLASS64), out[4])

	etype := binary.LittleEndian.Uint16(out[16:18])
	assert.Equal(t, uint16(ET_REL), etype)

	machine := binary.LittleEndian.Uint16(out[18:20])
	assert.Equal(t, uint16(EM_X86_64), machine)

	shnum := binary.LittleEndian.Uint16(out[60:62])
	assert.Equal(t, uint16(shNumSections), shnum)

	shstrndx := binary.LittleEndian.Uint16(out[62:64])
	assert.Equal(t, uint16(shIndexShstrtab), shstrndx)
}

func TestShstrtabFixedOffsets(t *testing.T) {
	cases := []struct {
		name   string
		offset int
	}{
		{".text", shstrtabNameText},
		{".rodata", shstrtabNameRodata},
		{".data", shstrtabNameData},
		{".bss", shstrtabNameBSS},
		{".symtab", shstrtabNameSymtab},
		{".strtab", shstrtabNameStrtab},
		{".rela.text", shstrtabNameRelaText},
		{".shstrtab", shstrtabNameShstrtab},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			end := c.offset + len(c.name)
			require.Less(t, end, len(shstrtabBytes))
			assert.Equal(t, c.name, string(shstrtabBytes[c.offset:end]))
			assert.Equal(t, byte(0), shstrtabBytes[end], "name %q not NUL-terminated", c.name)
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	build := func() []byte {
		obj := NewObject()
		obj.Text.Append([]byte{0x90, 0x90, 0xC3})
		obj.Symbols.Add(Symbol{Name: "f", Section: SectionText, Offset: 0, Size: 3, Type: SymbolTypeFunc, Binding: BindGlobal})
		return obj.Encode()
	}
	assert.Equal(t, build(), build(), "Encode() is not deterministic across identical objects")
}

func TestEncodeRelocationSymbolIndex(t *testing.T) {
	obj := NewObject()
	obj.Text.Append([]byte{0xE8, 0, 0, 0, 0})
	obj.Symbols.Add(Symbol{Name: "local", Section: SectionText, Offset: 0, Type: SymbolTypeFunc, Binding: BindLocal})
	idx := obj.Symbols.Add(Symbol{Name: "puts", Section: SectionUndefined, Type: SymbolTypeFunc, Binding: BindGlobal})
	obj.AddRelocation(Relocation{Section: SectionText, Offset: 1, Symbol: "puts", Type: RelocPLTPCRel32, Addend: -4})

	out := obj.Encode()

	got, ok := obj.Symbols.Find("puts")
	require.True(t, ok)
	assert.Equal(t, idx, got)

	// r_info's high 32 bits hold the symbol index of the one relocation.
	shoff := binary.LittleEndian.Uint64(out[40:48])
	relaHdr := out[shoff+shIndexRelaText*ELF64SectionHeaderSize:]
	relaOff := binary.LittleEndian.Uint64(relaHdr[24:32])
	info := binary.LittleEndian.Uint64(out[relaOff+8 : relaOff+16])
	assert.Equal(t, uint64(idx), info>>32)
}

func TestEncodePanicsOnUnknownRelocationSymbol(t *testing.T) {
	obj := NewObject()
	obj.AddRelocation(Relocation{Symbol: "missing", Type: RelocPCRel32})
	assert.Panics(t, func() { obj.Encode() }, "expected panic for relocation against unknown symbol")
}
