package elf

// Section is one of the four growable output sections a compiled unit
// writes into.
type Section struct {
	Tag   SectionTag
	bytes []byte
	align uint64
}

// Append appends data to the section and returns the byte offset at which
// it was written.
func (s *Section) Append(data []byte) uint64 {
	offset := uint64(len(s.bytes))
	s.bytes = append(s.bytes, data...)
	return offset
}

// Len reports the section's current size in bytes.
func (s *Section) Len() uint64 { return uint64(len(s.bytes)) }

// Bytes returns the section's accumulated contents. For .bss this is the
// zero-fill size only; .bss carries no file bytes (SHT_NOBITS).
func (s *Section) Bytes() []byte { return s.bytes }

// shstrtab is the fixed section-name string table this writer always
// produces, laid out so every name lands at the exact offset spec'd by the
// fixed 9-section-header layout.
var shstrtabBytes = []byte(
	"\x00.text\x00.rodata\x00.data\x00.bss\x00.symtab\x00.strtab\x00.rela.text\x00.shstrtab\x00",
)

const (
	shstrtabNameText      = 1
	shstrtabNameRodata    = 7
	shstrtabNameData      = 15
	shstrtabNameBSS       = 21
	shstrtabNameSymtab    = 26
	shstrtabNameStrtab    = 34
	shstrtabNameRelaText  = 42
	shstrtabNameShstrtab  = 53
)

// section header indices in the fixed 9-entry layout.
const (
	shIndexNull     = 0
	shIndexText     = 1
	shIndexRodata   = 2
	shIndexData     = 3
	shIndexBSS      = 4
	shIndexSymtab   = 5
	shIndexStrtab   = 6
	shIndexRelaText = 7
	shIndexShstrtab = 8
	shNumSections   = 9
)

// Object is the in-progress ELF64 relocatable object a compiled unit is
// written into: four sections, a symbol table, and a pending relocation
// list against .text.
type Object struct {
	Text   Section
	Rodata Section
	Data   Section
	BSS    Section

	Symbols SymbolTable

	relocations []Relocation

	// EntryHint names the symbol advisory tools may treat as the intended
	// entry point (e.g. "main"). It has no effect on the encoded object:
	// ET_REL carries no entry point.
	EntryHint string
}

// NewObject returns an empty object ready to be populated by the target
// dispatcher and function compiler.
func NewObject() *Object {
	obj := &Object{
		Text:   Section{Tag: SectionText},
		Rodata: Section{Tag: SectionRodata},
		Data:   Section{Tag: SectionData},
		BSS:    Section{Tag: SectionBSS},
	}
	return obj
}

// section returns the Section matching tag, or nil for SectionUndefined.
func (o *Object) section(tag SectionTag) *Section {
	switch tag {
	case SectionText:
		return &o.Text
	case SectionRodata:
		return &o.Rodata
	case SectionData:
		return &o.Data
	case SectionBSS:
		return &o.BSS
	default:
		return nil
	}
}

// AddRelocation records a pending fixup. The symbol it names must already
// exist, or be added, before Encode is called.
func (o *Object) AddRelocation(r Relocation) {
	o.relocations = append(o.relocations, r)
}

// Relocations returns the pending relocation list recorded against .text.
func (o *Object) Relocations() []Relocation {
	return o.relocations
}

func sectionIndex(tag SectionTag) uint16 {
	switch tag {
	case SectionText:
		return shIndexText
	case SectionRodata:
		return shIndexRodata
	case SectionData:
		return shIndexData
	case SectionBSS:
		return shIndexBSS
	default:
		return SHN_UNDEF
	}
}

// Encode produces the byte-exact ELF64 ET_REL object. Once a unit has been
// fully compiled, every relocation's symbol is present: a lowerer either
// adds the referenced symbol when it records the relocation, or references
// a global of the unit whose symbol is added when that global is compiled.
// A missing symbol here means that invariant was violated elsewhere in the
// backend, not a condition callers can recover from.
func (o *Object) Encode() []byte {
	strtab := newStringTable()
	symtabBytes := o.encodeSymtab(strtab)
	relaBytes := o.encodeRelocations()

	textBytes := o.Text.Bytes()
	rodataBytes := o.Rodata.Bytes()
	dataBytes := o.Data.Bytes()
	strtabBytes := strtab.bytes

	// Content is laid out text, rodata, data, strtab, shstrtab, symtab,
	// rela.text — the fixed order this writer always produces. .bss
	// contributes no file bytes (SHT_NOBITS).
	offText := uint64(ELF64HeaderSize)
	offRodata := offText + uint64(len(textBytes))
	offData := offRodata + uint64(len(rodataBytes))
	offStrtab := offData + uint64(len(dataBytes))
	offShstrtab := offStrtab + uint64(len(strtabBytes))
	offSymtab := offShstrtab + uint64(len(shstrtabBytes))
	offRela := offSymtab + uint64(len(symtabBytes))
	offSectionHeaders := offRela + uint64(len(relaBytes))

	out := make([]byte, 0, offSectionHeaders+shNumSections*ELF64SectionHeaderSize)
	out = o.encodeHeader(out, offSectionHeaders)
	out = append(out, textBytes...)
	out = append(out, rodataBytes...)
	out = append(out, dataBytes...)
	out = append(out, strtabBytes...)
	out = append(out, shstrtabBytes...)
	out = append(out, symtabBytes...)
	out = append(out, relaBytes...)

	headers := o.sectionHeaders(offText, offRodata, offData, offStrtab, offShstrtab, offSymtab, offRela,
		uint64(len(textBytes)), uint64(len(rodataBytes)), uint64(len(dataBytes)),
		uint64(len(strtabBytes)), uint64(len(symtabBytes)), uint64(len(relaBytes)))
	for i := range headers {
		out = headers[i].appendTo(out)
	}
	return out
}

func (o *Object) encodeHeader(out []byte, shOff uint64) []byte {
	hdr := Header64{
		Type:      ET_REL,
		Machine:   EM_X86_64,
		Version:   EV_CURRENT,
		Entry:     0,
		PhOff:     0,
		ShOff:     shOff,
		Flags:     0,
		EhSize:    ELF64HeaderSize,
		PhEntSize: 0,
		PhNum:     0,
		ShEntSize: ELF64SectionHeaderSize,
		ShNum:     shNumSections,
		ShStrNdx:  shIndexShstrtab,
	}
	hdr.Ident[0] = ELFMAG0
	hdr.Ident[1] = ELFMAG1
	hdr.Ident[2] = ELFMAG2
	hdr.Ident[3] = ELFMAG3
	hdr.Ident[4] = ELFCLASS64
	hdr.Ident[5] = ELFDATA2LSB
	hdr.Ident[6] = EV_CURRENT
	hdr.Ident[7] = ELFOSABI_NONE
	return hdr.appendTo(out)
}

func (o *Object) encodeSymtab(strtab *stringTable) []byte {
	// Entry 0 is the mandatory all-zero null symbol.
	out := make([]byte, ELF64SymbolSize)
	for _, sym := range o.Symbols.All() {
		nameOff := strtab.add(sym.Name)
		out = appendLE32(out, nameOff)
		out = append(out, sym.Binding.elfValue()<<4|sym.Type.elfValue()&0xF)
		out = append(out, 0) // st_other
		out = appendLE16(out, sectionIndex(sym.Section))
		out = appendLE64(out, sym.Offset)
		out = appendLE64(out, sym.Size)
	}
	return out
}

func (o *Object) encodeRelocations() []byte {
	var out []byte
	for _, r := range o.relocations {
		idx, ok := o.Symbols.Find(r.Symbol)
		if !ok {
			panic("elf: relocation references unknown symbol " + r.Symbol)
		}
		info := uint64(idx)<<32 | uint64(r.Type.elfValue())
		out = appendLE64(out, r.Offset)
		out = appendLE64(out, info)
		out = appendLE64(out, uint64(r.Addend))
	}
	return out
}

func (o *Object) sectionHeaders(
	offText, offRodata, offData, offStrtab, offShstrtab, offSymtab, offRela uint64,
	sizeText, sizeRodata, sizeData, sizeStrtab, sizeSymtab, sizeRela uint64,
) []SectionHeader64 {
	headers := make([]SectionHeader64, shNumSections)
	headers[shIndexNull] = SectionHeader64{}
	headers[shIndexText] = SectionHeader64{
		Name: shstrtabNameText, Type: SHT_PROGBITS, Flags: SHF_ALLOC | SHF_EXECINSTR,
		Offset: offText, Size: sizeText, AddrAlign: 1,
	}
	headers[shIndexRodata] = SectionHeader64{
		Name: shstrtabNameRodata, Type: SHT_PROGBITS, Flags: SHF_ALLOC,
		Offset: offRodata, Size: sizeRodata, AddrAlign: 1,
	}
	headers[shIndexData] = SectionHeader64{
		Name: shstrtabNameData, Type: SHT_PROGBITS, Flags: SHF_ALLOC | SHF_WRITE,
		Offset: offData, Size: sizeData, AddrAlign: 1,
	}
	headers[shIndexBSS] = SectionHeader64{
		Name: shstrtabNameBSS, Type: SHT_NOBITS, Flags: SHF_ALLOC | SHF_WRITE,
		Offset: offData + sizeData, Size: o.BSS.Len(), AddrAlign: 1,
	}
	headers[shIndexSymtab] = SectionHeader64{
		Name: shstrtabNameSymtab, Type: SHT_SYMTAB,
		Offset: offSymtab, Size: sizeSymtab,
		Link: shIndexStrtab, Info: 2, AddrAlign: 8, EntSize: ELF64SymbolSize,
	}
	headers[shIndexStrtab] = SectionHeader64{
		Name: shstrtabNameStrtab, Type: SHT_STRTAB,
		Offset: offStrtab, Size: sizeStrtab, AddrAlign: 1,
	}
	headers[shIndexRelaText] = SectionHeader64{
		Name: shstrtabNameRelaText, Type: SHT_RELA, Flags: SHF_INFO_LINK,
		Offset: offRela, Size: sizeRela,
		Link: shIndexSymtab, Info: shIndexText, AddrAlign: 8, EntSize: ELF64RelaSize,
	}
	headers[shIndexShstrtab] = SectionHeader64{
		Name: shstrtabNameShstrtab, Type: SHT_STRTAB,
		Offset: offShstrtab, Size: uint64(len(shstrtabBytes)), AddrAlign: 1,
	}
	return headers
}
