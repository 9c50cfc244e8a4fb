package amd64

// ModR/M mode field values.
const (
	modMemoryNoDisp = 0b00
	modMemoryDisp8  = 0b01
	modMemoryDisp32 = 0b10
	modRegisterDir  = 0b11
)

// rmSIBFollows and rmRIPOrDisp are the two ModR/M.rm encodings (4) that
// don't mean "this register": 100 always means "read a SIB byte next";
// 101 under mod=00 means RIP-relative rather than "register 5".
const (
	rmSIBFollows = 0b100
	rmRIPOrDisp  = 0b101
)

// ModRMRegReg builds a register-direct (mod=11) ModR/M byte: reg occupies
// the reg field, rm occupies the r/m field.
func ModRMRegReg(reg, rm Register) byte {
	return modRegisterDir<<6 | reg.low3()<<3 | rm.low3()
}

// ModRMDigitReg builds a register-direct ModR/M byte where the reg field
// carries an opcode-extension digit (0-7) instead of a register, as used
// by /digit opcodes like IDIV and the imm32 ALU group.
func ModRMDigitReg(digit uint8, rm Register) byte {
	return modRegisterDir<<6 | (digit&0x7)<<3 | rm.low3()
}

// ModRMRBPDisp32 builds the ModR/M byte for [rbp+disp32], forcing the SIB
// path (r/m=100) as spec'd, rather than RBP's direct disp32 encoding
// (r/m=101). Pair with SIBRBPNoIndex.
func ModRMRBPDisp32(reg Register) byte {
	return modMemoryDisp32<<6 | reg.low3()<<3 | rmSIBFollows
}

// SIBRBPNoIndex builds the SIB byte for base=RBP, no index register.
func SIBRBPNoIndex() byte {
	return 0b00<<6 | 0b100<<3 | 0b101
}

// ModRMBaseDisp8 builds a direct (no-SIB) ModR/M byte for [base+disp8].
// Valid for any base whose low3 isn't 100 (RSP/R12, which always need a
// SIB byte even with mod=01/10). The linux backend does not call it: it
// addresses [rbp+offset] through ModRMRBPDisp32 and SIBRBPNoIndex.
func ModRMBaseDisp8(reg, base Register) byte {
	return modMemoryDisp8<<6 | reg.low3()<<3 | base.low3()
}

// ModRMBaseDisp32 builds a direct (no-SIB) ModR/M byte for [base+disp32].
// Same base restriction as ModRMBaseDisp8.
func ModRMBaseDisp32(reg, base Register) byte {
	return modMemoryDisp32<<6 | reg.low3()<<3 | base.low3()
}

// ModRMRIPRelative builds the ModR/M byte for [rip+disp32] (mod=00,
// rm=101), used for lea/mov references into .rodata and to other globals.
func ModRMRIPRelative(reg Register) byte {
	return reg.low3()<<3 | rmRIPOrDisp
}

// ModRMIndirect builds the bytes (ModR/M, and a SIB byte if required) to
// address [rm] with zero displacement, for register-indirect load/store
// through a pointer held in rm. Two encodings need special handling: rm's
// low3=100 (RSP/R12) always forces a SIB byte even for [rm] with no
// index/displacement; rm's low3=101 (RBP/R13) under mod=00 means
// RIP-relative rather than "[rbp]", so it's encoded instead as a
// zero-displacement disp8 form.
func ModRMIndirect(reg, rm Register) []byte {
	switch rm.low3() {
	case rmSIBFollows:
		return []byte{
			modMemoryNoDisp<<6 | reg.low3()<<3 | rmSIBFollows,
			0b00<<6 | 0b100<<3 | rm.low3(), // SIB: scale=1, no index, base=rm
		}
	case rmRIPOrDisp:
		return []byte{modMemoryDisp8<<6 | reg.low3()<<3 | rmRIPOrDisp, 0x00}
	default:
		return []byte{modMemoryNoDisp<<6 | reg.low3()<<3 | rm.low3()}
	}
}
