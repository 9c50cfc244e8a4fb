package linux

import (
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// The helpers in this file wrap pkg/amd64's byte-level primitives with the
// one addressing shape every lowerer in this package needs: [rbp+disp32],
// always through a SIB byte (never the disp8 shortcut), matching the
// encoding primitives amd64.ModRMRBPDisp32/amd64.SIBRBPNoIndex describe.

// emitRBPOperand appends the ModR/M+SIB+disp32 bytes addressing
// [rbp+offset] with reg as the other ModR/M operand.
func emitRBPOperand(buf []byte, reg amd64.Register, offset int32) []byte {
	buf = append(buf, amd64.ModRMRBPDisp32(reg), amd64.SIBRBPNoIndex())
	return amd64.AppendLE32(buf, uint32(offset))
}

// rexBOnly is the REX prefix with only the B extension bit set, used by
// push/pop, which operate on 64-bit registers by default and never need
// REX.W.
const rexBOnly = 0x40 | 0x01

// rexWOnly is the plain REX.W prefix, used whenever neither ModR/M operand
// needs REX.R/REX.B (e.g. ops that are hardcoded to RAX/RCX/RDX).
const rexWOnly = 0x48

// push appends `push r64`.
func push(text *elf.Section, r amd64.Register) {
	var buf []byte
	if r.RequiresREX() {
		buf = append(buf, rexBOnly)
	}
	buf = append(buf, amd64.PushBase+r.Number()&0x7)
	text.Append(buf)
}

// pop appends `pop r64`.
func pop(text *elf.Section, r amd64.Register) {
	var buf []byte
	if r.RequiresREX() {
		buf = append(buf, rexBOnly)
	}
	buf = append(buf, amd64.PopBase+r.Number()&0x7)
	text.Append(buf)
}

// movRR appends `mov dst, src` (dst = src), skipped entirely if dst == src.
func movRR(text *elf.Section, dst, src amd64.Register) {
	if dst == src {
		return
	}
	d, s := dst, src
	text.Append([]byte{amd64.REX(&d, &s), amd64.OpMovLoad, amd64.ModRMRegReg(dst, src)})
}

// movImm64 appends `mov dst, imm64`.
func movImm64(text *elf.Section, dst amd64.Register, v int64) {
	d := dst
	buf := []byte{amd64.REX(nil, &d), amd64.MovImm64Base + d.Number()&0x7}
	text.Append(amd64.AppendLE64(buf, uint64(v)))
}

// movLoadRBP appends `mov dst, [rbp+offset]`.
func movLoadRBP(text *elf.Section, dst amd64.Register, offset int32) {
	d := dst
	buf := []byte{amd64.REX(&d, nil), amd64.OpMovLoad}
	text.Append(emitRBPOperand(buf, dst, offset))
}

// movStoreRBP appends `mov [rbp+offset], src`.
func movStoreRBP(text *elf.Section, offset int32, src amd64.Register) {
	s := src
	buf := []byte{amd64.REX(&s, nil), amd64.OpMovStore}
	text.Append(emitRBPOperand(buf, src, offset))
}

// leaRBP appends `lea dst, [rbp+offset]`.
func leaRBP(text *elf.Section, dst amd64.Register, offset int32) {
	d := dst
	buf := []byte{amd64.REX(&d, nil), amd64.OpLea}
	text.Append(emitRBPOperand(buf, dst, offset))
}

// leaRIPPlaceholder appends `lea dst, [rip+disp32]` with a zero placeholder
// displacement and returns the byte offset of that displacement field, for
// the caller to record a relocation against.
func leaRIPPlaceholder(text *elf.Section, dst amd64.Register) uint64 {
	d := dst
	buf := []byte{amd64.REX(&d, nil), amd64.OpLea, amd64.ModRMRIPRelative(dst)}
	off := text.Append(buf)
	text.Append([]byte{0, 0, 0, 0})
	return off + 3
}

// movIndirectLoad appends `mov dst, [rm]` (dereferencing a pointer held in
// register rm).
func movIndirectLoad(text *elf.Section, dst, rm amd64.Register) {
	d, r := dst, rm
	buf := []byte{amd64.REX(&d, &r), amd64.OpMovLoad}
	text.Append(append(buf, amd64.ModRMIndirect(dst, rm)...))
}

// movIndirectStore appends `mov [rm], src`.
func movIndirectStore(text *elf.Section, rm, src amd64.Register) {
	s, r := src, rm
	buf := []byte{amd64.REX(&s, &r), amd64.OpMovStore}
	text.Append(append(buf, amd64.ModRMIndirect(src, rm)...))
}

// binaryRAXRCX appends a REX.W two-register opcode operating on RAX/RCX,
// used by the ADD/SUB lowerers and by CMP/TEST: REX.W, opcode, ModR/M(reg, rm).
func binaryRAXRCX(text *elf.Section, opcode byte, reg, rm amd64.Register) {
	text.Append([]byte{rexWOnly, opcode, amd64.ModRMRegReg(reg, rm)})
}

// aluImmRSP appends `add rsp, imm32` (digit=AluDigitAdd) or
// `sub rsp, imm32` (digit=AluDigitSub).
func aluImmRSP(text *elf.Section, digit uint8, v uint32) {
	buf := []byte{rexWOnly, amd64.OpAluImm32, amd64.ModRMDigitReg(digit, amd64.RSP)}
	text.Append(amd64.AppendLE32(buf, v))
}

// xorZeroEAX appends the 32-bit `xor eax, eax` this package's default
// epilogue uses to zero a missing return value. No REX prefix: zeroing the
// low 32 bits already zero-extends the full 64-bit register.
func xorZeroEAX(text *elf.Section) {
	text.Append([]byte{amd64.OpXor, amd64.ModRMRegReg(amd64.RAX, amd64.RAX)})
}

// cmpRAXRCX appends `cmp rax, rcx`.
func cmpRAXRCX(text *elf.Section) {
	binaryRAXRCX(text, amd64.OpCmp, amd64.RCX, amd64.RAX)
}

// testRAXSelf appends `test rax, rax`, used to branch on a boolean held in
// RAX without disturbing it.
func testRAXSelf(text *elf.Section) {
	binaryRAXRCX(text, amd64.OpTest, amd64.RAX, amd64.RAX)
}

// seteAL appends `sete al`.
func seteAL(text *elf.Section) {
	text.Append([]byte{amd64.OpTwoByte, amd64.OpSeteSuffix, amd64.ModRMALRegister})
}

// movzxRAXAL appends `movzx rax, al`.
func movzxRAXAL(text *elf.Section) {
	text.Append([]byte{rexWOnly, amd64.OpTwoByte, amd64.OpMovzxByte, amd64.ModRMRegReg(amd64.RAX, amd64.RAX)})
}

// cqo appends the `cqo` instruction (sign-extend RAX into RDX:RAX).
func cqo(text *elf.Section) {
	text.Append([]byte{rexWOnly, amd64.OpCqo})
}

// idivRCX appends `idiv rcx`.
func idivRCX(text *elf.Section) {
	text.Append([]byte{rexWOnly, amd64.OpIdiv, amd64.ModRMDigitReg(amd64.IdivDigit, amd64.RCX)})
}

// imulRAXRCX appends `imul rax, rcx`.
func imulRAXRCX(text *elf.Section) {
	text.Append([]byte{rexWOnly, amd64.OpTwoByte, amd64.OpImulSuffix, amd64.ModRMRegReg(amd64.RAX, amd64.RCX)})
}

// callRel32Placeholder appends `call rel32` with a zero placeholder and
// returns the byte offset of the displacement field.
func callRel32Placeholder(text *elf.Section) uint64 {
	off := text.Append([]byte{amd64.OpCallRel32})
	text.Append([]byte{0, 0, 0, 0})
	return off + 1
}

// jmpRel32Placeholder appends `jmp rel32` with a zero placeholder and
// returns the byte offset of the opcode byte.
func jmpRel32Placeholder(text *elf.Section) uint64 {
	return text.Append([]byte{amd64.OpJmpRel32, 0, 0, 0, 0})
}

// jeRel32Placeholder appends `je rel32` with a zero placeholder and returns
// the byte offset of the opcode's first byte.
func jeRel32Placeholder(text *elf.Section) uint64 {
	return text.Append([]byte{amd64.OpTwoByte, amd64.OpJeSuffix, 0, 0, 0, 0})
}

func ret(text *elf.Section) {
	text.Append([]byte{amd64.OpRet})
}
