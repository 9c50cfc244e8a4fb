package amd64

// Opcode constants this backend emits, grouped by family.
const (
	OpMovStore   = 0x89 // mov r/m64, r64
	OpMovLoad    = 0x8B // mov r64, r/m64
	MovImm64Base = 0xB8 // mov r64, imm64 (+ reg low3)
	OpMovImm32   = 0xC7 // mov r/m64, imm32
	OpLea        = 0x8D // lea r64, m

	PushBase = 0x50 // push r64 (+ reg low3)
	PopBase  = 0x58 // pop r64 (+ reg low3)

	OpAdd  = 0x01 // add r/m64, r64
	OpSub  = 0x29 // sub r/m64, r64
	OpCmp  = 0x39 // cmp r/m64, r64
	OpXor  = 0x31 // xor r/m64, r64
	OpTest = 0x85 // test r/m64, r64

	OpTwoByte    = 0x0F // two-byte opcode escape
	OpImulSuffix = 0xAF // 0F AF /r: imul r64, r/m64
	OpSeteSuffix = 0x94 // 0F 94 /0: sete r/m8
	OpJeSuffix   = 0x84 // 0F 84 cd: je rel32
	OpMovzxByte  = 0xB6 // 0F B6 /r: movzx r64, r/m8
	OpSyscall    = 0x05 // 0F 05: syscall

	OpIdiv     = 0xF7 // /7: idiv r/m64
	OpCqo      = 0x99 // cqo
	OpAluImm32 = 0x81 // ALU r/m64, imm32 group, selected by ModR/M digit
	OpCallRel32 = 0xE8
	OpJmpRel32  = 0xE9
	OpRet       = 0xC3
)

// Opcode-extension digits for the /digit instruction families above.
const (
	AluDigitAdd = 0
	AluDigitSub = 5
	AluDigitCmp = 7
	IdivDigit   = 7
)

// DisplacementSize is the width, in bytes, of every rel32/disp32 field
// this backend emits.
const DisplacementSize = 4

// ModRMALRegister is the ModR/M byte selecting AL (register 0, low byte)
// as an 8-bit r/m operand with an opcode-extension digit of 0, as used by
// SETE.
const ModRMALRegister = 0xC0
