package ir

// InstKind identifies the kind of IR instruction. Dispatching lowerers by
// this tag, rather than through an interface hierarchy, is the shape the
// backend expects: Instruction is a flat tagged struct, not a family of
// concrete types.
type InstKind int

const (
	InstCall InstKind = iota
	InstReturn
	InstJump
	InstBranch
	InstAdd
	InstSub
	InstMul
	InstDiv
	InstRem
	InstCompare
	InstAlloca
	InstLoad
	InstStore
)

var instNames = [...]string{
	InstCall: "call", InstReturn: "return", InstJump: "jump", InstBranch: "branch",
	InstAdd: "add", InstSub: "sub", InstMul: "mul", InstDiv: "div", InstRem: "rem",
	InstCompare: "compare", InstAlloca: "alloca", InstLoad: "load", InstStore: "store",
}

func (k InstKind) String() string { return instNames[k] }

// Instruction is the IR's single instruction type: one struct, switched on
// Kind, carrying only the fields each variant actually uses. Fields unused
// by a given Kind are left at their zero value.
type Instruction struct {
	Kind InstKind `json:"kind"`

	// InstCall
	FunctionName string    `json:"functionName,omitempty"`
	Parameters   []Operand `json:"parameters,omitempty"`

	// InstReturn
	ReturnValue *Operand `json:"returnValue,omitempty"`

	// InstJump
	Target string `json:"target,omitempty"`

	// InstBranch
	Condition  Identifier `json:"condition,omitempty"`
	TrueLabel  string     `json:"trueLabel,omitempty"`
	FalseLabel string     `json:"falseLabel,omitempty"`

	// InstAdd, InstSub, InstMul, InstDiv, InstRem, InstCompare
	Left  *Operand `json:"left,omitempty"`
	Right *Operand `json:"right,omitempty"`

	// InstAlloca
	AllocType Type `json:"allocType,omitempty"`

	// InstLoad, InstStore
	Pointer Identifier `json:"pointer,omitempty"`
	Value   *Operand   `json:"value,omitempty"` // InstStore only
}

func Call(functionName string, parameters []Operand) Instruction {
	return Instruction{Kind: InstCall, FunctionName: functionName, Parameters: parameters}
}

func Return(value *Operand) Instruction {
	return Instruction{Kind: InstReturn, ReturnValue: value}
}

func Jump(target string) Instruction {
	return Instruction{Kind: InstJump, Target: target}
}

func Branch(condition Identifier, trueLabel, falseLabel string) Instruction {
	return Instruction{Kind: InstBranch, Condition: condition, TrueLabel: trueLabel, FalseLabel: falseLabel}
}

func binaryInst(kind InstKind, left, right Operand) Instruction {
	return Instruction{Kind: kind, Left: &left, Right: &right}
}

func Add(left, right Operand) Instruction     { return binaryInst(InstAdd, left, right) }
func Sub(left, right Operand) Instruction     { return binaryInst(InstSub, left, right) }
func Mul(left, right Operand) Instruction     { return binaryInst(InstMul, left, right) }
func Div(left, right Operand) Instruction     { return binaryInst(InstDiv, left, right) }
func Rem(left, right Operand) Instruction     { return binaryInst(InstRem, left, right) }
func Compare(left, right Operand) Instruction { return binaryInst(InstCompare, left, right) }

func Alloca(t Type) Instruction {
	return Instruction{Kind: InstAlloca, AllocType: t}
}

func Load(ptr Identifier) Instruction {
	return Instruction{Kind: InstLoad, Pointer: ptr}
}

func Store(ptr Identifier, value Operand) Instruction {
	return Instruction{Kind: InstStore, Pointer: ptr, Value: &value}
}
