package ir

// StmtKind identifies whether a Statement is a bare instruction executed
// for effect, an assignment binding an instruction's or literal's result
// to a variable, or a label definition.
type StmtKind int

const (
	StmtInstruction StmtKind = iota
	StmtAssignment
	StmtLabel
)

var stmtNames = [...]string{
	StmtInstruction: "instruction", StmtAssignment: "assignment", StmtLabel: "label",
}

func (k StmtKind) String() string { return stmtNames[k] }

// Statement is one entry in a function body.
type Statement struct {
	Kind StmtKind `json:"kind"`

	// StmtAssignment
	Target string `json:"target,omitempty"`

	// StmtInstruction and StmtAssignment-to-instruction share this field.
	Instruction *Instruction `json:"instruction,omitempty"`

	// StmtAssignment-to-literal
	Literal *Literal `json:"literal,omitempty"`

	// StmtLabel
	LabelName string `json:"labelName,omitempty"`
}

// InstructionStatement wraps a bare instruction executed for its side
// effect; its result, if any, is discarded.
func InstructionStatement(instr Instruction) Statement {
	return Statement{Kind: StmtInstruction, Instruction: &instr}
}

// AssignInstruction binds the result of instr to the variable named
// target.
func AssignInstruction(target string, instr Instruction) Statement {
	return Statement{Kind: StmtAssignment, Target: target, Instruction: &instr}
}

// AssignLiteral binds lit to the variable named target.
func AssignLiteral(target string, lit Literal) Statement {
	return Statement{Kind: StmtAssignment, Target: target, Literal: &lit}
}

// LabelStatement defines a jump target named name at this point in the
// body.
func LabelStatement(name string) Statement {
	return Statement{Kind: StmtLabel, LabelName: name}
}
