package linux

import (
	codegen "github.com/foolang-project/flc/internal/codegen/cgerr"
	"github.com/foolang-project/flc/internal/ir"
	"github.com/foolang-project/flc/pkg/amd64"
	"github.com/foolang-project/flc/pkg/elf"
)

// varLocation is where a local variable's value lives for the lifetime of
// the function: either a callee-saved register allocated to it, or a slot
// in the stack frame below rbp.
type varLocation struct {
	reg        amd64.Register
	inRegister bool
	offset     int32 // valid when !inRegister: [rbp+offset], always <= 0
}

// labelState tracks one label's definition and the jump instructions that
// referenced it before it was defined.
type labelState struct {
	defined    bool
	offset     uint64
	patchSites []uint64 // displacement-field offsets awaiting a backpatch
}

// functionContext accumulates one function's compilation state: variable
// storage assignment, label bookkeeping, and the stack frame layout. It is
// built in two passes: prescanFunction walks the whole body first so the
// prologue can emit the final `sub rsp, N` before any of the body that
// depends on it is compiled.
type functionContext struct {
	knownGlobals map[string]bool

	variables map[string]varLocation
	available []amd64.Register // unallocated callee-saved registers, popped from the end

	usedCalleeSaved []amd64.Register // in allocation order, doubling as push/pop order

	stackOffset int32 // next stack carve lands here (<=0), decremented before use
	frameSize   int32 // the `sub rsp, N` emitted by the prologue

	allocaSlots map[string]int32 // assignment target -> offset of its alloca'd block

	labels map[string]*labelState
}

func newFunctionContext(knownGlobals map[string]bool) *functionContext {
	return &functionContext{
		knownGlobals: knownGlobals,
		variables:    make(map[string]varLocation),
		available:    append([]amd64.Register(nil), amd64.CalleeSavedPool()...),
		allocaSlots:  make(map[string]int32),
		labels:       make(map[string]*labelState),
	}
}

// carveStack reserves size bytes (minimum 8, for alignment) in the stack
// frame and returns the offset from rbp at which they start.
func (ctx *functionContext) carveStack(size int32) int32 {
	if size < 8 {
		size = 8
	}
	ctx.stackOffset -= size
	return ctx.stackOffset
}

// allocateVariable assigns storage to name if it doesn't have any yet:
// the next free callee-saved register, or a stack slot once the register
// pool is exhausted.
func (ctx *functionContext) allocateVariable(name string) varLocation {
	if loc, ok := ctx.variables[name]; ok {
		return loc
	}
	var loc varLocation
	if n := len(ctx.available); n > 0 {
		reg := ctx.available[n-1]
		ctx.available = ctx.available[:n-1]
		ctx.usedCalleeSaved = append(ctx.usedCalleeSaved, reg)
		loc = varLocation{reg: reg, inRegister: true}
	} else {
		loc = varLocation{offset: ctx.carveStack(8)}
	}
	ctx.variables[name] = loc
	return loc
}

func (ctx *functionContext) variable(name string) (varLocation, bool) {
	loc, ok := ctx.variables[name]
	return loc, ok
}

// prescanFunction walks fn once before any code is emitted: it binds every
// parameter and assignment target to storage, and carves alloca blocks, so
// the prologue knows the final frame size and which callee-saved registers
// it must save.
func (ctx *functionContext) prescanFunction(fn ir.Function) {
	for _, p := range fn.Params {
		ctx.allocateVariable(p.Name)
	}
	for _, stmt := range fn.Body {
		if stmt.Kind != ir.StmtAssignment {
			continue
		}
		if stmt.Instruction != nil && stmt.Instruction.Kind == ir.InstAlloca {
			ctx.allocaSlots[stmt.Target] = ctx.carveStack(int32(stmt.Instruction.AllocType.Size()))
		}
		ctx.allocateVariable(stmt.Target)
	}
}

// requiredStackSize returns the smallest N, at least as large as the
// locals this function carved, such that the prologue's sequence of
// pushes followed by `sub rsp, N` leaves RSP 16-byte aligned at every call
// site: push rbp lands RSP on a 16-byte boundary (the call instruction's
// pushed return address having put it 8 off), so each additional push of
// a callee-saved register shifts that parity by 8 bytes.
func (ctx *functionContext) requiredStackSize() int32 {
	locals := -ctx.stackOffset
	if locals < 0 {
		locals = 0
	}
	pushedBytes := int32(8 * len(ctx.usedCalleeSaved))
	target := (16 - pushedBytes%16) % 16
	n := locals
	for n%16 != target {
		n++
	}
	return n
}

func (ctx *functionContext) labelFor(name string) *labelState {
	st, ok := ctx.labels[name]
	if !ok {
		st = &labelState{}
		ctx.labels[name] = st
	}
	return st
}

func (ctx *functionContext) defineLabel(name string, offset uint64) error {
	st := ctx.labelFor(name)
	if st.defined {
		return codegen.ErrLabelAlreadyDefined(name)
	}
	st.defined = true
	st.offset = offset
	return nil
}

func (ctx *functionContext) addLabelReference(name string, patchSite uint64) {
	st := ctx.labelFor(name)
	st.patchSites = append(st.patchSites, patchSite)
}

// storeVariable writes src into loc.
func storeVariable(text *elf.Section, loc varLocation, src amd64.Register) {
	if loc.inRegister {
		movRR(text, loc.reg, src)
		return
	}
	movStoreRBP(text, loc.offset, src)
}

// loadVariable reads loc's value into dst.
func loadVariable(text *elf.Section, dst amd64.Register, loc varLocation) {
	if loc.inRegister {
		movRR(text, dst, loc.reg)
		return
	}
	movLoadRBP(text, dst, loc.offset)
}

// compileFunction lowers fn into obj's .text, recording a global FUNC
// symbol spanning the bytes it emits.
func compileFunction(fn ir.Function, obj *elf.Object, knownGlobals map[string]bool) error {
	if len(fn.Params) > len(amd64.ArgumentRegisters) {
		return codegen.ErrNotImplemented("function %q: more than 6 parameters", fn.Name)
	}

	ctx := newFunctionContext(knownGlobals)
	ctx.prescanFunction(fn)
	ctx.frameSize = ctx.requiredStackSize()

	text := &obj.Text
	start := text.Len()

	push(text, amd64.RBP)
	movRR(text, amd64.RBP, amd64.RSP)
	for _, r := range ctx.usedCalleeSaved {
		push(text, r)
	}
	if ctx.frameSize > 0 {
		aluImmRSP(text, amd64.AluDigitSub, uint32(ctx.frameSize))
	}

	for i, p := range fn.Params {
		loc, _ := ctx.variable(p.Name)
		storeVariable(text, loc, amd64.ArgumentRegisters[i])
	}

	returned := false
	for _, stmt := range fn.Body {
		if err := compileStatement(stmt, ctx, obj); err != nil {
			return err
		}
		returned = stmt.Kind == ir.StmtInstruction &&
			stmt.Instruction != nil && stmt.Instruction.Kind == ir.InstReturn
	}

	for name, st := range ctx.labels {
		if !st.defined {
			return codegen.ErrLabelNotFound(name)
		}
	}

	if !returned {
		xorZeroEAX(text)
		generateEpilogue(ctx, obj)
	}

	sym := elf.Symbol{
		Name: fn.Name, Section: elf.SectionText, Offset: start,
		Size: text.Len() - start, Type: elf.SymbolTypeFunc, Binding: elf.BindGlobal,
	}
	if idx, ok := obj.Symbols.Find(fn.Name); ok {
		// A call compiled earlier in this unit speculatively recorded fn
		// as undefined; now that it's defined, replace that entry rather
		// than adding a duplicate the linker would see as multiply defined.
		obj.Symbols.Update(idx, sym)
	} else {
		obj.Symbols.Add(sym)
	}
	return nil
}

// generateEpilogue restores the stack frame and returns: the inverse of
// compileFunction's prologue, run either by an explicit Return or
// appended automatically when a function falls off the end of its body.
func generateEpilogue(ctx *functionContext, obj *elf.Object) {
	text := &obj.Text
	if ctx.frameSize > 0 {
		aluImmRSP(text, amd64.AluDigitAdd, uint32(ctx.frameSize))
	}
	for i := len(ctx.usedCalleeSaved) - 1; i >= 0; i-- {
		pop(text, ctx.usedCalleeSaved[i])
	}
	pop(text, amd64.RBP)
	ret(text)
}
