// Package vmcode is a stateless writer of Nand2Tetris stack-machine VM
// instructions, one per line, over an io.Writer sink.
package vmcode

import (
	"fmt"
	"io"

	"github.com/libklein/jackc/internal/symbol"
)

// Segment names a VM memory segment.
type Segment string

const (
	Constant Segment = "constant"
	Argument Segment = "argument"
	Local    Segment = "local"
	StaticS  Segment = "static"
	This     Segment = "this"
	That     Segment = "that"
	Pointer  Segment = "pointer"
	Temp     Segment = "temp"
)

// Operation names an arithmetic/logic VM instruction.
type Operation string

const (
	Add Operation = "add"
	Sub Operation = "sub"
	Neg Operation = "neg"
	Eq  Operation = "eq"
	Gt  Operation = "gt"
	Lt  Operation = "lt"
	And Operation = "and"
	Or  Operation = "or"
	Not Operation = "not"
)

// segmentOf is the fixed symbol-kind-to-segment mapping: static→static,
// field→this, arg→argument, var→local.
func segmentOf(kind symbol.Kind) Segment {
	switch kind {
	case symbol.Static:
		return StaticS
	case symbol.Field:
		return This
	case symbol.Arg:
		return Argument
	case symbol.Var:
		return Local
	default:
		panic(fmt.Sprintf("vmcode: unmapped symbol kind %v", kind))
	}
}

// Writer emits VM instructions to an underlying sink, one per line.
type Writer struct {
	out io.Writer
}

// New wraps w as a VM instruction sink.
func New(w io.Writer) *Writer {
	return &Writer{out: w}
}

func (w *Writer) line(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Push emits `push segment index`.
func (w *Writer) Push(seg Segment, index uint16) {
	w.line("push %s %d", seg, index)
}

// Pop emits `pop segment index`.
func (w *Writer) Pop(seg Segment, index uint16) {
	w.line("pop %s %d", seg, index)
}

// PushSymbol pushes sym's value through the fixed kind-to-segment mapping.
func (w *Writer) PushSymbol(sym symbol.Symbol) {
	w.Push(segmentOf(sym.Kind), sym.Index)
}

// PopSymbol pops the top of the stack into sym through the fixed
// kind-to-segment mapping.
func (w *Writer) PopSymbol(sym symbol.Symbol) {
	w.Pop(segmentOf(sym.Kind), sym.Index)
}

// PushInt emits `push constant n`.
func (w *Writer) PushInt(n uint16) {
	w.Push(Constant, n)
}

// PushString emits the string-construction sequence: allocate a String of
// the right length, then append each character in turn. String.appendChar
// returns the string, so the final call leaves it on top of the stack.
func (w *Writer) PushString(s string) {
	w.PushInt(uint16(len(s)))
	w.Call("String.new", 1)
	for _, c := range s {
		w.PushInt(uint16(c))
		w.Call("String.appendChar", 2)
	}
}

// Label emits `label L`.
func (w *Writer) Label(label string) {
	w.line("label %s", label)
}

// Goto emits `goto L`.
func (w *Writer) Goto(label string) {
	w.line("goto %s", label)
}

// IfGoto emits `if-goto L`.
func (w *Writer) IfGoto(label string) {
	w.line("if-goto %s", label)
}

// WriteIfFalse emits `not; if-goto L`, branching to label when the
// just-computed condition is false.
func (w *Writer) WriteIfFalse(label string) {
	w.Arithmetic(Not)
	w.IfGoto(label)
}

// Call emits `call name nargs`.
func (w *Writer) Call(name string, nargs uint16) {
	w.line("call %s %d", name, nargs)
}

// Function emits `function name nlocals`.
func (w *Writer) Function(name string, nlocals uint16) {
	w.line("function %s %d", name, nlocals)
}

// Return emits `return`.
func (w *Writer) Return() {
	w.line("return")
}

// Arithmetic emits the named op as a single VM instruction. The VM
// instruction set has no native mul/div; Multiply and Divide cover those.
func (w *Writer) Arithmetic(op Operation) {
	w.line("%s", op)
}

// Multiply emits a call to the runtime Math.multiply.
func (w *Writer) Multiply() {
	w.Call("Math.multiply", 2)
}

// Divide emits a call to the runtime Math.divide.
func (w *Writer) Divide() {
	w.Call("Math.divide", 2)
}
