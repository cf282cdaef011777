package vmcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libklein/jackc/internal/symbol"
)

func TestPushPop(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.Push(Constant, 7)
	w.Pop(Local, 2)

	require.Equal(t, "push constant 7\npop local 2\n", buf.String())
}

func TestPushPopSymbolSegmentMapping(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.PushSymbol(symbol.Symbol{Kind: symbol.Static, Index: 1})
	w.PushSymbol(symbol.Symbol{Kind: symbol.Field, Index: 2})
	w.PushSymbol(symbol.Symbol{Kind: symbol.Arg, Index: 3})
	w.PushSymbol(symbol.Symbol{Kind: symbol.Var, Index: 4})

	require.Equal(t,
		"push static 1\npush this 2\npush argument 3\npush local 4\n",
		buf.String())
}

func TestPushString(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.PushString("hi")

	require.Equal(t,
		"push constant 2\ncall String.new 1\n"+
			"push constant 104\ncall String.appendChar 2\n"+
			"push constant 105\ncall String.appendChar 2\n",
		buf.String())
}

func TestWriteIfFalse(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteIfFalse("L0")

	require.Equal(t, "not\nif-goto L0\n", buf.String())
}

func TestFunctionCallReturn(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.Function("Main.main", 2)
	w.Call("Math.multiply", 2)
	w.Return()

	require.Equal(t,
		"function Main.main 2\ncall Math.multiply 2\nreturn\n",
		buf.String())
}
