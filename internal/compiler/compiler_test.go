package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalang-run/lalang/internal/bytecode"
	"github.com/lalang-run/lalang/internal/compiler"
	"github.com/lalang-run/lalang/internal/strpool"
)

func newCompiler() *compiler.Compiler {
	return compiler.New(strpool.New(), bytecode.NewPool(), "<test>")
}

func TestBalancedInputYieldsCode(t *testing.T) {
	c := newCompiler()
	require.NoError(t, c.Compile("2 3 +"))
	code, ok := c.PopRunnableCode()
	require.True(t, ok)
	require.NotNil(t, code)
	require.Len(t, code.Instructions, 3)
}

func TestUnbalancedInputRetainsState(t *testing.T) {
	c := newCompiler()
	require.NoError(t, c.Compile("[ =x"))
	_, ok := c.PopRunnableCode()
	require.False(t, ok, "unbalanced input must not yield runnable code")

	require.NoError(t, c.Compile(" x ]"))
	code, ok := c.PopRunnableCode()
	require.True(t, ok, "completing the block across a second Compile call must balance")
	require.NotNil(t, code)
}

func TestIntLiteralRoundTrips(t *testing.T) {
	for _, n := range []int{0, 1, -1, 2147483647, -2147483648} {
		c := newCompiler()
		require.NoError(t, c.Compile(itoa(n)))
		code, ok := c.PopRunnableCode()
		require.True(t, ok)
		require.Len(t, code.Instructions, 1)
		require.Equal(t, bytecode.OpLoadInt, code.Instructions[0].Op)
		require.Equal(t, n, code.Instructions[0].Operand)
	}
}

// TestLeadingMinusIsOnlyPartOfLiteralBeforeADigit pins Open Question (a):
// a bare `-` not immediately followed by a digit is the SUB operator, not
// part of an integer literal.
func TestLeadingMinusIsOnlyPartOfLiteralBeforeADigit(t *testing.T) {
	c := newCompiler()
	require.NoError(t, c.Compile("x -"))
	code, ok := c.PopRunnableCode()
	require.True(t, ok)
	require.Len(t, code.Instructions, 2)
	require.Equal(t, bytecode.OpLoadGlobal, code.Instructions[0].Op)
	require.Equal(t, bytecode.OpSub, code.Instructions[1].Op)
}

func TestRetroScopingPromotesOnlyAfterFirstStore(t *testing.T) {
	c := newCompiler()
	require.NoError(t, c.Compile("[ x =x x ]"))
	code, ok := c.PopRunnableCode()
	require.True(t, ok)
	// Outer frame: one instruction, LOAD_FUNC for the closed function.
	require.Len(t, code.Instructions, 1)

	fn := c.Code.Get(code.Instructions[0].Operand)
	require.NotNil(t, fn)
	require.True(t, fn.IsFunc)
	require.Len(t, fn.Instructions, 3)
	require.Equal(t, bytecode.OpLoadGlobal, fn.Instructions[0].Op, "reference before first =x compiles global")
	require.Equal(t, bytecode.OpStoreLocal, fn.Instructions[1].Op)
	require.Equal(t, bytecode.OpLoadLocal, fn.Instructions[2].Op, "reference after first =x compiles local")
}

func TestGetterSetterAndCallTokens(t *testing.T) {
	c := newCompiler()
	require.NoError(t, c.Compile(`x .len =.y @sq $rename`))
	code, ok := c.PopRunnableCode()
	require.True(t, ok)
	ops := make([]bytecode.Op, len(code.Instructions))
	for i, instr := range code.Instructions {
		ops[i] = instr.Op
	}
	require.Equal(t, []bytecode.Op{
		bytecode.OpLoadGlobal,
		bytecode.OpGetter,
		bytecode.OpSetter,
		bytecode.OpCallGlobal,
		bytecode.OpRenameFunc,
	}, ops)
}

func TestStringLiteralEscapes(t *testing.T) {
	c := newCompiler()
	require.NoError(t, c.Compile(`"a\nb"`))
	code, ok := c.PopRunnableCode()
	require.True(t, ok)
	require.Equal(t, bytecode.OpLoadStr, code.Instructions[0].Op)
	require.Equal(t, "a\nb", c.Names.Name(code.Instructions[0].Operand))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	u := n
	if neg {
		u = -u
	}
	var buf [16]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
