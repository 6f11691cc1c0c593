package bytecode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lalang-run/lalang/internal/bytecode"
)

func TestUnaryOpsMatchTable(t *testing.T) {
	require.True(t, bytecode.OpNeg.Unary())
	require.True(t, bytecode.OpNot.Unary())
	require.True(t, bytecode.OpCall.Unary())
	require.False(t, bytecode.OpAdd.Unary(), "binary ops pluck a receiver, not unary")
}

func TestHasOperandCoversNameAndLiteralOpcodes(t *testing.T) {
	require.True(t, bytecode.OpLoadInt.HasOperand())
	require.True(t, bytecode.OpGetter.HasOperand())
	require.False(t, bytecode.OpAdd.HasOperand(), "operators carry no immediate")
}

func TestGetterNameCoversOperatorOpcodesOnly(t *testing.T) {
	name, ok := bytecode.GetterName(bytecode.OpAdd)
	require.True(t, ok)
	require.Equal(t, "+", name)

	_, ok = bytecode.GetterName(bytecode.OpEq)
	require.False(t, ok, "comparisons dispatch through Cmp, never through a getter name")
}

func TestPoolAddReturnsStableIndices(t *testing.T) {
	p := bytecode.NewPool()
	a := p.Add(&bytecode.Code{IsFunc: true, Instructions: []bytecode.Instruction{{Op: bytecode.OpLoadInt, Operand: 1}}})
	b := p.Add(&bytecode.Code{IsFunc: false})
	require.Equal(t, 0, a)
	require.Equal(t, 1, b)
	require.Equal(t, 2, p.Len())

	got := p.Get(a)
	require.NotNil(t, got)
	want := []bytecode.Instruction{{Op: bytecode.OpLoadInt, Operand: 1}}
	if diff := cmp.Diff(want, got.Instructions); diff != "" {
		t.Fatalf("instructions mismatch (-want +got):\n%s", diff)
	}

	require.Nil(t, p.Get(99), "out-of-range index returns nil, not a panic")
}

func TestInstructionSequenceDiff(t *testing.T) {
	a := []bytecode.Instruction{
		{Op: bytecode.OpLoadInt, Operand: 2},
		{Op: bytecode.OpLoadInt, Operand: 3},
		{Op: bytecode.OpAdd},
	}
	b := []bytecode.Instruction{
		{Op: bytecode.OpLoadInt, Operand: 2},
		{Op: bytecode.OpLoadInt, Operand: 3},
		{Op: bytecode.OpAdd},
	}
	require.Empty(t, cmp.Diff(a, b), "identical instruction sequences must diff empty")

	c := append(append([]bytecode.Instruction{}, b[:2]...), bytecode.Instruction{Op: bytecode.OpSub})
	require.NotEmpty(t, cmp.Diff(a, c), "a trailing ADD vs SUB must show up in the diff")
}
