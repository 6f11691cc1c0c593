package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalang-run/lalang/internal/values"
	"github.com/lalang-run/lalang/internal/vm"
)

func run(t *testing.T, src string) (*vm.VM, error) {
	t.Helper()
	var out bytes.Buffer
	m := vm.New(&out, "<test>")
	code, err := m.CompileString(src)
	require.NoError(t, err)
	require.NotNil(t, code, "test program must be balanced")
	return m, m.Eval(code, nil)
}

func runOK(t *testing.T, src string) *vm.VM {
	t.Helper()
	m, err := run(t, src)
	require.NoError(t, err)
	return m
}

// §8 scenario 1.
func TestScenarioAddition(t *testing.T) {
	m := runOK(t, "2 3 +")
	require.Equal(t, int64(5), m.Top().Int)
}

// §8 scenario 2.
func TestScenarioStringLen(t *testing.T) {
	m := runOK(t, `"hi" .len`)
	require.Equal(t, int64(2), m.Top().Int)
}

// §8 scenario 3, spelled with `=@square` (store-and-rename) instead of a
// bare `$square` — see DESIGN.md Open Question (f): a lone RENAME_FUNC
// never stores into globals, so the literal scenario string would leave
// `@square` with nothing to call.
func TestScenarioNamedFunctionCall(t *testing.T) {
	m := runOK(t, "[ =x x x * ] =@square 4 @square")
	require.Equal(t, int64(16), m.Top().Int)
}

// §8 scenario 4, spelled with explicit @ call sites — see DESIGN.md Open
// Question (e) for why the literal token string in §8 (bare `range`/`for`)
// does not type-check against compiler rule 14.
func TestScenarioRangeAccumulate(t *testing.T) {
	m := runOK(t, "0 0 10 @range [ + ] @for")
	require.Equal(t, int64(45), m.Top().Int)
}

// §8 scenario 5, spelled with the setter target pushed immediately before
// the SETTER opcode, and `__init__` installed via `$name`+`.set_getter`
// instead of a plain global store — see DESIGN.md Open Question (d).
func TestScenarioClassInitSetsField(t *testing.T) {
	m := runOK(t, `"C" @class =Box [ =self 42 self =.x self ] $__init__ Box .set_getter Box @ .x`)
	require.Equal(t, int64(42), m.Top().Int)
}

// §8 scenario 6: .times/@for pushes 0,1,2 in order on top of a
// pre-existing marker.
func TestScenarioTimesForPushesInOrder(t *testing.T) {
	m := runOK(t, `-1 3 .times [ =i i ] @for`)
	// Stack, bottom to top: -1 (marker), 0, 1, 2.
	require.Equal(t, 4, m.StackLen())
	top3 := m.PopN(3)
	require.Equal(t, []int64{0, 1, 2}, []int64{top3[0].Int, top3[1].Int, top3[2].Int})
}

func TestIntArithmeticAndComparison(t *testing.T) {
	m := runOK(t, "7 2 /")
	require.Equal(t, int64(3), m.Top().Int)

	m = runOK(t, "7 2 %")
	require.Equal(t, int64(1), m.Top().Int)

	m = runOK(t, "3 3 ==")
	require.True(t, m.Top().Int != 0)

	m = runOK(t, "3 4 ==")
	require.True(t, m.Top().Int == 0)
}

func TestStringLexicographicOrder(t *testing.T) {
	m := runOK(t, `"abc" "abd" <`)
	require.Equal(t, values.True, m.Top())

	m = runOK(t, `"abd" "abc" <`)
	require.Equal(t, values.False, m.Top())
}

func TestRangeIterationCount(t *testing.T) {
	m := runOK(t, "0 0 5 @range [ @drop 1 + ] @for")
	require.Equal(t, int64(5), m.Top().Int)
}

func TestRangeIterationCountWhenEndBeforeStart(t *testing.T) {
	m := runOK(t, "0 5 3 @range [ @drop 1 + ] @for")
	require.Equal(t, int64(0), m.Top().Int)
}

func TestListBuildUnbuildRoundTrip(t *testing.T) {
	m := runOK(t, "1 2 3 3 @list .build")
	top := m.Top()
	require.Equal(t, values.ListType, top.Type)
	list := top.Obj.(*values.List)
	require.Len(t, list.Items, 3)

	m2 := runOK(t, "1 2 3 3 @list .build .unbuild")
	require.Equal(t, int64(3), m2.Top().Int)
}

func TestListReverseTwiceIsIdentity(t *testing.T) {
	m := runOK(t, "1 2 3 3 @list .build .reverse .reverse .unbuild @drop")
	// after two reverses and unbuild+drop(count), stack should read 1,2,3
	vals := m.PopN(3)
	require.Equal(t, int64(1), vals[0].Int)
	require.Equal(t, int64(2), vals[1].Int)
	require.Equal(t, int64(3), vals[2].Int)
}

func TestListSortIsStableFixedPoint(t *testing.T) {
	m := runOK(t, "3 1 2 3 @list .build .sort .sort")
	list := m.Top().Obj.(*values.List)
	require.Equal(t, []int64{1, 2, 3}, []int64{list.Items[0].Int, list.Items[1].Int, list.Items[2].Int})
}

// TestFuncCopyIsIndependentOfBoundStack pins §4.7's ".copy" semantics:
// the copy gets its own BoundStack slice, so pushing onto one copy's
// bound stack must not be visible through the other.
func TestFuncCopyIsIndependentOfBoundStack(t *testing.T) {
	m := runOK(t, `[ ] =@orig orig .copy =@dup 7 dup .push_stack @drop`)
	orig, ok := m.Globals().Get("orig")
	require.True(t, ok)
	dup, ok := m.Globals().Get("dup")
	require.True(t, ok)

	origFn := orig.Obj.(*values.Func)
	dupFn := dup.Obj.(*values.Func)
	require.Len(t, dupFn.BoundStack, 1)
	require.Equal(t, int64(7), dupFn.BoundStack[0].Int)
	require.Len(t, origFn.BoundStack, 0, "pushing onto the copy's bound stack must not mutate the original")
}

func TestDictBuildPreservesInsertionOrder(t *testing.T) {
	m := runOK(t, `"a" 1 "b" 2 2 @dict .build .keys @next @drop`)
	require.Equal(t, "a", m.Top().Str)
}

func TestUnknownGlobalIsNameError(t *testing.T) {
	_, err := run(t, "x")
	require.Error(t, err)
}

func TestStackUnderflowIsStackError(t *testing.T) {
	_, err := run(t, "+")
	require.Error(t, err)
}

func TestErrorBuiltinRaisesUserError(t *testing.T) {
	_, err := run(t, `"boom" @error`)
	require.Error(t, err)
}
