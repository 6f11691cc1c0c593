// Package compiler implements Lalang's single-pass, no-AST compiler
// (§4.2): it classifies each token from the lexer and emits bytecode
// directly, in the same pass, with no intermediate tree and no later
// rewriting of already-emitted instructions.
//
// The defining constraint is retro-scoping (§4.2 "Local promotion
// rationale", §9): a name reference is compiled as local or global based
// on what the compiler knows about the enclosing function's local-name
// set *at the moment the reference is emitted* — never revised once a
// later `=name` adds the name to that set. This is a deliberate language
// design choice, not a limitation to be "fixed".
package compiler

import (
	"strconv"

	"github.com/lalang-run/lalang/internal/bytecode"
	"github.com/lalang-run/lalang/internal/langerr"
	"github.com/lalang-run/lalang/internal/lexer"
	"github.com/lalang-run/lalang/internal/strpool"
)

// braceKind distinguishes `{}` from `[]` frames so a mismatched closer is
// an error (§4.2 rule 13).
type braceKind int

const (
	braceBlock braceKind = iota // {}
	braceFunc                   // []
)

// frame is one compiler frame (§3): the code under construction for one
// nesting level, plus the brace kind it was opened with.
type frame struct {
	Kind         braceKind
	File         string
	Row, Col     int
	Instructions []bytecode.Instruction
}

// localScope is the local-name set belonging to one enclosing function
// frame (§3, §4.2). Non-function block frames nested inside a function
// share their enclosing function's localScope rather than owning one.
type localScope struct {
	names map[int]bool
}

func newLocalScope() *localScope { return &localScope{names: make(map[int]bool)} }

func (s *localScope) has(idx int) bool { return s != nil && s.names[idx] }
func (s *localScope) add(idx int)      { s.names[idx] = true }

// Compiler holds the frame stack across calls to Compile, so unbalanced
// input (an open `{`/`[` with no matching close yet) persists state for
// the next call — the REPL's "continue reading" behavior (§4.2
// pop_runnable_code, §6 CLI).
type Compiler struct {
	Names *strpool.Pool
	Code  *bytecode.Pool

	file string

	frames     []*frame
	funcScopes []*localScope // stack of enclosing function local-sets
}

// New returns a Compiler sharing the given name pool and code pool with
// its VM (§3 invariant 3/4: both pools are append-only).
func New(names *strpool.Pool, code *bytecode.Pool, file string) *Compiler {
	c := &Compiler{Names: names, Code: code, file: file}
	c.frames = []*frame{{Kind: braceBlock}}
	return c
}

func (c *Compiler) top() *frame { return c.frames[len(c.frames)-1] }

func (c *Compiler) currentScope() *localScope {
	if len(c.funcScopes) == 0 {
		return nil
	}
	return c.funcScopes[len(c.funcScopes)-1]
}

func (c *Compiler) emit(op bytecode.Op, operand int) {
	f := c.top()
	f.Instructions = append(f.Instructions, bytecode.Instruction{Op: op, Operand: operand})
}

// operatorOps maps the fixed operator token set (§6) to opcodes, tested
// only against an exact token match (rule 4) — "@" and "," alone hit this
// table, but "@name" does not (it falls through to rule 9).
var operatorOps = map[string]bytecode.Op{
	"~": bytecode.OpNeg, "+": bytecode.OpAdd, "-": bytecode.OpSub,
	"*": bytecode.OpMul, "/": bytecode.OpDiv, "%": bytecode.OpMod,
	"!": bytecode.OpNot, "&": bytecode.OpAnd, "|": bytecode.OpOr, "^": bytecode.OpXor,
	"==": bytecode.OpEq, "!=": bytecode.OpNe,
	"<": bytecode.OpLt, "<=": bytecode.OpLe, ">": bytecode.OpGt, ">=": bytecode.OpGe,
	",": bytecode.OpComma, "@": bytecode.OpCall,
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func looksLikeInt(tok string) bool {
	if tok == "" {
		return false
	}
	if isDigit(tok[0]) {
		return true
	}
	return tok[0] == '-' && len(tok) > 1 && isDigit(tok[1])
}

// Compile tokenizes text and classifies/emits each token per §4.2's
// cascade. It mutates the Compiler's frame stack in place; call
// PopRunnableCode afterward to see whether the input was balanced.
func (c *Compiler) Compile(text string) error {
	lx := lexer.New([]byte(text))
	for {
		tok, ok := lx.Next()
		if !ok {
			return nil
		}
		if err := c.compileToken(tok); err != nil {
			return err
		}
	}
}

func (c *Compiler) compileToken(tok lexer.Token) error {
	if tok.IsString {
		if tok.Unterminated {
			return langerr.NewAt(langerr.LexError, c.file, tok.Row, tok.Col, "unterminated string literal")
		}
		idx := c.Names.Intern(tok.Text)
		c.emit(bytecode.OpLoadStr, idx)
		return nil
	}

	t := tok.Text

	// Rule 1: REPL paste markers.
	if t == ">>>" || t == "..." {
		return nil
	}

	// Rule 2: integer literal.
	if looksLikeInt(t) {
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "bad integer literal '"+t+"'")
		}
		c.emit(bytecode.OpLoadInt, int(n))
		return nil
	}

	// Rule 4: fixed operator tokens (exact match only).
	if op, ok := operatorOps[t]; ok {
		c.emit(op, 0)
		return nil
	}

	// Rule 5/6: getter / setter.
	if len(t) >= 2 && t[0] == '=' && t[1] == '.' {
		return c.compileSetter(tok, t[2:])
	}
	if t[0] == '.' {
		if len(t) < 2 {
			return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "getter with no name")
		}
		idx := c.Names.Intern(t[1:])
		c.emit(bytecode.OpGetter, idx)
		return nil
	}

	// Rule 7: local-mark-only.
	if t[0] == '\'' {
		if len(t) < 2 {
			return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "local mark with no name")
		}
		scope := c.currentScope()
		if scope == nil {
			return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "local declaration outside function")
		}
		scope.add(c.Names.Intern(t[1:]))
		return nil
	}

	// Rule 8: store (with optional rename).
	if t[0] == '=' {
		return c.compileStore(tok, t)
	}

	// Rule 9: call by name.
	if t[0] == '@' && len(t) > 1 {
		name := t[1:]
		idx := c.Names.Intern(name)
		if c.currentScope().has(idx) {
			c.emit(bytecode.OpCallLocal, idx)
		} else {
			c.emit(bytecode.OpCallGlobal, idx)
		}
		return nil
	}

	// Rule 10: rename next func on stack.
	if t[0] == '$' {
		if len(t) < 2 {
			return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "rename with no name")
		}
		idx := c.Names.Intern(t[1:])
		c.emit(bytecode.OpRenameFunc, idx)
		return nil
	}

	// Rule 11: parens are no-ops.
	if t == "(" || t == ")" {
		return nil
	}

	// Rule 12: open a new frame.
	if t == "{" || t == "[" {
		kind := braceBlock
		if t == "[" {
			kind = braceFunc
		}
		c.frames = append(c.frames, &frame{Kind: kind, File: c.file, Row: tok.Row, Col: tok.Col})
		if kind == braceFunc {
			c.funcScopes = append(c.funcScopes, newLocalScope())
		}
		return nil
	}

	// Rule 13: close the current frame.
	if t == "}" || t == "]" {
		wantKind := braceBlock
		if t == "]" {
			wantKind = braceFunc
		}
		return c.closeFrame(tok, wantKind)
	}

	// Rule 14: load by name.
	idx := c.Names.Intern(t)
	if c.currentScope().has(idx) {
		c.emit(bytecode.OpLoadLocal, idx)
	} else {
		c.emit(bytecode.OpLoadGlobal, idx)
	}
	return nil
}

func (c *Compiler) compileSetter(tok lexer.Token, name string) error {
	if name == "" {
		return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "setter with no name")
	}
	idx := c.Names.Intern(name)
	c.emit(bytecode.OpSetter, idx)
	return nil
}

func (c *Compiler) compileStore(tok lexer.Token, t string) error {
	rest := t[1:]
	rename := false
	if len(rest) > 0 && rest[0] == '@' {
		rename = true
		rest = rest[1:]
	}
	if rest == "" {
		return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "store with no name")
	}
	idx := c.Names.Intern(rest)
	if rename {
		c.emit(bytecode.OpRenameFunc, idx)
	}
	if scope := c.currentScope(); scope != nil {
		scope.add(idx)
		c.emit(bytecode.OpStoreLocal, idx)
	} else {
		c.emit(bytecode.OpStoreGlobal, idx)
	}
	return nil
}

func (c *Compiler) closeFrame(tok lexer.Token, wantKind braceKind) error {
	if len(c.frames) <= 1 {
		return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "unmatched closing brace")
	}
	f := c.frames[len(c.frames)-1]
	if f.Kind != wantKind {
		return langerr.NewAt(langerr.ParseError, c.file, tok.Row, tok.Col, "mismatched brace kind")
	}
	c.frames = c.frames[:len(c.frames)-1]
	if f.Kind == braceFunc {
		c.funcScopes = c.funcScopes[:len(c.funcScopes)-1]
	}

	block := &bytecode.Code{
		File:         f.File,
		Row:          f.Row,
		Col:          f.Col,
		IsFunc:       f.Kind == braceFunc,
		Instructions: f.Instructions,
	}
	k := c.Code.Add(block)
	c.emit(bytecode.OpLoadFunc, k)
	return nil
}

// PopRunnableCode returns the top-level code block and true if the frame
// stack has fully unwound (balanced input, §4.2); otherwise it returns
// (nil, false) and leaves the partial root frame in place for more input.
func (c *Compiler) PopRunnableCode() (*bytecode.Code, bool) {
	if len(c.frames) != 1 {
		return nil, false
	}
	root := c.frames[0]
	code := &bytecode.Code{
		File:         c.file,
		IsFunc:       false,
		Instructions: root.Instructions,
	}
	c.frames[0] = &frame{Kind: braceBlock}
	return code, true
}
