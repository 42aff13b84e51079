// Package compiler contains the single-pass parser/compiler for Nilan. A
// Pratt parser is used to parse expressions: each token maps to a
// particular infix and prefix parsing rule with its precedence level. No
// AST is ever built; every rule emits bytecode directly into a chunk.Chunk
// as it is recognized.
package compiler

import (
	"fmt"
	"nilan/chunk"
	"nilan/lexer"
	"nilan/token"
	"nilan/value"
	"strconv"
)

// Precedence levels for the grammar's rules, ordered from lowest to
// highest. Higher-precedence rules bind tighter.
const (
	PrecNone       = iota // lowest precedence
	PrecAssignment        // =
	PrecOr                // or
	PrecAnd               // and
	PrecEquality          // == !=
	PrecComparison        // < <= > >=
	PrecTerm              // + -
	PrecFactor            // * /
	PrecUnary             // ! -
	PrecCall              // . ()
	PrecPrimary
)

type parseFunc func(*Compiler)

// parseRule defines the parsing behavior for a single token type: its
// optional prefix and infix handlers, and its infix precedence.
type parseRule struct {
	prefix     parseFunc
	infix      parseFunc
	precedence int
}

// CompileError reports every diagnostic accumulated while compiling a
// source. Error() renders only the first, matching how the driver selects
// an exit code; the full list is available on Errors for tooling that
// wants every message.
type CompileError struct {
	Errors []string
}

func (e CompileError) Error() string {
	if len(e.Errors) == 0 {
		return "compile error"
	}
	return e.Errors[0]
}

// Compiler parses a token stream, pulled lazily from a lexer.Lexer, and
// emits bytecode directly into a chunk.Chunk.
type Compiler struct {
	lex    *lexer.Lexer
	chunk  *chunk.Chunk
	rules  map[token.TokenType]parseRule
	errors []string

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
}

// New constructs a Compiler over source. Call Compile to run it.
func New(source string) *Compiler {
	c := &Compiler{
		lex:   lexer.New(source),
		chunk: chunk.New(),
	}
	c.rules = map[token.TokenType]parseRule{
		token.LEFT_PAREN:    {prefix: (*Compiler).grouping, infix: nil, precedence: PrecNone},
		token.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.PLUS:          {prefix: nil, infix: (*Compiler).binary, precedence: PrecTerm},
		token.SLASH:         {prefix: nil, infix: (*Compiler).binary, precedence: PrecFactor},
		token.STAR:          {prefix: nil, infix: (*Compiler).binary, precedence: PrecFactor},
		token.BANG:          {prefix: (*Compiler).unary, infix: nil, precedence: PrecNone},
		token.BANG_EQUAL:    {prefix: nil, infix: (*Compiler).binary, precedence: PrecEquality},
		token.EQUAL_EQUAL:   {prefix: nil, infix: (*Compiler).binary, precedence: PrecEquality},
		token.GREATER:       {prefix: nil, infix: (*Compiler).binary, precedence: PrecComparison},
		token.GREATER_EQUAL: {prefix: nil, infix: (*Compiler).binary, precedence: PrecComparison},
		token.LESS:          {prefix: nil, infix: (*Compiler).binary, precedence: PrecComparison},
		token.LESS_EQUAL:    {prefix: nil, infix: (*Compiler).binary, precedence: PrecComparison},
		token.NUMBER:        {prefix: (*Compiler).number, infix: nil, precedence: PrecNone},
		token.FALSE:         {prefix: (*Compiler).literal, infix: nil, precedence: PrecNone},
		token.TRUE:          {prefix: (*Compiler).literal, infix: nil, precedence: PrecNone},
		token.NIL:           {prefix: (*Compiler).literal, infix: nil, precedence: PrecNone},
	}
	return c
}

// Compile runs the Pratt parser over the whole source and returns the
// resulting chunk, or a CompileError if any diagnostic was reported.
func Compile(source string) (*chunk.Chunk, error) {
	c := New(source)
	return c.Compile()
}

func (c *Compiler) Compile() (*chunk.Chunk, error) {
	c.advance()
	c.parsePrecedence(PrecAssignment)
	c.consume(token.EOF, "Expect end of expression.")
	c.emitOp(chunk.OpReturn)

	if c.hadError {
		return nil, CompileError{Errors: c.errors}
	}
	return c.chunk, nil
}

func (c *Compiler) getParseRule(tokenType token.TokenType) parseRule {
	rule, ok := c.rules[tokenType]
	if !ok {
		return parseRule{}
	}
	return rule
}

// parsePrecedence is the core Pratt loop: it consumes a prefix expression,
// then keeps folding in infix operators whose precedence is at least min.
func (c *Compiler) parsePrecedence(min int) {
	c.advance()
	rule := c.getParseRule(c.previous.TokenType)
	if rule.prefix == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}
	rule.prefix(c)

	for min <= c.getParseRule(c.current.TokenType).precedence {
		c.advance()
		infix := c.getParseRule(c.previous.TokenType).infix
		if infix == nil {
			panic(DeveloperError{Message: fmt.Sprintf("token %s has precedence but no infix rule", c.previous.TokenType)})
		}
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.parsePrecedence(PrecAssignment)
	c.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

// binary parses and emits the right-hand operand of a binary operator,
// then the opcode for the operator itself. Operands are always popped and
// combined as `b = pop(); a = pop(); result = a op b`.
func (c *Compiler) binary() {
	operator := c.previous
	rule := c.getParseRule(operator.TokenType)
	// +1 because each binary operator's right-hand operand binds one
	// precedence level tighter than the operator itself, enforcing
	// left-associativity.
	c.parsePrecedence(rule.precedence + 1)

	switch operator.TokenType {
	case token.PLUS:
		c.emitOp(chunk.OpAdd)
	case token.MINUS:
		c.emitOp(chunk.OpSubtract)
	case token.STAR:
		c.emitOp(chunk.OpMultiply)
	case token.SLASH:
		c.emitOp(chunk.OpDivide)
	case token.EQUAL_EQUAL:
		c.emitOp(chunk.OpEqual)
	case token.BANG_EQUAL:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.GREATER:
		c.emitOp(chunk.OpGreater)
	case token.GREATER_EQUAL:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.LESS:
		c.emitOp(chunk.OpLess)
	case token.LESS_EQUAL:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	}
}

// unary parses its operand at unary precedence then emits the operator.
// '-' emits OP_NEGATE; '!' emits OP_NOT.
func (c *Compiler) unary() {
	operator := c.previous.TokenType
	c.parsePrecedence(PrecUnary)
	switch operator {
	case token.MINUS:
		c.emitOp(chunk.OpNegate)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func (c *Compiler) literal() {
	switch c.previous.TokenType {
	case token.FALSE:
		c.emitOp(chunk.OpFalse)
	case token.TRUE:
		c.emitOp(chunk.OpTrue)
	case token.NIL:
		c.emitOp(chunk.OpNil)
	}
}

func (c *Compiler) number() {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 32)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(float32(n)))
}

func (c *Compiler) emitConstant(v value.Value) {
	index, err := c.chunk.AddConstant(v)
	if err != nil {
		c.errorAtPrevious("Too many constants in one chunk.")
		index = 0
	}
	c.emitOp(chunk.OpConstant)
	c.chunk.WriteByte(byte(index), c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.Opcode) {
	c.chunk.WriteOp(op, c.previous.Line)
}

// advance pulls the next non-error token from the lexer, reporting and
// discarding any Error tokens along the way.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.ScanToken()
		if c.current.TokenType != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

// consume advances past current if it matches tokenType; otherwise it
// reports msg at the current token.
func (c *Compiler) consume(tokenType token.TokenType, msg string) {
	if c.current.TokenType == tokenType {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) {
	c.errorAt(c.current, msg)
}

func (c *Compiler) errorAtPrevious(msg string) {
	c.errorAt(c.previous, msg)
}

// errorAt records a diagnostic at tok's position. Once panicMode is set,
// further diagnostics are swallowed until compilation ends, since this
// core has no statement boundary to resynchronize on.
func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	locus := fmt.Sprintf(" at '%s'", tok.Lexeme)
	switch tok.TokenType {
	case token.EOF:
		locus = " at end"
	case token.ERROR:
		locus = ""
	}
	c.errors = append(c.errors, fmt.Sprintf("[line %d] Error%s: %s", tok.Line, locus, msg))
}
