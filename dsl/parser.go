package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|%|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames       = lexer.SymbolsByRune(dslLexer)
	newlineTokenType = mustTokenType("Newline")
	lbraceTokenType  = mustTokenType("LBrace")
	rbraceTokenType  = mustTokenType("RBrace")
	symbolTokenType  = mustTokenType("Symbol")
	stringTokenType  = mustTokenType("String")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root of a galley source file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level section: meta, resources or view.
type Section struct {
	Meta      *MetaSection      `parser:"  @@"`
	Resources *ResourcesSection `parser:"| @@"`
	View      *ViewSection      `parser:"| @@"`
}

// Kind names the section type for error messages.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.View != nil:
		return "view"
	default:
		return "unknown"
	}
}

// MetaSection holds document metadata assignments.
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// ResourcesSection declares fonts, colors and styles.
type ResourcesSection struct {
	Block *Block `parser:"'resources' @@"`
}

// ViewSection describes one text view: its width header, display settings,
// paragraphs, marked ranges and selections.
type ViewSection struct {
	Params []*Lexeme `parser:"'view' @@*"`
	Block  *Block    `parser:"@@"`
}

// Block is a braced statement list.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is an assignment, a command or a bare string literal.
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment is `key: value`.
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is `name args... { block }`, e.g. `para Body { ... }` or `attach chip 8mm 3mm`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// TextLiteral is a quoted run of paragraph text.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value is the right-hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue is `[ a, b ]`.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Expression 保存赋值右侧未被其它分支识别的原始 token，例如 `wrap: word`
// 或 `extends: Body`。求值由组版阶段完成。
type Expression struct {
	Parts []*Lexeme
}

// String 拼接各 token 的值。
func (e *Expression) String() string {
	var b strings.Builder
	for _, part := range e.Parts {
		b.WriteString(part.Value)
	}
	return b.String()
}

// nesting 记录表达式内未闭合的括号层数。
type nesting struct {
	paren, bracket int
}

func (n *nesting) track(raw string) {
	switch raw {
	case "(":
		n.paren++
	case ")":
		n.paren = max(n.paren-1, 0)
	case "[":
		n.bracket++
	case "]":
		n.bracket = max(n.bracket-1, 0)
	}
}

// ends 判断 tok 是否结束当前表达式：换行、花括号、';' 与 ',' 只在括号外生效。
func (n *nesting) ends(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	top := n.paren == 0 && n.bracket == 0
	switch tok.Type {
	case newlineTokenType, lbraceTokenType, rbraceTokenType:
		return top
	case symbolTokenType:
		switch tok.Value {
		case ";", ",":
			return top
		case "]":
			return n.bracket == 0
		}
	}
	return false
}

// Parse implements participle.Parseable for Expression.
func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	var depth nesting
	var parts []*Lexeme
	for !depth.ends(lex.Peek()) {
		lexeme, err := consumeLexeme(lex)
		if err != nil {
			return err
		}
		depth.track(lexeme.Raw)
		parts = append(parts, lexeme)
	}
	if len(parts) == 0 {
		return participle.NextMatch
	}
	e.Parts = parts
	return nil
}

// Lexeme 是命令参数中的单个 token，字符串已去掉引号。
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse 读取一个参数 token；遇到换行、花括号或 ';' 时交还给上层规则。
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok == nil || tok.EOF() {
		return participle.NextMatch
	}
	switch {
	case tok.Type == newlineTokenType, tok.Type == lbraceTokenType, tok.Type == rbraceTokenType:
		return participle.NextMatch
	case tok.Type == symbolTokenType && tok.Value == ";":
		return participle.NextMatch
	}
	lexeme, err := consumeLexeme(lex)
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

// Arg 返回第 i 个参数的值，不存在时返回空串。
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i].Value
}

// StringLiteral 在捕获时按 Go 语法去掉引号与转义。
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量缺少取值")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return fmt.Errorf("字符串字面量 %s 无效: %w", values[0], err)
	}
	*s = StringLiteral(val)
	return nil
}

// Parse 从 r 读取并解析一篇 galley 文档。
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString 解析字符串形式的文档。
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

func consumeLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}
	val := tok.Value
	if tok.Type == stringTokenType {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return nil, err
		}
		val = unquoted
	}
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	return &Lexeme{Type: name, Value: val, Raw: tok.Value, Pos: tok.Pos}, nil
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := dslLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
