package soyparse

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

const (
	msgUnterminatedCommand = "Unterminated command; expected '}'."
	msgEmptyCommand        = "Empty '{}' command."
	msgExpectedExpression  = "'{%s}' requires an expression."
	msgUnexpectedCloser    = "'{%s}' does not close any open command."
	msgMismatchedCloser    = "'{%s}' does not match the open '{%s}' command."
	msgCommandNeedsParent  = "'{%s}' is only allowed inside a '{%s}' command."
	msgBranchAfterDefault  = "'{%s}' may not appear after '{%s}'."
	msgCommandTakesNoExpr  = "'{%s}' does not take an expression."
	msgContentBeforeCase   = "Content is not allowed between '{switch}' and its first '{case}'."
	msgUnclosedCommand     = "'{%s}' command is never closed."
)

// specialChars maps command words that stand for a fixed piece of text to
// that text.
var specialChars = map[string]string{
	"sp":   " ",
	"nil":  "",
	"nbsp": " ",
	`\n`:   "\n",
	`\r`:   "\r",
	`\t`:   "\t",
	"lb":   "{",
	"rb":   "}",
}

type branchFrame struct {
	expr      *soytree.ExprRef
	isDefault bool
	start     *util.ParseLocation
	children  []soytree.StandaloneNode
}

type commandFrame struct {
	kind       soytree.ControlFlowKind
	subject    *soytree.ExprRef
	start      *util.ParseLocation
	branches   []*soytree.BranchNode
	current    *branchFrame
	sawDefault bool
}

func (f *commandFrame) closeBranch(end *util.ParseLocation) {
	if f.current == nil {
		return
	}
	br := f.current
	f.current = nil
	span := util.NewParseSourceSpan(br.start, end, nil, nil)
	f.branches = append(f.branches, soytree.NewBranchNode(br.expr, br.isDefault, br.children, span))
}

// templateParser splits template text into raw text runs, print commands
// and control flow constructs. Expressions are not parsed here; their
// text is kept verbatim and identical text within one file shares one
// interned reference.
type templateParser struct {
	file     *util.ParseSourceFile
	text     string
	index    int
	reporter *util.ErrorReporter
	exprs    map[string]*soytree.ExprRef
	nextID   int
	stack    []*commandFrame
	root     []soytree.StandaloneNode
}

// ParseTemplate parses the content of a template file into a flat
// sequence of raw text, print and control flow nodes.
func ParseTemplate(file *util.ParseSourceFile, reporter *util.ErrorReporter) []soytree.StandaloneNode {
	logrus.Debugf("parsing template %s", file.URL)
	p := &templateParser{
		file:     file,
		text:     file.Content,
		reporter: reporter,
		exprs:    map[string]*soytree.ExprRef{},
	}
	return p.parse()
}

func (p *templateParser) parse() []soytree.StandaloneNode {
	textStart := 0
	for p.index < len(p.text) {
		brace := strings.IndexByte(p.text[p.index:], '{')
		if brace < 0 {
			break
		}
		p.index += brace
		p.flushText(textStart, p.index)
		p.parseCommand()
		textStart = p.index
	}
	p.flushText(textStart, len(p.text))
	eof := p.file.LocationAt(len(p.text))
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		p.reporter.Report(pointSpan(eof), msgUnclosedCommand, top.kind)
		top.closeBranch(eof)
		p.finishFrame(eof)
	}
	return p.root
}

func (p *templateParser) flushText(begin, end int) {
	if begin >= end {
		return
	}
	p.addNode(soytree.NewRawTextNode(p.text[begin:end], p.span(begin, end)))
}

func (p *templateParser) parseCommand() {
	start := p.index
	body, terminated := p.scanCommandBody()
	span := p.span(start, p.index)
	if !terminated {
		p.reporter.Report(span, msgUnterminatedCommand)
		return
	}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		p.reporter.Report(span, msgEmptyCommand)
		return
	}
	word, rest := splitCommand(trimmed)
	switch word {
	case "if":
		expr := p.requireExpr(word, rest, span)
		frame := &commandFrame{kind: soytree.ControlFlowIf, start: span.Start}
		frame.current = &branchFrame{expr: expr, start: span.Start}
		p.stack = append(p.stack, frame)
	case "elseif":
		frame := p.requireFrame(word, soytree.ControlFlowIf, span)
		if frame == nil {
			return
		}
		if frame.sawDefault {
			p.reporter.Report(span, msgBranchAfterDefault, word, "else")
			return
		}
		frame.closeBranch(span.Start)
		frame.current = &branchFrame{expr: p.requireExpr(word, rest, span), start: span.Start}
	case "else":
		frame := p.requireFrame(word, soytree.ControlFlowIf, span)
		if frame == nil {
			return
		}
		if frame.sawDefault {
			p.reporter.Report(span, msgBranchAfterDefault, word, "else")
			return
		}
		p.rejectExpr(word, rest, span)
		frame.closeBranch(span.Start)
		frame.current = &branchFrame{isDefault: true, start: span.Start}
		frame.sawDefault = true
	case "/if":
		p.closeFrame(word, soytree.ControlFlowIf, span)
	case "switch":
		frame := &commandFrame{kind: soytree.ControlFlowSwitch, start: span.Start}
		frame.subject = p.requireExpr(word, rest, span)
		p.stack = append(p.stack, frame)
	case "case":
		frame := p.requireFrame(word, soytree.ControlFlowSwitch, span)
		if frame == nil {
			return
		}
		if frame.sawDefault {
			p.reporter.Report(span, msgBranchAfterDefault, word, "default")
			return
		}
		frame.closeBranch(span.Start)
		frame.current = &branchFrame{expr: p.requireExpr(word, rest, span), start: span.Start}
	case "default":
		frame := p.requireFrame(word, soytree.ControlFlowSwitch, span)
		if frame == nil {
			return
		}
		if frame.sawDefault {
			p.reporter.Report(span, msgBranchAfterDefault, word, word)
			return
		}
		p.rejectExpr(word, rest, span)
		frame.closeBranch(span.Start)
		frame.current = &branchFrame{isDefault: true, start: span.Start}
		frame.sawDefault = true
	case "/switch":
		p.closeFrame(word, soytree.ControlFlowSwitch, span)
	case "for":
		frame := &commandFrame{kind: soytree.ControlFlowFor, start: span.Start}
		frame.subject = p.requireExpr(word, rest, span)
		frame.current = &branchFrame{start: span.Start}
		p.stack = append(p.stack, frame)
	case "ifempty":
		frame := p.requireFrame(word, soytree.ControlFlowFor, span)
		if frame == nil {
			return
		}
		if frame.sawDefault {
			p.reporter.Report(span, msgBranchAfterDefault, word, word)
			return
		}
		p.rejectExpr(word, rest, span)
		frame.closeBranch(span.Start)
		frame.current = &branchFrame{isDefault: true, start: span.Start}
		frame.sawDefault = true
	case "/for":
		p.closeFrame(word, soytree.ControlFlowFor, span)
	case "print":
		if expr := p.requireExpr(word, rest, span); expr != nil {
			p.addNode(soytree.NewPrintNode(expr, span))
		}
	default:
		if text, ok := specialChars[word]; ok && rest == "" {
			p.addNode(soytree.NewSpecialCharNode(text, span))
			return
		}
		if word[0] == '/' {
			if len(p.stack) == 0 {
				p.reporter.Report(span, msgUnexpectedCloser, word)
			} else {
				p.reporter.Report(span, msgMismatchedCloser, word, p.stack[len(p.stack)-1].kind)
			}
			return
		}
		p.addNode(soytree.NewPrintNode(p.exprRef(trimmed, span), span))
	}
}

// scanCommandBody returns the text between the braces of the command at
// the cursor, skipping '}' inside quoted strings, and leaves the cursor
// after the closing brace.
func (p *templateParser) scanCommandBody() (string, bool) {
	i := p.index + 1
	quote := byte(0)
	for i < len(p.text) {
		c := p.text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '}':
			body := p.text[p.index+1 : i]
			p.index = i + 1
			return body, true
		}
		i++
	}
	body := p.text[p.index+1:]
	p.index = len(p.text)
	return body, false
}

func (p *templateParser) requireFrame(word string, kind soytree.ControlFlowKind, span *util.ParseSourceSpan) *commandFrame {
	if len(p.stack) > 0 {
		if top := p.stack[len(p.stack)-1]; top.kind == kind {
			return top
		}
	}
	p.reporter.Report(span, msgCommandNeedsParent, word, kind)
	return nil
}

func (p *templateParser) closeFrame(word string, kind soytree.ControlFlowKind, span *util.ParseSourceSpan) {
	if len(p.stack) == 0 {
		p.reporter.Report(span, msgUnexpectedCloser, word)
		return
	}
	top := p.stack[len(p.stack)-1]
	if top.kind != kind {
		p.reporter.Report(span, msgMismatchedCloser, word, top.kind)
		return
	}
	top.closeBranch(span.Start)
	p.finishFrame(span.End)
}

// finishFrame pops the innermost construct and adds it to its parent.
func (p *templateParser) finishFrame(end *util.ParseLocation) {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	span := util.NewParseSourceSpan(top.start, end, nil, nil)
	p.addNode(soytree.NewControlFlowNode(top.kind, top.subject, top.branches, span))
}

func (p *templateParser) addNode(node soytree.StandaloneNode) {
	if len(p.stack) == 0 {
		p.root = append(p.root, node)
		return
	}
	top := p.stack[len(p.stack)-1]
	if top.current == nil {
		if rt, ok := node.(*soytree.RawTextNode); ok && strings.TrimSpace(rt.Text()) == "" {
			return
		}
		p.reporter.Report(node.SourceSpan(), msgContentBeforeCase)
		return
	}
	top.current.children = append(top.current.children, node)
}

func (p *templateParser) requireExpr(word, rest string, span *util.ParseSourceSpan) *soytree.ExprRef {
	if rest == "" {
		p.reporter.Report(span, msgExpectedExpression, word)
		return nil
	}
	return p.exprRef(rest, span)
}

func (p *templateParser) rejectExpr(word, rest string, span *util.ParseSourceSpan) {
	if rest != "" {
		p.reporter.Report(span, msgCommandTakesNoExpr, word)
	}
}

// exprRef interns an expression by its text so that every occurrence of
// the same text in a file compares equal.
func (p *templateParser) exprRef(text string, span *util.ParseSourceSpan) *soytree.ExprRef {
	text = strings.TrimSpace(text)
	if ref, ok := p.exprs[text]; ok {
		return ref
	}
	ref := soytree.NewExprRef(p.nextID, text, span)
	p.nextID++
	p.exprs[text] = ref
	return ref
}

func (p *templateParser) span(begin, end int) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(p.file.LocationAt(begin), p.file.LocationAt(end), nil, nil)
}

func splitCommand(s string) (string, string) {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
