package soytree

import "soyc-go/packages/compiler/util"

// NodeKind identifies the concrete type of a node. The set of kinds is
// closed: a switch over NodeKind together with the concrete types in this
// package covers everything the parser and rewriter can produce.
type NodeKind int

const (
	KindRawText NodeKind = iota
	KindPrint
	KindControlFlow
	KindBranch
	KindHtmlOpenTag
	KindHtmlCloseTag
	KindHtmlAttribute
	KindHtmlAttributeValue
	KindHtmlComment
)

// String returns the name of the kind
func (k NodeKind) String() string {
	switch k {
	case KindRawText:
		return "RawText"
	case KindPrint:
		return "Print"
	case KindControlFlow:
		return "ControlFlow"
	case KindBranch:
		return "Branch"
	case KindHtmlOpenTag:
		return "HtmlOpenTag"
	case KindHtmlCloseTag:
		return "HtmlCloseTag"
	case KindHtmlAttribute:
		return "HtmlAttribute"
	case KindHtmlAttributeValue:
		return "HtmlAttributeValue"
	case KindHtmlComment:
		return "HtmlComment"
	}
	return "Unknown"
}

// Node represents a node in a template body tree
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Kind() NodeKind
	Visit(visitor Visitor, context interface{}) interface{}
}

// StandaloneNode is implemented by nodes that can appear directly in a node
// list: the top level of a template body, the children of a branch, a tag,
// a comment or an attribute value. BranchNode is the only kind excluded;
// branches exist solely inside a ControlFlowNode.
type StandaloneNode interface {
	Node
	standaloneNode()
}

// ExprRef is an opaque reference to an expression in the template source.
// The rewriter never inspects expression syntax; two references denote the
// same expression exactly when they share an ID, which the parser assigns
// by interning the expression text per file.
type ExprRef struct {
	ID   int
	Text string
	Span *util.ParseSourceSpan
}

// NewExprRef creates a new ExprRef
func NewExprRef(id int, text string, span *util.ParseSourceSpan) *ExprRef {
	return &ExprRef{ID: id, Text: text, Span: span}
}

// Equals reports whether both references denote the same expression.
func (e *ExprRef) Equals(other *ExprRef) bool {
	return e != nil && other != nil && e.ID == other.ID
}

// PrintNode represents a {$...} or {print ...} command: a value computed at
// render time and inserted into the output
type PrintNode struct {
	Expr       *ExprRef
	sourceSpan *util.ParseSourceSpan
}

// NewPrintNode creates a new PrintNode
func NewPrintNode(expr *ExprRef, sourceSpan *util.ParseSourceSpan) *PrintNode {
	return &PrintNode{Expr: expr, sourceSpan: sourceSpan}
}

// SourceSpan returns the source span
func (n *PrintNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindPrint
func (n *PrintNode) Kind() NodeKind {
	return KindPrint
}

// Visit implements the Node interface
func (n *PrintNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitPrint(n, context)
}

func (n *PrintNode) standaloneNode() {}

// ControlFlowKind distinguishes the three control flow commands
type ControlFlowKind int

const (
	ControlFlowIf ControlFlowKind = iota
	ControlFlowSwitch
	ControlFlowFor
)

// String returns the command name of the kind
func (k ControlFlowKind) String() string {
	switch k {
	case ControlFlowIf:
		return "if"
	case ControlFlowSwitch:
		return "switch"
	case ControlFlowFor:
		return "for"
	}
	return "unknown"
}

// ControlFlowNode represents an {if}, {switch} or {for} command together
// with its branches. For {switch} the subject is the switched-on expression
// and for {for} it is the loop expression; {if} has no subject.
type ControlFlowNode struct {
	Command    ControlFlowKind
	Subject    *ExprRef
	Branches   []*BranchNode
	sourceSpan *util.ParseSourceSpan
}

// NewControlFlowNode creates a new ControlFlowNode
func NewControlFlowNode(command ControlFlowKind, subject *ExprRef, branches []*BranchNode, sourceSpan *util.ParseSourceSpan) *ControlFlowNode {
	return &ControlFlowNode{
		Command:    command,
		Subject:    subject,
		Branches:   branches,
		sourceSpan: sourceSpan,
	}
}

// HasDefaultBranch reports whether one of the branches is an {else},
// {default} or {ifempty} branch.
func (n *ControlFlowNode) HasDefaultBranch() bool {
	for _, b := range n.Branches {
		if b.IsDefault {
			return true
		}
	}
	return false
}

// WillExactlyOneBranchExecuteOnce reports whether rendering always executes
// exactly one branch exactly once: true for an {if} or {switch} with a
// default branch, never for a loop, whose body can run any number of times.
func (n *ControlFlowNode) WillExactlyOneBranchExecuteOnce() bool {
	return n.Command != ControlFlowFor && n.HasDefaultBranch()
}

// WillAtLeastOneBranchExecute reports whether rendering is guaranteed to
// enter some branch: an {if} or {switch} needs a default branch, a {for}
// needs an {ifempty} block.
func (n *ControlFlowNode) WillAtLeastOneBranchExecute() bool {
	return n.HasDefaultBranch()
}

// SourceSpan returns the source span
func (n *ControlFlowNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindControlFlow
func (n *ControlFlowNode) Kind() NodeKind {
	return KindControlFlow
}

// Visit implements the Node interface
func (n *ControlFlowNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitControlFlow(n, context)
}

func (n *ControlFlowNode) standaloneNode() {}

// BranchNode represents one arm of a ControlFlowNode: an {if} or {elseif}
// condition, a {case} with its expression, a loop body, or a default arm
// such as {else}, {default} or {ifempty}. Expr is nil for default arms and
// for loop bodies.
type BranchNode struct {
	Expr       *ExprRef
	IsDefault  bool
	Children   []StandaloneNode
	sourceSpan *util.ParseSourceSpan
}

// NewBranchNode creates a new BranchNode
func NewBranchNode(expr *ExprRef, isDefault bool, children []StandaloneNode, sourceSpan *util.ParseSourceSpan) *BranchNode {
	return &BranchNode{
		Expr:       expr,
		IsDefault:  isDefault,
		Children:   children,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (n *BranchNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindBranch
func (n *BranchNode) Kind() NodeKind {
	return KindBranch
}

// Visit implements the Node interface
func (n *BranchNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitBranch(n, context)
}

// Visitor interface for visiting template body nodes
type Visitor interface {
	VisitRawText(node *RawTextNode, context interface{}) interface{}
	VisitPrint(node *PrintNode, context interface{}) interface{}
	VisitControlFlow(node *ControlFlowNode, context interface{}) interface{}
	VisitBranch(node *BranchNode, context interface{}) interface{}
	VisitHtmlOpenTag(node *HtmlOpenTagNode, context interface{}) interface{}
	VisitHtmlCloseTag(node *HtmlCloseTagNode, context interface{}) interface{}
	VisitHtmlAttribute(node *HtmlAttributeNode, context interface{}) interface{}
	VisitHtmlAttributeValue(node *HtmlAttributeValueNode, context interface{}) interface{}
	VisitHtmlComment(node *HtmlCommentNode, context interface{}) interface{}
}

// VisitAll visits all nodes with a visitor and collects non-nil results
func VisitAll(visitor Visitor, nodes []StandaloneNode, context interface{}) []interface{} {
	var result []interface{}
	for _, n := range nodes {
		if r := n.Visit(visitor, context); r != nil {
			result = append(result, r)
		}
	}
	return result
}
