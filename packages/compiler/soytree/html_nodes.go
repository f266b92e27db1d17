package soytree

import "soyc-go/packages/compiler/util"

// Quoting is the quotation style of an attribute value
type Quoting int

const (
	QuotingNone Quoting = iota
	QuotingSingle
	QuotingDouble
)

// Quote returns the quote character for the style, or the empty string for
// unquoted values.
func (q Quoting) Quote() string {
	switch q {
	case QuotingSingle:
		return "'"
	case QuotingDouble:
		return `"`
	}
	return ""
}

// String returns the name of the quoting style
func (q Quoting) String() string {
	switch q {
	case QuotingNone:
		return "None"
	case QuotingSingle:
		return "Single"
	case QuotingDouble:
		return "Double"
	}
	return "Unknown"
}

// HtmlOpenTagNode represents an html open tag such as <div class="x"> up to
// and including its closing angle bracket. Attributes are kept in source
// order; an element may also be a control flow node whose branches produce
// attributes, or a print node hoisted into an attribute position.
type HtmlOpenTagNode struct {
	TagName     *TagName
	Attributes  []StandaloneNode
	SelfClosing bool
	sourceSpan  *util.ParseSourceSpan
}

// NewHtmlOpenTagNode creates a new HtmlOpenTagNode
func NewHtmlOpenTagNode(tagName *TagName, attributes []StandaloneNode, selfClosing bool, sourceSpan *util.ParseSourceSpan) *HtmlOpenTagNode {
	return &HtmlOpenTagNode{
		TagName:     tagName,
		Attributes:  attributes,
		SelfClosing: selfClosing,
		sourceSpan:  sourceSpan,
	}
}

// SourceSpan returns the source span
func (n *HtmlOpenTagNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindHtmlOpenTag
func (n *HtmlOpenTagNode) Kind() NodeKind {
	return KindHtmlOpenTag
}

// Visit implements the Node interface
func (n *HtmlOpenTagNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitHtmlOpenTag(n, context)
}

func (n *HtmlOpenTagNode) standaloneNode() {}

// HtmlCloseTagNode represents an html close tag such as </div>. Attributes
// on a close tag are kept in the tree even though browsers ignore them.
type HtmlCloseTagNode struct {
	TagName    *TagName
	Attributes []StandaloneNode
	sourceSpan *util.ParseSourceSpan
}

// NewHtmlCloseTagNode creates a new HtmlCloseTagNode
func NewHtmlCloseTagNode(tagName *TagName, attributes []StandaloneNode, sourceSpan *util.ParseSourceSpan) *HtmlCloseTagNode {
	return &HtmlCloseTagNode{
		TagName:    tagName,
		Attributes: attributes,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (n *HtmlCloseTagNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindHtmlCloseTag
func (n *HtmlCloseTagNode) Kind() NodeKind {
	return KindHtmlCloseTag
}

// Visit implements the Node interface
func (n *HtmlCloseTagNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitHtmlCloseTag(n, context)
}

func (n *HtmlCloseTagNode) standaloneNode() {}

// HtmlAttributeNode represents one attribute inside a tag. Name is a raw
// text node for a static name or a print node for a dynamic one. Value is
// nil for a bare attribute with no equals sign.
type HtmlAttributeNode struct {
	Name       StandaloneNode
	Value      *HtmlAttributeValueNode
	equalsSpan *util.ParseSourceSpan
	sourceSpan *util.ParseSourceSpan
}

// NewHtmlAttributeNode creates a new HtmlAttributeNode
func NewHtmlAttributeNode(name StandaloneNode, value *HtmlAttributeValueNode, equalsSpan, sourceSpan *util.ParseSourceSpan) *HtmlAttributeNode {
	return &HtmlAttributeNode{
		Name:       name,
		Value:      value,
		equalsSpan: equalsSpan,
		sourceSpan: sourceSpan,
	}
}

// HasValue reports whether the attribute carries a value.
func (n *HtmlAttributeNode) HasValue() bool {
	return n.Value != nil
}

// EqualsSpan returns the span of the equals sign, or nil when the attribute
// has no value.
func (n *HtmlAttributeNode) EqualsSpan() *util.ParseSourceSpan {
	return n.equalsSpan
}

// SourceSpan returns the source span
func (n *HtmlAttributeNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindHtmlAttribute
func (n *HtmlAttributeNode) Kind() NodeKind {
	return KindHtmlAttribute
}

// Visit implements the Node interface
func (n *HtmlAttributeNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitHtmlAttribute(n, context)
}

func (n *HtmlAttributeNode) standaloneNode() {}

// HtmlAttributeValueNode represents an attribute value together with its
// quoting style. For quoted values the children are the parts between the
// quotes; for unquoted values they run to the closing delimiter. A value
// that is a single control flow construct producing complete quoted values
// in every branch is held as an unquoted wrapper around that construct.
type HtmlAttributeValueNode struct {
	Quoting    Quoting
	Children   []StandaloneNode
	sourceSpan *util.ParseSourceSpan
}

// NewHtmlAttributeValueNode creates a new HtmlAttributeValueNode
func NewHtmlAttributeValueNode(quoting Quoting, children []StandaloneNode, sourceSpan *util.ParseSourceSpan) *HtmlAttributeValueNode {
	return &HtmlAttributeValueNode{
		Quoting:    quoting,
		Children:   children,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (n *HtmlAttributeValueNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindHtmlAttributeValue
func (n *HtmlAttributeValueNode) Kind() NodeKind {
	return KindHtmlAttributeValue
}

// Visit implements the Node interface
func (n *HtmlAttributeValueNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitHtmlAttributeValue(n, context)
}

func (n *HtmlAttributeValueNode) standaloneNode() {}

// HtmlCommentNode represents an html comment. Children hold the comment
// text and any commands that appeared between <!-- and -->.
type HtmlCommentNode struct {
	Children   []StandaloneNode
	sourceSpan *util.ParseSourceSpan
}

// NewHtmlCommentNode creates a new HtmlCommentNode
func NewHtmlCommentNode(children []StandaloneNode, sourceSpan *util.ParseSourceSpan) *HtmlCommentNode {
	return &HtmlCommentNode{
		Children:   children,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (n *HtmlCommentNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindHtmlComment
func (n *HtmlCommentNode) Kind() NodeKind {
	return KindHtmlComment
}

// Visit implements the Node interface
func (n *HtmlCommentNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitHtmlComment(n, context)
}

func (n *HtmlCommentNode) standaloneNode() {}
