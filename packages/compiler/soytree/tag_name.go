package soytree

import (
	"strings"

	"soyc-go/packages/compiler/util"
)

// RcDataKind classifies tag names whose element content the scanner treats
// as opaque text rather than markup.
type RcDataKind int

const (
	RcDataNone RcDataKind = iota
	RcDataScript
	RcDataStyle
	RcDataTitle
	RcDataTextarea
	RcDataXmp
)

// String returns the tag name for the kind
func (k RcDataKind) String() string {
	switch k {
	case RcDataScript:
		return "script"
	case RcDataStyle:
		return "style"
	case RcDataTitle:
		return "title"
	case RcDataTextarea:
		return "textarea"
	case RcDataXmp:
		return "xmp"
	}
	return ""
}

var rcDataTagNames = map[string]RcDataKind{
	"script":   RcDataScript,
	"style":    RcDataStyle,
	"title":    RcDataTitle,
	"textarea": RcDataTextarea,
	"xmp":      RcDataXmp,
}

// voidTagNames lists the html elements that never have a close tag.
var voidTagNames = map[string]bool{
	"area":    true,
	"base":    true,
	"br":      true,
	"col":     true,
	"command": true,
	"embed":   true,
	"hr":      true,
	"img":     true,
	"input":   true,
	"keygen":  true,
	"link":    true,
	"meta":    true,
	"param":   true,
	"source":  true,
	"track":   true,
	"wbr":     true,
}

// TagName is the name of an html tag: either a static identifier, compared
// case insensitively, or a print node, compared by expression identity. A
// close tag written as </> carries a wildcard name that matches nothing.
type TagName struct {
	node       StandaloneNode
	staticName string
}

// NewStaticTagName creates a tag name from the raw text holding it
func NewStaticTagName(node *RawTextNode) *TagName {
	return &TagName{node: node, staticName: strings.ToLower(node.Text())}
}

// NewDynamicTagName creates a tag name computed by a print command
func NewDynamicTagName(node *PrintNode) *TagName {
	return &TagName{node: node}
}

// WildcardTagName returns the name carried by a close tag written without
// one.
func WildcardTagName() *TagName {
	return &TagName{}
}

// IsStatic reports whether the name is a literal identifier.
func (t *TagName) IsStatic() bool {
	return t.staticName != ""
}

// IsWildcard reports whether the name came from a </> close tag.
func (t *TagName) IsWildcard() bool {
	return t.node == nil
}

// StaticName returns the lowercased identifier, or the empty string for
// dynamic and wildcard names.
func (t *TagName) StaticName() string {
	return t.staticName
}

// Node returns the raw text or print node holding the name, or nil for a
// wildcard.
func (t *TagName) Node() StandaloneNode {
	return t.node
}

// RcData returns the opaque-content kind for the name, or RcDataNone.
func (t *TagName) RcData() RcDataKind {
	return rcDataTagNames[t.staticName]
}

// IsVoid reports whether the name is a void element like <br>.
func (t *TagName) IsVoid() bool {
	return voidTagNames[t.staticName]
}

// Equals reports whether two names refer to the same tag: static names
// match case insensitively, dynamic names match when they print the same
// expression, and wildcards match nothing.
func (t *TagName) Equals(other *TagName) bool {
	if other == nil || t.IsWildcard() || other.IsWildcard() {
		return false
	}
	if t.IsStatic() != other.IsStatic() {
		return false
	}
	if t.IsStatic() {
		return t.staticName == other.staticName
	}
	a, okA := t.node.(*PrintNode)
	b, okB := other.node.(*PrintNode)
	return okA && okB && a.Expr.Equals(b.Expr)
}

// SourceSpan returns the span of the node holding the name, or nil for a
// wildcard.
func (t *TagName) SourceSpan() *util.ParseSourceSpan {
	if t.node == nil {
		return nil
	}
	return t.node.SourceSpan()
}
