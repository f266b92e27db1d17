package soyparse

import "soyc-go/packages/compiler/soytree"

// State tracks where inside html syntax the scan currently is. It is the
// only value carried across raw text runs, placeholders and control flow
// boundaries; everything else the scan knows lives in the block's parsing
// context and never outlives the block.
type State int

const (
	// StateNone is the zero value and never a legal scan state.
	StateNone State = iota
	// StatePcdata is ordinary markup text outside any tag.
	StatePcdata
	// Rcdata body states. The content of these elements is opaque text;
	// only the matching close sequence leaves them.
	StateRcdataScript
	StateRcdataStyle
	StateRcdataTitle
	StateRcdataTextarea
	StateRcdataXmp
	// StateHtmlComment is the body of a <!-- --> comment.
	StateHtmlComment
	// StateCdata is the body of a <![CDATA[ ]]> section, kept as raw text.
	StateCdata
	// StateXmlDeclaration is the body of a <!doctype>, <!...> or <?...>
	// construct, kept as raw text up to the closing '>'.
	StateXmlDeclaration
	StateXmlAttrValueSingle
	StateXmlAttrValueDouble
	// StateTagNameOpen is immediately after '<', reading an open tag name.
	StateTagNameOpen
	// StateTagNameClose is immediately after '</', reading a close tag name.
	StateTagNameClose
	// StateAfterTagNameOrAttr is directly after a tag name or a completed
	// attribute, before any whitespace. Only whitespace or the tag
	// terminator may follow.
	StateAfterTagNameOrAttr
	// StateBeforeAttrName is inside a tag with whitespace consumed, ready
	// for an attribute name or the tag terminator.
	StateBeforeAttrName
	// StateAfterAttrName is directly after an attribute name; whitespace,
	// '=' or the next attribute may follow.
	StateAfterAttrName
	// StateBeforeAttrValue is directly after '=', ready for a value. A
	// block may never end here: the '=' would dangle.
	StateBeforeAttrValue
	StateAttrValueSingle
	StateAttrValueDouble
	StateAttrValueUnquoted
)

// String returns a description of the state for diagnostics
func (s State) String() string {
	switch s {
	case StatePcdata:
		return "pcdata"
	case StateRcdataScript:
		return "rcdata (script)"
	case StateRcdataStyle:
		return "rcdata (style)"
	case StateRcdataTitle:
		return "rcdata (title)"
	case StateRcdataTextarea:
		return "rcdata (textarea)"
	case StateRcdataXmp:
		return "rcdata (xmp)"
	case StateHtmlComment:
		return "html comment"
	case StateCdata:
		return "cdata"
	case StateXmlDeclaration:
		return "xml declaration"
	case StateXmlAttrValueSingle:
		return "xml attribute value (single quoted)"
	case StateXmlAttrValueDouble:
		return "xml attribute value (double quoted)"
	case StateTagNameOpen:
		return "html tag name"
	case StateTagNameClose:
		return "html close tag name"
	case StateAfterTagNameOrAttr:
		return "after tag name or attribute"
	case StateBeforeAttrName:
		return "before attribute name"
	case StateAfterAttrName:
		return "after attribute name"
	case StateBeforeAttrValue:
		return "before attribute value"
	case StateAttrValueSingle:
		return "attribute value (single quoted)"
	case StateAttrValueDouble:
		return "attribute value (double quoted)"
	case StateAttrValueUnquoted:
		return "attribute value (unquoted)"
	}
	return "none"
}

// IsTagState reports whether the scan is between attributes inside a tag,
// where a control flow construct contributes whole attributes.
func (s State) IsTagState() bool {
	return s == StateAfterTagNameOrAttr || s == StateBeforeAttrName || s == StateAfterAttrName
}

// IsTagNameState reports whether the scan is reading a tag name.
func (s State) IsTagNameState() bool {
	return s == StateTagNameOpen || s == StateTagNameClose
}

// IsAttrValueState reports whether the scan is inside an attribute value.
func (s State) IsAttrValueState() bool {
	return s == StateAttrValueSingle || s == StateAttrValueDouble || s == StateAttrValueUnquoted
}

// IsRcdataState reports whether the scan is inside an rcdata element body.
func (s State) IsRcdataState() bool {
	switch s {
	case StateRcdataScript, StateRcdataStyle, StateRcdataTitle, StateRcdataTextarea, StateRcdataXmp:
		return true
	}
	return false
}

// RcdataState returns the body state for an rcdata element kind.
func RcdataState(k soytree.RcDataKind) State {
	switch k {
	case soytree.RcDataScript:
		return StateRcdataScript
	case soytree.RcDataStyle:
		return StateRcdataStyle
	case soytree.RcDataTitle:
		return StateRcdataTitle
	case soytree.RcDataTextarea:
		return StateRcdataTextarea
	case soytree.RcDataXmp:
		return StateRcdataXmp
	}
	return StateNone
}

// RcdataTagName returns the element name whose body the state scans, or
// the empty string for non-rcdata states.
func (s State) RcdataTagName() string {
	switch s {
	case StateRcdataScript:
		return "script"
	case StateRcdataStyle:
		return "style"
	case StateRcdataTitle:
		return "title"
	case StateRcdataTextarea:
		return "textarea"
	case StateRcdataXmp:
		return "xmp"
	}
	return ""
}

// Reconcile merges the state a block started in with the state it ended
// in, or merges two branch exit states. Identical states reconcile to
// themselves; any two between-attribute tag states reconcile to
// StateAfterTagNameOrAttr, since either way the scan expects whitespace or
// the tag terminator next; a block entered at StateBeforeAttrValue may
// exit with a complete value behind it. Everything else is incompatible
// and the scan cannot continue deterministically.
func Reconcile(a, b State) (State, bool) {
	if a == b {
		return a, true
	}
	if s, ok := reconcileCompletedValue(a, b); ok {
		return s, true
	}
	if s, ok := reconcileCompletedValue(b, a); ok {
		return s, true
	}
	if a.IsTagState() && b.IsTagState() {
		return StateAfterTagNameOrAttr, true
	}
	return StateNone, false
}

// reconcileCompletedValue handles a block that started right before an
// attribute value and ended with the value fully produced: still inside an
// unquoted value, directly after the value, or past trailing whitespace.
func reconcileCompletedValue(a, b State) (State, bool) {
	if a != StateBeforeAttrValue {
		return StateNone, false
	}
	switch b {
	case StateAttrValueUnquoted, StateAfterTagNameOrAttr, StateBeforeAttrName:
		return b, true
	}
	return StateNone, false
}
