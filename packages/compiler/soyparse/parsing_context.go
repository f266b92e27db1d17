package soyparse

import (
	"github.com/sirupsen/logrus"

	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

// abortBlock is panicked to abandon the remainder of a block after an
// error that leaves no way to continue the scan; the enclosing block
// boundary recovers it.
type abortBlock struct{}

// parsingContext accumulates everything the scan knows about the partially
// built tag, comment or attribute of one block. A block is a template body
// or one branch of a control flow construct; nothing in here survives past
// the end of the block.
type parsingContext struct {
	blockName     string
	startingState State
	state         State
	statePoint    *util.ParseLocation
	reporter      *util.ErrorReporter

	result []soytree.StandaloneNode

	isCloseTag        bool
	tagStartSpan      *util.ParseSourceSpan
	tagStartState     State
	tagName           *soytree.TagName
	directTagChildren []soytree.StandaloneNode

	attributeName          soytree.StandaloneNode
	equalsSpan             *util.ParseSourceSpan
	attributeValue         soytree.StandaloneNode
	quotedValueStart       *util.ParseLocation
	quoting                soytree.Quoting
	attributeValueChildren []soytree.StandaloneNode

	commentStartSpan      *util.ParseSourceSpan
	directCommentChildren []soytree.StandaloneNode
}

func newParsingContext(blockName string, start State, point *util.ParseLocation, reporter *util.ErrorReporter) *parsingContext {
	return &parsingContext{
		blockName:     blockName,
		startingState: start,
		state:         start,
		statePoint:    point,
		reporter:      reporter,
	}
}

func (c *parsingContext) setState(s State, point *util.ParseLocation) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("%s: %s -> %s at %s", c.blockName, c.state, s, point)
	}
	c.state = s
	c.statePoint = point
}

// addContent appends a node to the block's output sequence.
func (c *parsingContext) addContent(node soytree.StandaloneNode) {
	c.result = append(c.result, node)
}

func (c *parsingContext) hasTagStart() bool {
	return c.tagStartSpan != nil
}

func (c *parsingContext) hasCommentStart() bool {
	return c.commentStartSpan != nil
}

func (c *parsingContext) hasQuotedValueStart() bool {
	return c.quotedValueStart != nil
}

// startTag begins an open or close tag. A tag may only start in a block
// that itself began in pcdata; anything else would let the tag span
// blocks.
func (c *parsingContext) startTag(startSpan *util.ParseSourceSpan, isCloseTag bool, scanState State) {
	if c.startingState != StatePcdata {
		c.reporter.Report(startSpan, msgTagInDifferentBlock, c.blockName, c.startingState)
		panic(abortBlock{})
	}
	c.isCloseTag = isCloseTag
	c.tagStartSpan = startSpan
	c.tagStartState = scanState
}

// startComment begins an html comment at its <!-- sequence.
func (c *parsingContext) startComment(startSpan *util.ParseSourceSpan) {
	c.commentStartSpan = startSpan
}

// setTagNameNode records the tag name. A raw text node makes a static
// name, a print node a dynamic one and nil the wildcard of a bare </>.
func (c *parsingContext) setTagNameNode(node soytree.StandaloneNode, point *util.ParseLocation) {
	switch n := node.(type) {
	case *soytree.RawTextNode:
		c.tagName = soytree.NewStaticTagName(n)
	case *soytree.PrintNode:
		c.tagName = soytree.NewDynamicTagName(n)
	default:
		c.tagName = soytree.WildcardTagName()
	}
	c.setState(StateAfterTagNameOrAttr, point)
}

// startAttribute begins a new attribute, finishing the previous one.
func (c *parsingContext) startAttribute(name soytree.StandaloneNode, point *util.ParseLocation) {
	c.maybeFinishPendingAttribute(point)
	if c.startingState == StateBeforeAttrValue {
		c.reporter.Report(name.SourceSpan(), msgAttributeInValueBlock)
		panic(abortBlock{})
	}
	c.attributeName = name
	c.setState(StateAfterAttrName, point)
}

func (c *parsingContext) setEqualsSignSpan(span *util.ParseSourceSpan) {
	if c.attributeName == nil {
		c.reporter.Report(span, msgEqualsInAnotherBlock)
		panic(abortBlock{})
	}
	c.equalsSpan = span
	c.setState(StateBeforeAttrValue, span.End)
}

func (c *parsingContext) startQuotedAttributeValue(quoting soytree.Quoting, point *util.ParseLocation) {
	c.quotedValueStart = point
	c.quoting = quoting
	if quoting == soytree.QuotingSingle {
		c.setState(StateAttrValueSingle, point)
	} else {
		c.setState(StateAttrValueDouble, point)
	}
}

func (c *parsingContext) addAttributeValuePart(node soytree.StandaloneNode) {
	c.attributeValueChildren = append(c.attributeValueChildren, node)
}

// createUnquotedAttributeValue finishes an unquoted value at its
// delimiter. With no parts accumulated there is either a dangling '=' in
// this block or a delimiter for a value that started in another block.
func (c *parsingContext) createUnquotedAttributeValue(end *util.ParseLocation) {
	if len(c.attributeValueChildren) == 0 {
		if c.attributeName != nil {
			c.reporter.Report(pointSpan(end), msgExpectedAttributeValue)
			c.resetAttributeValue()
			c.setState(StateAfterTagNameOrAttr, end)
			return
		}
		c.reporter.Report(pointSpan(end), msgValueEndInAnotherBlock)
		panic(abortBlock{})
	}
	children := c.attributeValueChildren
	span := spanAcross(children)
	c.attributeValueChildren = nil
	c.setAttributeValue(soytree.NewHtmlAttributeValueNode(soytree.QuotingNone, children, span), end)
}

// createQuotedAttributeValue finishes a quoted value at its closing quote,
// which the caller has verified was opened in this block.
func (c *parsingContext) createQuotedAttributeValue(endQuoteSpan *util.ParseSourceSpan) {
	span := util.NewParseSourceSpan(c.quotedValueStart, endQuoteSpan.End, nil, nil)
	value := soytree.NewHtmlAttributeValueNode(c.quoting, c.attributeValueChildren, span)
	c.attributeValueChildren = nil
	c.quotedValueStart = nil
	c.setAttributeValue(value, endQuoteSpan.End)
}

func (c *parsingContext) setAttributeValue(node soytree.StandaloneNode, point *util.ParseLocation) {
	c.attributeValue = node
	c.setState(StateAfterTagNameOrAttr, point)
}

// addTagChild adds a whole-attribute construct, such as a control flow
// node whose branches each produce attributes, to the tag being built.
func (c *parsingContext) addTagChild(node soytree.StandaloneNode) {
	c.maybeFinishPendingAttribute(node.SourceSpan().Start)
	c.directTagChildren = append(c.directTagChildren, node)
	c.setState(StateAfterTagNameOrAttr, node.SourceSpan().End)
}

func (c *parsingContext) addCommentChild(node soytree.StandaloneNode) {
	c.directCommentChildren = append(c.directCommentChildren, node)
}

// maybeFinishPendingAttribute closes out the attribute being built, if
// any, and appends it to the tag's children. Pending unquoted value parts
// become the value; pending quoted parts mean the closing quote never
// arrived.
func (c *parsingContext) maybeFinishPendingAttribute(point *util.ParseLocation) {
	if len(c.attributeValueChildren) > 0 {
		if c.quotedValueStart != nil {
			c.reporter.Report(util.NewParseSourceSpan(c.quotedValueStart, point, nil, nil), msgUnterminatedAttributeValue)
			c.resetAttributeValue()
		} else {
			c.createUnquotedAttributeValue(point)
		}
	}
	if c.attributeName == nil {
		return
	}
	name := c.attributeName
	span := name.SourceSpan()
	var value *soytree.HtmlAttributeValueNode
	if c.attributeValue != nil {
		value = wrapAttributeValue(c.attributeValue)
		span = util.NewParseSourceSpan(span.Start, c.attributeValue.SourceSpan().End, nil, nil)
	}
	attr := soytree.NewHtmlAttributeNode(name, value, c.equalsSpan, span)
	c.directTagChildren = append(c.directTagChildren, attr)
	c.attributeName = nil
	c.equalsSpan = nil
	c.attributeValue = nil
}

// createTag finishes the tag at its terminator, appends it to the block
// output and moves the scan to the state of what follows: the body state
// for an rcdata element being opened, pcdata otherwise.
func (c *parsingContext) createTag(selfClosing bool, endSpan *util.ParseSourceSpan) {
	c.maybeFinishPendingAttribute(endSpan.Start)
	span := util.NewParseSourceSpan(c.tagStartSpan.Start, endSpan.End, nil, nil)
	name := c.tagName
	if name == nil {
		name = soytree.WildcardTagName()
	}
	next := StatePcdata
	if c.isCloseTag {
		if selfClosing {
			c.reporter.Report(endSpan, msgSelfClosingCloseTag)
		}
		if rc := name.RcData(); rc != soytree.RcDataNone && c.tagStartState != RcdataState(rc) {
			c.reporter.Report(span, msgUnmatchedRcdataClose, name.StaticName())
		}
		c.addContent(soytree.NewHtmlCloseTagNode(name, c.directTagChildren, span))
	} else {
		if rc := name.RcData(); rc != soytree.RcDataNone && !selfClosing {
			next = RcdataState(rc)
		}
		c.addContent(soytree.NewHtmlOpenTagNode(name, c.directTagChildren, selfClosing, span))
	}
	c.resetTag()
	c.setState(next, endSpan.End)
}

// createHtmlComment finishes the comment at its --> sequence.
func (c *parsingContext) createHtmlComment(endSpan *util.ParseSourceSpan) {
	span := util.NewParseSourceSpan(c.commentStartSpan.Start, endSpan.End, nil, nil)
	c.addContent(soytree.NewHtmlCommentNode(c.directCommentChildren, span))
	c.directCommentChildren = nil
	c.commentStartSpan = nil
	c.setState(StatePcdata, endSpan.End)
}

// finishBlock completes any attribute still pending when a block that
// started inside a tag ends.
func (c *parsingContext) finishBlock(end *util.ParseLocation) {
	if c.startingState.IsTagState() {
		c.maybeFinishPendingAttribute(end)
	}
}

// reparentNodes moves whatever the block was still building into the
// block's result, shaped by the reconciled exit state: a block ending
// between attributes contributes completed attributes, one ending inside
// a value contributes value fragments, one ending in a comment
// contributes comment content.
func (c *parsingContext) reparentNodes(finalState State, end *util.ParseLocation) {
	switch {
	case finalState.IsTagState():
		if finalState == StateAfterTagNameOrAttr {
			c.maybeFinishPendingAttribute(end)
		}
		if c.attributeValue != nil {
			c.result = append(c.result, c.attributeValue)
			c.attributeValue = nil
		}
		c.result = append(c.result, c.directTagChildren...)
		c.directTagChildren = nil
	case finalState.IsAttrValueState():
		c.result = append(c.result, c.attributeValueChildren...)
		c.attributeValueChildren = nil
		c.quotedValueStart = nil
	case finalState == StateHtmlComment:
		c.result = append(c.result, c.directCommentChildren...)
		c.directCommentChildren = nil
	}
}

func (c *parsingContext) resetAttributeValue() {
	c.attributeValueChildren = nil
	c.quotedValueStart = nil
}

func (c *parsingContext) resetAttribute() {
	c.resetAttributeValue()
	c.attributeName = nil
	c.equalsSpan = nil
	c.attributeValue = nil
}

func (c *parsingContext) resetTag() {
	c.resetAttribute()
	c.isCloseTag = false
	c.tagStartSpan = nil
	c.tagName = nil
	c.tagStartState = StateNone
	c.directTagChildren = nil
}

func (c *parsingContext) reset() {
	c.resetTag()
	c.commentStartSpan = nil
	c.directCommentChildren = nil
}

// wrapAttributeValue returns the node as an attribute value, wrapping a
// control flow construct that produces the whole value in an unquoted
// shell so the attribute model stays uniform.
func wrapAttributeValue(node soytree.StandaloneNode) *soytree.HtmlAttributeValueNode {
	if v, ok := node.(*soytree.HtmlAttributeValueNode); ok {
		return v
	}
	return soytree.NewHtmlAttributeValueNode(soytree.QuotingNone, []soytree.StandaloneNode{node}, node.SourceSpan())
}

func pointSpan(p *util.ParseLocation) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(p, p, nil, nil)
}

func spanAcross(nodes []soytree.StandaloneNode) *util.ParseSourceSpan {
	first := nodes[0].SourceSpan()
	last := nodes[len(nodes)-1].SourceSpan()
	return util.NewParseSourceSpan(first.Start, last.End, nil, nil)
}
