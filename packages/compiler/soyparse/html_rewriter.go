package soyparse

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"soyc-go/packages/compiler/core"
	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

const (
	msgBlockChangesContext          = "%s changes context from '%s' to '%s'.%s"
	msgBlockEndsAfterEquals         = "%s ends between an attribute name and its value."
	msgTagInDifferentBlock          = "Tags may not start in %s; the block begins in state '%s', not in html content."
	msgControlFlowInTagName         = "'{%s}' commands are not allowed inside html tag names."
	msgConditionalAttrValue         = "The value of an attribute must be guaranteed to be produced exactly once; this '{%s}' command may produce it zero or several times."
	msgExpectedWsOrTagEnd           = "Expected whitespace or the end of the tag; attributes must be separated by whitespace."
	msgExpectedWsEqOrTagEnd         = "Expected whitespace, '=' or the end of the tag."
	msgExpectedAttributeValue       = "Expected an attribute value after '='."
	msgExpectedAttributeName        = "Expected an attribute name."
	msgExpectedTagName              = "Expected a tag name after '<'."
	msgBadTagName                   = "Illegal tag name '%s'."
	msgBadAttributeName             = "Illegal attribute name '%s'."
	msgUnexpectedWsAfterLt          = "Unexpected whitespace after '<'; tag names must immediately follow '<'."
	msgUnmatchedRcdataClose         = "Unexpected close tag for raw text element '%s' with no matching open tag."
	msgSelfClosingCloseTag          = "Close tags may not be self closing."
	msgSmartQuote                   = "Unexpected smart quote; use a straight quote to delimit attribute values."
	msgIllegalAttributeChar         = "Illegal character '%c' in an unquoted attribute value; quote the value to use it."
	msgSuspiciousPartialCloseTag    = "This looks like the start of a '</%s>' close tag but the text ends before it completes."
	msgDisallowedScriptContent      = "'%s' may not appear inside a '<script>' block."
	msgUnterminatedAttributeValue   = "Unterminated quoted attribute value; the closing quote must appear in the same block as the opening quote."
	msgTagEndInAnotherBlock         = "This ends a tag that was started in another block; tags must start and end in the same block."
	msgCommentEndInAnotherBlock     = "This ends a comment that was started in another block; comments must start and end in the same block."
	msgValueEndInAnotherBlock       = "This ends an attribute value that was started in another block; attribute values must start and end in the same block."
	msgQuotedValueEndInAnotherBlock = "Quoted attribute values must be opened and closed in the same block."
	msgEqualsInAnotherBlock         = "An attribute value must be set in the same block as the attribute name."
	msgAttributeInValueBlock        = "Attributes may not be created here; this block supplies the value of another attribute."
	msgInconsistentBranchMerge      = "%s ends in state '%s', which is inconsistent with state '%s' from the preceding branches."
)

var (
	tagNamePattern       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9:-]*$`)
	attributeNamePattern = regexp.MustCompile(`^[a-zA-Z_$@](?:[a-zA-Z0-9_:?$-]*[a-zA-Z0-9?$_])?$`)
)

// rewriter drives a scan over the raw text of a template and rebuilds its
// children with html tags, attributes and comments made explicit. The
// cursor fields track the raw text node currently being scanned: offset
// marks the start of text that has been examined but not yet handed to
// the parsing context, index the next byte to examine.
type rewriter struct {
	reporter *util.ErrorReporter
	ctx      *parsingContext

	node   *soytree.RawTextNode
	text   string
	offset int
	index  int
}

// Rewrite returns a copy of the nodes with the html structure latent in
// their raw text made explicit. The input nodes are never mutated; when
// any error is reported the input is returned unchanged.
func Rewrite(nodes []soytree.StandaloneNode, reporter *util.ErrorReporter) (result []soytree.StandaloneNode) {
	cp := reporter.Checkpoint()
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(*util.ParseError); !ok {
				panic(rec)
			}
			result = nodes
		}
	}()
	r := &rewriter{reporter: reporter}
	out, _ := r.rewriteBlock("template", spanOfStandalone(nodes), nodes, StatePcdata)
	if reporter.ErrorsSince(cp) {
		return nodes
	}
	return out
}

// rewriteBlock runs the scan over one block's children starting in the
// given state and returns the rewritten children together with the state
// the block ends in. A block that reports an error ends in its starting
// state.
func (r *rewriter) rewriteBlock(blockName string, span *util.ParseSourceSpan, children []soytree.StandaloneNode, start State) ([]soytree.StandaloneNode, State) {
	var point, end *util.ParseLocation
	if span != nil {
		point, end = span.Start, span.End
	}
	parent := r.ctx
	ctx := newParsingContext(blockName, start, point, r.reporter)
	r.ctx = ctx
	defer func() { r.ctx = parent }()

	logrus.Debugf("rewriting %s from state %s", blockName, start)
	cp := r.reporter.Checkpoint()
	r.visitChildren(children, start)

	ctx.finishBlock(end)
	finalState := ctx.state
	if finalState == StateBeforeAttrValue {
		r.reporter.Report(pointSpan(end), msgBlockEndsAfterEquals, blockName)
	}
	if r.reporter.ErrorsSince(cp) {
		return ctx.result, start
	}
	reconciled, ok := Reconcile(start, finalState)
	if !ok {
		r.reporter.Report(pointSpan(end), msgBlockChangesContext, blockName, start, finalState, contextHint(finalState))
		return ctx.result, start
	}
	ctx.reparentNodes(reconciled, end)
	return ctx.result, reconciled
}

func (r *rewriter) visitChildren(children []soytree.StandaloneNode, start State) {
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(abortBlock); !ok {
				panic(rec)
			}
			if start.IsTagState() {
				r.ctx.resetAttribute()
				r.ctx.state = StateBeforeAttrName
			} else {
				r.ctx.reset()
				r.ctx.state = start
			}
		}
	}()
	for _, child := range children {
		r.visitNode(child)
	}
}

func (r *rewriter) visitNode(node soytree.StandaloneNode) {
	switch n := node.(type) {
	case *soytree.RawTextNode:
		r.visitRawText(n)
	case *soytree.PrintNode:
		r.visitPrint(n)
	case *soytree.ControlFlowNode:
		r.visitControlFlow(n)
	default:
		// already structured html nodes pass through untouched
		r.ctx.addContent(node)
	}
}

func (r *rewriter) visitRawText(node *soytree.RawTextNode) {
	if node.IsEmpty() {
		r.handleJoinedWhitespace(node)
		return
	}
	r.node, r.text, r.offset, r.index = node, node.Text(), 0, 0
	for r.index < len(r.text) {
		priorIndex, priorOffset, priorState := r.index, r.offset, r.ctx.state
		switch r.ctx.state {
		case StatePcdata:
			r.handlePcData()
		case StateRcdataScript, StateRcdataStyle, StateRcdataTitle, StateRcdataTextarea, StateRcdataXmp:
			r.handleRcData()
		case StateHtmlComment:
			r.handleComment()
		case StateCdata:
			r.handleCdata()
		case StateXmlDeclaration:
			r.handleXmlDeclaration()
		case StateXmlAttrValueSingle:
			r.handleXmlQuoted('\'')
		case StateXmlAttrValueDouble:
			r.handleXmlQuoted('"')
		case StateTagNameOpen:
			r.handleTagName(false)
		case StateTagNameClose:
			r.handleTagName(true)
		case StateAfterTagNameOrAttr:
			r.handleAfterTagNameOrAttr()
		case StateBeforeAttrName:
			r.handleBeforeAttrName()
		case StateAfterAttrName:
			r.handleAfterAttrName()
		case StateBeforeAttrValue:
			r.handleBeforeAttrValue()
		case StateAttrValueSingle:
			r.handleQuotedValue('\'')
		case StateAttrValueDouble:
			r.handleQuotedValue('"')
		case StateAttrValueUnquoted:
			r.handleUnquotedValue()
		default:
			panic(fmt.Sprintf("unexpected scan state %v", r.ctx.state))
		}
		if r.index == priorIndex && r.offset == priorOffset && r.ctx.state == priorState {
			panic(fmt.Sprintf("scan made no progress at index %d in state %v", r.index, r.ctx.state))
		}
	}
	r.emitPending()
	r.node, r.text = nil, ""
}

func (r *rewriter) visitPrint(node *soytree.PrintNode) {
	end := node.SourceSpan().End
	switch {
	case r.ctx.state == StateTagNameOpen || r.ctx.state == StateTagNameClose:
		r.ctx.setTagNameNode(node, end)
	case r.ctx.state == StateAfterTagNameOrAttr:
		r.reporter.Report(node.SourceSpan(), msgExpectedWsOrTagEnd)
		r.ctx.addContent(node)
	case r.ctx.state == StateAfterAttrName:
		r.reporter.Report(node.SourceSpan(), msgExpectedWsEqOrTagEnd)
		r.ctx.addContent(node)
	case r.ctx.state == StateBeforeAttrName:
		r.ctx.startAttribute(node, end)
	case r.ctx.state == StateBeforeAttrValue:
		r.ctx.setState(StateAttrValueUnquoted, node.SourceSpan().Start)
		r.ctx.addAttributeValuePart(node)
	case r.ctx.state.IsAttrValueState():
		r.ctx.addAttributeValuePart(node)
	case r.ctx.state == StateHtmlComment:
		r.ctx.addCommentChild(node)
	default:
		r.ctx.addContent(node)
	}
}

func (r *rewriter) visitControlFlow(node *soytree.ControlFlowNode) {
	start := r.ctx.state
	if start.IsTagNameState() {
		r.reporter.Report(node.SourceSpan(), msgControlFlowInTagName, node.Command)
		panic(abortBlock{})
	}
	rebuilt, ending := r.rewriteBranches(node, start)
	end := node.SourceSpan().End
	switch {
	case start.IsTagState():
		r.ctx.addTagChild(rebuilt)
		r.ctx.setState(ending, end)
	case start == StateBeforeAttrValue:
		if !node.WillExactlyOneBranchExecuteOnce() {
			r.reporter.Report(node.SourceSpan(), msgConditionalAttrValue, node.Command)
		}
		if node.WillAtLeastOneBranchExecute() && ending == StateAttrValueUnquoted {
			r.ctx.addAttributeValuePart(rebuilt)
			r.ctx.setState(StateAttrValueUnquoted, end)
		} else {
			r.ctx.setAttributeValue(rebuilt, end)
			if node.WillAtLeastOneBranchExecute() && ending == StateBeforeAttrName {
				r.ctx.setState(StateBeforeAttrName, end)
			}
		}
	case start.IsAttrValueState():
		r.ctx.addAttributeValuePart(rebuilt)
	case start == StateHtmlComment:
		r.ctx.addCommentChild(rebuilt)
		r.ctx.setState(ending, end)
	default:
		r.ctx.addContent(rebuilt)
	}
}

// handlePcData scans html content for the start of a tag, comment, cdata
// section or xml declaration. A '<' that cannot begin any of those stays
// ordinary text.
func (r *rewriter) handlePcData() {
	lt := strings.IndexByte(r.text[r.index:], '<')
	if lt < 0 {
		r.index = len(r.text)
		return
	}
	r.index += lt
	if r.matchPrefixIgnoreCase("<!--") {
		r.emitPending()
		span := r.charSpan(r.index, 4)
		r.advance(4)
		r.dropPending()
		r.ctx.startComment(span)
		r.ctx.setState(StateHtmlComment, span.End)
		return
	}
	if r.matchPrefixIgnoreCase("<![cdata[") {
		r.advance(9)
		r.ctx.setState(StateCdata, r.point())
		return
	}
	if r.matchPrefixIgnoreCase("<!") || r.matchPrefixIgnoreCase("<?") {
		r.advance(2)
		r.ctx.setState(StateXmlDeclaration, r.point())
		return
	}
	isClose := false
	nameAt := r.index + 1
	if nameAt < len(r.text) && r.text[nameAt] == '/' {
		isClose = true
		nameAt++
	}
	if nameAt < len(r.text) {
		ch := int(r.text[nameAt])
		if core.IsWhitespace(ch) {
			r.reporter.Report(r.charSpan(r.index, nameAt+1-r.index), msgUnexpectedWsAfterLt)
			r.advance(1)
			return
		}
		if !isClose && !core.IsAsciiLetter(ch) {
			r.advance(1)
			return
		}
	}
	r.emitPending()
	seqLen := 1
	if isClose {
		seqLen = 2
	}
	span := r.charSpan(r.index, seqLen)
	r.ctx.startTag(span, isClose, r.ctx.state)
	r.advance(seqLen)
	r.dropPending()
	if isClose {
		r.ctx.setState(StateTagNameClose, span.End)
	} else {
		r.ctx.setState(StateTagNameOpen, span.End)
	}
}

// handleRcData scans the body of a raw text element. Only the matching
// case-insensitive close tag leaves the body; every other '<' is body
// text.
func (r *rewriter) handleRcData() {
	closeSeq := "</" + r.ctx.state.RcdataTagName()
	isScript := r.ctx.state == StateRcdataScript
	for r.index < len(r.text) {
		lt := strings.IndexByte(r.text[r.index:], '<')
		if lt < 0 {
			r.index = len(r.text)
			return
		}
		r.index += lt
		if r.matchPrefixIgnoreCase(closeSeq) {
			after := r.index + len(closeSeq)
			if after >= len(r.text) || isTagBoundaryChar(r.text[after]) {
				r.emitPending()
				span := r.charSpan(r.index, 2)
				r.ctx.startTag(span, true, r.ctx.state)
				r.advance(2)
				r.dropPending()
				r.ctx.setState(StateTagNameClose, span.End)
				return
			}
		} else if r.matchPrefixIgnoreCasePastEnd(closeSeq) {
			r.reporter.Report(r.node.SpanOf(r.index, len(r.text)), msgSuspiciousPartialCloseTag, r.ctx.state.RcdataTagName())
			r.index = len(r.text)
			return
		}
		if isScript {
			if r.matchPrefixIgnoreCase("<script") || r.matchPrefixIgnoreCasePastEnd("<script") {
				r.reporter.Report(r.charSpan(r.index, min(len("<script"), len(r.text)-r.index)), msgDisallowedScriptContent, "<script")
			} else if r.matchPrefixIgnoreCase("<!--") || r.matchPrefixIgnoreCasePastEnd("<!--") {
				r.reporter.Report(r.charSpan(r.index, min(len("<!--"), len(r.text)-r.index)), msgDisallowedScriptContent, "<!--")
			}
		}
		r.advance(1)
	}
}

// handleComment scans comment text for the closing --> sequence.
func (r *rewriter) handleComment() {
	for r.index < len(r.text) {
		dash := strings.IndexByte(r.text[r.index:], '-')
		if dash < 0 {
			r.index = len(r.text)
			return
		}
		r.index += dash
		if r.matchPrefixIgnoreCase("-->") {
			r.emitPending()
			if !r.ctx.hasCommentStart() {
				r.reporter.Report(r.charSpan(r.index, 3), msgCommentEndInAnotherBlock)
				panic(abortBlock{})
			}
			span := r.charSpan(r.index, 3)
			r.advance(3)
			r.dropPending()
			r.ctx.createHtmlComment(span)
			return
		}
		r.advance(1)
	}
}

// handleCdata skips to the end of a cdata section. The whole section
// stays raw text.
func (r *rewriter) handleCdata() {
	p := strings.Index(r.text[r.index:], "]]>")
	if p < 0 {
		r.index = len(r.text)
		return
	}
	r.index += p + 3
	r.ctx.setState(StatePcdata, r.point())
}

// handleXmlDeclaration skips to the '>' closing a doctype or xml
// declaration, tracking quoted sections so a '>' inside them does not
// end the declaration. The whole declaration stays raw text.
func (r *rewriter) handleXmlDeclaration() {
	for r.index < len(r.text) {
		switch r.text[r.index] {
		case '>':
			r.advance(1)
			r.ctx.setState(StatePcdata, r.point())
			return
		case '\'':
			r.advance(1)
			r.ctx.setState(StateXmlAttrValueSingle, r.point())
			return
		case '"':
			r.advance(1)
			r.ctx.setState(StateXmlAttrValueDouble, r.point())
			return
		}
		r.advance(1)
	}
}

func (r *rewriter) handleXmlQuoted(quote byte) {
	p := strings.IndexByte(r.text[r.index:], quote)
	if p < 0 {
		r.index = len(r.text)
		return
	}
	r.index += p + 1
	r.ctx.setState(StateXmlDeclaration, r.point())
}

// handleTagName consumes a tag name at the cursor. An empty name is the
// wildcard of a bare </>; for an open tag it is an error.
func (r *rewriter) handleTagName(isClose bool) {
	if core.IsWhitespace(int(r.text[r.index])) {
		r.reporter.Report(r.charSpan(r.index, 1), msgUnexpectedWsAfterLt)
		r.ctx.resetTag()
		r.ctx.setState(StatePcdata, r.point())
		return
	}
	r.advanceWhile(core.IsTagIdentifierChar)
	if r.index == r.offset {
		if isClose {
			r.ctx.setTagNameNode(nil, r.point())
			return
		}
		r.reporter.Report(r.charSpan(r.index, 1), msgExpectedTagName)
		r.ctx.resetTag()
		r.ctx.setState(StatePcdata, r.point())
		return
	}
	name := r.node.Substring(r.offset, r.index)
	r.dropPending()
	if !tagNamePattern.MatchString(name.Text()) {
		r.reporter.Report(name.SourceSpan(), msgBadTagName, name.Text())
		r.ctx.resetTag()
		r.ctx.setState(StatePcdata, r.point())
		return
	}
	r.ctx.setTagNameNode(name, r.point())
}

func (r *rewriter) handleAfterTagNameOrAttr() {
	if r.consumeWhitespace() > 0 {
		r.ctx.setState(StateBeforeAttrName, r.point())
		return
	}
	if r.tryCreateTagEnd() {
		return
	}
	r.reporter.Report(r.charSpan(r.index, 1), msgExpectedWsOrTagEnd)
	r.ctx.setState(StateBeforeAttrName, r.point())
}

func (r *rewriter) handleBeforeAttrName() {
	if r.tryCreateTagEnd() {
		return
	}
	if r.consumeWhitespace() > 0 {
		return
	}
	r.advanceWhile(core.IsTagIdentifierChar)
	if r.index == r.offset {
		r.reporter.Report(r.charSpan(r.index, 1), msgExpectedAttributeName)
		r.ctx.resetAttribute()
		r.advance(1)
		r.dropPending()
		return
	}
	name := r.node.Substring(r.offset, r.index)
	r.dropPending()
	if !attributeNamePattern.MatchString(name.Text()) {
		r.reporter.Report(name.SourceSpan(), msgBadAttributeName, name.Text())
	}
	r.ctx.startAttribute(name, r.point())
}

func (r *rewriter) handleAfterAttrName() {
	ws := r.consumeWhitespace()
	if r.index == len(r.text) {
		return
	}
	if r.text[r.index] == '=' {
		span := r.charSpan(r.index, 1)
		r.advance(1)
		r.dropPending()
		r.consumeWhitespace()
		r.ctx.setEqualsSignSpan(span)
		return
	}
	if ws > 0 {
		r.ctx.setState(StateBeforeAttrName, r.point())
	} else {
		r.ctx.setState(StateAfterTagNameOrAttr, r.point())
	}
}

func (r *rewriter) handleBeforeAttrValue() {
	if r.consumeWhitespace() > 0 {
		return
	}
	ch := r.text[r.index]
	if ch == '\'' || ch == '"' {
		quoting := soytree.QuotingDouble
		if ch == '\'' {
			quoting = soytree.QuotingSingle
		}
		start := r.node.LocationOf(r.index)
		r.advance(1)
		r.dropPending()
		r.ctx.startQuotedAttributeValue(quoting, start)
		return
	}
	if ch >= utf8.RuneSelf {
		if rn, size := utf8.DecodeRuneInString(r.text[r.index:]); core.IsSmartQuote(rn) {
			r.reporter.Report(r.charSpan(r.index, size), msgSmartQuote)
		}
	}
	r.ctx.setState(StateAttrValueUnquoted, r.point())
}

func (r *rewriter) handleUnquotedValue() {
	r.advanceWhile(core.IsUnquotedValueChar)
	r.emitPending()
	if r.index == len(r.text) {
		return
	}
	ch := int(r.text[r.index])
	if core.IsUnquotedValueDelimiter(ch) {
		r.ctx.createUnquotedAttributeValue(r.point())
		return
	}
	r.reporter.Report(r.charSpan(r.index, 1), msgIllegalAttributeChar, ch)
	r.advance(1)
	r.dropPending()
}

func (r *rewriter) handleQuotedValue(quote byte) {
	for r.index < len(r.text) {
		ch := r.text[r.index]
		if ch == quote {
			r.emitPending()
			if !r.ctx.hasQuotedValueStart() {
				r.reporter.Report(r.charSpan(r.index, 1), msgQuotedValueEndInAnotherBlock)
				panic(abortBlock{})
			}
			span := r.charSpan(r.index, 1)
			r.advance(1)
			r.dropPending()
			r.ctx.createQuotedAttributeValue(span)
			return
		}
		if quote == '"' && ch >= utf8.RuneSelf {
			rn, size := utf8.DecodeRuneInString(r.text[r.index:])
			if core.IsSmartQuote(rn) {
				r.reporter.Report(r.charSpan(r.index, size), msgSmartQuote)
			}
			r.advance(size)
			continue
		}
		r.advance(1)
	}
}

// handleJoinedWhitespace reacts to an empty raw text node, which marks a
// spot where line joining removed whitespace. Inside a tag it delimits
// attributes the way the removed whitespace would have.
func (r *rewriter) handleJoinedWhitespace(node *soytree.RawTextNode) {
	switch r.ctx.state {
	case StateAttrValueUnquoted:
		r.ctx.createUnquotedAttributeValue(node.SourceSpan().Start)
		r.ctx.setState(StateBeforeAttrName, node.SourceSpan().End)
	case StateAfterTagNameOrAttr, StateAfterAttrName:
		r.ctx.setState(StateBeforeAttrName, node.SourceSpan().End)
	}
}

// tryCreateTagEnd finishes the current tag if the cursor sits on '>' or
// '/>'.
func (r *rewriter) tryCreateTagEnd() bool {
	switch {
	case r.text[r.index] == '>':
		if !r.ctx.hasTagStart() {
			r.reporter.Report(r.charSpan(r.index, 1), msgTagEndInAnotherBlock)
			panic(abortBlock{})
		}
		span := r.charSpan(r.index, 1)
		r.advance(1)
		r.dropPending()
		r.ctx.createTag(false, span)
		return true
	case r.text[r.index] == '/' && r.index+1 < len(r.text) && r.text[r.index+1] == '>':
		if !r.ctx.hasTagStart() {
			r.reporter.Report(r.charSpan(r.index, 2), msgTagEndInAnotherBlock)
			panic(abortBlock{})
		}
		span := r.charSpan(r.index, 2)
		r.advance(2)
		r.dropPending()
		r.ctx.createTag(true, span)
		return true
	}
	return false
}

// emitPending flushes the scanned but unconsumed region to the sink the
// current state writes to.
func (r *rewriter) emitPending() {
	if r.offset >= r.index {
		return
	}
	part := r.node.Substring(r.offset, r.index)
	r.offset = r.index
	switch {
	case r.ctx.state.IsAttrValueState():
		r.ctx.addAttributeValuePart(part)
	case r.ctx.state == StateHtmlComment:
		r.ctx.addCommentChild(part)
	default:
		r.ctx.addContent(part)
	}
}

func (r *rewriter) advance(n int) {
	r.index += n
}

func (r *rewriter) advanceWhile(pred func(int) bool) {
	for r.index < len(r.text) && pred(int(r.text[r.index])) {
		r.index++
	}
}

func (r *rewriter) dropPending() {
	r.offset = r.index
}

func (r *rewriter) consumeWhitespace() int {
	begin := r.index
	for r.index < len(r.text) && core.IsWhitespace(int(r.text[r.index])) {
		r.index++
	}
	r.offset = r.index
	return r.index - begin
}

func (r *rewriter) matchPrefixIgnoreCase(s string) bool {
	if len(r.text)-r.index < len(s) {
		return false
	}
	return strings.EqualFold(r.text[r.index:r.index+len(s)], s)
}

// matchPrefixIgnoreCasePastEnd reports whether the text ends with a
// proper prefix of s starting at the cursor.
func (r *rewriter) matchPrefixIgnoreCasePastEnd(s string) bool {
	rest := r.text[r.index:]
	if len(rest) >= len(s) {
		return false
	}
	return strings.EqualFold(rest, s[:len(rest)])
}

func (r *rewriter) point() *util.ParseLocation {
	return r.node.LocationOf(r.index)
}

func (r *rewriter) charSpan(at, n int) *util.ParseSourceSpan {
	return r.node.SpanOf(at, at+n)
}

func isTagBoundaryChar(b byte) bool {
	return core.IsWhitespace(int(b)) || b == '/' || b == '>'
}

func contextHint(final State) string {
	switch {
	case final == StateAttrValueSingle || final == StateAttrValueDouble:
		return " Did you forget to close a quoted attribute value?"
	case final.IsTagState() || final.IsTagNameState():
		return " Did you forget to close the tag?"
	case final.IsRcdataState():
		return " Did you forget to close the raw text element?"
	case final == StateHtmlComment:
		return " Did you forget to close the comment?"
	}
	return ""
}

func spanOfStandalone(nodes []soytree.StandaloneNode) *util.ParseSourceSpan {
	if len(nodes) == 0 {
		return nil
	}
	return spanAcross(nodes)
}
