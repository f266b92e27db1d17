package passes

import (
	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

// desugarer renders html nodes back into the raw text they came from.
// Two flags thread the spacing rules through control flow: an attribute
// rendered where needsSpaceForAttribute is set must emit its own leading
// space, and a self closing tag whose last attribute value was unquoted
// needs a space before '/>' so the slash is not read as part of the
// value.
type desugarer struct {
	needsSpaceForAttribute   bool
	needsSpaceSelfClosingTag bool
}

// Desugar returns the nodes with all html structure rendered back into
// raw text, coalesced into normal form. Control flow keeps its shape;
// only the html nodes inside it are flattened. The input is not mutated.
func Desugar(nodes []soytree.StandaloneNode) []soytree.StandaloneNode {
	d := &desugarer{}
	return CombineRawText(d.rewriteNodes(nodes))
}

func (d *desugarer) rewriteNodes(nodes []soytree.StandaloneNode) []soytree.StandaloneNode {
	out := make([]soytree.StandaloneNode, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, d.rewriteNode(node)...)
	}
	return out
}

func (d *desugarer) rewriteNode(node soytree.StandaloneNode) []soytree.StandaloneNode {
	switch n := node.(type) {
	case *soytree.HtmlOpenTagNode:
		return d.rewriteOpenTag(n)
	case *soytree.HtmlCloseTagNode:
		return d.rewriteCloseTag(n)
	case *soytree.HtmlAttributeNode:
		return d.rewriteAttribute(n)
	case *soytree.HtmlAttributeValueNode:
		return d.rewriteValue(n)
	case *soytree.HtmlCommentNode:
		return d.rewriteComment(n)
	case *soytree.ControlFlowNode:
		return []soytree.StandaloneNode{d.rewriteControlFlow(n)}
	default:
		return []soytree.StandaloneNode{node}
	}
}

func (d *desugarer) rewriteOpenTag(n *soytree.HtmlOpenTagNode) []soytree.StandaloneNode {
	d.needsSpaceForAttribute = true
	out := []soytree.StandaloneNode{markup("<", n.SourceSpan().Start)}
	if name := n.TagName.Node(); name != nil {
		out = append(out, name)
	}
	out = append(out, d.rewriteNodes(n.Attributes)...)
	switch {
	case n.SelfClosing && d.needsSpaceSelfClosingTag:
		out = append(out, markup(" />", n.SourceSpan().End))
	case n.SelfClosing:
		out = append(out, markup("/>", n.SourceSpan().End))
	default:
		out = append(out, markup(">", n.SourceSpan().End))
	}
	d.needsSpaceForAttribute = false
	d.needsSpaceSelfClosingTag = false
	return out
}

func (d *desugarer) rewriteCloseTag(n *soytree.HtmlCloseTagNode) []soytree.StandaloneNode {
	d.needsSpaceForAttribute = true
	out := []soytree.StandaloneNode{markup("</", n.SourceSpan().Start)}
	if name := n.TagName.Node(); name != nil {
		out = append(out, name)
	}
	out = append(out, d.rewriteNodes(n.Attributes)...)
	out = append(out, markup(">", n.SourceSpan().End))
	d.needsSpaceForAttribute = false
	d.needsSpaceSelfClosingTag = false
	return out
}

func (d *desugarer) rewriteAttribute(n *soytree.HtmlAttributeNode) []soytree.StandaloneNode {
	var out []soytree.StandaloneNode
	if d.needsSpaceForAttribute {
		out = append(out, markup(" ", n.SourceSpan().Start))
	} else {
		d.needsSpaceForAttribute = true
	}
	out = append(out, n.Name)
	if n.Value != nil {
		eq := n.EqualsSpan()
		if eq == nil {
			eq = zeroSpan(n.Value.SourceSpan().Start)
		}
		out = append(out, soytree.NewSpecialCharNode("=", eq))
		out = append(out, d.rewriteValue(n.Value)...)
	}
	return out
}

func (d *desugarer) rewriteValue(n *soytree.HtmlAttributeValueNode) []soytree.StandaloneNode {
	if n.Quoting == soytree.QuotingNone {
		out := d.rewriteNodes(n.Children)
		d.needsSpaceSelfClosingTag = true
		return out
	}
	quote := n.Quoting.Quote()
	out := []soytree.StandaloneNode{markup(quote, n.SourceSpan().Start)}
	out = append(out, d.rewriteNodes(n.Children)...)
	out = append(out, markup(quote, n.SourceSpan().End))
	d.needsSpaceSelfClosingTag = false
	return out
}

func (d *desugarer) rewriteComment(n *soytree.HtmlCommentNode) []soytree.StandaloneNode {
	out := []soytree.StandaloneNode{markup("<!--", n.SourceSpan().Start)}
	out = append(out, d.rewriteNodes(n.Children)...)
	out = append(out, markup("-->", n.SourceSpan().End))
	return out
}

// rewriteControlFlow flattens the html inside every branch. Each branch
// starts from the flags in force before the construct; the flags after
// it are the union of what the branches left behind, since any one of
// them may have executed.
func (d *desugarer) rewriteControlFlow(n *soytree.ControlFlowNode) *soytree.ControlFlowNode {
	startAttr, startSelf := d.needsSpaceForAttribute, d.needsSpaceSelfClosingTag
	endAttr, endSelf := false, false
	branches := make([]*soytree.BranchNode, len(n.Branches))
	for i, br := range n.Branches {
		d.needsSpaceForAttribute, d.needsSpaceSelfClosingTag = startAttr, startSelf
		children := d.rewriteNodes(br.Children)
		branches[i] = soytree.NewBranchNode(br.Expr, br.IsDefault, children, br.SourceSpan())
		endAttr = endAttr || d.needsSpaceForAttribute
		endSelf = endSelf || d.needsSpaceSelfClosingTag
	}
	d.needsSpaceForAttribute, d.needsSpaceSelfClosingTag = endAttr, endSelf
	return soytree.NewControlFlowNode(n.Command, n.Subject, branches, n.SourceSpan())
}

// markup makes a raw text node for a synthesized piece of markup. The
// node is anchored at a single source point; the original characters may
// not exist in the source at all.
func markup(text string, at *util.ParseLocation) *soytree.RawTextNode {
	return soytree.NewSpecialCharNode(text, zeroSpan(at))
}

func zeroSpan(at *util.ParseLocation) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(at, at, nil, nil)
}
