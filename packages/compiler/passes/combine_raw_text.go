package passes

import (
	"soyc-go/packages/compiler/soytree"
)

// CombineRawText returns the nodes with every run of adjacent raw text
// nodes merged into a single node and empty raw text nodes dropped,
// recursively through the whole tree. The returned children satisfy the
// normal form the other passes rely on: no two adjacent raw text nodes
// and no empty ones. The input is not mutated.
func CombineRawText(nodes []soytree.StandaloneNode) []soytree.StandaloneNode {
	out := make([]soytree.StandaloneNode, 0, len(nodes))
	var run []*soytree.RawTextNode
	flush := func() {
		if len(run) == 0 {
			return
		}
		if merged := soytree.ConcatRawText(run); merged != nil {
			out = append(out, merged)
		}
		run = run[:0]
	}
	for _, node := range nodes {
		if rt, ok := node.(*soytree.RawTextNode); ok {
			run = append(run, rt)
			continue
		}
		flush()
		out = append(out, combineInNode(node))
	}
	flush()
	return out
}

func combineInNode(node soytree.StandaloneNode) soytree.StandaloneNode {
	switch n := node.(type) {
	case *soytree.ControlFlowNode:
		branches := make([]*soytree.BranchNode, len(n.Branches))
		for i, br := range n.Branches {
			branches[i] = soytree.NewBranchNode(br.Expr, br.IsDefault, CombineRawText(br.Children), br.SourceSpan())
		}
		return soytree.NewControlFlowNode(n.Command, n.Subject, branches, n.SourceSpan())
	case *soytree.HtmlOpenTagNode:
		return soytree.NewHtmlOpenTagNode(n.TagName, CombineRawText(n.Attributes), n.SelfClosing, n.SourceSpan())
	case *soytree.HtmlCloseTagNode:
		return soytree.NewHtmlCloseTagNode(n.TagName, CombineRawText(n.Attributes), n.SourceSpan())
	case *soytree.HtmlAttributeNode:
		if n.Value == nil {
			return n
		}
		value := combineInNode(n.Value).(*soytree.HtmlAttributeValueNode)
		return soytree.NewHtmlAttributeNode(n.Name, value, n.EqualsSpan(), n.SourceSpan())
	case *soytree.HtmlAttributeValueNode:
		return soytree.NewHtmlAttributeValueNode(n.Quoting, CombineRawText(n.Children), n.SourceSpan())
	case *soytree.HtmlCommentNode:
		return soytree.NewHtmlCommentNode(CombineRawText(n.Children), n.SourceSpan())
	default:
		return node
	}
}
