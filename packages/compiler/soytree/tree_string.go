package soytree

import (
	"fmt"
	"strings"
)

// TreeString renders nodes as an indented outline, one node per line, used
// by golden tests and the structure command. Raw text is shown quoted,
// print commands show their expression and html nodes show their shape.
func TreeString(nodes []StandaloneNode) string {
	v := &treeStringVisitor{}
	VisitAll(v, nodes, nil)
	return v.sb.String()
}

// treeStringVisitor renders one line per node, carrying the current indent
// depth while it recurses.
type treeStringVisitor struct {
	sb    strings.Builder
	depth int
}

func (v *treeStringVisitor) line(format string, args ...interface{}) {
	v.sb.WriteString(strings.Repeat("  ", v.depth))
	fmt.Fprintf(&v.sb, format, args...)
	v.sb.WriteByte('\n')
}

func (v *treeStringVisitor) children(nodes []StandaloneNode) {
	v.depth++
	for _, n := range nodes {
		n.Visit(v, nil)
	}
	v.depth--
}

func (v *treeStringVisitor) VisitRawText(n *RawTextNode, _ interface{}) interface{} {
	v.line("RawText %q", n.Text())
	return nil
}

func (v *treeStringVisitor) VisitPrint(n *PrintNode, _ interface{}) interface{} {
	v.line("Print {%s}", n.Expr.Text)
	return nil
}

func (v *treeStringVisitor) VisitControlFlow(n *ControlFlowNode, _ interface{}) interface{} {
	if n.Subject != nil {
		v.line("ControlFlow %s %s", n.Command, n.Subject.Text)
	} else {
		v.line("ControlFlow %s", n.Command)
	}
	v.depth++
	for _, b := range n.Branches {
		b.Visit(v, nil)
	}
	v.depth--
	return nil
}

func (v *treeStringVisitor) VisitBranch(n *BranchNode, _ interface{}) interface{} {
	switch {
	case n.IsDefault:
		v.line("Branch default")
	case n.Expr != nil:
		v.line("Branch %s", n.Expr.Text)
	default:
		v.line("Branch")
	}
	v.children(n.Children)
	return nil
}

func (v *treeStringVisitor) VisitHtmlOpenTag(n *HtmlOpenTagNode, _ interface{}) interface{} {
	suffix := ""
	if n.SelfClosing {
		suffix = " self-closing"
	}
	v.line("HtmlOpenTag <%s>%s", tagNameLabel(n.TagName), suffix)
	v.children(n.Attributes)
	return nil
}

func (v *treeStringVisitor) VisitHtmlCloseTag(n *HtmlCloseTagNode, _ interface{}) interface{} {
	v.line("HtmlCloseTag </%s>", tagNameLabel(n.TagName))
	v.children(n.Attributes)
	return nil
}

func (v *treeStringVisitor) VisitHtmlAttribute(n *HtmlAttributeNode, _ interface{}) interface{} {
	v.line("HtmlAttribute")
	v.depth++
	n.Name.Visit(v, nil)
	if n.Value != nil {
		n.Value.Visit(v, nil)
	}
	v.depth--
	return nil
}

func (v *treeStringVisitor) VisitHtmlAttributeValue(n *HtmlAttributeValueNode, _ interface{}) interface{} {
	v.line("HtmlAttributeValue quoting=%s", n.Quoting)
	v.children(n.Children)
	return nil
}

func (v *treeStringVisitor) VisitHtmlComment(n *HtmlCommentNode, _ interface{}) interface{} {
	v.line("HtmlComment")
	v.children(n.Children)
	return nil
}

func tagNameLabel(t *TagName) string {
	switch {
	case t.IsWildcard():
		return ""
	case t.IsStatic():
		if rt, ok := t.Node().(*RawTextNode); ok {
			return rt.Text()
		}
		return t.StaticName()
	default:
		return SourceStringOf(t.Node())
	}
}
