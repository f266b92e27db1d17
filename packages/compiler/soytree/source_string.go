package soytree

import "strings"

// SourceString renders a node list back to template source. Raw text is
// escaped so the result parses to the same text: literal braces come out as
// {lb} and {rb}.
func SourceString(nodes []StandaloneNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		appendSourceString(&sb, n)
	}
	return sb.String()
}

// SourceStringOf renders a single node back to template source.
func SourceStringOf(node Node) string {
	var sb strings.Builder
	appendSourceString(&sb, node)
	return sb.String()
}

func appendSourceString(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *RawTextNode:
		escapeRawText(sb, n.text)
	case *PrintNode:
		sb.WriteString("{")
		sb.WriteString(n.Expr.Text)
		sb.WriteString("}")
	case *ControlFlowNode:
		appendControlFlowString(sb, n)
	case *BranchNode:
		for _, c := range n.Children {
			appendSourceString(sb, c)
		}
	case *HtmlOpenTagNode:
		sb.WriteString("<")
		if n.TagName.Node() != nil {
			appendSourceString(sb, n.TagName.Node())
		}
		for _, a := range n.Attributes {
			sb.WriteString(" ")
			appendSourceString(sb, a)
		}
		if n.SelfClosing {
			sb.WriteString("/>")
		} else {
			sb.WriteString(">")
		}
	case *HtmlCloseTagNode:
		sb.WriteString("</")
		if n.TagName.Node() != nil {
			appendSourceString(sb, n.TagName.Node())
		}
		for _, a := range n.Attributes {
			sb.WriteString(" ")
			appendSourceString(sb, a)
		}
		sb.WriteString(">")
	case *HtmlAttributeNode:
		appendSourceString(sb, n.Name)
		if n.Value != nil {
			sb.WriteString("=")
			appendSourceString(sb, n.Value)
		}
	case *HtmlAttributeValueNode:
		sb.WriteString(n.Quoting.Quote())
		for _, c := range n.Children {
			appendSourceString(sb, c)
		}
		sb.WriteString(n.Quoting.Quote())
	case *HtmlCommentNode:
		sb.WriteString("<!--")
		for _, c := range n.Children {
			appendSourceString(sb, c)
		}
		sb.WriteString("-->")
	}
}

func appendControlFlowString(sb *strings.Builder, n *ControlFlowNode) {
	switch n.Command {
	case ControlFlowIf:
		for i, b := range n.Branches {
			switch {
			case i == 0:
				sb.WriteString("{if ")
				sb.WriteString(b.Expr.Text)
				sb.WriteString("}")
			case b.IsDefault:
				sb.WriteString("{else}")
			default:
				sb.WriteString("{elseif ")
				sb.WriteString(b.Expr.Text)
				sb.WriteString("}")
			}
			appendSourceString(sb, b)
		}
		sb.WriteString("{/if}")
	case ControlFlowSwitch:
		sb.WriteString("{switch ")
		sb.WriteString(n.Subject.Text)
		sb.WriteString("}")
		for _, b := range n.Branches {
			if b.IsDefault {
				sb.WriteString("{default}")
			} else {
				sb.WriteString("{case ")
				sb.WriteString(b.Expr.Text)
				sb.WriteString("}")
			}
			appendSourceString(sb, b)
		}
		sb.WriteString("{/switch}")
	case ControlFlowFor:
		sb.WriteString("{for ")
		sb.WriteString(n.Subject.Text)
		sb.WriteString("}")
		for _, b := range n.Branches {
			if b.IsDefault {
				sb.WriteString("{ifempty}")
			}
			appendSourceString(sb, b)
		}
		sb.WriteString("{/for}")
	}
}

func escapeRawText(sb *strings.Builder, text string) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			sb.WriteString("{lb}")
		case '}':
			sb.WriteString("{rb}")
		default:
			sb.WriteByte(text[i])
		}
	}
}
