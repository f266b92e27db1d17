package soyparse

import (
	"soyc-go/packages/compiler/soytree"
)

// rewriteBranches rewrites every branch of a control flow construct from
// the same starting state and merges the states the branches end in,
// pairwise in order. The merged state becomes the scan state after the
// construct; a branch whose exit cannot be merged with the accumulated
// state of the branches before it is reported and ignored for the merge.
func (r *rewriter) rewriteBranches(node *soytree.ControlFlowNode, start State) (*soytree.ControlFlowNode, State) {
	merged := start
	first := true
	branches := make([]*soytree.BranchNode, 0, len(node.Branches))
	for i, branch := range node.Branches {
		blockName := branchBlockName(node, branch, i)
		children, ending := r.rewriteBlock(blockName, branch.SourceSpan(), branch.Children, start)
		branches = append(branches, soytree.NewBranchNode(branch.Expr, branch.IsDefault, children, branch.SourceSpan()))
		if first {
			merged, first = ending, false
			continue
		}
		m, ok := Reconcile(merged, ending)
		if !ok {
			r.reporter.Report(branch.SourceSpan(), msgInconsistentBranchMerge, blockName, ending, merged)
			continue
		}
		merged = m
	}
	rebuilt := soytree.NewControlFlowNode(node.Command, node.Subject, branches, node.SourceSpan())
	return rebuilt, merged
}

func branchBlockName(node *soytree.ControlFlowNode, branch *soytree.BranchNode, i int) string {
	switch node.Command {
	case soytree.ControlFlowIf:
		switch {
		case branch.IsDefault:
			return "{else} block"
		case i == 0:
			return "{if} block"
		default:
			return "{elseif} block"
		}
	case soytree.ControlFlowSwitch:
		if branch.IsDefault {
			return "{default} block"
		}
		return "{case} block"
	default:
		if branch.IsDefault {
			return "{ifempty} block"
		}
		return "{for} loop body"
	}
}
