package domain

import "sort"

// ChartNode is one account in the hierarchical chart of accounts, with its
// children resolved via the control-account relation.
type ChartNode struct {
	Account  Account      `json:"account"`
	Children []*ChartNode `json:"children,omitempty"`
}

// BuildAccountForest materializes the chart-of-accounts hierarchy from a flat
// account list. Roots are accounts without a control account; accounts whose
// control account is absent from the input (orphans) become additional roots
// rather than being dropped. Siblings are ordered by account code.
//
// The control-account graph is not guaranteed acyclic by the store, so the
// walk carries an explicit visited set: members of a cycle are promoted to
// roots (lowest code first) instead of looping forever.
func BuildAccountForest(accounts []Account) []*ChartNode {
	sorted := make([]Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	nodes := make(map[int64]*ChartNode, len(sorted))
	for i := range sorted {
		nodes[sorted[i].Code] = &ChartNode{Account: sorted[i]}
	}

	var roots []*ChartNode
	parents := make(map[int64]*ChartNode, len(sorted))
	for _, acc := range sorted {
		node := nodes[acc.Code]
		if acc.ControlAccountCode == nil || *acc.ControlAccountCode == acc.Code {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*acc.ControlAccountCode]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
		parents[acc.Code] = parent
	}

	visited := make(map[int64]bool, len(nodes))
	for _, root := range roots {
		markReachable(root, visited)
	}

	// Anything unreachable sits inside a control-account cycle. Promoting the
	// lowest-code member to a root must also cut its inbound edge, or a later
	// walk would loop.
	for _, acc := range sorted {
		if visited[acc.Code] {
			continue
		}
		node := nodes[acc.Code]
		if parent := parents[acc.Code]; parent != nil {
			parent.Children = removeChild(parent.Children, node)
		}
		roots = append(roots, node)
		markReachable(node, visited)
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Account.Code < roots[j].Account.Code })
	return roots
}

func removeChild(children []*ChartNode, target *ChartNode) []*ChartNode {
	out := children[:0]
	for _, c := range children {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

func markReachable(node *ChartNode, visited map[int64]bool) {
	if visited[node.Account.Code] {
		return
	}
	visited[node.Account.Code] = true
	for _, child := range node.Children {
		markReachable(child, visited)
	}
}

// WalkChart visits the forest pre-order, reporting each node's depth.
func WalkChart(roots []*ChartNode, fn func(node *ChartNode, depth int)) {
	var walk func(n *ChartNode, depth int)
	walk = func(n *ChartNode, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
}
