package topology

// DeriveRelations computes the edges connecting one node to nodes already
// present in the graph, using the entity-type-specific rules:
//
//   - Device: sub-link resolution against every other device in the graph,
//     plus a device-level edge to its declared parent when present.
//   - SubComponent: sub-link resolution restricted to its own sub-component.
//   - Generic: at most one edge to its declared parent node.
//   - RootMarker: never produces relations.
//
// Direction of sub-link edges is normalized so the end whose sub-component
// belongs to the current node is the child.
func DeriveRelations(g Graph, n Node, links LinkTable) []Relation {
	switch n.Type {
	case Device:
		rels := deriveSubLinkRelations(g, n, links[n.SourceID], "")
		if parent, ok := g.NodeByDevice(n.ParentID); ok && parent.ID != n.ID {
			rels = append(rels, Relation{
				ParentID:   parent.ID,
				ChildID:    n.ID,
				ParentType: Device,
				ChildType:  Device,
			})
		}
		return rels

	case SubComponent:
		return deriveSubLinkRelations(g, n, links[n.SourceID], n.SubID)

	case Generic:
		if n.ParentID == "" {
			return nil
		}
		parent, ok := g.NodeBySource(n.ParentID)
		if !ok || parent.ID == n.ID {
			return nil
		}
		return []Relation{{
			ParentID:   parent.ID,
			ChildID:    n.ID,
			ParentType: Generic,
			ChildType:  Generic,
		}}

	default: // RootMarker
		return nil
	}
}

// deriveSubLinkRelations resolves configured sub-links for one node. When
// onlySub is non-empty the resolution is restricted to links touching that
// specific sub-component.
func deriveSubLinkRelations(g Graph, n Node, links []SubLink, onlySub string) []Relation {
	var rels []Relation
	for _, l := range links {
		if onlySub != "" && l.LocalSub != onlySub && l.RemoteSub != onlySub {
			continue
		}

		// Normalize so the current node's side is the child end.
		localSub, remoteSub := l.LocalSub, l.RemoteSub
		remoteDevice := l.RemoteDevice
		if onlySub != "" && l.RemoteSub == onlySub {
			localSub, remoteSub = l.RemoteSub, l.LocalSub
			remoteDevice = l.LocalDevice
		}

		other, ok := g.NodeByDevice(remoteDevice)
		if !ok {
			other, ok = g.NodeBySub(remoteSub)
		}
		if !ok || other.ID == n.ID {
			continue
		}

		parentType, childType := SubComponent, SubComponent
		if remoteSub == "" {
			parentType = other.Type
		}
		if localSub == "" {
			childType = n.Type
		}

		rels = append(rels, Relation{
			ParentID:   other.ID,
			ChildID:    n.ID,
			ParentType: parentType,
			ChildType:  childType,
			ParentSub:  remoteSub,
			ChildSub:   localSub,
			LinkColor:  l.Color,
		})
	}
	return rels
}

// connectOrphans appends fallback edges to the root marker so the graph
// stays a single weakly-connected component: every component not already
// containing node 0 is anchored through its lowest-id node. A node that
// derived no relations at all is a singleton component and always gets an
// anchor edge.
func connectOrphans(g Graph) []Relation {
	find := make(map[int]int, len(g.Nodes))
	for _, n := range g.Nodes {
		find[n.ID] = n.ID
	}
	root := func(id int) int {
		for find[id] != id {
			find[id] = find[find[id]]
			id = find[id]
		}
		return id
	}
	union := func(a, b int) {
		ra, rb := root(a), root(b)
		if ra != rb {
			find[ra] = rb
		}
	}

	for _, r := range g.Relations {
		union(r.ParentID, r.ChildID)
	}

	var rels []Relation
	for _, n := range g.Nodes {
		if n.ID == 0 {
			continue
		}
		if root(n.ID) == root(0) {
			continue
		}
		rels = append(rels, Relation{
			ParentID:   0,
			ChildID:    n.ID,
			ParentType: RootMarker,
			ChildType:  n.Type,
		})
		union(0, n.ID)
	}
	return rels
}
