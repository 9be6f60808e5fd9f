package piper

// FindSegment resolves addr — a bare label or a "/"-joined path — to the
// nearest matching Instance, per spec §4.5. Resolution starts at the
// caller's enclosing container (self, if self is already a container) and
// ascends towards the root, pruning the branch it came from at each step so
// the search never re-visits it. A standalone leaf with no parent resolves
// only to itself, by label equality. Results are memoized per
// (root, caller path, query).
func (i *Instance) FindSegment(addr string) (*Instance, error) {
	query := NewPath(addr)
	root := i.Root()

	if i.parent == nil && i.IsLeaf() {
		if query.Len() == 1 && query.Name() == i.segment.label {
			return i, nil
		}
		return nil, newRoutingError(addr, i.path)
	}

	key := addressCacheKey{rootID: root.rootID, caller: i.path.String(), query: addr}
	if cached, ok := root.addrCache.get(key); ok {
		if cached == nil {
			return nil, newRoutingError(addr, i.path)
		}
		return cached, nil
	}

	start := i
	if !i.IsContainer() {
		start = i.parent
	}

	var referrer *Instance
	for cursor := start; cursor != nil; cursor, referrer = cursor.parent, cursor {
		if match := descendant(cursor, query.Split(), referrer); match != nil {
			root.addrCache.put(key, match)
			return match, nil
		}
	}

	root.addrCache.put(key, nil)
	return nil, newRoutingError(addr, i.path)
}

// descendant searches node's own subtree for path, refusing to recurse into
// referrer (the branch the search already came from). It tries, in order:
// greedy literal descent through the directory chain; a search of
// non-referrer container children for the lexicographically nearest match;
// and finally, if node's own label matches path's head, a retry with the
// head consumed and node pinned as its own referrer.
func descendant(node *Instance, path []string, referrer *Instance) *Instance {
	if len(path) == 0 {
		return nil
	}

	if match := directoryDescent(node, path); match != nil {
		return match
	}

	var candidates []*Instance
	for _, child := range node.children {
		if child == referrer || !child.IsContainer() {
			continue
		}
		if match := descendant(child, path, nil); match != nil {
			candidates = append(candidates, match)
		}
	}
	if len(candidates) > 0 {
		return nearest(candidates)
	}

	if node.segment.label != path[0] {
		return nil
	}
	return descendant(node, path[1:], node)
}

func directoryDescent(node *Instance, path []string) *Instance {
	cur := node
	for idx, label := range path {
		if cur.directory == nil {
			return nil
		}
		next, ok := cur.directory[label]
		if !ok {
			return nil
		}
		cur = next
		if idx == len(path)-1 {
			return cur
		}
	}
	return nil
}

func nearest(candidates []*Instance) *Instance {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if lessSplit(c.path.Split(), best.path.Split()) {
			best = c
		}
	}
	return best
}

func lessSplit(a, b []string) bool {
	for idx := 0; idx < len(a) && idx < len(b); idx++ {
		if a[idx] != b[idx] {
			return a[idx] < b[idx]
		}
	}
	return len(a) < len(b)
}
