package rsg

// node is the arena-internal representation of one scene graph element: a
// parent pointer, sibling doubly-linked list, child list head/tail, and the
// set of component handles attached to it. Nodes never hold pointers to each
// other directly — everything is a NodeHandle resolved back through the
// owning Scene's arena, so the tree survives Scene value copies and never
// dangles after a Remove.
type node struct {
	self         NodeHandle
	parent       NodeHandle
	firstChild   NodeHandle
	lastChild    NodeHandle
	prevSibling  NodeHandle
	nextSibling  NodeHandle
	componentLinks ComponentLinks
}

// isClean reports whether a freshly constructed node has not yet been
// inserted anywhere. Mirrors the precondition the original scene graph
// asserts on every node handed to an insertion call.
func (n *node) isClean() bool {
	return n.self.IsNil() && n.parent.IsNil() &&
		n.firstChild.IsNil() && n.lastChild.IsNil() &&
		n.prevSibling.IsNil() && n.nextSibling.IsNil()
}

// NewNode builds a detached node carrying links. Pass it to one of Scene's
// insertion methods (SetRoot, Append, Prepend, ...) to attach it to a tree;
// it panics if handed to an insertion method while already attached.
func NewNode(links ComponentLinks) *node {
	return &node{componentLinks: links}
}

// Links returns the six structural handles describing n's position in the
// tree: (self, parent, firstChild, lastChild, prevSibling, nextSibling).
// Any of these may be the nil Handle.
func (n *node) Links() (self, parent, firstChild, lastChild, prevSibling, nextSibling NodeHandle) {
	return n.self, n.parent, n.firstChild, n.lastChild, n.prevSibling, n.nextSibling
}

// ComponentLinks returns the component handles attached to n.
func (n *node) ComponentLinks() ComponentLinks {
	return n.componentLinks
}

// --- depth-first pre-order traversal ---

type iterState uint8

const (
	iterDone iterState = iota
	iterAcceptAndVisitChildren
	iterVisitSiblings
)

// TreeIter walks a subtree depth-first, pre-order, the same sequence the
// render-list builder and the inheritance passes consume. Obtain one via
// Scene.Traverse.
type TreeIter struct {
	scene    *Scene
	startKey NodeHandle
	state    iterState
	key      NodeHandle
	depth    uint32
}

// Next advances the iterator and returns the next (handle, depth) pair.
// The start node itself is yielded at depth 0. Returns ok=false once the
// subtree is exhausted.
func (it *TreeIter) Next() (key NodeHandle, depth uint32, ok bool) {
	for it.state != iterDone {
		switch it.state {
		case iterAcceptAndVisitChildren:
			n := it.scene.arena.MustGet(it.key)
			curKey, curDepth := it.key, it.depth
			if !n.firstChild.IsNil() {
				it.key, it.depth = n.firstChild, it.depth+1
				it.state = iterAcceptAndVisitChildren
			} else {
				it.state = iterVisitSiblings
			}
			return curKey, curDepth, true
		case iterVisitSiblings:
			if it.key == it.startKey {
				it.state = iterDone
				continue
			}
			n := it.scene.arena.MustGet(it.key)
			if !n.nextSibling.IsNil() {
				it.key, it.state = n.nextSibling, iterAcceptAndVisitChildren
			} else {
				it.key, it.depth, it.state = n.parent, it.depth-1, iterVisitSiblings
			}
		}
	}
	return NodeHandle{}, 0, false
}

// Traverse returns an iterator over the subtree rooted at start, visiting
// start itself first, depth-first, pre-order.
func (s *Scene) Traverse(start NodeHandle) *TreeIter {
	return &TreeIter{scene: s, startKey: start, state: iterAcceptAndVisitChildren, key: start, depth: 0}
}

// AncestorIter walks from a node up through its ancestors to the root.
type AncestorIter struct {
	scene *Scene
	next  NodeHandle
	ok    bool
}

// Next returns the next ancestor handle, or ok=false once the root's parent
// (which does not exist) would be reached.
func (it *AncestorIter) Next() (key NodeHandle, ok bool) {
	if !it.ok {
		return NodeHandle{}, false
	}
	key = it.next
	n := it.scene.arena.MustGet(key)
	it.next = n.parent
	it.ok = !it.next.IsNil()
	return key, true
}

// Ancestors returns an iterator over the strict ancestors of start (not
// including start itself), nearest first.
func (s *Scene) Ancestors(start NodeHandle) *AncestorIter {
	n := s.arena.MustGet(start)
	return &AncestorIter{scene: s, next: n.parent, ok: !n.parent.IsNil()}
}

// AncestorsWithNode returns an iterator over start and then its ancestors,
// nearest first.
func (s *Scene) AncestorsWithNode(start NodeHandle) *AncestorIter {
	return &AncestorIter{scene: s, next: start, ok: !start.IsNil()}
}
