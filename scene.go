package rsg

// Scene owns the node arena, the single root, and the current Observer.
// All structural mutation goes through Scene's methods; nodes never
// reference each other directly, only by NodeHandle back into the arena,
// so a Scene value is the sole owner of the tree's shape.
type Scene struct {
	arena    *slotArena[nodeKey, node]
	rootKey  NodeHandle
	observer Observer
	debug    bool
}

// NewScene returns an empty scene with no root and no observer.
func NewScene() *Scene {
	return &Scene{arena: newSlotArena[nodeKey, node]()}
}

// SetDebug enables or disables the advisory stderr warnings in debug.go
// (deep trees, large child counts) for this scene.
func (s *Scene) SetDebug(enabled bool) {
	s.debug = enabled
}

// SetObserver installs observer as the scene's sole mutation listener,
// replacing any previous one.
func (s *Scene) SetObserver(observer Observer) {
	s.observer = observer
}

// TakeObserver detaches and returns the current observer, leaving the
// scene with none. The usual per-frame pattern is: install an observer,
// mutate the scene, TakeObserver to read back what changed, reset, and
// reinstall it for the next frame.
func (s *Scene) TakeObserver() Observer {
	o := s.observer
	s.observer = nil
	return o
}

func (s *Scene) notify(event Event) {
	if s.observer != nil {
		s.observer.Notify(event)
	}
}

// Root returns the scene's root handle, or the nil Handle if SetRoot has
// not been called yet.
func (s *Scene) Root() NodeHandle {
	return s.rootKey
}

// NodeCount returns the number of live nodes in the scene.
func (s *Scene) NodeCount() int {
	return s.arena.Len()
}

// IsValid reports whether h refers to a live node currently attached to the
// tree (has a parent, or is the root).
func (s *Scene) IsValid(h NodeHandle) bool {
	n := s.arena.Get(h)
	if n == nil {
		return false
	}
	return !n.parent.IsNil() || n.self == s.rootKey
}

// ComponentLinks returns the component handles attached to h.
func (s *Scene) ComponentLinks(h NodeHandle) ComponentLinks {
	return s.arena.MustGet(h).componentLinks
}

// SetRoot installs n as the scene's root. Panics if a root already exists
// or n is not a freshly constructed, unattached node.
func (s *Scene) SetRoot(n *node) NodeHandle {
	if !s.rootKey.IsNil() {
		panic("rsg: scene already has a root")
	}
	if !n.isClean() {
		panic("rsg: SetRoot requires a freshly constructed node")
	}
	key := s.arena.Insert(*n)
	// Mark the caller's node as used, so handing it to another insertion panics.
	n.self = key
	s.rootKey = key
	root := s.arena.MustGet(key)
	root.self = key
	s.notify(Event{Kind: SubtreeAddedOrReattached, Node: key})
	return key
}

func (s *Scene) appendImpl(parentKey, nodeKey NodeHandle) {
	parentNode := s.arena.MustGet(parentKey)
	if parentNode.firstChild.IsNil() {
		parentNode.firstChild = nodeKey
	}
	oldLast := parentNode.lastChild
	parentNode.lastChild = nodeKey

	newNode := s.arena.MustGet(nodeKey)
	newNode.self = nodeKey
	newNode.parent = parentKey
	newNode.prevSibling = oldLast
	newNode.nextSibling = NodeHandle{}

	if !oldLast.IsNil() {
		s.arena.MustGet(oldLast).nextSibling = nodeKey
	}
	if s.debug {
		debugCheckTreeDepth(s, nodeKey)
		debugCheckChildCount(s, parentKey)
	}
}

// Append inserts n as the new last child of parentKey. Panics if n is not
// freshly constructed or parentKey is not attached to the tree.
func (s *Scene) Append(parentKey NodeHandle, n *node) NodeHandle {
	s.checkAddPrecondition(n, parentKey)
	nodeKey := s.arena.Insert(*n)
	n.self = nodeKey
	s.appendImpl(parentKey, nodeKey)
	s.notify(Event{Kind: SubtreeAddedOrReattached, Node: nodeKey})
	return nodeKey
}

func (s *Scene) prependImpl(parentKey, nodeKey NodeHandle) {
	parentNode := s.arena.MustGet(parentKey)
	oldFirst := parentNode.firstChild
	parentNode.firstChild = nodeKey
	if parentNode.lastChild.IsNil() {
		parentNode.lastChild = nodeKey
	}

	newNode := s.arena.MustGet(nodeKey)
	newNode.self = nodeKey
	newNode.parent = parentKey
	newNode.prevSibling = NodeHandle{}
	newNode.nextSibling = oldFirst

	if !oldFirst.IsNil() {
		s.arena.MustGet(oldFirst).prevSibling = nodeKey
	}
	if s.debug {
		debugCheckTreeDepth(s, nodeKey)
		debugCheckChildCount(s, parentKey)
	}
}

// Prepend inserts n as the new first child of parentKey.
func (s *Scene) Prepend(parentKey NodeHandle, n *node) NodeHandle {
	s.checkAddPrecondition(n, parentKey)
	nodeKey := s.arena.Insert(*n)
	n.self = nodeKey
	s.prependImpl(parentKey, nodeKey)
	s.notify(Event{Kind: SubtreeAddedOrReattached, Node: nodeKey})
	return nodeKey
}

func (s *Scene) insertBeforeImpl(beforeKey, nodeKey NodeHandle) {
	parentKey := s.arena.MustGet(beforeKey).parent
	beforeNode := s.arena.MustGet(beforeKey)
	oldPrev := beforeNode.prevSibling
	beforeNode.prevSibling = nodeKey

	newNode := s.arena.MustGet(nodeKey)
	newNode.self = nodeKey
	newNode.parent = parentKey
	newNode.prevSibling = oldPrev
	newNode.nextSibling = beforeKey

	if !oldPrev.IsNil() {
		s.arena.MustGet(oldPrev).nextSibling = nodeKey
	} else {
		s.arena.MustGet(parentKey).firstChild = nodeKey
	}
}

// InsertBefore inserts n as the immediate previous sibling of beforeKey.
// Panics if beforeKey is the scene root (the root has no siblings).
func (s *Scene) InsertBefore(beforeKey NodeHandle, n *node) NodeHandle {
	if beforeKey == s.rootKey {
		panic("rsg: cannot insert a sibling of the root")
	}
	s.checkAddPrecondition(n, beforeKey)
	nodeKey := s.arena.Insert(*n)
	n.self = nodeKey
	s.insertBeforeImpl(beforeKey, nodeKey)
	s.notify(Event{Kind: SubtreeAddedOrReattached, Node: nodeKey})
	return nodeKey
}

func (s *Scene) insertAfterImpl(afterKey, nodeKey NodeHandle) {
	parentKey := s.arena.MustGet(afterKey).parent
	afterNode := s.arena.MustGet(afterKey)
	oldNext := afterNode.nextSibling
	afterNode.nextSibling = nodeKey

	newNode := s.arena.MustGet(nodeKey)
	newNode.self = nodeKey
	newNode.parent = parentKey
	newNode.prevSibling = afterKey
	newNode.nextSibling = oldNext

	if !oldNext.IsNil() {
		s.arena.MustGet(oldNext).prevSibling = nodeKey
	} else {
		s.arena.MustGet(parentKey).lastChild = nodeKey
	}
}

// InsertAfter inserts n as the immediate next sibling of afterKey. Panics
// if afterKey is the scene root.
func (s *Scene) InsertAfter(afterKey NodeHandle, n *node) NodeHandle {
	if afterKey == s.rootKey {
		panic("rsg: cannot insert a sibling of the root")
	}
	s.checkAddPrecondition(n, afterKey)
	nodeKey := s.arena.Insert(*n)
	n.self = nodeKey
	s.insertAfterImpl(afterKey, nodeKey)
	s.notify(Event{Kind: SubtreeAddedOrReattached, Node: nodeKey})
	return nodeKey
}

func (s *Scene) checkAddPrecondition(n *node, relativeKey NodeHandle) {
	if !n.isClean() {
		panic("rsg: insertion requires a freshly constructed node")
	}
	if !s.IsValid(relativeKey) {
		panic("rsg: insertion relative to an invalid node")
	}
}

// --- transactional subtree add ---

type subtreeAddOp uint8

const (
	opAppend subtreeAddOp = iota
	opPrepend
)

type transactionEntry struct {
	parentKey NodeHandle
	nodeKey   NodeHandle
	op        subtreeAddOp
}

// SubtreeAddTransaction batches several Append/Prepend calls so that,
// once Committed, only a single SubtreeAddedOrReattached notification
// fires for the whole new subtree rather than one per node. Nodes
// recorded with AppendWithTransaction/PrependWithTransaction are inserted
// into the arena immediately (so they can be used as a parent for a
// subsequent entry in the same transaction) but are not linked into the
// tree until Commit.
type SubtreeAddTransaction struct {
	entries []transactionEntry
}

// NewSubtreeAddTransaction returns an empty transaction.
func NewSubtreeAddTransaction() *SubtreeAddTransaction {
	return &SubtreeAddTransaction{}
}

func (s *Scene) recordAddTransaction(op subtreeAddOp, parentKey NodeHandle, n *node, tx *SubtreeAddTransaction) NodeHandle {
	if !n.isClean() {
		panic("rsg: insertion requires a freshly constructed node")
	}
	if len(tx.entries) == 0 && !s.IsValid(parentKey) {
		panic("rsg: insertion relative to an invalid node")
	}
	nodeKey := s.arena.Insert(*n)
	n.self = nodeKey
	tx.entries = append(tx.entries, transactionEntry{parentKey: parentKey, nodeKey: nodeKey, op: op})
	return nodeKey
}

// AppendWithTransaction records an append of n under parentKey, deferred
// until tx is Committed. parentKey may itself be a handle returned earlier
// in the same transaction.
func (s *Scene) AppendWithTransaction(parentKey NodeHandle, n *node, tx *SubtreeAddTransaction) NodeHandle {
	return s.recordAddTransaction(opAppend, parentKey, n, tx)
}

// PrependWithTransaction records a prepend of n under parentKey, deferred
// until tx is Committed.
func (s *Scene) PrependWithTransaction(parentKey NodeHandle, n *node, tx *SubtreeAddTransaction) NodeHandle {
	return s.recordAddTransaction(opPrepend, parentKey, n, tx)
}

// Commit links every node recorded in tx into the tree in recording order
// and fires a single SubtreeAddedOrReattached notification for the first
// entry (the subtree root).
func (s *Scene) Commit(tx *SubtreeAddTransaction) {
	var subtreeRoot NodeHandle
	haveRoot := false
	for _, e := range tx.entries {
		switch e.op {
		case opAppend:
			s.appendImpl(e.parentKey, e.nodeKey)
		case opPrepend:
			s.prependImpl(e.parentKey, e.nodeKey)
		}
		if !haveRoot {
			subtreeRoot, haveRoot = e.nodeKey, true
		}
	}
	if haveRoot {
		s.notify(Event{Kind: SubtreeAddedOrReattached, Node: subtreeRoot})
	}
}

// Rollback discards tx, releasing every node it inserted without ever
// linking them into the tree and without notifying the observer.
func (s *Scene) Rollback(tx *SubtreeAddTransaction) {
	for _, e := range tx.entries {
		s.arena.Remove(e.nodeKey)
	}
}

// --- removal ---

// Remove detaches nodeKey and its entire subtree from the tree and returns
// the removed node's own ComponentLinks (its descendants' component links
// are discarded — the caller is expected to have already released them, or
// not care). Panics if nodeKey is the scene root.
func (s *Scene) Remove(nodeKey NodeHandle) ComponentLinks {
	return s.removeHelper(nodeKey, true)
}

func (s *Scene) removeHelper(nodeKey NodeHandle, withChildren bool) ComponentLinks {
	if nodeKey == s.rootKey {
		panic("rsg: cannot remove the scene root")
	}

	if withChildren {
		s.notify(Event{Kind: SubtreeAboutToBeRemoved, Node: nodeKey})
	} else {
		n := s.arena.MustGet(nodeKey)
		n.firstChild = NodeHandle{}
		n.lastChild = NodeHandle{}
		s.notify(Event{Kind: SubtreeAboutToBeRemoved, Node: nodeKey})
	}

	n := *s.arena.MustGet(nodeKey)
	s.arena.Remove(nodeKey)
	parentKey := n.parent

	switch {
	case !n.prevSibling.IsNil() && !n.nextSibling.IsNil():
		s.arena.MustGet(n.prevSibling).nextSibling = n.nextSibling
		s.arena.MustGet(n.nextSibling).prevSibling = n.prevSibling
	case !n.prevSibling.IsNil():
		s.arena.MustGet(parentKey).lastChild = n.prevSibling
		s.arena.MustGet(n.prevSibling).nextSibling = NodeHandle{}
	case !n.nextSibling.IsNil():
		s.arena.MustGet(parentKey).firstChild = n.nextSibling
		s.arena.MustGet(n.nextSibling).prevSibling = NodeHandle{}
	default:
		parentNode := s.arena.MustGet(parentKey)
		parentNode.firstChild = NodeHandle{}
		parentNode.lastChild = NodeHandle{}
	}

	if withChildren {
		s.removeFromArena(n.firstChild)
	}

	return n.componentLinks
}

// removeFromArena deletes an already-detached subtree's nodes from the
// arena without touching sibling/parent links (the caller has already
// unlinked the subtree's root from its former parent).
func (s *Scene) removeFromArena(start NodeHandle) {
	if start.IsNil() {
		return
	}
	stack := []NodeHandle{start}
	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for !key.IsNil() {
			child := *s.arena.MustGet(key)
			s.arena.Remove(key)
			if !child.firstChild.IsNil() {
				stack = append(stack, child.firstChild)
			}
			key = child.nextSibling
		}
	}
}

// RemoveChildren detaches and removes every child of nodeKey (but not
// nodeKey itself), returning each removed child's own ComponentLinks.
func (s *Scene) RemoveChildren(nodeKey NodeHandle) []ComponentLinks {
	var links []ComponentLinks
	childKey := s.arena.MustGet(nodeKey).firstChild
	for !childKey.IsNil() {
		next := s.arena.MustGet(childKey).nextSibling
		links = append(links, s.Remove(childKey))
		childKey = next
	}
	return links
}

// Clear removes every child of the scene root, returning each removed
// child's ComponentLinks. No-op, returning nil, if the scene has no root.
func (s *Scene) Clear() []ComponentLinks {
	if s.rootKey.IsNil() {
		return nil
	}
	return s.RemoveChildren(s.rootKey)
}

// InsertUnder splits parentKey's existing children out into a new
// intermediate node n, which becomes parentKey's sole child and the new
// parent of everything that used to be directly under parentKey. Every
// reparented child is notified as temporarily detached before the
// reparenting; once it completes, a single SubtreeAddedOrReattached is
// sent for n (the reparented children are not notified individually).
func (s *Scene) InsertUnder(parentKey NodeHandle, n *node) NodeHandle {
	s.checkAddPrecondition(n, parentKey)

	for childKey := s.arena.MustGet(parentKey).firstChild; !childKey.IsNil(); {
		s.notify(Event{Kind: SubtreeAboutToBeTemporarilyDetached, Node: childKey})
		childKey = s.arena.MustGet(childKey).nextSibling
	}

	firstChild := s.arena.MustGet(parentKey).firstChild
	nodeKey := s.arena.Insert(*n)
	n.self = nodeKey

	parentNode := s.arena.MustGet(parentKey)
	oldFirst, oldLast := parentNode.firstChild, parentNode.lastChild
	parentNode.firstChild, parentNode.lastChild = nodeKey, nodeKey

	newNode := s.arena.MustGet(nodeKey)
	newNode.self = nodeKey
	newNode.parent = parentKey
	newNode.firstChild = oldFirst
	newNode.lastChild = oldLast

	for childKey := firstChild; !childKey.IsNil(); {
		childNode := s.arena.MustGet(childKey)
		childNode.parent = nodeKey
		childKey = childNode.nextSibling
	}

	s.notify(Event{Kind: SubtreeAddedOrReattached, Node: nodeKey})
	return nodeKey
}

// RemoveWithoutChildren removes nodeKey but reparents its children in
// place, directly under nodeKey's former parent, preserving their former
// relative order and position among nodeKey's former siblings. Panics if
// nodeKey is the scene root.
func (s *Scene) RemoveWithoutChildren(nodeKey NodeHandle) ComponentLinks {
	if nodeKey == s.rootKey {
		panic("rsg: cannot remove the scene root")
	}
	n := s.arena.MustGet(nodeKey)
	parentKey := n.parent
	insertBefore := n.nextSibling

	for childKey := n.firstChild; !childKey.IsNil(); {
		s.notify(Event{Kind: SubtreeAboutToBeTemporarilyDetached, Node: childKey})
		childKey = s.arena.MustGet(childKey).nextSibling
	}
	firstChild := s.arena.MustGet(nodeKey).firstChild

	links := s.removeHelper(nodeKey, false)

	for childKey := firstChild; !childKey.IsNil(); {
		next := s.arena.MustGet(childKey).nextSibling
		if !insertBefore.IsNil() {
			s.insertBeforeImpl(insertBefore, childKey)
		} else {
			s.appendImpl(parentKey, childKey)
		}
		s.notify(Event{Kind: SubtreeAddedOrReattached, Node: childKey})
		childKey = next
	}

	return links
}

// MarkDirty notifies the observer that nodeKey's cached values named by
// flags need to be recomputed.
func (s *Scene) MarkDirty(nodeKey NodeHandle, flags DirtyFlags) {
	s.notify(Event{Kind: Dirty, Node: nodeKey, Flags: flags})
}

// --- subtree builder ---

// SubtreeBuilder assembles a whole subtree in one transaction: each
// Append/Prepend call targets either the most recently added node (the
// default "current parent") or an explicit earlier node by index, and
// nothing is linked into the tree until Commit.
type SubtreeBuilder struct {
	scene         *Scene
	tx            *SubtreeAddTransaction
	initialParent NodeHandle
	nodeKeys      []NodeHandle
}

// NewSubtreeBuilder starts building a subtree to be attached under
// parentKey.
func NewSubtreeBuilder(scene *Scene, parentKey NodeHandle) *SubtreeBuilder {
	return &SubtreeBuilder{scene: scene, tx: NewSubtreeAddTransaction(), initialParent: parentKey}
}

func (b *SubtreeBuilder) currentParent() NodeHandle {
	if len(b.nodeKeys) == 0 {
		return b.initialParent
	}
	return b.nodeKeys[len(b.nodeKeys)-1]
}

// Append appends n under the most recently added node (or the builder's
// initial parent, if nothing has been added yet).
func (b *SubtreeBuilder) Append(n *node) *SubtreeBuilder {
	key := b.scene.AppendWithTransaction(b.currentParent(), n, b.tx)
	b.nodeKeys = append(b.nodeKeys, key)
	return b
}

// AppendTo appends n under the node previously added at position
// parentIdx (0-based, in call order).
func (b *SubtreeBuilder) AppendTo(parentIdx int, n *node) *SubtreeBuilder {
	key := b.scene.AppendWithTransaction(b.nodeKeys[parentIdx], n, b.tx)
	b.nodeKeys = append(b.nodeKeys, key)
	return b
}

// Prepend prepends n under the most recently added node (or the builder's
// initial parent).
func (b *SubtreeBuilder) Prepend(n *node) *SubtreeBuilder {
	key := b.scene.PrependWithTransaction(b.currentParent(), n, b.tx)
	b.nodeKeys = append(b.nodeKeys, key)
	return b
}

// PrependTo prepends n under the node previously added at position
// parentIdx.
func (b *SubtreeBuilder) PrependTo(parentIdx int, n *node) *SubtreeBuilder {
	key := b.scene.PrependWithTransaction(b.nodeKeys[parentIdx], n, b.tx)
	b.nodeKeys = append(b.nodeKeys, key)
	return b
}

// Commit links the whole subtree into the tree and returns every handle
// that was added, in call order.
func (b *SubtreeBuilder) Commit() []NodeHandle {
	b.scene.Commit(b.tx)
	keys := b.nodeKeys
	b.nodeKeys = nil
	return keys
}

// Rollback discards everything the builder has recorded so far.
func (b *SubtreeBuilder) Rollback() {
	b.scene.Rollback(b.tx)
}
