package rsg

import (
	"fmt"
	"os"
)

// debugMaxTreeDepth is the depth beyond which Append/Prepend log an
// advisory stderr warning. Exceeding it is never an error; deeply nested
// scenes are usually a sign of an unintentional wrapper chain.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the child count beyond which Append/Prepend log an
// advisory stderr warning.
const debugMaxChildCount = 1000

// debugCheckTreeDepth warns on stderr if nodeKey's depth exceeds
// debugMaxTreeDepth. Only called when the owning Scene has debug enabled.
func debugCheckTreeDepth(s *Scene, nodeKey NodeHandle) {
	depth := 0
	it := s.Ancestors(nodeKey)
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		depth++
	}
	if depth > debugMaxTreeDepth {
		fmt.Fprintf(os.Stderr, "[rsg] warning: tree depth %d exceeds %d (node %v)\n",
			depth, debugMaxTreeDepth, nodeKey)
	}
}

// debugCheckChildCount warns on stderr if parentKey has more than
// debugMaxChildCount children.
func debugCheckChildCount(s *Scene, parentKey NodeHandle) {
	count := 0
	childKey := s.arena.MustGet(parentKey).firstChild
	for !childKey.IsNil() {
		count++
		childKey = s.arena.MustGet(childKey).nextSibling
	}
	if count > debugMaxChildCount {
		fmt.Fprintf(os.Stderr, "[rsg] warning: node %v has %d children (threshold %d)\n",
			parentKey, count, debugMaxChildCount)
	}
}
