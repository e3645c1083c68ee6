package golisp

// Heap is the runtime's intrusive, singly-linked list of every
// allocated Value, plus the mark-sweep collector that reclaims the
// unreachable ones. head is permanently the nil sentinel; tail is the
// most recently allocated value.
type Heap struct {
	head *Value
	tail *Value
	size int
}

// newHeap allocates the nil singleton and returns a Heap whose list
// contains exactly that one value. Per §3's invariant "nil.left =
// nil.right = nil", the sentinel's own fields point back to itself
// rather than being Go nil pointers, so that `cdr` of nil can return
// `nil.Right` with no special-casing at all.
func newHeap() *Heap {
	nilValue := &Value{Kind: KindPair, isNil: true}
	nilValue.Left = nilValue
	nilValue.Right = nilValue
	h := &Heap{head: nilValue, tail: nilValue, size: 1}
	return h
}

// Nil returns the runtime-unique empty-list/false sentinel.
func (h *Heap) Nil() *Value { return h.head }

// Len reports how many values are currently on the heap list,
// including the nil sentinel.
func (h *Heap) Len() int { return h.size }

// alloc appends a freshly constructed, unmarked value to the tail of
// the heap list and returns it.
func (h *Heap) alloc(v *Value) *Value {
	v.mark = markUnmarked
	v.next = nil
	h.tail.next = v
	h.tail = v
	h.size++
	return v
}

// Mark traverses every value reachable from root using an explicit
// worklist, never host recursion, so arbitrarily deep structures
// (long lists, deeply nested closures) cannot overflow the Go stack.
// On dequeue a value is colored markMarked; each of its unmarked
// children is colored markQueued and pushed, which guarantees a value
// is enqueued at most once.
func (h *Heap) Mark(root *Value) {
	if root == nil || root.mark == markMarked {
		return
	}
	worklist := []*Value{root}
	root.mark = markQueued
	for len(worklist) > 0 {
		n := len(worklist) - 1
		cur := worklist[n]
		worklist = worklist[:n]
		cur.mark = markMarked
		for _, child := range cur.expand() {
			if child != nil && child.mark == markUnmarked {
				child.mark = markQueued
				worklist = append(worklist, child)
			}
		}
	}
}

// Sweep walks the heap list from head, unlinking and freeing every
// value whose mark is not markMarked, then resets the mark of every
// survivor back to markUnmarked so the next Mark pass starts clean.
// The nil sentinel is never freed; it is always marked by convention
// before Sweep runs (see Runtime.Collect), but Sweep additionally
// refuses to drop it even if a caller forgot to mark it.
func (h *Heap) Sweep(rt *Runtime) {
	survivorsHead := h.head
	survivorsHead.mark = markUnmarked

	prev := survivorsHead
	cur := survivorsHead.next
	count := 1

	for cur != nil {
		next := cur.next
		if cur.mark == markMarked {
			cur.mark = markUnmarked
			prev.next = cur
			prev = cur
			count++
		} else {
			cur.free(rt)
		}
		cur = next
	}
	prev.next = nil
	h.tail = prev
	h.size = count
}
