package cache

// lruNode is one key in a recency list.
type lruNode struct {
	key        string
	prev, next *lruNode
}

// lruList orders keys from most (front) to least (back) recently used.
// It is a ring around a sentinel node, so insertion and removal never
// special-case the ends. Not safe for concurrent use.
type lruList struct {
	root lruNode
	len  int
}

func newLRUList() *lruList {
	l := &lruList{}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Len returns the number of keys in the list.
func (l *lruList) Len() int {
	return l.len
}

// PushFront inserts key as the most recently used and returns its node.
func (l *lruList) PushFront(key string) *lruNode {
	n := &lruNode{key: key}
	l.insertAfter(n, &l.root)
	l.len++
	return n
}

// MoveToFront marks n as the most recently used.
func (l *lruList) MoveToFront(n *lruNode) {
	if l.root.next == n {
		return
	}
	l.detach(n)
	l.insertAfter(n, &l.root)
}

// Remove takes n out of the list.
func (l *lruList) Remove(n *lruNode) {
	l.detach(n)
	l.len--
}

// RemoveOldest removes the least recently used key.
func (l *lruList) RemoveOldest() (string, bool) {
	if l.len == 0 {
		return "", false
	}
	n := l.root.prev
	l.Remove(n)
	return n.key, true
}

// Clear empties the list.
func (l *lruList) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *lruList) insertAfter(n, at *lruNode) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *lruList) detach(n *lruNode) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}
