package cache

// node is an element of the recency list. It stores its key so that the
// oldest entry can be deleted from the shard map in O(1).
type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// list is a doubly linked recency list: head is the most recently used
// entry, tail the least. It is not safe for concurrent use.
type list[K comparable] struct {
	head, tail *node[K]
	len        int
}

func (l *list[K]) pushFront(key K) *node[K] {
	n := &node[K]{key: key}
	l.linkFront(n)
	return n
}

func (l *list[K]) moveToFront(n *node[K]) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

// popBack removes the least recently used node and returns its key.
func (l *list[K]) popBack() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	n := l.tail
	l.unlink(n)
	return n.key, true
}

func (l *list[K]) remove(n *node[K]) {
	l.unlink(n)
}

func (l *list[K]) linkFront(n *node[K]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *list[K]) unlink(n *node[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
