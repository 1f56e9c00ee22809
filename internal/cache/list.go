package cache

// entry is a cache entry linked into the recency list.
// The head of the list is the most recently used entry.
type entry[K comparable, V any] struct {
	key   K
	value V
	used  uint64 // frame of last use
	prev  *entry[K, V]
	next  *entry[K, V]
}

// recency is an intrusive doubly-linked list ordered by last use.
// Frames of last use never increase from head to tail.
// Not safe for concurrent use; Cache holds its lock while calling it.
type recency[K comparable, V any] struct {
	head *entry[K, V]
	tail *entry[K, V]
}

func (l *recency[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

func (l *recency[K, V]) moveToFront(e *entry[K, V]) {
	if e == l.head {
		return
	}
	l.unlink(e)
	l.pushFront(e)
}

func (l *recency[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
