package hashcache

// lruNode is a node in the doubly-linked recency list. It carries its
// key so eviction can delete the map entry in O(1).
type lruNode[K comparable] struct {
	key  K
	prev *lruNode[K]
	next *lruNode[K]
}

// lruList orders keys by recency, head most recent. Not thread-safe;
// the owning shard holds the lock.
type lruList[K comparable] struct {
	head *lruNode[K]
	tail *lruNode[K]
	len  int
}

func (l *lruList[K]) Len() int { return l.len }

// pushFront adds key at the front and returns its node.
func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.len++
	return node
}

// moveToFront marks node as most recently used.
func (l *lruList[K]) moveToFront(node *lruNode[K]) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

func (l *lruList[K]) remove(node *lruNode[K]) {
	if node == nil {
		return
	}
	l.unlink(node)
}

// removeOldest evicts the least recently used key.
func (l *lruList[K]) removeOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList[K]) clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
