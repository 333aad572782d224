// Package trie implements the name lookup tree used by the classifier.
package trie

type node[V any] struct {
	key      rune
	value    V
	hasValue bool
	children map[rune]*node[V]
}

func newNode[V any](key rune) *node[V] {
	return &node[V]{key: key}
}

func (n *node[V]) child(key rune) *node[V] {
	return n.children[key]
}

func (n *node[V]) childOrCreate(key rune) *node[V] {
	if c, ok := n.children[key]; ok {
		return c
	}
	if n.children == nil {
		n.children = make(map[rune]*node[V])
	}
	c := newNode[V](key)
	n.children[key] = c
	return c
}

// Trie maps rune sequences to values. It is built by a single goroutine and
// is safe for concurrent Query calls once no more Insert calls happen.
type Trie[V any] struct {
	root *node[V]
	size int
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{root: newNode[V]('*')}
}

// Insert stores value at the node of the last rune of key, overwriting any
// previous value there. An empty key is ignored: the root never holds a value.
func (t *Trie[V]) Insert(key string, value V) {
	if key == "" {
		return
	}
	cur := t.root
	for _, r := range key {
		cur = cur.childOrCreate(r)
	}
	if !cur.hasValue {
		t.size++
	}
	cur.value = value
	cur.hasValue = true
}

// Query walks key one rune at a time. When the walk fails on the final rune
// only, the value of the last matched node is returned (if it has one), so a
// name whose final letter is unknown still resolves through its prefix. A
// failure on any earlier rune yields ok == false.
func (t *Trie[V]) Query(key string) (value V, ok bool) {
	if key == "" {
		return value, false
	}
	runes := []rune(key)
	last := len(runes) - 1
	cur := t.root
	for i, r := range runes {
		next := cur.child(r)
		if next == nil {
			if i != last {
				return value, false
			}
			break
		}
		cur = next
	}
	if cur == t.root || !cur.hasValue {
		return value, false
	}
	return cur.value, true
}

// Len reports the number of distinct keys holding a value.
func (t *Trie[V]) Len() int {
	return t.size
}
