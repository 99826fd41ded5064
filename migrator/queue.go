package migrator

import (
	"reflect"

	"xml-migrator/node"
)

// Pending is a node the baseline decode could not place, with the struct
// value that was being decoded when it was met.
type Pending struct {
	Node  node.Node
	Owner reflect.Value
}

// Queue hands out pending nodes in capture order, each exactly once.
type Queue struct {
	items []Pending
	head  int
}

func (q *Queue) Enqueue(p Pending) {
	q.items = append(q.items, p)
}

// Next removes and returns the oldest pending node.
func (q *Queue) Next() (Pending, bool) {
	if q.head >= len(q.items) {
		return Pending{}, false
	}

	p := q.items[q.head]
	q.items[q.head] = Pending{}
	q.head++

	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	}

	return p, true
}

// Len is the number of nodes still pending.
func (q *Queue) Len() int {
	return len(q.items) - q.head
}
