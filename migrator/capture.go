package migrator

import (
	"reflect"

	"xml-migrator/internal/decode"
	"xml-migrator/node"
)

// hooks routes what the baseline decode leaves unmatched into the queue.
func (s *Session) hooks() decode.Hooks {
	return decode.Hooks{
		UnknownElement:   s.capture,
		UnknownAttribute: s.capture,
	}
}

// capture only records; it never resolves while decoding is in progress.
func (s *Session) capture(n node.Node, owner reflect.Value) {
	if s.state != StateDecoding {
		return
	}

	s.queue.Enqueue(Pending{Node: n, Owner: owner})
}
