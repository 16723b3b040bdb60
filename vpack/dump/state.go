package dump

import "sync"

// state is the mutable half of the per-invocation data described in
// spec.md §3.3: an indentation depth counter. The other half — a
// reference to a Sink and a reference to an immutable Options record —
// lives directly on the Dumper itself, since those two never change
// during a Dump call and need no reset between uses; only depth needs
// pooling and zeroing. Pooled and reused across calls exactly as
// objectdump/dump.go pools its dumpState.
type state struct {
	depth int
}

var statePool = sync.Pool{
	New: func() interface{} { return &state{} },
}

func getState() *state {
	s := statePool.Get().(*state)
	s.depth = 0
	return s
}

func putState(s *state) {
	s.depth = 0
	statePool.Put(s)
}
