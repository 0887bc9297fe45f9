// internal/event/queue.go
package event

type record[T any] struct {
	id uint64
	ev T
}

// Queue is a double-buffered event queue. Events sent during a tick stay
// readable for that tick and the next one; Swap ages them out.
type Queue[T any] struct {
	older []record[T]
	newer []record[T]
	next  uint64
}

// Send appends an event to the current buffer.
func (q *Queue[T]) Send(ev T) {
	q.newer = append(q.newer, record[T]{id: q.next, ev: ev})
	q.next++
}

// Swap drops the older buffer and makes the current buffer the older one.
func (q *Queue[T]) Swap() {
	q.older, q.newer = q.newer, q.older[:0]
}

// Len is the number of events still held by the queue.
func (q *Queue[T]) Len() int {
	return len(q.older) + len(q.newer)
}

// Reader is a per-consumer cursor over a Queue. The zero value reads
// everything the queue still holds.
type Reader[T any] struct {
	last uint64
}

// Read returns every event sent since the previous Read, oldest first.
// Events already swapped out before the reader got to them are lost.
func (r *Reader[T]) Read(q *Queue[T]) []T {
	var out []T
	for _, buf := range [][]record[T]{q.older, q.newer} {
		for _, rec := range buf {
			if rec.id >= r.last {
				out = append(out, rec.ev)
			}
		}
	}
	r.last = q.next
	return out
}
