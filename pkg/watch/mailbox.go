package watch

import "sync"

// queue is an unbounded inbox for scheduler commands. Send never blocks and
// is a no-op once the queue is closed, so handles stay safe to use after the
// watcher has shut down.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	signal chan struct{}
	closed bool
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{signal: make(chan struct{}, 1)}
}

func (q *queue[T]) Send(item T) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, item)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Ready becomes readable when at least one item has been enqueued since the
// last Drain. Intended for use in a select alongside timers.
func (q *queue[T]) Ready() <-chan struct{} {
	return q.signal
}

// Drain removes and returns all queued items in arrival order.
func (q *queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func (q *queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()
}

// stream is an unbounded outbox. A pump goroutine buffers between the
// producer side and the consumer-facing channel, so Send never blocks no
// matter how slowly updates are consumed. Closing the stream lets the
// consumer drain buffered items before the output channel closes.
type stream[T any] struct {
	in  chan T
	out chan T
}

func newStream[T any]() *stream[T] {
	s := &stream[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go s.pump()
	return s
}

func (s *stream[T]) pump() {
	var buffered []T
	in := s.in
	for in != nil || len(buffered) > 0 {
		var out chan T
		var next T
		if len(buffered) > 0 {
			out = s.out
			next = buffered[0]
		}
		select {
		case item, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buffered = append(buffered, item)
		case out <- next:
			buffered = buffered[1:]
		}
	}
	close(s.out)
}

func (s *stream[T]) Send(item T) {
	s.in <- item
}

func (s *stream[T]) C() <-chan T {
	return s.out
}

func (s *stream[T]) Close() {
	close(s.in)
}
