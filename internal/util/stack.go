package util

// Stack is a LIFO list of items. The zero value is an empty stack ready for
// use.
type Stack[E any] struct {
	Of []E
}

// Push puts an item on top of the stack.
func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

// Pop removes the item on top of the stack and returns it. Panics if the stack
// is empty.
func (s *Stack[E]) Pop() E {
	if len(s.Of) < 1 {
		panic("pop from empty stack")
	}
	v := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return v
}

func (s Stack[E]) Len() int {
	return len(s.Of)
}

func (s Stack[E]) Empty() bool {
	return len(s.Of) == 0
}

// Queue is a FIFO list of items. The zero value is an empty queue ready for
// use.
type Queue[E any] struct {
	Of []E
}

// Enqueue adds an item to the back of the queue.
func (q *Queue[E]) Enqueue(v E) {
	q.Of = append(q.Of, v)
}

// Dequeue removes the item at the front of the queue and returns it. Panics if
// the queue is empty.
func (q *Queue[E]) Dequeue() E {
	if len(q.Of) < 1 {
		panic("dequeue from empty queue")
	}
	v := q.Of[0]

	// drop the reference so the backing array doesn't pin it
	var zero E
	q.Of[0] = zero
	q.Of = q.Of[1:]
	return v
}

func (q Queue[E]) Len() int {
	return len(q.Of)
}

func (q Queue[E]) Empty() bool {
	return len(q.Of) == 0
}
