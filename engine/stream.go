package engine

// Lazy, possibly-infinite streams with explicit delayed tails, in the style of the
// Scheme streams this evaluator is modeled on. A nil *Stream[T] is the empty stream;
// everywhere else the head is already computed and the tail is a thunk that computes
// the next cell when forced.
//
// Forcing a tail is not memoized. Re-traversing a stream (e.g. by holding onto an
// earlier *Stream[T] value and calling Tail again) recomputes the suffix. The source
// this evaluator is modeled on does not memoize either; this is a documented property,
// not an oversight.
type Stream[T any] struct {
	head T
	tail func() *Stream[T]
}

// StreamCons builds a stream cell from an already-known head and a delayed tail.
func StreamCons[T any](head T, tail func() *Stream[T]) *Stream[T] {
	return &Stream[T]{head: head, tail: tail}
}

// StreamOf builds a one-element stream.
func StreamOf[T any](head T) *Stream[T] {
	return StreamCons(head, func() *Stream[T] { return nil })
}

// FromSlice builds a finite stream from a slice, preserving order.
func FromSlice[T any](items []T) *Stream[T] {
	if len(items) == 0 {
		return nil
	}
	rest := items[1:]
	return StreamCons(items[0], func() *Stream[T] { return FromSlice(rest) })
}

func IsEmpty[T any](s *Stream[T]) bool { return s == nil }

func Head[T any](s *Stream[T]) T { return s.head }

// Tail forces the delayed tail. Calling it twice on the same *Stream[T] recomputes.
func Tail[T any](s *Stream[T]) *Stream[T] { return s.tail() }

// MapStream applies f to every element, lazily.
func MapStream[T, U any](f func(T) U, s *Stream[T]) *Stream[U] {
	if IsEmpty(s) {
		return nil
	}
	h, t := Head(s), s.tail
	return StreamCons(f(h), func() *Stream[U] { return MapStream(f, t()) })
}

// AppendDelayed concatenates s1 with a delayed s2. The concatenation only forces s2
// once s1 is exhausted.
func AppendDelayed[T any](s1 *Stream[T], s2 func() *Stream[T]) *Stream[T] {
	if IsEmpty(s1) {
		return s2()
	}
	h, t := Head(s1), s1.tail
	return StreamCons(h, func() *Stream[T] { return AppendDelayed(t(), s2) })
}

// InterleaveDelayed fairly merges s1 with a delayed s2: it emits s1's head, then swaps
// the roles of the two streams so that both make progress even when one is infinite.
// If s1 is empty, s2 is forced and returned directly (there is nothing left to swap
// with).
func InterleaveDelayed[T any](s1 *Stream[T], s2 func() *Stream[T]) *Stream[T] {
	if IsEmpty(s1) {
		return s2()
	}
	h, t := Head(s1), s1.tail
	return StreamCons(h, func() *Stream[T] { return InterleaveDelayed(s2(), func() *Stream[T] { return t() }) })
}

// FlatMapTo flattens map(f, s) by interleaving the inner streams, not appending them.
// Interleaving is load-bearing: f can return an infinite stream for one element of s
// (a recursive rule, say) and append would starve every alternative that follows it.
func FlatMapTo[T, U any](f func(T) *Stream[U], s *Stream[T]) *Stream[U] {
	if IsEmpty(s) {
		return nil
	}
	h, t := Head(s), s.tail
	return InterleaveDelayed(f(h), func() *Stream[U] { return FlatMapTo(f, t()) })
}

// FlatMap is FlatMapTo specialized to same-type streams (the common case: frame
// streams producing frame streams).
func FlatMap[T any](f func(T) *Stream[T], s *Stream[T]) *Stream[T] {
	return FlatMapTo(f, s)
}

// Count walks the whole stream and reports its length. Forces every tail, so it
// is only meaningful on a stream known to be finite.
func Count[T any](s *Stream[T]) int {
	n := 0
	for !IsEmpty(s) {
		n++
		s = Tail(s)
	}
	return n
}

// Take pulls at most n elements into a slice, for tests and bounded display. It does
// not recover from panics raised by lazy evaluation; callers touching query results
// should go through NextFrame instead.
func Take[T any](s *Stream[T], n int) []T {
	out := make([]T, 0, n)
	for i := 0; i < n && !IsEmpty(s); i++ {
		out = append(out, Head(s))
		s = Tail(s)
	}
	return out
}
