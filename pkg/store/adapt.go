package store

import "context"

// Seq adapts an Iterator's descriptors into a caller-chosen representation
// through an explicit transform function. It preserves the iterator's
// laziness and error semantics; the transform is applied to every entry of
// every page, continuation pages included.
type Seq[T any] struct {
	it  *Iterator
	fn  func(*Object) T
	cur T
}

// Adapt wraps an iterator with a transform from descriptors to T.
func Adapt[T any](it *Iterator, fn func(*Object) T) *Seq[T] {
	return &Seq[T]{it: it, fn: fn}
}

// Next advances the underlying iterator and applies the transform.
func (s *Seq[T]) Next(ctx context.Context) bool {
	if !s.it.Next(ctx) {
		return false
	}
	s.cur = s.fn(s.it.Object())
	return true
}

// Item returns the adapted value for the last successful Next.
func (s *Seq[T]) Item() T {
	return s.cur
}

// Err returns the failure that terminated the underlying iterator, if any.
func (s *Seq[T]) Err() error {
	return s.it.Err()
}

// Collect drains the iterator, applying the transform to every descriptor.
// It returns the adapted values in sequence order, or the transport failure
// that terminated the sequence.
func Collect[T any](ctx context.Context, it *Iterator, fn func(*Object) T) ([]T, error) {
	var out []T
	for it.Next(ctx) {
		out = append(out, fn(it.Object()))
	}
	if err := it.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// Objects drains the iterator into a slice of descriptors.
func Objects(ctx context.Context, it *Iterator) ([]*Object, error) {
	return Collect(ctx, it, func(o *Object) *Object { return o })
}
