package store

import (
	"context"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

// Iterator is a lazy, finite, non-restartable sequence of object
// descriptors under one prefix.
//
// Usage follows the scanner shape:
//
//	it := st.List("reports/")
//	for it.Next(ctx) {
//	    obj := it.Object()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
//
// Pages are requested on demand: no network call happens until the first
// Next, and page N+1 is never requested before page N is consumed. A
// transport failure terminates the sequence; Next returns false and Err
// reports the failure.
type Iterator struct {
	store  *Store
	prefix string

	buf       []provider.ObjectSummary
	token     string
	started   bool
	truncated bool
	done      bool
	err       error
	cur       *Object
}

// List returns a lazy iterator over objects whose keys start with prefix.
// Entries appear in the order the transport returns them, stable within one
// call.
func (s *Store) List(prefix string) *Iterator {
	return &Iterator{store: s, prefix: prefix}
}

// ListPrefixes returns one lazy iterator per prefix, in caller order.
// Prefixes are not merged or deduplicated: an object matching two prefixes
// appears in both iterators.
func (s *Store) ListPrefixes(prefixes []string) []*Iterator {
	its := make([]*Iterator, len(prefixes))
	for i, prefix := range prefixes {
		its[i] = s.List(prefix)
	}
	return its
}

// Next advances to the next descriptor, fetching listing pages as needed.
// It returns false when the sequence is exhausted or a transport failure
// occurred; the two cases are distinguished by Err.
func (it *Iterator) Next(ctx context.Context) bool {
	if it.err != nil || (it.done && len(it.buf) == 0) {
		return false
	}

	for len(it.buf) == 0 {
		if it.started && !it.truncated {
			it.done = true
			return false
		}
		if !it.fetchPage(ctx) {
			return false
		}
	}

	it.cur = newObject(it.buf[0])
	it.buf = it.buf[1:]
	return true
}

// Object returns the descriptor advanced to by the last successful Next.
func (it *Iterator) Object() *Object {
	return it.cur
}

// Err returns the transport failure that terminated the sequence, or nil
// after a clean exhaustion.
func (it *Iterator) Err() error {
	return it.err
}

// fetchPage requests the next listing page, carrying the continuation token
// from the previous one. One marker goes to the sink per request.
func (it *Iterator) fetchPage(ctx context.Context) bool {
	p, err := it.store.provider(ctx)
	if err != nil {
		it.err = err
		return false
	}

	if err := it.store.waitForRateLimit(ctx); err != nil {
		it.err = err
		return false
	}

	it.store.say(".")
	res, err := p.List(ctx, provider.ListOptions{
		Prefix:            it.prefix,
		ContinuationToken: it.token,
		MaxKeys:           it.store.pageSize,
	})
	if err != nil {
		it.err = err
		return false
	}

	it.started = true
	it.buf = append(it.buf, res.Objects...)
	it.truncated = res.IsTruncated && res.ContinuationToken != ""
	it.token = res.ContinuationToken
	if !it.truncated {
		it.done = len(it.buf) == 0
	}
	return true
}
