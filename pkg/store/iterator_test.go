package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

func newTestStore(t *testing.T, p provider.Provider, sink *bytes.Buffer) *Store {
	t.Helper()
	cfg := Config{
		Bucket:   "docs",
		CacheDir: t.TempDir(),
		Provider: p,
	}
	if sink != nil {
		cfg.Sink = sink
	}
	st, err := New(cfg)
	require.NoError(t, err)
	return st
}

func TestIterator_PaginationCompleteness(t *testing.T) {
	ctx := context.Background()

	// 24 objects split into pages of 10, 10, and 4.
	fake := newFakeProvider()
	objs := summaries("prefix/", 24)
	fake.addPages("prefix/", 10, objs...)

	st := newTestStore(t, fake, nil)

	got, err := Objects(ctx, st.List("prefix/"))
	require.NoError(t, err)
	require.Len(t, got, 24)

	// Page-then-intra-page order is preserved.
	for i, obj := range got {
		assert.Equal(t, objs[i].Key, obj.Key)
		assert.Equal(t, objs[i].Size, obj.Size)
		assert.Equal(t, objs[i].ETag, obj.ETag)
	}

	// Three page requests, two carrying a continuation token.
	assert.Equal(t, 3, fake.listCalls)
	assert.Equal(t, []string{"page-1", "page-2"}, fake.continuationTokens())
}

func TestIterator_LazyFirstFetch(t *testing.T) {
	ctx := context.Background()

	fake := newFakeProvider()
	fake.addPages("a/", 10, summaries("a/", 3)...)

	st := newTestStore(t, fake, nil)
	it := st.List("a/")

	// Constructing the iterator performs no network call.
	assert.Equal(t, 0, fake.listCalls)

	require.True(t, it.Next(ctx))
	assert.Equal(t, 1, fake.listCalls)
	assert.Equal(t, "a/obj-0000", it.Object().Key)
}

func TestIterator_MultiPrefixOrdering(t *testing.T) {
	ctx := context.Background()

	fake := newFakeProvider()
	fake.addPages("a/", 10, summaries("a/", 4)...)
	fake.addPages("b/", 10, summaries("b/", 3)...)

	st := newTestStore(t, fake, nil)
	its := st.ListPrefixes([]string{"a/", "b/"})
	require.Len(t, its, 2)

	first, err := Objects(ctx, its[0])
	require.NoError(t, err)
	second, err := Objects(ctx, its[1])
	require.NoError(t, err)

	require.Len(t, first, 4)
	for _, obj := range first {
		assert.True(t, strings.HasPrefix(obj.Key, "a/"), "key %s", obj.Key)
	}
	require.Len(t, second, 3)
	for _, obj := range second {
		assert.True(t, strings.HasPrefix(obj.Key, "b/"), "key %s", obj.Key)
	}
}

func TestIterator_ListingErrorPropagates(t *testing.T) {
	ctx := context.Background()

	boom := errors.New("listing exploded")
	fake := newFakeProvider()
	fake.addPages("p/", 2, summaries("p/", 6)...)
	fake.listErr = boom
	fake.listErrAfter = 1 // first page succeeds, second fails

	st := newTestStore(t, fake, nil)
	it := st.List("p/")

	var seen int
	for it.Next(ctx) {
		seen++
	}

	assert.Equal(t, 2, seen, "entries before the failure are surfaced")
	require.Error(t, it.Err())
	assert.ErrorIs(t, it.Err(), boom)

	// A failed iterator stays failed.
	assert.False(t, it.Next(ctx))
}

func TestIterator_EmptyPrefix(t *testing.T) {
	ctx := context.Background()

	fake := newFakeProvider()
	fake.addPages("none/", 10)

	st := newTestStore(t, fake, nil)
	it := st.List("none/")

	assert.False(t, it.Next(ctx))
	assert.NoError(t, it.Err())
}

func TestIterator_ProgressMarkerPerPage(t *testing.T) {
	ctx := context.Background()

	fake := newFakeProvider()
	fake.addPages("p/", 10, summaries("p/", 24)...)

	var sink bytes.Buffer
	st := newTestStore(t, fake, &sink)

	_, err := Objects(ctx, st.List("p/"))
	require.NoError(t, err)

	assert.Equal(t, "...", sink.String(), "one marker per page request")
}

func TestAdapt_TransformAppliedToEveryPage(t *testing.T) {
	ctx := context.Background()

	fake := newFakeProvider()
	fake.addPages("p/", 2, summaries("p/", 5)...)

	st := newTestStore(t, fake, nil)
	seq := Adapt(st.List("p/"), func(o *Object) string { return o.Key })

	var keys []string
	for seq.Next(ctx) {
		keys = append(keys, seq.Item())
	}
	require.NoError(t, seq.Err())

	// Entries from first and continuation pages alike go through the
	// transform.
	assert.Equal(t, []string{
		"p/obj-0000", "p/obj-0001", "p/obj-0002", "p/obj-0003", "p/obj-0004",
	}, keys)
}

func TestCollect_ReturnsPartialOnError(t *testing.T) {
	ctx := context.Background()

	boom := errors.New("page failure")
	fake := newFakeProvider()
	fake.addPages("p/", 2, summaries("p/", 4)...)
	fake.listErr = boom
	fake.listErrAfter = 1

	st := newTestStore(t, fake, nil)
	sizes, err := Collect(ctx, st.List("p/"), func(o *Object) int64 { return o.Size })

	require.ErrorIs(t, err, boom)
	assert.Len(t, sizes, 2)
}
