package store

// CachePath maps a cache root and an object key to a local filesystem path.
//
// The mapping is pure string concatenation: deterministic, and injective for
// distinct keys under one root. Slash-separated key segments become nested
// directories; no cleaning or escaping is applied, so the key's structure is
// preserved verbatim in the cache layout.
func CachePath(root, key string) string {
	return root + "/" + key
}

// cachePath resolves an object's local cache path under this store's root.
func (s *Store) cachePath(obj *Object) string {
	return CachePath(s.cacheRoot, obj.Key)
}
