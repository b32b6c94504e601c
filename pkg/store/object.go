package store

import (
	"fmt"
	"time"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

// Object is an immutable descriptor for one remote object, constructed from
// a listing entry. It is a transient view over remote state at enumeration
// time; it holds no connection to the store that produced it.
type Object struct {
	// Key identifies the object within its bucket.
	Key string

	// Size is the object size in bytes.
	Size int64

	// Modified is the object's last-modified timestamp.
	Modified time.Time

	// ETag is the entity tag reported by the listing. Display and
	// debugging only; cache decisions never consult it.
	ETag string
}

// newObject builds a descriptor from a raw listing entry.
func newObject(sum provider.ObjectSummary) *Object {
	return &Object{
		Key:      sum.Key,
		Size:     sum.Size,
		Modified: sum.LastModified,
		ETag:     sum.ETag,
	}
}

// String returns a short display form.
func (o *Object) String() string {
	return fmt.Sprintf("Object(%s)", o.Key)
}
