// Package snapshot takes detached copies of the lookup tables handed to the
// resolver, so that later changes by the caller cannot leak into a resolution
// run that is already configured.
package snapshot

import (
	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"
)

// Map returns a deep copy of src. A nil map yields an empty, non-nil map so
// that lookups on the result never need a nil check.
func Map[K comparable, V any](src map[K]V) (map[K]V, error) {
	dst := make(map[K]V, len(src))
	if len(src) == 0 {
		return dst, nil
	}

	if err := deepcopy.Copy(&dst, src); err != nil {
		return nil, errors.Wrapf(err, "failed to snapshot %T", src)
	}
	return dst, nil
}

// MustMap is Map for constructor use. Copying a map of plain values cannot
// fail, so an error here is a programming error and panics.
func MustMap[K comparable, V any](src map[K]V) map[K]V {
	dst, err := Map(src)
	if err != nil {
		panic("failed to create immutable snapshot: " + err.Error())
	}
	return dst
}
