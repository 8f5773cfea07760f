package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key layout: "shopcore:<kind>:<op>[:<suffix>]". Every key for an entity
// kind shares the kind's namespace so a single prefix invalidation covers
// all of its cached reads.
const (
	keyPrefix     = "shopcore"
	keySeparator  = ":"
	keyHashLength = 12 // Balance between uniqueness and key length
)

// Namespace returns the invalidation prefix for an entity kind.
func Namespace(kind string) string {
	return keyPrefix + keySeparator + kind + keySeparator
}

// Key builds a cache key for simple operations.
func Key(kind, op string, parts ...string) string {
	segments := append([]string{keyPrefix, kind, op}, parts...)
	return strings.Join(segments, keySeparator)
}

// QueryKey builds a deterministic key for a parameterized query by hashing
// its serialized shape with xxhash (fast, non-cryptographic).
func QueryKey(kind, op string, query any) string {
	hash := xxhash.Sum64String(fmt.Sprintf("%+v", query))
	hashStr := fmt.Sprintf("%016x", hash)
	return Key(kind, op, hashStr[:keyHashLength])
}
