package tell

import (
	"strconv"

	"github.com/google/uuid"
)

// IDFunc mints tell identifiers.
type IDFunc func() string

// RandomIDs mints random UUIDv4 identifiers.
func RandomIDs() IDFunc {
	return uuid.NewString
}

// SequentialIDs mints name-based UUIDs from namespace and a counter, so two
// runs with the same namespace produce the same identifiers in the same
// order. The returned func is not safe for concurrent use.
func SequentialIDs(namespace string) IDFunc {
	ns := uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace))
	n := 0
	return func() string {
		n++
		return uuid.NewSHA1(ns, []byte(strconv.Itoa(n))).String()
	}
}
