/*
Package pool implements the thread-safe heterogeneous store used both as glue
between algorithms and as the final container of computed results.

A Pool maps descriptor names to data. A descriptor name is a period ('.')
delimited string of identifiers, e.g. "lowlevel.bpm". Each name is bound to
exactly one semantic type for its whole lifetime, and to exactly one of two
binding modes:

  - accumulating: every Add appends to a growing sequence under the name
  - single-valued: Set binds one value, overwritten by later Sets

The two modes are permanently exclusive per name, and a name that is a strict
ancestor or descendant of an existing bound name may never hold data itself.

# Locking

Each semantic-type/mode pair owns its sub-map and its own mutex. Operations
touching a single sub-map (the common case) take only that mutex. Operations
needing cross-type consistency (Clear, CheckIntegrity, Merge, first bind of a
new name) must take every mutex in the fixed order

	real, vectorReal, string, vectorString, matrix, stereoSample,
	singleReal, singleString, singleVectorReal

and release them in exactly the reverse order. Any other order risks deadlock
under concurrent producers.

# Retrieval

Value and Contains are generic over the retrieved type. A single-valued
vector-of-reals is visible to the []Real lookup as a fallback after the
accumulating real sub-map, mirroring the dual-submap rule of the store's
contract.
*/
package pool
