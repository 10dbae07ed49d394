package merkle

import "errors"

// Sentinel errors returned across the public API. Navigation absences
// (no child, no parent, no descendant) are internal control signals on the
// node graph and are translated into one of these before crossing into
// exported functions; they never escape on their own.
var (
	// ErrLeafConstruction is returned when a leaf is built with both or
	// neither of a record and a precomputed digest.
	ErrLeafConstruction = errors.New("merkle: leaf requires exactly one of record or digest")

	// ErrUndecodable is returned when a text record cannot be encoded to
	// bytes under the tree's configured encoding. Update leaves tree state
	// unchanged when this is returned.
	ErrUndecodable = errors.New("merkle: record is undecodable under the configured encoding")

	// ErrNoChild is the internal absence signal for a node with no child.
	ErrNoChild = errors.New("merkle: node has no child")

	// ErrNoParent is the internal absence signal for a leaf asked for its
	// left or right parent.
	ErrNoParent = errors.New("merkle: node has no parent")

	// ErrNoDescendant is raised when a descendant chain ends before
	// reaching the requested degree.
	ErrNoDescendant = errors.New("merkle: no descendant at requested degree")

	// ErrEmptyTree is returned by RootHash on a zero-length tree.
	ErrEmptyTree = errors.New("merkle: tree is empty")

	// ErrInvalidType is returned when a public entry point receives an
	// argument of the wrong kind (e.g. a non-int, non-[]byte, non-string
	// audit proof target).
	ErrInvalidType = errors.New("merkle: invalid argument type")
)
