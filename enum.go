package trailhead

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Fields of an Enumerable type are checked with the "enum" validate tag by package req.
type Enumerable interface {
	String() string
	Valid() error
}
