package optics

// TraversalRef yields every target of a source by value.
type TraversalRef[S, A any] interface {
	TraverseRef(source *S) []A
}

// TraversalMut yields a pointer to every target of a source.
type TraversalMut[S, A any] interface {
	TraverseMut(source *S) []*A
}

// Traversal consumes a source and yields its targets.
type Traversal[S, A any] interface {
	Traverse(source S) []A
}

// PrismRef reads the target of a source if it exists.
type PrismRef[S, A any] interface {
	PmRef(source *S) (A, bool)
}

// PrismMut returns a pointer to the target of a source if it exists.
type PrismMut[S, A any] interface {
	PmMut(source *S) (*A, bool)
}

// Prism consumes a source and returns its target if it exists.
type Prism[S, A any] interface {
	Pm(source S) (A, bool)
}

// LensRef reads the target of a source.
type LensRef[S, A any] interface {
	ViewRef(source *S) A
}

// LensMut returns a pointer to the target of a source.
type LensMut[S, A any] interface {
	ViewMut(source *S) *A
}

// Lens consumes a source and returns its target.
type Lens[S, A any] interface {
	View(source S) A
}

// Review builds a T out of an F. It always succeeds.
type Review[F, T any] interface {
	Review(from F) T
}
