package optics

// TraverseRefFunc adapts a function to TraversalRef.
type TraverseRefFunc[S, A any] func(source *S) []A

// TraverseRef calls f(source).
func (f TraverseRefFunc[S, A]) TraverseRef(source *S) []A { return f(source) }

// TraverseMutFunc adapts a function to TraversalMut.
type TraverseMutFunc[S, A any] func(source *S) []*A

// TraverseMut calls f(source).
func (f TraverseMutFunc[S, A]) TraverseMut(source *S) []*A { return f(source) }

// TraverseFunc adapts a function to Traversal.
type TraverseFunc[S, A any] func(source S) []A

// Traverse calls f(source).
func (f TraverseFunc[S, A]) Traverse(source S) []A { return f(source) }

// PmRefFunc adapts a function to PrismRef.
type PmRefFunc[S, A any] func(source *S) (A, bool)

// PmRef calls f(source).
func (f PmRefFunc[S, A]) PmRef(source *S) (A, bool) { return f(source) }

// PmMutFunc adapts a function to PrismMut.
type PmMutFunc[S, A any] func(source *S) (*A, bool)

// PmMut calls f(source).
func (f PmMutFunc[S, A]) PmMut(source *S) (*A, bool) { return f(source) }

// PmFunc adapts a function to Prism.
type PmFunc[S, A any] func(source S) (A, bool)

// Pm calls f(source).
func (f PmFunc[S, A]) Pm(source S) (A, bool) { return f(source) }

// ViewRefFunc adapts a function to LensRef.
type ViewRefFunc[S, A any] func(source *S) A

// ViewRef calls f(source).
func (f ViewRefFunc[S, A]) ViewRef(source *S) A { return f(source) }

// ViewMutFunc adapts a function to LensMut.
type ViewMutFunc[S, A any] func(source *S) *A

// ViewMut calls f(source).
func (f ViewMutFunc[S, A]) ViewMut(source *S) *A { return f(source) }

// ViewFunc adapts a function to Lens.
type ViewFunc[S, A any] func(source S) A

// View calls f(source).
func (f ViewFunc[S, A]) View(source S) A { return f(source) }

// ReviewFunc adapts a function to Review.
type ReviewFunc[F, T any] func(from F) T

// Review calls f(from).
func (f ReviewFunc[F, T]) Review(from F) T { return f(from) }
