package optics

// Id is the identity optic. It is the innermost optic of every composition
// and implements every capability with source and target both T.
type Id[T any] struct{}

func (Id[T]) TraverseRef(source *T) []T { return []T{*source} }

func (Id[T]) TraverseMut(source *T) []*T { return []*T{source} }

func (Id[T]) Traverse(source T) []T { return []T{source} }

func (Id[T]) PmRef(source *T) (T, bool) { return *source, true }

func (Id[T]) PmMut(source *T) (*T, bool) { return source, true }

func (Id[T]) Pm(source T) (T, bool) { return source, true }

func (Id[T]) ViewRef(source *T) T { return *source }

func (Id[T]) ViewMut(source *T) *T { return source }

func (Id[T]) View(source T) T { return source }

func (Id[T]) Review(from T) T { return from }
