package optics

// Set assigns value to the target of a lens.
func Set[S, A any](l LensMut[S, A], source *S, value A) {
	*l.ViewMut(source) = value
}

// Modify applies f to every target of a traversal and returns how many
// targets were visited.
func Modify[S, A any](t TraversalMut[S, A], source *S, f func(A) A) int {
	targets := t.TraverseMut(source)
	for _, p := range targets {
		*p = f(*p)
	}

	return len(targets)
}

// SetIfPresent assigns value to the target of a prism when it matches.
func SetIfPresent[S, A any](p PrismMut[S, A], source *S, value A) bool {
	target, ok := p.PmMut(source)
	if !ok {
		return false
	}

	*target = value

	return true
}
