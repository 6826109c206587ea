package optics

import "fmt"

// Ok, Err, Some and None are the conventional variant accessors. The
// generator never emits definitions for these names; implementations for
// enums with variants of the same names target these types instead.

// Ok accesses the success variant of a result-like enum.
type Ok[O any] struct {
	Optic O
}

func (o Ok[O]) String() string { return fmt.Sprintf("_Ok(%v)", o.Optic) }

// Err accesses the failure variant of a result-like enum.
type Err[O any] struct {
	Optic O
}

func (o Err[O]) String() string { return fmt.Sprintf("_Err(%v)", o.Optic) }

// Some accesses the present variant of an option-like enum.
type Some[O any] struct {
	Optic O
}

func (o Some[O]) String() string { return fmt.Sprintf("_Some(%v)", o.Optic) }

// None accesses the absent variant of an option-like enum.
type None[O any] struct {
	Optic O
}

func (o None[O]) String() string { return fmt.Sprintf("_None(%v)", o.Optic) }
