package derive

import (
	"strconv"

	"optic-generator/internal/decl"
)

// scope hands out identifiers that do not collide with the owner's type
// parameters or with each other.
type scope struct {
	taken map[string]struct{}
}

func newScope(params []decl.GenericParam, reserved ...string) *scope {
	s := &scope{taken: make(map[string]struct{}, len(params)+len(reserved))}
	for _, p := range params {
		s.taken[p.Name] = struct{}{}
	}

	for _, r := range reserved {
		s.taken[r] = struct{}{}
	}

	return s
}

// fresh returns base, or base with the smallest numeric suffix that is free.
func (s *scope) fresh(base string) string {
	name := base
	for i := 1; ; i++ {
		if _, ok := s.taken[name]; !ok {
			break
		}

		name = base + strconv.Itoa(i)
	}

	s.taken[name] = struct{}{}

	return name
}
