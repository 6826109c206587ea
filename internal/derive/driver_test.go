package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optic-generator/internal/decl"
	"optic-generator/internal/registry"
)

func TestDeriveOptic_StructAccessor(t *testing.T) {
	s := NewSession(DefaultOptions())

	b, err := s.DeriveOptic(userDecl(""))
	require.NoError(t, err)

	want := `// _id is the optic accessor for fields named id.
//
//nolint:revive // accessor names follow member names
type _id[O any] struct {
	Optic O
}
`
	assert.Equal(t, want, b.Code)
	assert.Equal(t, []string{"_id"}, b.Defined)
	assert.True(t, s.Registry().Contains("_id"))
}

func TestDeriveOptic_EnumAccessor(t *testing.T) {
	s := NewSession(DefaultOptions())

	b, err := s.DeriveOptic(shapeDecl(""))
	require.NoError(t, err)

	funcs, types := parseDecls(t, b.Code)
	assert.Empty(t, funcs)
	assert.Equal(t, []string{"_Circle", "_Dot"}, types)
	assert.Contains(t, b.Code, `func (o _Circle[O]) String() string {`)
	assert.Contains(t, b.Code, `return fmt.Sprintf("_Circle(%v)", o.Optic)`)
	assert.NotContains(t, b.Code, "nolint")
}

func TestDeriveOptic_OncePerName(t *testing.T) {
	s := NewSession(DefaultOptions())

	first, err := s.DeriveOptic(userDecl(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"_id"}, first.Defined)

	second, err := s.DeriveOptic(groupDecl())
	require.NoError(t, err)
	assert.Equal(t, []string{"_members"}, second.Defined)
	assert.Equal(t, 1, strings.Count(first.Code+second.Code, "type _id["))

	again, err := s.DeriveOptic(userDecl("(ref)"))
	require.NoError(t, err)
	assert.True(t, again.Empty())
}

func TestDeriveOptic_SharedRegistryAcrossSessions(t *testing.T) {
	reg := registry.New(registry.DefaultPrefix)

	users := NewSessionWithRegistry(DefaultOptions(), reg)
	groups := NewSessionWithRegistry(DefaultOptions(), reg)

	first, err := users.DeriveOptic(userDecl(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"_id"}, first.Defined)

	second, err := groups.DeriveOptic(groupDecl())
	require.NoError(t, err)
	assert.Equal(t, []string{"_members"}, second.Defined)

	assert.Same(t, reg, groups.Registry())
	assert.True(t, reg.Contains("_members"))
}

func TestDeriveOptic_OncePerName_ReverseOrder(t *testing.T) {
	s := NewSession(DefaultOptions())

	first, err := s.DeriveOptic(groupDecl())
	require.NoError(t, err)
	assert.Equal(t, []string{"_id", "_members"}, first.Defined)

	second, err := s.DeriveOptic(userDecl(""))
	require.NoError(t, err)
	assert.True(t, second.Empty())
}

func TestDeriveOptic_BuiltinNamesNeverEmitted(t *testing.T) {
	s := NewSession(DefaultOptions())

	b, err := s.DeriveOptic(resultDecl())
	require.NoError(t, err)
	assert.True(t, b.Empty())
	assert.Empty(t, b.Defined)
}

func TestDeriveOptic_SharedAcrossFlavors(t *testing.T) {
	s := NewSession(DefaultOptions())

	tagged := &decl.TypeDeclaration{
		Name: "Token",
		Shape: decl.EnumShape{Variants: []decl.Variant{
			{Name: "id", Fields: []decl.VariantField{{Name: "V", Type: "int"}}, Optic: decl.Annotate("")},
		}},
	}

	_, err := s.DeriveOptic(userDecl(""))
	require.NoError(t, err)

	b, err := s.DeriveOptic(tagged)
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestDeriveOptic_CustomPrefix(t *testing.T) {
	s := NewSession(Options{Prefix: "Of"})

	b, err := s.DeriveOptic(userDecl(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ofid"}, b.Defined)
	assert.True(t, s.Registry().Contains("OfOk"))
}

func TestDeriveOptic_MalformedLeavesRegistryUntouched(t *testing.T) {
	s := NewSession(DefaultOptions())

	d := &decl.TypeDeclaration{
		Name: "User",
		Shape: decl.NamedStructShape{Fields: []decl.NamedField{
			{Name: "id", Type: "int", Optic: decl.Annotate("")},
			{Name: "name", Type: "string", Optic: decl.Annotate("(foo)")},
		}},
	}

	b, err := s.DeriveOptic(d)
	require.ErrorIs(t, err, decl.ErrMalformedDirective)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "User.name")
	assert.False(t, s.Registry().Contains("_id"))
}

func TestDeriveOptic_RejectsUnsupported(t *testing.T) {
	s := NewSession(DefaultOptions())

	_, err := s.DeriveOptic(&decl.TypeDeclaration{Name: "U", Shape: decl.UnsupportedShape{Name: "union"}})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDeriveLens_RefTier(t *testing.T) {
	s := NewSession(DefaultOptions())

	b, err := s.DeriveLens(userDecl("(ref)"))
	require.NoError(t, err)

	want := `// User_idViewRef implements optics.LensRef for User.id.
func User_idViewRef[To any, Ls optics.LensRef[int, To]](o _id[Ls]) optics.ViewRefFunc[User, To] {
	return func(source *User) To {
		return o.Optic.ViewRef(&source.id)
	}
}`
	assert.Contains(t, b.Code, want)
	assert.Equal(t, []string{"User_idTraverseRef", "User_idPmRef", "User_idViewRef"}, b.Funcs)
	assert.Equal(t, []string{"_id"}, b.Uses)

	funcs, types := parseDecls(t, b.Code)
	assert.Equal(t, b.Funcs, funcs)
	assert.Empty(t, types)
}

func TestDeriveLens_MoveTier(t *testing.T) {
	s := NewSession(DefaultOptions())

	b, err := s.DeriveLens(userDecl(""))
	require.NoError(t, err)

	assert.Contains(t, b.Code, "func User_idView[To any, Ls optics.Lens[int, To]](o _id[Ls]) optics.ViewFunc[User, To] {")
	assert.Contains(t, b.Code, "return o.Optic.View(source.id)")
	assert.Contains(t, b.Code, "return o.Optic.ViewMut(&source.id)")
	assert.Contains(t, b.Code, "func(source *User) (*To, bool)")
	assert.Contains(t, b.Code, "func(source User) []To")
}

func TestDeriveLens_TierMonotonicity(t *testing.T) {
	sets := make(map[decl.MutabilityMode]map[string]bool)

	for _, payload := range []string{"(ref)", "(mut)", ""} {
		s := NewSession(DefaultOptions())

		b, err := s.DeriveLens(userDecl(payload))
		require.NoError(t, err)

		funcs, _ := parseDecls(t, b.Code)

		mode, err := decl.ParseMutability(payload)
		require.NoError(t, err)

		sets[mode] = make(map[string]bool)
		for _, f := range funcs {
			sets[mode][f] = true
		}
	}

	assert.Len(t, sets[decl.Ref], 3)
	assert.Len(t, sets[decl.Mut], 6)
	assert.Len(t, sets[decl.Move], 9)
	assertStrictSubset(t, sets[decl.Ref], sets[decl.Mut])
	assertStrictSubset(t, sets[decl.Mut], sets[decl.Move])
}

func TestDerivePrism_TierMonotonicity(t *testing.T) {
	counts := make(map[string]int)

	var prev map[string]bool

	for _, payload := range []string{"(ref)", "(mut)", ""} {
		d := shapeDecl(payload)
		d.Shape = decl.EnumShape{Variants: d.Shape.(decl.EnumShape).Variants[:1]}

		b, err := NewSession(DefaultOptions()).DerivePrism(d)
		require.NoError(t, err)

		funcs, _ := parseDecls(t, b.Code)
		counts[payload] = len(funcs)

		cur := make(map[string]bool)
		for _, f := range funcs {
			cur[f] = true
			assert.NotContains(t, f, "View")
		}

		if prev != nil {
			assertStrictSubset(t, prev, cur)
		}

		prev = cur
	}

	assert.Equal(t, map[string]int{"(ref)": 2, "(mut)": 4, "": 6}, counts)
}

func TestDeriveLens_Generics(t *testing.T) {
	d := &decl.TypeDeclaration{
		Name:     "Pair",
		Generics: []decl.GenericParam{{Name: "K", Constraint: "comparable"}, {Name: "V"}},
		Where:    []decl.WherePredicate{{Param: "K", Constraint: "fmt.Stringer"}},
		Shape: decl.NamedStructShape{Fields: []decl.NamedField{
			{Name: "key", Type: "K", Optic: decl.Annotate("(ref)")},
			{Name: "value", Type: "V"},
		}},
	}

	b, err := NewSession(DefaultOptions()).DeriveLens(d)
	require.NoError(t, err)

	assert.Contains(t, b.Code,
		"func Pair_keyViewRef[K interface{ comparable; fmt.Stringer }, V any, To any, Ls optics.LensRef[K, To]](o _key[Ls]) optics.ViewRefFunc[Pair[K, V], To] {")
	assert.Contains(t, b.Code, "return func(source *Pair[K, V]) To {")

	_, _ = parseDecls(t, b.Code)
}

func TestDeriveLens_FreshNames(t *testing.T) {
	d := &decl.TypeDeclaration{
		Name:     "Box",
		Generics: []decl.GenericParam{{Name: "To"}, {Name: "Ls"}, {Name: "o"}},
		Shape: decl.NamedStructShape{Fields: []decl.NamedField{
			{Name: "item", Type: "To", Optic: decl.Annotate("(ref)")},
		}},
	}

	b, err := NewSession(DefaultOptions()).DeriveLens(d)
	require.NoError(t, err)

	assert.Contains(t, b.Code,
		"func Box_itemViewRef[To any, Ls any, o any, To1 any, Ls1 optics.LensRef[To, To1]](o1 _item[Ls1]) optics.ViewRefFunc[Box[To, Ls, o], To1] {")
	assert.Contains(t, b.Code, "return o1.Optic.ViewRef(&source.item)")
}

func TestDeriveLens_UnknownWhereParam(t *testing.T) {
	d := userDecl("")
	d.Where = []decl.WherePredicate{{Param: "T", Constraint: "any"}}

	_, err := NewSession(DefaultOptions()).DeriveLens(d)
	require.ErrorIs(t, err, decl.ErrUnknownParam)
}

func TestDeriveLens_Positional(t *testing.T) {
	b, err := NewSession(DefaultOptions()).DeriveLens(octetDecl(8, 2))
	require.NoError(t, err)

	assert.Contains(t, b.Code, "func Octet_2ViewMut[To any, Ls optics.LensMut[uint8, To]](o _2[Ls]) optics.ViewMutFunc[Octet, To] {")
	assert.Contains(t, b.Code, "return o.Optic.ViewMut(&(*source)[2])")
	assert.Len(t, b.Funcs, 6)

	_, _ = parseDecls(t, b.Code)
}

func TestDeriveLens_PositionalScopeLimit(t *testing.T) {
	d := octetDecl(8, 7)
	s := NewSession(DefaultOptions())

	assert.Empty(t, s.Accessors(d))

	optic, err := s.DeriveOptic(d)
	require.NoError(t, err)
	assert.True(t, optic.Empty())

	lens, err := s.DeriveLens(d)
	require.NoError(t, err)
	assert.True(t, lens.Empty())
	assert.Empty(t, lens.Funcs)
}

func TestDeriveLens_PositionalMalformedBeyondLimitIgnored(t *testing.T) {
	d := octetDecl(8)
	d.Shape.(decl.PositionalStructShape).Fields[7].Optic = decl.Annotate("(foo)")

	_, err := NewSession(DefaultOptions()).DeriveLens(d)
	require.NoError(t, err)
}

func TestDerivePrism_Body(t *testing.T) {
	b, err := NewSession(DefaultOptions()).DerivePrism(shapeDecl("(mut)"))
	require.NoError(t, err)

	want := `// Shape_CirclePmRef implements optics.PrismRef for Shape.Circle.
func Shape_CirclePmRef[To any, Pm optics.PrismRef[float64, To]](o _Circle[Pm]) optics.PmRefFunc[Shape, To] {
	return func(source *Shape) (To, bool) {
		if v, ok := (*source).(*Circle); ok && v != nil {
			return o.Optic.PmRef(&v.Radius)
		}

		var zero To

		return zero, false
	}
}`
	assert.Contains(t, b.Code, want)
	assert.Contains(t, b.Code, "return nil, false")
	assert.Equal(t, []string{
		"Shape_CircleTraverseRef", "Shape_CirclePmRef",
		"Shape_CircleTraverseMut", "Shape_CirclePmMut",
		"Shape_DotTraverseRef", "Shape_DotPmRef",
	}, b.Funcs)

	_, _ = parseDecls(t, b.Code)
}

func TestDerivePrism_UnitVariant(t *testing.T) {
	b, err := NewSession(DefaultOptions()).DerivePrism(shapeDecl(""))
	require.NoError(t, err)

	assert.Contains(t, b.Code, "func Shape_DotPmRef[To any, Pm optics.PrismRef[struct{}, To]](o _Dot[Pm]) optics.PmRefFunc[Shape, To] {")
	assert.Contains(t, b.Code, "return o.Optic.PmRef(&struct{}{})")
	assert.Contains(t, b.Code, "return o.Optic.Pm(v.Radius)")
	assert.Contains(t, b.Code, "if v, ok := source.(*Circle); ok && v != nil {")
}

func TestDerivePrism_GenericBuiltins(t *testing.T) {
	b, err := NewSession(DefaultOptions()).DerivePrism(resultDecl())
	require.NoError(t, err)

	assert.Contains(t, b.Code,
		"func Result_OkPm[T any, E error, To any, Pm optics.Prism[T, To]](o optics.Ok[Pm]) optics.PmFunc[Result[T, E], To] {")
	assert.Contains(t, b.Code, "if v, ok := source.(*Ok[T, E]); ok && v != nil {")
	assert.Contains(t, b.Code, "func Result_ErrPmMut[T any, E error, To any, Pm optics.PrismMut[E, To]](o optics.Err[Pm])")
	assert.NotContains(t, b.Code, "Result_ErrPm[")
	assert.Equal(t, []string{"_Ok", "_Err"}, b.Uses)

	_, _ = parseDecls(t, b.Code)
}

func TestDeriveReview(t *testing.T) {
	b, err := NewSession(DefaultOptions()).DeriveReview(shapeDecl("(ref)"))
	require.NoError(t, err)

	want := `// Shape_CircleReview implements optics.Review for Shape.Circle.
func Shape_CircleReview[From any, Rv optics.Review[From, float64]](o _Circle[Rv]) optics.ReviewFunc[From, Shape] {
	return func(from From) Shape {
		return &Circle{Radius: o.Optic.Review(from)}
	}
}`
	assert.Contains(t, b.Code, want)
	assert.Contains(t, b.Code, "_ = o.Optic.Review(from)")
	assert.Contains(t, b.Code, "return &Dot{}")
	assert.Equal(t, []string{"Shape_CircleReview", "Shape_DotReview"}, b.Funcs)

	funcs, _ := parseDecls(t, b.Code)
	assert.Equal(t, b.Funcs, funcs)
}

func TestDeriveReview_Generic(t *testing.T) {
	b, err := NewSession(DefaultOptions()).DeriveReview(resultDecl())
	require.NoError(t, err)

	assert.Contains(t, b.Code, "return &Ok[T, E]{Value: o.Optic.Review(from)}")
	assert.Contains(t, b.Code, "(o optics.Ok[Rv]) optics.ReviewFunc[From, Result[T, E]]")
}

func TestDerive_ShapeMismatch(t *testing.T) {
	s := NewSession(DefaultOptions())

	_, err := s.DeriveLens(shapeDecl(""))
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "cannot derive Lens for Shape (enum)")

	_, err = s.DerivePrism(userDecl(""))
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = s.DeriveReview(octetDecl(3, 0))
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = s.DeriveReview(&decl.TypeDeclaration{Name: "U", Shape: decl.UnsupportedShape{Name: "union"}})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDerive_MalformedDirective(t *testing.T) {
	s := NewSession(DefaultOptions())

	_, err := s.DeriveLens(userDecl("(foo)"))
	require.ErrorIs(t, err, decl.ErrMalformedDirective)
	assert.Contains(t, err.Error(), "User.id")
	assert.Contains(t, err.Error(), "optic, optic(ref) or optic(mut)")

	_, err = s.DerivePrism(shapeDecl("foo"))
	require.ErrorIs(t, err, decl.ErrMalformedDirective)
	assert.Contains(t, err.Error(), "Shape.Circle")
	assert.Contains(t, err.Error(), "optic, optic(ref) or optic(mut)")

	_, err = s.DeriveReview(shapeDecl("(foo)"))
	require.ErrorIs(t, err, decl.ErrMalformedDirective)
}

func TestDerive_Dispatch(t *testing.T) {
	s := NewSession(DefaultOptions())

	for _, k := range []decl.DerivationKind{decl.DeriveOptic, decl.DeriveReview, decl.DerivePrism} {
		b, err := s.Derive(shapeDecl(""), k)
		require.NoError(t, err, k)
		assert.Equal(t, k, b.Kind)
		assert.Equal(t, "Shape", b.Owner)
	}

	_, err := s.Derive(shapeDecl(""), decl.DerivationKind(42))
	require.Error(t, err)
}

func TestAccessors(t *testing.T) {
	s := NewSession(DefaultOptions())

	ids := s.Accessors(shapeDecl(""))
	require.Len(t, ids, 2)
	assert.Equal(t, "_Circle", ids[0].Name)
	assert.Equal(t, "float64", ids[0].Target)
	assert.Equal(t, "_Dot", ids[1].Name)
	assert.Equal(t, "struct{}", ids[1].Target)
	assert.Equal(t, "Shape", ids[1].Owner.Name)
}

func assertStrictSubset(t *testing.T, small, big map[string]bool) {
	t.Helper()

	for k := range small {
		assert.True(t, big[k], "%s missing from larger tier", k)
	}

	assert.Greater(t, len(big), len(small))
}

func TestDeriveLens_RuntimeAliasParamRejected(t *testing.T) {
	d := &decl.TypeDeclaration{
		Name:     "Holder",
		Generics: []decl.GenericParam{{Name: "optics", Constraint: "any"}},
		Shape: decl.NamedStructShape{Fields: []decl.NamedField{
			{Name: "value", Type: "optics", Optic: decl.Annotate("(ref)")},
		}},
	}

	_, err := NewSession(DefaultOptions()).DeriveLens(d)
	require.ErrorIs(t, err, ErrRuntimeShadowed)

	// Under another alias the same parameter is fine.
	b, err := NewSession(Options{RuntimeAlias: "opt"}).DeriveLens(d)
	require.NoError(t, err)
	assert.Contains(t, b.Code, "func Holder_valueViewRef[optics any, To any, Ls opt.LensRef[optics, To]](o _value[Ls]) opt.ViewRefFunc[Holder[optics], To] {")
}

func TestDeriveLens_FreshNamesAvoidRuntimeAlias(t *testing.T) {
	b, err := NewSession(Options{RuntimeAlias: "To"}).DeriveLens(userDecl("(ref)"))
	require.NoError(t, err)

	assert.Contains(t, b.Code, "func User_idViewRef[To1 any, Ls To.LensRef[int, To1]](o _id[Ls]) To.ViewRefFunc[User, To1] {")
	assert.NotContains(t, b.Code, "[To any")
}
