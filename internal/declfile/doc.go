// Package declfile reads type declarations from YAML or JSON files, for
// callers that do not keep their types in annotated Go source.
//
// # Schema Overview
//
//	version: "1"
//	package: shapes
//	imports: [time]
//	types:
//	  - name: User
//	    struct:
//	      - {name: id, type: int, optic: ""}       # Move tier
//	      - {name: created, type: time.Time, optic: ref}
//	      - {name: notes, type: string}            # not annotated
//
//	  - name: Shape
//	    derive: optic, prism                       # string or list
//	    enum:
//	      - name: Circle
//	        optic: "(mut)"
//	        fields: [{name: Radius, type: float64}]
//	      - {name: Dot, optic: "(ref)"}            # zero-field variant
//
//	  - name: RGB
//	    tuple:
//	      - {type: uint8, optic: ref}
//	      - {type: uint8}
//	      - {type: uint8, optic: ""}
//
//	  - name: Pair
//	    generics: [{name: K, constraint: comparable}, {name: V}]
//	    where: [{param: K, constraint: fmt.Stringer}]
//	    struct:
//	      - {name: key, type: K, optic: ""}
//
// An absent optic key leaves a member unannotated; an empty string
// annotates it with the default tier. Bare keywords ("ref", "mut") are
// accepted as shorthand for the parenthesized payloads. Exactly one of
// struct, tuple, enum or union describes the shape; union is accepted so
// that derivation can report it as unsupported.
//
// The same schema is accepted as JSON with identical keys.
package declfile
