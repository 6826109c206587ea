package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optic-generator/internal/decl"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		shape decl.Shape
		want  Path
	}{
		{"enum", decl.EnumShape{}, PathEnum},
		{"named", decl.NamedStructShape{}, PathNamedStruct},
		{"positional", decl.PositionalStructShape{}, PathPositionalStruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(&decl.TypeDeclaration{Name: "T", Shape: tt.shape})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Rejects(t *testing.T) {
	_, err := Classify(&decl.TypeDeclaration{Name: "U", Shape: decl.UnsupportedShape{Name: "union"}})
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "U is a union")

	_, err = Classify(&decl.TypeDeclaration{Name: "V"})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Classify(nil)
	require.Error(t, err)
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "enum", PathEnum.String())
	assert.Equal(t, "positional struct", PathPositionalStruct.String())
	assert.Equal(t, "invalid", PathInvalid.String())
}
