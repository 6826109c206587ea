package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"optic-generator/internal/analyze"
)

const shapesDir = "../../examples/shapes"

// TestGenerate_ShapesUpToDate regenerates the shapes example and compares
// it with the checked-in output.
func TestGenerate_ShapesUpToDate(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	loader := analyze.NewLoader(analyze.Options{Dir: shapesDir, SkipSuffix: cfg.OutputSuffix}, zap.NewNop())

	pkgs, err := loader.Load(context.Background(), ".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.Empty(t, pkgs[0].Diags.All())

	res := generate(t, cfg, UnitFromPackage(pkgs[0]))
	require.Empty(t, res.Diags.All())
	require.Len(t, res.Files, 1)

	file := res.Files[0]
	assert.Equal(t, "shapes_optics.go", file.Filename)

	want, err := os.ReadFile(filepath.Join(shapesDir, file.Filename))
	require.NoError(t, err)

	wantTypes, wantFuncs, wantImports := declNames(t, want)
	gotTypes, gotFuncs, gotImports := declNames(t, file.Content)

	assert.Equal(t, wantTypes, gotTypes)
	assert.Equal(t, wantFuncs, gotFuncs)
	assert.Equal(t, wantImports, gotImports)
}
