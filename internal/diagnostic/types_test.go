package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "message only",
			d:    Diagnostic{Message: "nothing to do"},
			want: "nothing to do",
		},
		{
			name: "type and member",
			d:    Diagnostic{Code: CodeMalformedDirective, Message: "bad payload", Type: "User", Member: "id"},
			want: "User.id: [malformed_directive] bad payload",
		},
		{
			name: "position",
			d:    Diagnostic{Code: CodeShapeMismatch, Message: "no lens", Type: "Shape", Pos: "shapes.go:12"},
			want: "shapes.go:12: Shape: [shape_mismatch] no lens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics

	require.NoError(t, d.Error())
	assert.False(t, d.HasErrors())

	d.AddWarning(CodeIndexOutOfRange, "index 7 ignored", "Octet", "7")
	require.NoError(t, d.Error())

	d.AddError(CodeMissingAccessor, "_id is never defined", "User", "id")
	d.AddError(CodeDuplicateType, "declared twice", "User", "")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"User.id: [missing_accessor] _id is never defined; User: [duplicate_type] declared twice",
		err.Error())
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo(CodeDerive, "derived lens", "User", "")
	b.AddError(CodeShapeMismatch, "no prism", "User", "")
	b.Add(Diagnostic{Severity: SeverityWarning, Code: CodeIndexOutOfRange, Type: "Octet", Member: "7"})
	b.AddError(CodeMalformedDirective, "bad", "Account", "balance")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 4)
	assert.Equal(t, "Account", all[0].Type)
	assert.Equal(t, "User", all[1].Type)
	assert.Equal(t, SeverityWarning, all[2].Severity)
	assert.Equal(t, SeverityInfo, all[3].Severity)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
