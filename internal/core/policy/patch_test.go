package policy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func TestParsePatch_DropsWrongTypes(t *testing.T) {
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"auto_approve": "yes",
		"low_risk_actions": ["logNote", 7, "readFile"],
		"per_source_allow": "UI",
		"temporal_windows": [-1, 10, "abc", 2.5],
		"history_limit": 25,
		"unknown": true
	}`), &raw))

	patch := ParsePatch(raw)

	require.Nil(t, patch.AutoApprove)
	require.Equal(t, []string{"logNote", "readFile"}, patch.LowRiskActions)
	require.Nil(t, patch.PerSourceAllow)
	require.Equal(t, []int{-1, 10, 0, 0}, patch.TemporalWindows)
	require.NotNil(t, patch.HistoryLimit)
	require.Equal(t, 25, *patch.HistoryLimit)

	s := NewStore(Defaults())
	applied := s.Apply(patch)
	require.Equal(t, []string{"low_risk_actions", "temporal_windows", "history_limit"}, applied)
	require.Equal(t, []int{10}, s.Current().TemporalWindows)
	require.True(t, s.Current().AutoApprove)
}

func TestParsePatch_Signatures(t *testing.T) {
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"sequence_signatures": [
			{"name": "emit-consume", "pattern": ["A:emit", "B:consume"], "within_seconds": 5},
			{"name": "fractional", "pattern": ["A:emit"], "within_seconds": 1.5},
			"garbage"
		]
	}`), &raw))

	patch := ParsePatch(raw)
	require.Len(t, patch.SequenceSignatures, 3)

	s := NewStore(Defaults())
	s.Apply(patch)
	require.Equal(t, []v1.Signature{
		{Name: "emit-consume", Pattern: []string{"A:emit", "B:consume"}, WithinSeconds: 5},
	}, s.Current().SequenceSignatures)
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   int
		wantOK bool
	}{
		{name: "int", in: 7, want: 7, wantOK: true},
		{name: "int64", in: int64(-3), want: -3, wantOK: true},
		{name: "integral float", in: 10.0, want: 10, wantOK: true},
		{name: "json number", in: json.Number("42"), want: 42, wantOK: true},
		{name: "fraction", in: 2.5},
		{name: "string", in: "10"},
		{name: "bool", in: true},
		{name: "huge", in: 1e12},
		{name: "nil", in: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt(tc.in)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auto_approve: false
temporal_windows: [5, 30]
per_source_allow:
  UI: [openPanel]
sequence_signatures:
  - name: emit-consume
    pattern: ["A:emit", "B:consume"]
    within_seconds: 5
`), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Fingerprint, 64)

	s := NewStore(Defaults())
	s.Apply(f.Patch)
	p := s.Current()
	require.False(t, p.AutoApprove)
	require.Equal(t, []int{5, 30}, p.TemporalWindows)
	require.Equal(t, map[string][]string{"UI": {"openPanel"}}, p.PerSourceAllow)
	require.Len(t, p.SequenceSignatures, 1)
}

func TestLoadFile_MissingAndMalformed(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.True(t, f.Patch.Empty())

	f, err = LoadFile("")
	require.NoError(t, err)
	require.True(t, f.Patch.Empty())

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- just\n- a list\n"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)
}
