package records

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metal-stack/multisort/pkg/testcommon"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name            string
		mockFn          func(fs afero.Fs)
		from            []string
		stdin           string
		want            []any
		wantErr         error
		wantErrContains string
	}{
		{
			name: "empty file",
			mockFn: func(fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/empty.yaml", []byte(""), 0755))
			},
			from: []string{"/empty.yaml"},
			want: nil,
		},
		{
			name: "json list",
			mockFn: func(fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/list.json", []byte(`[{"name": "Foo", "age": 26}, ["Bar", 30]]`), 0755))
			},
			from: []string{"/list.json"},
			want: []any{
				map[string]any{"name": "Foo", "age": float64(26)},
				[]any{"Bar", float64(30)},
			},
		},
		{
			name: "multi document yaml",
			mockFn: func(fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/docs.yaml", []byte(`---
name: a
---
---
- name: b
- name: c
`), 0755))
			},
			from: []string{"/docs.yaml"},
			want: []any{
				map[string]any{"name": "a"},
				map[string]any{"name": "b"},
				map[string]any{"name": "c"},
			},
		},
		{
			name: "several sources keep their order",
			mockFn: func(fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/a.yaml", []byte("- 1\n- 2\n"), 0755))
				require.NoError(t, afero.WriteFile(fs, "/b.yaml", []byte("- 3\n"), 0755))
			},
			from:  []string{"/b.yaml", "-", "/a.yaml"},
			stdin: "[4, 5]",
			want:  []any{float64(3), float64(4), float64(5), float64(1), float64(2)},
		},
		{
			name:    "missing file",
			from:    []string{"/missing.yaml"},
			wantErr: errors.New("file does not exist: /missing.yaml"),
		},
		{
			name:    "no sources",
			wantErr: errors.New("at least one source must be given"),
		},
		{
			name:    "stdin twice",
			from:    []string{"-", "-"},
			wantErr: errors.New("stdin can only be read once"),
		},
		{
			name: "broken document",
			mockFn: func(fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/broken.yaml", []byte("a: [1, 2"), 0755))
			},
			from:            []string{"/broken.yaml"},
			wantErrContains: `unable to read records from "/broken.yaml": decode error`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.mockFn != nil {
				tt.mockFn(fs)
			}

			loader := NewLoader(fs).WithStdin(strings.NewReader(tt.stdin))

			got, err := loader.Load(context.Background(), tt.from...)

			if tt.wantErrContains != "" {
				require.ErrorContains(t, err, tt.wantErrContains)
				return
			}

			if diff := cmp.Diff(tt.wantErr, err, testcommon.ErrorStringComparer()); diff != "" {
				t.Errorf("error diff (+got -want):\n %s", diff)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
		})
	}
}

func TestLoadCanceled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.yaml", []byte("- 1\n"), 0755))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(fs).Load(ctx, "/a.yaml")
	require.ErrorIs(t, err, context.Canceled)
}
