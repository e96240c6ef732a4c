package printers_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metal-stack/multisort/pkg/printers"
	"github.com/stretchr/testify/require"
)

var testRecords = []any{
	map[string]any{"name": "Foo", "age": 26, "meta": map[string]any{"tags": []any{"a", "b"}}},
	map[string]any{"name": "Bar", "age": 30},
}

func TestJSONPrinter(t *testing.T) {
	buffer := new(bytes.Buffer)
	err := printers.NewJSONPrinter().WithOut(buffer).Print([]any{map[string]any{"name": "Foo"}, []any{"Bar", 30}})
	require.NoError(t, err)

	want := `[
    {
        "name": "Foo"
    },
    [
        "Bar",
        30
    ]
]
`
	if diff := cmp.Diff(want, buffer.String()); diff != "" {
		t.Errorf("diff (+got -want):\n %s", diff)
	}
}

func TestYAMLPrinter(t *testing.T) {
	tests := []struct {
		name   string
		single bool
		data   any
		want   string
	}{
		{
			name: "one document per record",
			data: testRecords,
			want: `---
age: 26
meta:
  tags:
  - a
  - b
name: Foo
---
age: 30
name: Bar
`,
		},
		{
			name:   "single document",
			single: true,
			data:   []any{"a", 1},
			want: `---
- a
- 1
`,
		},
		{
			name: "error",
			data: errors.New("Test"),
			want: "Test\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffer := new(bytes.Buffer)
			p := printers.NewYAMLPrinter().WithOut(buffer)
			if tt.single {
				p = p.WithSingleDocument()
			}

			require.NoError(t, p.Print(tt.data))

			if diff := cmp.Diff(tt.want, buffer.String()); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
		})
	}
}

func TestTemplatePrinter(t *testing.T) {
	buffer := new(bytes.Buffer)
	err := printers.NewTemplatePrinter(`{{ .name | upper }} {{ .age }}`).WithOut(buffer).Print(testRecords)
	require.NoError(t, err)

	want := "FOO 26\nBAR 30\n"
	if diff := cmp.Diff(want, buffer.String()); diff != "" {
		t.Errorf("diff (+got -want):\n %s", diff)
	}
}

func TestTemplatePrinterInvalidTemplate(t *testing.T) {
	err := printers.NewTemplatePrinter(`{{ .name `).WithOut(new(bytes.Buffer)).Print(testRecords)
	require.Error(t, err)
}

func TestRecordRows(t *testing.T) {
	tests := []struct {
		name       string
		columns    []string
		data       any
		wantHeader []string
		wantRows   [][]string
		wantErr    bool
	}{
		{
			name:       "derived columns",
			data:       testRecords,
			wantHeader: []string{"age", "meta", "name"},
			wantRows: [][]string{
				{"26", `{"tags":["a","b"]}`, "Foo"},
				{"30", "", "Bar"},
			},
		},
		{
			name:       "given columns with paths",
			columns:    []string{"name", "meta.tags.1", "missing"},
			data:       testRecords,
			wantHeader: []string{"name", "meta.tags.1", "missing"},
			wantRows: [][]string{
				{"Foo", "b", ""},
				{"Bar", "", ""},
			},
		},
		{
			name:       "list records",
			data:       [][]any{{"Foo", 26}, {"Bar", 30, true}},
			wantHeader: []string{"0", "1", "2"},
			wantRows: [][]string{
				{"Foo", "26", ""},
				{"Bar", "30", "true"},
			},
		},
		{
			name:    "no list",
			data:    map[string]any{"name": "Foo"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, rows, err := printers.RecordRows(tt.columns...)(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			if diff := cmp.Diff(tt.wantHeader, header); diff != "" {
				t.Errorf("header diff (+got -want):\n %s", diff)
			}
			if diff := cmp.Diff(tt.wantRows, rows); diff != "" {
				t.Errorf("rows diff (+got -want):\n %s", diff)
			}
		})
	}
}

func TestTablePrinter(t *testing.T) {
	buffer := new(bytes.Buffer)
	p := printers.NewTablePrinter(&printers.TablePrinterConfig{
		ToHeaderAndRows: printers.RecordRows("name", "age"),
	}).WithOut(buffer)

	require.NoError(t, p.Print(testRecords))

	got := buffer.String()
	require.Contains(t, got, "Foo")
	require.Contains(t, got, "Bar")
	require.Less(t, bytes.Index(buffer.Bytes(), []byte("Foo")), bytes.Index(buffer.Bytes(), []byte("Bar")))
}

func TestTablePrinterWithoutRowsFunction(t *testing.T) {
	err := printers.NewTablePrinter(&printers.TablePrinterConfig{}).WithOut(new(bytes.Buffer)).Print(testRecords)
	require.EqualError(t, err, "missing to header and rows function in printer configuration")
}
