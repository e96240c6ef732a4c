package multisort

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metal-stack/multisort/pkg/testcommon"
	"github.com/stretchr/testify/require"
)

func TestSortBy(t *testing.T) {
	now := time.Now()

	type machine struct {
		ID         string
		Project    string `json:"project"`
		Liveliness string
		LastEvent  time.Time
		IP         netip.Addr
	}

	testData := func() []machine {
		return []machine{
			{
				ID:         "004",
				Project:    "B",
				Liveliness: "Alive",
				IP:         netip.MustParseAddr("1.2.3.4"),
				LastEvent:  now.Add(-3 * time.Minute),
			},
			{
				ID:         "001",
				Project:    "B",
				Liveliness: "Unknown",
				IP:         netip.MustParseAddr("1.2.3.1"),
				LastEvent:  now.Add(-2 * time.Minute),
			},
			{
				ID:         "002",
				Project:    "A",
				Liveliness: "Alive",
				IP:         netip.MustParseAddr("1.2.3.2"),
				LastEvent:  now.Add(3 * time.Minute),
			},
			{
				ID:         "003",
				Project:    "A",
				Liveliness: "Unknown",
				IP:         netip.MustParseAddr("1.2.3.3"),
				LastEvent:  now.Add(1 * time.Minute),
			},
		}
	}

	fields := FieldMap[machine]{
		"id": Rank(func(m machine) string {
			return m.ID
		}),
		"project":    Field("project"),
		"liveliness": Field("Liveliness"),
		"event": Rank(func(m machine) time.Time {
			return m.LastEvent
		}),
		"ip": Field("IP"),
		"newest": Field("-LastEvent"),
	}

	tests := []struct {
		name        string
		keys        Keys
		defaultKeys Keys
		fields      FieldMap[machine]
		want        []string
		wantErr     error
	}{
		{
			name:   "sort without key does not change order",
			keys:   Keys{},
			fields: fields,
			want:   []string{"004", "001", "002", "003"},
		},
		{
			name:    "unknown key does not change order",
			keys:    Keys{{ID: "foo"}},
			fields:  fields,
			want:    []string{"004", "001", "002", "003"},
			wantErr: errors.New("sort key does not exist: foo"),
		},
		{
			name:   "sort by id",
			keys:   Keys{{ID: "id"}},
			fields: fields,
			want:   []string{"001", "002", "003", "004"},
		},
		{
			name:   "sort by id descending",
			keys:   Keys{{ID: "id", Descending: true}},
			fields: fields,
			want:   []string{"004", "003", "002", "001"},
		},
		{
			name:   "sort by project, id",
			keys:   Keys{{ID: "project"}, {ID: "id"}},
			fields: fields,
			want:   []string{"002", "003", "001", "004"},
		},
		{
			name:   "sort by liveliness descending, ip",
			keys:   Keys{{ID: "liveliness", Descending: true}, {ID: "ip"}},
			fields: fields,
			want:   []string{"001", "003", "002", "004"},
		},
		{
			name:   "sort by last event time",
			keys:   Keys{{ID: "event"}},
			fields: fields,
			want:   []string{"004", "001", "003", "002"},
		},
		{
			name:   "descending key reverses a descending field",
			keys:   Keys{{ID: "newest", Descending: true}},
			fields: fields,
			want:   []string{"004", "001", "003", "002"},
		},
		{
			name:   "sort by ip",
			keys:   Keys{{ID: "ip"}},
			fields: fields,
			want:   []string{"001", "002", "003", "004"},
		},
		{
			name:        "default keys are used without keys",
			defaultKeys: Keys{{ID: "newest"}},
			fields:      fields,
			want:        []string{"002", "003", "001", "004"},
		},
		{
			name:    "invalid field criterion",
			keys:    Keys{{ID: "broken"}},
			fields:  FieldMap[machine]{"broken": Field("")},
			want:    []string{"004", "001", "002", "003"},
			wantErr: errors.New(`sort key "broken": invalid sort criterion at position 0 (""): field name is empty`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testData()

			sorter := NewSorter(tt.fields, tt.defaultKeys)
			err := sorter.SortBy(data, tt.keys...)
			if diff := cmp.Diff(tt.wantErr, err, testcommon.ErrorStringComparer()); diff != "" {
				t.Errorf("error diff (+got -want):\n %s", diff)
			}

			var ids []string
			for _, m := range data {
				ids = append(ids, m.ID)
			}

			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
		})
	}
}

func TestAvailableKeys(t *testing.T) {
	sorter := NewSorter(FieldMap[string]{
		"b": Rank(func(s string) string { return s }),
		"a": Rank(func(s string) int { return len(s) }),
	}, nil)

	require.Equal(t, []string{"a", "b"}, sorter.AvailableKeys())
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Keys
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "mixed directions",
			raw:  "-name, +age,wins,,-",
			want: Keys{
				{ID: "name", Descending: true},
				{ID: "age"},
				{ID: "wins"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseKeys(tt.raw)); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
		})
	}
}
