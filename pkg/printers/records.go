package printers

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/icza/dyno"
)

// RecordRows returns a header and rows function for the table printer that prints one row per record.
//
// Columns are dotted paths into the records, positions of list records are given as numbers. Without
// columns the keys of all map records are used in sorted order, list records get one column per position.
func RecordRows(columns ...string) func(data any) ([]string, [][]string, error) {
	return func(data any) ([]string, [][]string, error) {
		records, err := toRecords(data)
		if err != nil {
			return nil, nil, err
		}

		header := columns
		if len(header) == 0 {
			header = deriveColumns(records)
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			row := make([]string, 0, len(header))
			for _, column := range header {
				row = append(row, format(cell(r, column)))
			}
			rows = append(rows, row)
		}

		return header, rows, nil
	}
}

func toRecords(data any) ([]any, error) {
	if records, ok := data.([]any); ok {
		return records, nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("records must be a list, got %T", data)
	}

	res := make([]any, 0, v.Len())
	for i := range v.Len() {
		res = append(res, v.Index(i).Interface())
	}

	return res, nil
}

func deriveColumns(records []any) []string {
	var (
		keys   = map[string]bool{}
		length = 0
	)

	for _, r := range records {
		switch record := r.(type) {
		case map[string]any:
			for k := range record {
				keys[k] = true
			}
		case []any:
			length = max(length, len(record))
		}
	}

	var res []string
	for k := range keys {
		res = append(res, k)
	}
	sort.Strings(res)

	for i := range length {
		res = append(res, strconv.Itoa(i))
	}

	return res
}

func cell(record any, column string) any {
	current := record
	for _, elem := range strings.Split(column, ".") {
		var key any = elem
		if _, ok := current.([]any); ok {
			i, err := strconv.Atoi(elem)
			if err != nil {
				return nil
			}
			key = i
		}

		value, err := dyno.Get(current, key)
		if err != nil {
			return nil
		}
		current = value
	}
	return current
}

func format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}
