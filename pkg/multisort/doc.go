/*
Package multisort builds comparators that sort records by multiple criteria in sequence.

Records can be maps, structs, slices, arrays or anything a rank function understands. Struct fields
are found by their name or their json tag:

	type record struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
		Wins int    `json:"wins"`
	}

	c, err := multisort.New[record](
		multisort.Field("-name"),                       // by name, descending
		multisort.Desc[record](multisort.Field("age")), // then by age, descending
		multisort.Rank(func(r record) int {             // then by wins, ascending
			return r.Wins
		}),
		multisort.Rank(func(r record) float64 { // then by wins per age
			return float64(r.Wins) / float64(r.Age)
		}),
		multisort.Asc[record](multisort.Field("-age")), // then by age again, ascending
	)
	if err != nil {
		return err
	}

	slices.SortStableFunc(records, c)

The same data represented as slices is sorted by positions:

	c, err := multisort.New[[]any](
		multisort.Index(0),                                // by name, descending
		multisort.Desc[[]any](multisort.Index(1)),         // then by age, descending
		multisort.Rank(func(r []any) any { return r[2] }), // then by wins, ascending
		multisort.Asc[[]any](multisort.Index(-1)),         // then by age again, ascending
	)

Criteria can also be read from documents and command lines, see Descriptor and ParseDescriptors.
*/
package multisort
