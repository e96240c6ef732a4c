package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/metal-stack/multisort/pkg/commands/types"
	"github.com/metal-stack/multisort/pkg/multisort"
	"github.com/metal-stack/multisort/pkg/printers"
	"github.com/metal-stack/multisort/pkg/records"
	"github.com/metal-stack/multisort/zapup"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type sortCmd struct {
	c *types.Config
}

func newSortCmd(c *types.Config) *cobra.Command {
	w := &sortCmd{
		c: c,
	}

	cmd := &cobra.Command{
		Use:   "sort [files...]",
		Short: "sorts records read from json or yaml files",
		Long: `reads records from the given files, "-" or no file at all reads from stdin. a document holding a list contributes every element as a record.

sort descriptors have the form [-]selector[:conversion]. a selector is a field name, a dotted path or a position in list records. a leading "-" sorts descending, so do position 0 and negative positions.

supported conversions: ` + strings.Join(multisort.Conversions(), "|"),
		Example: `  multisort sort machines.yaml --sort-by project,-meta.created:datetime
  multisort sort --criteria-file criteria.yaml -o yaml < machines.json
  multisort sort machines.yaml --sort-key -newest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return w.sort(cmd.Context(), args)
		},
	}

	cmd.Flags().String("sort-by", "", "comma separated sort descriptors, e.g. -age:number,name")
	cmd.Flags().String("criteria-file", "", "yaml or json file containing a list of sort descriptors, applied after --sort-by")
	cmd.Flags().String("sort-key", "", "comma separated names of sort keys defined in the config file, prefix a name with - for descending order")
	cmd.Flags().StringSlice("columns", nil, "table columns as dotted paths, defaults to all fields of the records")
	cmd.Flags().Bool("summary", false, "prints a summary to stderr after sorting")

	cmd.MarkFlagsMutuallyExclusive("sort-key", "sort-by")
	cmd.MarkFlagsMutuallyExclusive("sort-key", "criteria-file")

	Must(cmd.RegisterFlagCompletionFunc("sort-key", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		sorter, err := newKeySorter()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return sorter.AvailableKeys(), cobra.ShellCompDirectiveNoFileComp
	}))

	return cmd
}

func (s *sortCmd) sort(ctx context.Context, args []string) error {
	log := zapup.FromContext(ctx)

	from := args
	if len(from) == 0 {
		from = []string{records.Stdin}
	}

	printer, err := s.printer()
	if err != nil {
		return err
	}

	data, err := records.NewLoader(s.c.Fs).WithStdin(s.c.In).Load(ctx, from...)
	if err != nil {
		return err
	}
	if data == nil {
		data = []any{}
	}

	log.Debug("loaded records", zap.Strings("from", from), zap.Int("count", len(data)))

	var by string
	if viper.IsSet("sort-key") {
		by, err = sortByKeys(data)
	} else {
		by, err = s.sortByDescriptors(data)
	}
	if err != nil {
		return err
	}

	log.Debug("sorted records", zap.String("by", by))

	if viper.GetBool("summary") {
		_, _ = fmt.Fprintf(s.c.Err, "%s sorted %d records by %s\n", color.GreenString("✔"), len(data), color.GreenString(by))
	}

	return printer.Print(data)
}

func (s *sortCmd) sortByDescriptors(data []any) (string, error) {
	descriptors, err := s.descriptors()
	if err != nil {
		return "", err
	}

	criteria, err := multisort.Criteria[any](descriptors...)
	if err != nil {
		return "", err
	}

	err = multisort.Sort(data, criteria...)
	if err != nil {
		return "", err
	}

	if len(descriptors) == 0 {
		return "input order", nil
	}

	var by []string
	for _, d := range descriptors {
		by = append(by, d.String())
	}

	return strings.Join(by, ", "), nil
}

func (s *sortCmd) descriptors() (multisort.Descriptors, error) {
	descriptors, err := multisort.ParseDescriptors(viper.GetString("sort-by"))
	if err != nil {
		return nil, fmt.Errorf("invalid sort-by: %w", err)
	}

	path := viper.GetString("criteria-file")
	if path == "" {
		return descriptors, nil
	}

	raw, err := afero.ReadFile(s.c.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read criteria file: %w", err)
	}

	var fromFile multisort.Descriptors
	err = yaml.Unmarshal(raw, &fromFile)
	if err != nil {
		return nil, fmt.Errorf("unable to parse criteria file %q: %w", path, err)
	}

	return append(descriptors, fromFile...), nil
}

func sortByKeys(data []any) (string, error) {
	sorter, err := newKeySorter()
	if err != nil {
		return "", err
	}

	raw := viper.GetString("sort-key")

	err = sorter.SortBy(data, multisort.ParseKeys(raw)...)
	if err != nil {
		return "", err
	}

	return raw, nil
}

// newKeySorter returns a sorter for the sort keys of the config file, every key maps a name to a single sort descriptor.
func newKeySorter() (*multisort.Sorter[any], error) {
	fields := multisort.FieldMap[any]{}

	for name, raw := range viper.GetStringMapString("sort-keys") {
		descriptors, err := multisort.ParseDescriptors(raw)
		if err != nil {
			return nil, fmt.Errorf("sort key %q: %w", name, err)
		}
		if len(descriptors) != 1 {
			return nil, fmt.Errorf("sort key %q must consist of exactly one sort descriptor", name)
		}

		criteria, err := multisort.Criteria[any](descriptors...)
		if err != nil {
			return nil, fmt.Errorf("sort key %q: %w", name, err)
		}

		fields[name] = criteria[0]
	}

	return multisort.NewSorter(fields, nil), nil
}

func (s *sortCmd) printer() (printers.Printer, error) {
	switch format := viper.GetString("output-format"); format {
	case "table":
		return printers.NewTablePrinter(&printers.TablePrinterConfig{
			ToHeaderAndRows: printers.RecordRows(viper.GetStringSlice("columns")...),
			NoHeaders:       viper.GetBool("no-headers"),
			Color:           types.IsTerminal(s.c.Out) && !color.NoColor,
			Out:             s.c.Out,
		}), nil
	case "json":
		return printers.NewJSONPrinter().WithOut(s.c.Out), nil
	case "yaml":
		return printers.NewYAMLPrinter().WithOut(s.c.Out), nil
	case "template":
		tmpl := viper.GetString("template")
		if tmpl == "" {
			return nil, fmt.Errorf("missing template for template output format")
		}
		return printers.NewTemplatePrinter(tmpl).WithOut(s.c.Out), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
