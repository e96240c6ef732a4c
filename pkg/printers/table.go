package printers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TablePrinter prints data into a table
type TablePrinter struct {
	c *TablePrinterConfig
}

// TablePrinterConfig contains the configuration for the table printer
type TablePrinterConfig struct {
	// ToHeaderAndRows is called during print to obtain the headers and rows for the given data.
	ToHeaderAndRows func(data any) ([]string, [][]string, error)
	// NoHeaders will omit headers during print when set to true
	NoHeaders bool
	// Color highlights the headers
	Color bool
	// Out defines the output writer for the printer, will default to os.stdout
	Out io.Writer
}

func NewTablePrinter(config *TablePrinterConfig) *TablePrinter {
	if config.Out == nil {
		config.Out = os.Stdout
	}

	return &TablePrinter{
		c: config,
	}
}

func (p *TablePrinter) WithOut(out io.Writer) *TablePrinter {
	p.c.Out = out
	return p
}

func (p *TablePrinter) Print(data any) error {
	if p.c.ToHeaderAndRows == nil {
		return fmt.Errorf("missing to header and rows function in printer configuration")
	}

	header, rows, err := p.c.ToHeaderAndRows(data)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(p.c.Out)

	if !p.c.NoHeaders {
		bold := fmt.Sprint
		if p.c.Color {
			bold = color.New(color.Bold).Sprint
		}

		cells := make([]any, 0, len(header))
		for _, h := range header {
			cells = append(cells, bold(h))
		}
		table.Header(cells...)
	}

	err = table.Bulk(rows)
	if err != nil {
		return err
	}

	return table.Render()
}
