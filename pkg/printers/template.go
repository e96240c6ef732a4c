package printers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"text/template"

	"github.com/go-task/slim-sprig/v3"
)

// TemplatePrinter prints data with a given template, slices are rendered once per element
type TemplatePrinter struct {
	out  io.Writer
	text string
	t    *template.Template
}

func NewTemplatePrinter(template string) *TemplatePrinter {
	return &TemplatePrinter{
		out:  os.Stdout,
		text: template,
	}
}

func (p *TemplatePrinter) WithOut(out io.Writer) *TemplatePrinter {
	p.out = out
	return p
}

func (p *TemplatePrinter) Print(data any) error {
	if p.t == nil {
		var err error
		p.t, err = template.New("t").Funcs(sprig.TxtFuncMap()).Parse(p.text)
		if err != nil {
			return err
		}
	}

	// records are passed through json, so the template sees the same structure as -o json|yaml
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if reflect.ValueOf(data).Kind() != reflect.Slice {
		var d any
		err = json.Unmarshal(raw, &d)
		if err != nil {
			return err
		}
		return p.print(d)
	}

	var d []any
	err = json.Unmarshal(raw, &d)
	if err != nil {
		return err
	}

	for _, elem := range d {
		err = p.print(elem)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *TemplatePrinter) print(data any) error {
	var buf bytes.Buffer

	err := p.t.Execute(&buf, data)
	if err != nil {
		return fmt.Errorf("unable to render template: %w", err)
	}

	_, err = fmt.Fprintf(p.out, "%s\n", buf.String())

	return err
}
