package printers

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"sigs.k8s.io/yaml"
)

// YAMLPrinter prints data in YAML format. Slices are printed as one document per element.
type YAMLPrinter struct {
	out            io.Writer
	singleDocument bool
}

func NewYAMLPrinter() *YAMLPrinter {
	return &YAMLPrinter{
		out: os.Stdout,
	}
}

func (p *YAMLPrinter) WithOut(out io.Writer) *YAMLPrinter {
	p.out = out
	return p
}

// WithSingleDocument prints slices as a single list document.
func (p *YAMLPrinter) WithSingleDocument() *YAMLPrinter {
	p.singleDocument = true
	return p
}

func (p *YAMLPrinter) Print(data any) error {
	if err, ok := data.(error); ok {
		_, err = fmt.Fprintf(p.out, "%s\n", err)
		return err
	}

	v := reflect.ValueOf(data)
	if p.singleDocument || v.Kind() != reflect.Slice {
		return p.print(data)
	}

	for i := range v.Len() {
		err := p.print(v.Index(i).Interface())
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *YAMLPrinter) print(data any) error {
	content, err := yaml.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(p.out, "---\n%s", string(content))

	return err
}
