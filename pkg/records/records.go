package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

// Stdin is the source name that reads records from the loader's standard input.
const Stdin = "-"

// Loader reads records from JSON and YAML sources.
//
// A source contains one or more documents. A document holding a list contributes every element of
// the list as a record, any other document is a record on its own. Empty documents are skipped.
type Loader struct {
	fs    afero.Fs
	stdin io.Reader
}

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{
		fs:    fs,
		stdin: os.Stdin,
	}
}

func (l *Loader) WithStdin(in io.Reader) *Loader {
	l.stdin = in
	return l
}

// Load reads all given sources concurrently and returns their records in the order of the sources.
func (l *Loader) Load(ctx context.Context, from ...string) ([]any, error) {
	if len(from) == 0 {
		return nil, fmt.Errorf("at least one source must be given")
	}

	stdinCount := 0
	for _, f := range from {
		err := validateFrom(l.fs, f)
		if err != nil {
			return nil, err
		}
		if f == Stdin {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return nil, fmt.Errorf("stdin can only be read once")
	}

	results := make([][]any, len(from))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range from {
		g.Go(func() error {
			records, err := l.read(ctx, f)
			if err != nil {
				return fmt.Errorf("unable to read records from %q: %w", f, err)
			}
			results[i] = records
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	var res []any
	for _, records := range results {
		res = append(res, records...)
	}

	return res, nil
}

func (l *Loader) read(ctx context.Context, from string) ([]any, error) {
	reader, err := l.getReader(from)
	if err != nil {
		return nil, err
	}
	if closer, ok := reader.(io.Closer); ok && from != Stdin {
		defer closer.Close()
	}

	var res []any

	dec := utilyaml.NewYAMLToJSONDecoder(reader)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var doc any

		err := dec.Decode(&doc)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode error: %w", err)
		}

		switch d := doc.(type) {
		case nil:
			continue
		case []any:
			res = append(res, d...)
		default:
			res = append(res, d)
		}
	}

	return res, nil
}

func (l *Loader) getReader(from string) (io.Reader, error) {
	if from == Stdin {
		return l.stdin, nil
	}

	f, err := l.fs.Open(from)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", from, err)
	}

	return f, nil
}

func validateFrom(fs afero.Fs, from string) error {
	switch from {
	case "":
		return fmt.Errorf("from must not be empty")
	case Stdin:
	default:
		exists, err := afero.Exists(fs, from)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("file does not exist: %s", from)
		}
	}

	return nil
}
