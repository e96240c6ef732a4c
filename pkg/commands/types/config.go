package types

import (
	"io"
	"os"
	"path"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// BinaryName is the name of the cli in all help texts
	BinaryName = "multisort"
	// ConfigDir is the directory in the homedir where the cli searches for a file config.yaml
	// also used as prefix for environment based configuration, e.g. MULTISORT_ will be the variable prefix.
	ConfigDir = "multisort"
)

type Config struct {
	Fs  afero.Fs
	In  io.Reader
	Out io.Writer
	// Err receives messages that must not end up between the printed records
	Err io.Writer
}

func DefaultConfigDirectory() (string, error) {
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return path.Join(h, "."+ConfigDir), nil
}

func ConfigPath() (string, error) {
	if viper.IsSet("config") {
		return viper.GetString("config"), nil
	}

	dir, err := DefaultConfigDirectory()
	if err != nil {
		return "", err
	}

	return path.Join(dir, "config.yaml"), nil
}

// IsTerminal returns true if the given writer is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
