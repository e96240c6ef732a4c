package commands

import (
	"github.com/metal-stack/multisort/pkg/commands/types"
	"github.com/metal-stack/multisort/pkg/printers"
	"github.com/metal-stack/v"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type version struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildDate string `json:"builddate"`
	Revision  string `json:"revision"`
	Gitsha1   string `json:"gitsha1"`
}

func newVersionCmd(c *types.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			vi := version{
				Name:      types.BinaryName,
				Version:   v.Version,
				Revision:  v.Revision,
				BuildDate: v.BuildDate,
				Gitsha1:   v.GitSHA1,
			}

			var p printers.Printer = printers.NewYAMLPrinter().WithOut(c.Out)
			if viper.GetString("output-format") == "json" {
				p = printers.NewJSONPrinter().WithOut(c.Out)
			}

			return p.Print(vi)
		},
	}
}
