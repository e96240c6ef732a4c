package commands

import (
	"fmt"
	"strings"

	"github.com/metal-stack/multisort/pkg/commands/types"
	"github.com/metal-stack/multisort/zapup"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var outputFormats = []string{"table", "json", "yaml", "template"}

// NewRootCmd returns the multisort command with all of its sub commands.
func NewRootCmd(c *types.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          types.BinaryName,
		Short:        "sorts json and yaml records by multiple criteria",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(c, cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "alternative config file path, (default is ~/.multisort/config.yaml)")
	rootCmd.PersistentFlags().StringP("output-format", "o", "table", "output format ("+strings.Join(outputFormats, "|")+")")
	rootCmd.PersistentFlags().String("template", "", `output template for template output-format, go template format, e.g. '{{ .name }}'`)
	rootCmd.PersistentFlags().Bool("no-headers", false, "omit headers in tables")

	Must(rootCmd.RegisterFlagCompletionFunc("output-format", cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp)))

	rootCmd.AddCommand(
		newSortCmd(c),
		newVersionCmd(c),
	)

	return rootCmd
}

func initConfig(c *types.Config, cmd *cobra.Command) error {
	viper.SetEnvPrefix(strings.ToUpper(types.ConfigDir))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.BindPFlags(cmd.Flags())
	if err != nil {
		return err
	}

	viper.SetFs(c.Fs)

	path, err := types.ConfigPath()
	if err != nil {
		// no home directory, so there is no default config file either
		return nil
	}

	exists, err := afero.Exists(c.Fs, path)
	if err != nil {
		return err
	}
	if !exists {
		if viper.IsSet("config") {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return nil
	}

	viper.SetConfigFile(path)

	err = viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("unable to read config file %q: %w", path, err)
	}

	zapup.FromContext(cmd.Context()).Debug("read config file", zap.String("path", path))

	return nil
}

// Must panics on error, only to be used for setting up commands.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
