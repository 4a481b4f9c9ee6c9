package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harveybc/fxsim/config"
)

var configOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write a default run configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()

		if configOut != "" {
			if err := cfg.SaveToFile(configOut); err != nil {
				return err
			}
			fmt.Printf("wrote default config to %s\n", configOut)
			return nil
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "write the default config to a file instead of stdout")
}
