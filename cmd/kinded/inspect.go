package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sublee/kinded/internal/config"
	kindedinternal "github.com/sublee/kinded/internal/kinded"
)

func (a *app) inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [flags] [packages]",
		Short: "Print the kind types to generate without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			descs, err := kindedinternal.Inspect(cmd.Context(), a.wd, a.environ(), a.options(), args)
			if err != nil {
				return err
			}

			data, err := encodeDescriptions(descs, a.cfg.Format)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", config.Default().Format, "output format (json|yaml)")
	return cmd
}

// encodeDescriptions encodes descs in the format. An empty result is encoded
// as an empty list.
func encodeDescriptions(descs []kindedinternal.Description, format string) ([]byte, error) {
	if descs == nil {
		descs = []kindedinternal.Description{}
	}

	if format == "yaml" {
		return yaml.Marshal(descs)
	}

	data, err := json.MarshalIndent(descs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
