package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/anatolykoptev/pingera-mcp/internal/tools"
)

type catalog struct {
	Mode      string               `json:"mode" yaml:"mode"`
	Tools     []tools.Info         `json:"tools" yaml:"tools"`
	Resources []tools.ResourceInfo `json:"resources" yaml:"resources"`
}

func newToolsCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool and resource catalog",
		Long: `Print every tool and resource the server can expose. Write tools are
marked disabled unless --read-write is given. No API key is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := tools.Catalog(flags.readWrite)
			c := catalog{Mode: "read_only", Tools: r.Tools(), Resources: r.Resources()}
			if flags.readWrite {
				c.Mode = "read_write"
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(c); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: json or yaml")
	return cmd
}
