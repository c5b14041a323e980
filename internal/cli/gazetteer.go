package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmachari/weaver/pkg/config"
	"github.com/nmachari/weaver/pkg/intelligence/extraction"
)

var gazetteerCmd = &cobra.Command{
	Use:   "gazetteer",
	Short: "Print the active recognition lexicon",
	RunE: func(cmd *cobra.Command, args []string) error {
		gazetteer := extraction.DefaultGazetteer()
		if cfgFile != "" {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cfg.Gazetteer != "" {
				if gazetteer, err = extraction.LoadGazetteer(cfg.Gazetteer); err != nil {
					return err
				}
			}
		}

		out := cmd.OutOrStdout()
		for _, category := range gazetteer.Categories() {
			fmt.Fprintf(out, "%s: %s\n", category, strings.Join(gazetteer.Terms(category), ", "))
		}
		return nil
	},
}
