package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmachari/weaver/pkg/config"
	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/engine"
	"github.com/nmachari/weaver/pkg/intelligence/extraction"
	"github.com/nmachari/weaver/pkg/intelligence/graph"
)

var (
	itemsPath string
	pretty    bool
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Run one correlation pass over a JSON batch of items",
	Long: `Reads a JSON array of intelligence items (title, content, source,
optional ISO-8601 timestamp) from --items or stdin, runs one orchestration
against a fresh relationship graph, and prints the report as JSON.`,
	RunE: runCorrelate,
}

func init() {
	correlateCmd.Flags().StringVarP(&itemsPath, "items", "i", "", "items JSON file (default stdin)")
	correlateCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the report JSON")
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := config.Default()
	if cfgFile != "" {
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
	}

	gazetteer := extraction.DefaultGazetteer()
	if cfg.Gazetteer != "" {
		if gazetteer, err = extraction.LoadGazetteer(cfg.Gazetteer); err != nil {
			return err
		}
	}

	items, err := readItems(itemsPath)
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(cfg.Engine, gazetteer, logger)
	if err != nil {
		return err
	}
	store, err := graph.NewStore(cfg.Graph, logger)
	if err != nil {
		return err
	}

	report, err := eng.Correlate(store, items)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}

func readItems(path string) ([]domain.Item, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open items file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var items []domain.Item
	if err := json.NewDecoder(reader).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
