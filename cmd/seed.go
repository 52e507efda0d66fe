package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suyin/hanlian/internal/confusion"
	"github.com/suyin/hanlian/internal/matchround"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load curated content into the local database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tablesPath, _ := cmd.Flags().GetString("tables")
		pairsPath, _ := cmd.Flags().GetString("pairs")
		if tablesPath == "" && pairsPath == "" {
			return fmt.Errorf("nothing to seed: pass --tables and/or --pairs")
		}

		_, st, err := openEngine()
		if err != nil {
			return err
		}
		defer st.Close()
		ctx := cmd.Context()

		if tablesPath != "" {
			f, err := os.Open(tablesPath)
			if err != nil {
				return err
			}
			tables, err := confusion.Load(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("curated tables rejected: %w", err)
			}
			if err := st.SaveConfusionTables(ctx, tables); err != nil {
				return err
			}
			fmt.Printf("seeded confusion tables v%d\n", tables.Version)
		}

		if pairsPath != "" {
			f, err := os.Open(pairsPath)
			if err != nil {
				return err
			}
			pairs, err := matchround.LoadPairs(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("word-pair catalog rejected: %w", err)
			}
			if err := st.SaveWordPairs(ctx, pairs); err != nil {
				return err
			}
			fmt.Printf("seeded %d word pairs\n", len(pairs))
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().String("tables", "", "path to a curated confusion-tables JSON file")
	seedCmd.Flags().String("pairs", "", "path to a word-pair catalog JSON file")
}
