package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suyin/hanlian/internal/card"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice progress per drill",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine()
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := eng.Stats(cmd.Context(), learnerID())
		if err != nil {
			return err
		}

		fmt.Printf("items: %d (known: %d)\n", stats.Items, stats.KnownItems)
		for _, drill := range []card.Drill{card.DrillPinyin, card.DrillScript} {
			ds, ok := stats.Drills[drill]
			if !ok {
				continue
			}
			fmt.Printf("%-8s new %-3d learning %-3d struggling %-3d known %-3d\n",
				drill, ds.Unattempted, ds.InProgress, ds.Struggling, ds.Known)
		}
		return nil
	},
}
