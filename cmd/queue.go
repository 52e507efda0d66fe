package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suyin/hanlian/internal/card"
)

var queueCmd = &cobra.Command{
	Use:   "queue [pinyin|script]",
	Short: "Preview the practice queue for a drill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drill := card.Drill(args[0])
		if drill != card.DrillPinyin && drill != card.DrillScript {
			return fmt.Errorf("unknown drill %q: want pinyin or script", args[0])
		}
		limit, _ := cmd.Flags().GetInt("limit")

		eng, st, err := openEngine()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := eng.PracticeQueue(cmd.Context(), learnerID(), drill, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("nothing to practice")
			return nil
		}

		for i, e := range entries {
			form := e.Item.Simplified
			if drill == card.DrillScript {
				form = fmt.Sprintf("%s → %s", e.Item.Simplified, e.Item.Traditional)
			}
			fmt.Printf("%2d. %-12s %7.1f  %s\n", i+1, form, e.Score.Priority, e.Score.Reason)
		}
		return nil
	},
}

func init() {
	queueCmd.Flags().Int("limit", 10, "maximum queue length")
}
