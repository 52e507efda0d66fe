package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suyin/hanlian/internal/matchround"
)

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Preview a word-pair matching round",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine()
		if err != nil {
			return err
		}
		defer st.Close()

		round, err := eng.MatchingRound(cmd.Context(), learnerID())
		var insufficient *matchround.ErrInsufficientPairs
		if errors.As(err, &insufficient) {
			fmt.Printf("not enough content yet: %d of %d eligible pairs\n",
				insufficient.Eligible, insufficient.Required)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("round of %d pairs:\n", len(round.Pairs))
		for i := range round.Left {
			fmt.Printf("  %s    %s\n", round.Left[i].Character, round.Right[i].Character)
		}
		return nil
	},
}
