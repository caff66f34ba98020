package cmd

import (
	"fmt"
	"os"

	"github.com/spigell/talentscout/internal/record"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check <record.json>...",
	Short: "Validate stored candidate records",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if invalid := check(cmd, args); invalid > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// check reports every record that fails validation and returns how many did.
func check(cmd *cobra.Command, paths []string) int {
	logger, _ := setup(cmd)

	invalid := 0
	for _, path := range paths {
		rec, err := record.Load(path)
		if err != nil {
			logger.Error("loading record", zap.String("path", path), zap.Error(err))
			invalid++
			continue
		}

		if err := record.Validate(rec); err != nil {
			invalid++
			fmt.Printf("%s: invalid\n", path)
			for _, problem := range record.FormatValidationErrors(err) {
				fmt.Printf("  - %s\n", problem)
			}
			continue
		}

		fmt.Printf("%s: ok\n", path)
	}

	return invalid
}
