package cmd

import (
	"context"
	"fmt"

	"github.com/spigell/talentscout/internal/record"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Preview the technical questions generated for a position and tech stack",
	Run: func(cmd *cobra.Command, _ []string) {
		previewQuestions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	addProviderFlags(questionsCmd)

	questionsCmd.Flags().String("position", "", "candidate position, e.g. \"python developer\"")
	questionsCmd.Flags().String("stack", "", "comma separated tech stack, e.g. \"python, django\"")
	questionsCmd.MarkFlagRequired("position")
}

func previewQuestions(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup(cmd)

	position, _ := cmd.Flags().GetString("position")
	stack, _ := cmd.Flags().GetString("stack")

	if !record.IsPosition(position) {
		logger.Warn("position is not offered in the intake", zap.String("position", position), zap.Strings("positions", record.Positions))
	}

	generator := newQuestionGenerator(ctx, config.AI, logger)
	for i, q := range generator.Generate(ctx, position, record.SplitTechStack(stack)) {
		fmt.Printf("%d. %s\n", i+1, q)
	}
}
