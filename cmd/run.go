package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spigell/talentscout/internal/intake"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/record"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive candidate intake",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addProviderFlags(runCmd)
}

func setup(cmd *cobra.Command) (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	applyFlagOverrides(cmd, config)

	return logger, config
}

// run is the interactive intake loop.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setup(cmd)

	logger.Info("starting the talentscout", zap.String("version", version))

	// api keys are not part of the dump
	pretty, _ := json.MarshalIndent(map[string]any{
		"output-dir": config.OutputDir,
		"provider":   config.AI.Provider,
	}, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	session := intake.NewSession(
		newQuestionGenerator(ctx, config.AI, logger),
		record.NewFileWriter(config.OutputDir, logger),
		intake.WithLogger(logger),
	)

	fmt.Println(intake.Welcome())

	input := promptui.Prompt{Label: "You"}
	for !session.Terminal() {
		line, err := input.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.String("reason", "input closed"), zap.String("stage", session.Stage().String()))
				return
			}
			logger.Fatal("reading input", zap.Error(err))
		}

		fmt.Println(session.Advance(ctx, line))
	}

	if err := session.PersistErr(); err != nil {
		problems := record.FormatValidationErrors(err)
		logger.Warn("candidate record was not stored", zap.Error(err), zap.Strings("problems", problems))
		return
	}

	if path := session.RecordPath(); path != "" {
		logger.Info("intake finished", zap.String("record", path))
	}
}
