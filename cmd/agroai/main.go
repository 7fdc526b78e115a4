package main

import (
	"context"
	"fmt"
	"os"

	config "agroai-api/configs"
	"agroai-api/internal/formatter"
	"agroai-api/internal/logging"
	"agroai-api/internal/models"
	"agroai-api/internal/router"
	"agroai-api/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

// assistant is the subset of the Gemini adapter used by the commands
type assistant interface {
	AnalyzeDisease(ctx context.Context, base64Image string) (*models.DiseaseResult, error)
	GetCropRecommendations(ctx context.Context, req models.RecommendationRequest) ([]models.CropRecommendation, error)
	Chat(ctx context.Context, history []models.ChatTurn, message string) (string, error)
}

// app holds what the commands share once the root command has run
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	outputFormat string
	verbose      bool

	newAssistant func(ctx context.Context) (assistant, error)
	weather      func() *services.WeatherService
}

func main() {
	_ = godotenv.Load()

	rootCmd := newRootCmd(&app{})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agroai",
		Short: "AI-powered farm assistant",
		Long: `agroai asks Gemini for crop recommendations, plant disease diagnoses
and agronomy advice for farms in Uzbekistan.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		newRecommendCmd(a),
		newDiagnoseCmd(a),
		newChatCmd(a),
		newWeatherCmd(a),
		newOptionsCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) init() error {
	if !formatter.ValidFormat(a.outputFormat) {
		return fmt.Errorf("unknown output format %q (human, json, yaml)", a.outputFormat)
	}

	a.cfg = config.LoadConfig()

	level := "error"
	if a.verbose {
		level = "debug"
	}
	if a.logger == nil {
		logger, err := logging.New("development", level)
		if err != nil {
			return err
		}
		a.logger = logger
	}

	if a.newAssistant == nil {
		a.newAssistant = func(ctx context.Context) (assistant, error) {
			if a.cfg.GeminiAPIKey == "" {
				return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
			}
			prompt := ""
			if persona, err := config.LoadAssistantPrompt(a.cfg.AssistantPromptPath); err == nil {
				prompt = persona.BuildPrompt()
			} else {
				a.logger.Debug("Using built-in assistant prompt", zap.Error(err))
			}
			return services.NewGeminiService(ctx, a.cfg.GeminiAPIKey, a.cfg.GeminiModel, prompt, a.logger)
		}
	}
	if a.weather == nil {
		a.weather = func() *services.WeatherService {
			return router.NewWeatherService(a.cfg.Weather, a.logger)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agroai version %s\n", version)
		},
	}
}
