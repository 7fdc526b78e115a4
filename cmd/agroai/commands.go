package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"agroai-api/internal/formatter"
	"agroai-api/internal/models"
	"agroai-api/internal/store"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// startSpinner shows progress on w until the returned stop func is called
func startSpinner(w io.Writer, suffix string) func() {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), msg)
}

func newRecommendCmd(a *app) *cobra.Command {
	req := models.DefaultRecommendationRequest()

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend crops for a plot of land",
		Long: `Ask the assistant for 3-4 crops that fit the land, soil, season and goal.

Examples:
  # Sandy soil in summer, export oriented
  agroai recommend --land 2.5 --soil "Qumloq (Sandy)" --season "Yoz (Iyun-Avgust)" --goal "Eksport (Export potential)"

  # List the accepted values
  agroai options`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			adv, err := a.newAssistant(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(cmd.ErrOrStderr(), "Tavsiyalar tayyorlanmoqda...")
			recs, err := adv.GetCropRecommendations(ctx, req)
			stop()
			if err != nil {
				return fmt.Errorf("%s: %w", models.RecommendationError, err)
			}
			if a.outputFormat == formatter.FormatHuman {
				printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("%d ta ekin topildi", len(recs)))
			}
			return formatter.DisplayRecommendations(cmd.OutOrStdout(), recs, a.outputFormat)
		},
	}

	cmd.Flags().Float64Var(&req.LandSize, "land", req.LandSize, "Land size in hectares")
	cmd.Flags().StringVar(&req.SoilType, "soil", req.SoilType, "Soil type")
	cmd.Flags().StringVar(&req.Season, "season", req.Season, "Season")
	cmd.Flags().StringVar(&req.Goal, "goal", req.Goal, "Farmer's goal")

	return cmd
}

func newDiagnoseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose IMAGE",
		Short: "Diagnose a plant disease from a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			ctx := cmd.Context()
			adv, err := a.newAssistant(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(cmd.ErrOrStderr(), "Rasm tahlil qilinmoqda...")
			result, err := adv.AnalyzeDisease(ctx, base64.StdEncoding.EncodeToString(data))
			stop()
			if err != nil {
				return fmt.Errorf("%s: %w", models.DiseaseErrorMessage, err)
			}
			return formatter.DisplayDisease(cmd.OutOrStdout(), result, a.outputFormat)
		},
	}
}

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant (type exit or quit to leave)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			adv, err := a.newAssistant(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sessions := store.NewSessionStore(a.logger)
			session := sessions.Create()
			formatter.DisplayChatMessage(out, session.Messages[0])

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				history, err := sessions.BeginChat(session.ID, line)
				if err != nil {
					return err
				}
				stop := startSpinner(cmd.ErrOrStderr(), "")
				reply, err := adv.Chat(ctx, history, line)
				stop()

				var s *store.Session
				if err != nil {
					a.logger.Sugar().Errorw("Chat failed", "error", err)
					s, err = sessions.FailChat(session.ID, models.ChatApology)
				} else {
					s, err = sessions.CompleteChat(session.ID, reply)
				}
				if err != nil {
					return err
				}
				formatter.DisplayChatMessage(out, s.Messages[len(s.Messages)-1])
			}
			return scanner.Err()
		},
	}
}

func newWeatherCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Show the current weather in Tashkent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := a.weather().GetCurrentWeather(cmd.Context())
			return formatter.DisplayWeather(cmd.OutOrStdout(), data, a.outputFormat)
		},
	}
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List soil types, seasons and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return formatter.DisplayOptions(cmd.OutOrStdout(), a.outputFormat)
		},
	}
}
