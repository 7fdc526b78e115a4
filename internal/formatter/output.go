// Package formatter renders assistant results for the terminal.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"agroai-api/internal/models"
	"agroai-api/internal/services"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormat reports whether format is one of the supported output formats
func ValidFormat(format string) bool {
	switch format {
	case FormatHuman, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// display writes v as json or yaml, or calls human for the human format
func display(w io.Writer, v interface{}, format string, human func(io.Writer)) error {
	switch format {
	case FormatJSON:
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	case FormatYAML:
		output, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(output))
		return err
	case FormatHuman:
		fallthrough
	default:
		human(w)
	}
	return nil
}

// DisplayRecommendations prints the crops and a short risk summary
func DisplayRecommendations(w io.Writer, recs []models.CropRecommendation, format string) error {
	return display(w, recs, format, func(w io.Writer) {
		green := color.New(color.FgGreen, color.Bold)
		cyan := color.New(color.FgCyan, color.Bold)

		fmt.Fprintln(w)
		if len(recs) == 0 {
			color.New(color.FgYellow).Fprintln(w, models.AnalyticsEmptyMessage)
			return
		}

		green.Fprintln(w, "🌱 TAVSIYA QILINGAN EKINLAR:")
		for i, rec := range recs {
			cyan.Fprintf(w, "   %d. %s\n", i+1, rec.CropName)
			fmt.Fprintf(w, "      %s\n", rec.Reason)
			fmt.Fprintf(w, "      Xarajat: $%.0f   Foyda: %s   Muddat: %g oy\n",
				rec.EstimatedCost, profitString(rec.EstimatedProfit), rec.DurationMonths)
			fmt.Fprintf(w, "      Risk: %s\n\n", riskString(rec.RiskFactor))
		}

		view := services.BuildAnalytics(recs)
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, d := range view.Duration {
			fmt.Fprintf(w, "   %-20s %5.1f%%\n", d.CropName, d.Share)
		}
		fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
	})
}

// DisplayDisease prints one diagnosis
func DisplayDisease(w io.Writer, result *models.DiseaseResult, format string) error {
	return display(w, result, format, func(w io.Writer) {
		fmt.Fprintln(w)
		if strings.Contains(result.DiseaseName, models.HealthySentinel) {
			color.New(color.FgGreen, color.Bold).Fprintf(w, "✅ %s\n", result.DiseaseName)
		} else {
			color.New(color.FgRed, color.Bold).Fprintf(w, "⚠️  %s\n", result.DiseaseName)
		}
		fmt.Fprintf(w, "   Ishonchlilik: %.0f%%\n\n", result.Confidence)
		color.New(color.FgWhite, color.Bold).Fprintln(w, "📄 Ta'rif:")
		fmt.Fprintf(w, "   %s\n\n", result.Description)
		color.New(color.FgCyan, color.Bold).Fprintln(w, "💊 Davolash:")
		fmt.Fprintf(w, "   %s\n", result.Treatment)
	})
}

// DisplayWeather prints the weather card
func DisplayWeather(w io.Writer, data models.WeatherData, format string) error {
	return display(w, data, format, func(w io.Writer) {
		color.New(color.FgCyan, color.Bold).Fprintf(w, "🌤  %s  %s\n", data.Location, data.Date)
		fmt.Fprintf(w, "   Harorat: %g°C\n", data.Temp)
		fmt.Fprintf(w, "   Namlik:  %d%%\n", data.Humidity)
		fmt.Fprintf(w, "   Shamol:  %g km/h\n", data.WindSpeed)
		fmt.Fprintf(w, "   Holat:   %s\n", data.Condition)
		if !data.Live {
			fmt.Fprintf(w, "   %s\n", color.HiBlackString("(statik ma'lumot)"))
		}
	})
}

// Options is the payload of the options command
type Options struct {
	SoilTypes []string `json:"soilTypes" yaml:"soilTypes"`
	Seasons   []string `json:"seasons" yaml:"seasons"`
	Goals     []string `json:"goals" yaml:"goals"`
}

// DisplayOptions prints the values accepted by the recommend command
func DisplayOptions(w io.Writer, format string) error {
	opts := Options{SoilTypes: models.SoilTypes, Seasons: models.Seasons, Goals: models.Goals}
	return display(w, opts, format, func(w io.Writer) {
		printList(w, "Tuproq turlari (--soil):", opts.SoilTypes)
		printList(w, "Mavsumlar (--season):", opts.Seasons)
		printList(w, "Maqsadlar (--goal):", opts.Goals)
	})
}

// DisplayChatMessage prints one transcript entry
func DisplayChatMessage(w io.Writer, msg models.ChatMessage) {
	if msg.Role == models.RoleUser {
		color.New(color.FgCyan, color.Bold).Fprint(w, "Siz: ")
	} else {
		color.New(color.FgGreen, color.Bold).Fprint(w, "AgroAI: ")
	}
	fmt.Fprintln(w, msg.Text)
}

func printList(w io.Writer, title string, items []string) {
	color.New(color.FgCyan, color.Bold).Fprintln(w, title)
	for i, item := range items {
		fmt.Fprintf(w, "   %d. %s\n", i+1, item)
	}
	fmt.Fprintln(w)
}

func profitString(profit float64) string {
	s := fmt.Sprintf("$%.0f", profit)
	if profit < 0 {
		return color.RedString(s)
	}
	return color.GreenString(s)
}

func riskString(risk float64) string {
	s := fmt.Sprintf("%.0f%%", risk)
	if risk > services.HighRiskThreshold {
		return color.RedString(s)
	}
	return color.GreenString(s)
}
