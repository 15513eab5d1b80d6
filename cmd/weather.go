// ABOUTME: Weather command for the agriai CLI
// ABOUTME: Shows current conditions for a coordinate pair

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/spf13/cobra"
)

var (
	weatherLat float64
	weatherLon float64
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show current weather for a location",
	Long:  `Fetch current conditions for the given coordinates through the backend's weather service.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWeather(ctx, os.Stdout, weatherLat, weatherLon)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(weatherCmd)
	weatherCmd.Flags().Float64Var(&weatherLat, "lat", 0, "Latitude")
	weatherCmd.Flags().Float64Var(&weatherLon, "lon", 0, "Longitude")
	weatherCmd.MarkFlagRequired("lat")
	weatherCmd.MarkFlagRequired("lon")
}

// runWeather fetches conditions and returns exit code
func runWeather(ctx context.Context, w io.Writer, lat, lon float64) int {
	cfg := loadConfig()
	store := openSession(cfg)
	c := newClient(cfg, store)

	report, err := c.Weather(ctx, lat, lon)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWeatherJSON(report))
	} else {
		fmt.Fprintln(w, formatWeatherHuman(report))
	}
	return 0
}

// formatWeatherHuman formats a weather report for human readability
func formatWeatherHuman(r *client.WeatherReport) string {
	return fmt.Sprintf(`Location:      %s, %s
Temperature:   %.1f°C
Humidity:      %.0f%%
Rain chance:   %.0f%%
Rain:          %.1f mm
Wind:          %.1f km/h at %.0f°`,
		r.Location.Latitude, r.Location.Longitude,
		r.Weather.Temperature,
		r.Weather.RelativeHumidity,
		r.Weather.PrecipitationProbability,
		r.Weather.Rain,
		r.Weather.WindSpeed, r.Weather.WindDirection)
}

// formatWeatherJSON formats a weather report as JSON
func formatWeatherJSON(r *client.WeatherReport) string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}
