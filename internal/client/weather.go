// ABOUTME: Weather endpoint of the AgriAI backend
// ABOUTME: Current conditions for a coordinate pair via the Open-Meteo proxy

package client

import (
	"context"
	"fmt"
	"net/url"
)

// WeatherConditions is the transformed Open-Meteo payload
type WeatherConditions struct {
	Temperature              float64 `json:"temperature"`
	RelativeHumidity         float64 `json:"relative_humidity"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
	Rain                     float64 `json:"rain"`
	Showers                  float64 `json:"showers"`
	Snowfall                 float64 `json:"snowfall"`
	WindSpeed                float64 `json:"wind_speed"`
	WindDirection            float64 `json:"wind_direction"`
}

// WeatherLocation echoes the requested coordinates back as strings
type WeatherLocation struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// WeatherReport is the response from GET /weather/weather
type WeatherReport struct {
	Location WeatherLocation   `json:"location"`
	Weather  WeatherConditions `json:"weather"`
}

// Weather calls GET /weather/weather?lat&lon
func (c *Client) Weather(ctx context.Context, lat, lon float64) (*WeatherReport, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("lon", fmt.Sprintf("%g", lon))

	var report WeatherReport
	if err := c.getJSON(ctx, "/weather/weather?"+q.Encode(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
