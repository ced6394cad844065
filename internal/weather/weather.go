// Package weather talks to the JMA open data endpoints: area catalogue,
// forecasts, the weather-map archive and the himawari satellite imagery.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ikuradon/823chan/internal/imagehost"
)

const (
	areaURL         = "https://www.jma.go.jp/bosai/common/const/area.json"
	forecastURL     = "https://www.jma.go.jp/bosai/forecast/data/forecast/"
	overviewURL     = "https://www.jma.go.jp/bosai/forecast/data/overview_forecast/"
	weatherMapList  = "https://www.jma.go.jp/bosai/weather_map/data/list.json"
	weatherMapPNG   = "https://www.jma.go.jp/bosai/weather_map/data/png/"
	himawariTimesFD = "https://www.jma.go.jp/bosai/himawari/data/satimg/targetTimes_fd.json"
	radarTimesN1    = "https://www.jma.go.jp/bosai/jmatile/data/nowc/targetTimes_N1.json"
)

type Client struct {
	http   *http.Client
	upload imagehost.Uploader
}

// NewClient builds a weather client; upload may be nil, in which case the
// himawari and radar image commands are unavailable.
func NewClient(upload imagehost.Uploader) *Client {
	return &Client{
		http:   &http.Client{Timeout: 20 * time.Second},
		upload: upload,
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type areaNode struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

// Offices maps a municipality code to its forecast office and class10 area
// by walking the JMA area catalogue: class20s → class15s → class10s → offices.
func (c *Client) Offices(ctx context.Context, muniCode string) (office, class10 string, err error) {
	var area struct {
		Class20s map[string]areaNode `json:"class20s"`
		Class15s map[string]areaNode `json:"class15s"`
		Class10s map[string]areaNode `json:"class10s"`
	}
	if err := c.getJSON(ctx, areaURL, &area); err != nil {
		return "", "", err
	}
	c20, ok := area.Class20s[muniCode]
	if !ok {
		return "", "", fmt.Errorf("area catalogue: unknown municipality %s", muniCode)
	}
	c15, ok := area.Class15s[c20.Parent]
	if !ok {
		return "", "", fmt.Errorf("area catalogue: unknown class15 %s", c20.Parent)
	}
	c10, ok := area.Class10s[c15.Parent]
	if !ok {
		return "", "", fmt.Errorf("area catalogue: unknown class10 %s", c15.Parent)
	}
	return c10.Parent, c15.Parent, nil
}

// Forecast is the condensed short-range forecast for one area.
type Forecast struct {
	AreaName string
	Dates    []time.Time
	Weathers []string
	Overview string
}

// Forecast fetches the office forecast and the plain-text overview for the
// class10 area.
func (c *Client) Forecast(ctx context.Context, office, class10 string) (*Forecast, error) {
	var reports []struct {
		TimeSeries []struct {
			TimeDefines []time.Time `json:"timeDefines"`
			Areas       []struct {
				Area struct {
					Name string `json:"name"`
					Code string `json:"code"`
				} `json:"area"`
				Weathers []string `json:"weathers"`
			} `json:"areas"`
		} `json:"timeSeries"`
	}
	if err := c.getJSON(ctx, forecastURL+office+".json", &reports); err != nil {
		return nil, err
	}
	if len(reports) == 0 || len(reports[0].TimeSeries) == 0 {
		return nil, fmt.Errorf("forecast %s: empty report", office)
	}

	series := reports[0].TimeSeries[0]
	idx := 0
	for i, a := range series.Areas {
		if a.Area.Code == class10 {
			idx = i
			break
		}
	}
	if idx >= len(series.Areas) {
		return nil, fmt.Errorf("forecast %s: no areas", office)
	}

	var overview struct {
		Text string `json:"text"`
	}
	if err := c.getJSON(ctx, overviewURL+office+".json", &overview); err != nil {
		return nil, err
	}

	return &Forecast{
		AreaName: series.Areas[idx].Area.Name,
		Dates:    series.TimeDefines,
		Weathers: series.Areas[idx].Weathers,
		Overview: overview.Text,
	}, nil
}

// LatestMapURL returns the URL of the most recent surface weather map.
func (c *Client) LatestMapURL(ctx context.Context) (string, error) {
	var list struct {
		Near struct {
			Now []string `json:"now"`
		} `json:"near"`
	}
	if err := c.getJSON(ctx, weatherMapList, &list); err != nil {
		return "", err
	}
	if len(list.Near.Now) == 0 {
		return "", fmt.Errorf("weather map: empty list")
	}
	return weatherMapPNG + list.Near.Now[len(list.Near.Now)-1], nil
}

// TargetTime identifies one imagery generation on the JMA tile servers.
type TargetTime struct {
	Basetime  string `json:"basetime"`
	Validtime string `json:"validtime"`
}

// LatestHimawari returns the newest full-disk satellite target time.
func (c *Client) LatestHimawari(ctx context.Context) (TargetTime, error) {
	var times []TargetTime
	if err := c.getJSON(ctx, himawariTimesFD, &times); err != nil {
		return TargetTime{}, err
	}
	if len(times) == 0 {
		return TargetTime{}, fmt.Errorf("himawari: no target times")
	}
	return times[len(times)-1], nil
}

// LatestRadar returns the newest precipitation-radar target time.
func (c *Client) LatestRadar(ctx context.Context) (TargetTime, error) {
	var times []TargetTime
	if err := c.getJSON(ctx, radarTimesN1, &times); err != nil {
		return TargetTime{}, err
	}
	if len(times) == 0 {
		return TargetTime{}, fmt.Errorf("radar: no target times")
	}
	return times[0], nil
}

// HimawariBasetime parses a basetime string ("yyyyMMddHHmmss", UTC).
func HimawariBasetime(basetime string) (time.Time, error) {
	return time.Parse("20060102150405", basetime)
}
