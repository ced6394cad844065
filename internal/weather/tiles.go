package weather

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
)

const (
	himawariTileURL = "https://www.jma.go.jp/bosai/himawari/data/satimg/%s/fd/%s/B13/TBB/%d/%d/%d.jpg"
	radarTileURL    = "https://www.jma.go.jp/bosai/jmatile/data/nowc/%s/none/%s/surf/hrpns/%d/%d/%d.png"
)

// tileXY converts longitude/latitude to slippy map tile coordinates.
func tileXY(lon, lat float64, zoom int) (x, y int) {
	n := math.Exp2(float64(zoom))
	x = int(n * (lon + 180) / 360)
	latRad := lat * math.Pi / 180
	y = int(n * (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2)
	return x, y
}

func (c *Client) fetchTile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// HimawariImage fetches the Japan-centred satellite tile for the given
// generation and uploads it, returning the hosted image URL.
func (c *Client) HimawariImage(ctx context.Context, tt TargetTime) (string, error) {
	if c.upload == nil {
		return "", fmt.Errorf("himawari: no image host configured")
	}
	// Zoom 5 tile covering the main islands.
	x, y := tileXY(137, 34.5, 5)
	url := fmt.Sprintf(himawariTileURL, tt.Basetime, tt.Validtime, 5, x, y)
	tile, err := c.fetchTile(ctx, url)
	if err != nil {
		return "", err
	}
	return c.upload.Upload(ctx, "himawari-"+tt.Basetime, tile)
}

// RadarImage fetches the precipitation radar tile over the given point and
// uploads it, returning the hosted image URL.
func (c *Client) RadarImage(ctx context.Context, tt TargetTime, lon, lat float64) (string, error) {
	if c.upload == nil {
		return "", fmt.Errorf("radar: no image host configured")
	}
	x, y := tileXY(lon, lat, 9)
	url := fmt.Sprintf(radarTileURL, tt.Basetime, tt.Validtime, 9, x, y)
	tile, err := c.fetchTile(ctx, url)
	if err != nil {
		return "", err
	}
	return c.upload.Upload(ctx, "radar-"+tt.Basetime, tile)
}
