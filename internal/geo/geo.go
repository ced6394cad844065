// Package geo resolves free-form Japanese place names with the GSI address
// search and reverse-geocoder services.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	addressSearchURL   = "https://msearch.gsi.go.jp/address-search/AddressSearch"
	reverseGeocoderURL = "https://mreversegeocoder.gsi.go.jp/reverse-geocoder/LonLatToAddress"
)

// Place is one candidate returned by the address search.
type Place struct {
	Title string
	Lon   float64
	Lat   float64
}

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", u, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Resolve returns place candidates for the query, best match first.
func (c *Client) Resolve(ctx context.Context, query string) ([]Place, error) {
	if query == "" {
		return nil, nil
	}
	var body []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	}
	u := addressSearchURL + "?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(body))
	for _, item := range body {
		if len(item.Geometry.Coordinates) < 2 {
			continue
		}
		places = append(places, Place{
			Title: item.Properties.Title,
			Lon:   item.Geometry.Coordinates[0],
			Lat:   item.Geometry.Coordinates[1],
		})
	}
	return places, nil
}

// MuniCode returns the municipality code for a coordinate, as used by the
// JMA area catalogue (reverse-geocoder muniCd padded with "00").
func (c *Client) MuniCode(ctx context.Context, lon, lat float64) (string, error) {
	var body struct {
		Results struct {
			MuniCd string `json:"muniCd"`
		} `json:"results"`
	}
	u := fmt.Sprintf("%s?lon=%f&lat=%f", reverseGeocoderURL, lon, lat)
	if err := c.getJSON(ctx, u, &body); err != nil {
		return "", err
	}
	if body.Results.MuniCd == "" {
		return "", fmt.Errorf("reverse geocoder: no municipality at %f,%f", lon, lat)
	}
	return body.Results.MuniCd + "00", nil
}
