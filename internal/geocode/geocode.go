package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/config"
)

// Coordinates is a resolved venue location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client resolves free-text venue addresses to coordinates. Lookups are best
// effort; a nil result means the address could not be resolved.
type Client interface {
	Forward(ctx context.Context, address string) *Coordinates
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *redis.Client
}

func NewClient(cfg *config.Config, cache *redis.Client) Client {
	return &client{
		baseURL: cfg.GeocodeBaseURL,
		apiKey:  cfg.GeocodeAPIKey,
		http:    &http.Client{Timeout: time.Duration(cfg.GeocodeTimeoutSec) * time.Second},
		cache:   cache,
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *client) Forward(ctx context.Context, address string) *Coordinates {
	if c.baseURL == "" || address == "" {
		return nil
	}

	cacheKey := "geocode:" + address
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			var coords Coordinates
			if json.Unmarshal([]byte(cached), &coords) == nil {
				return &coords
			}
		}
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&api_key=%s&format=json", c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		logrus.Warnf("⚠️ Geocoding request failed for %q: %v", address, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logrus.Warnf("⚠️ Geocoding returned status %d for %q", resp.StatusCode, address)
		return nil
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil
	}
	coords := Coordinates{Latitude: lat, Longitude: lon}

	if c.cache != nil {
		if payload, err := json.Marshal(coords); err == nil {
			c.cache.Set(ctx, cacheKey, payload, 24*time.Hour)
		}
	}
	return &coords
}
