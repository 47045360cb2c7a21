// Package prayer fetches the day's prayer times from the aladhan.com API
package prayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "http://api.aladhan.com"
	DefaultCity    = "London"
	DefaultCountry = "UK"
	DefaultMethod  = 2
)

var ErrNoTimings = errors.New("no prayer timings in response")

// Names lists the five daily prayers in order
var Names = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// Timings maps a prayer name to its "HH:MM" time
type Timings map[string]string

type Config struct {
	BaseURL string
	City    string
	Country string
	Method  int
	Timeout time.Duration
}

type Client struct {
	baseURL string
	city    string
	country string
	method  int
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		city:    cfg.City,
		country: cfg.Country,
		method:  cfg.Method,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.city == "" {
		c.city = DefaultCity
	}
	if c.country == "" {
		c.country = DefaultCountry
	}
	if c.method <= 0 {
		c.method = DefaultMethod
	}
	if c.http.Timeout <= 0 {
		c.http.Timeout = 10 * time.Second
	}
	return c
}

// Location is the "City, Country" the client asks for
func (c *Client) Location() string {
	return c.city + ", " + c.country
}

type timingsResponse struct {
	Code int `json:"code"`
	Data *struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// Timings returns today's times for the five daily prayers
func (c *Client) Timings(ctx context.Context) (Timings, error) {
	u, err := url.Parse(c.baseURL + "/v1/timingsByCity")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("city", c.city)
	q.Set("country", c.country)
	q.Set("method", strconv.Itoa(c.method))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prayer times: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("prayer times http status: %s", resp.Status)
	}

	var res timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode prayer times: %w", err)
	}
	if res.Data == nil || len(res.Data.Timings) == 0 {
		return nil, ErrNoTimings
	}

	out := make(Timings, len(Names))
	for _, name := range Names {
		if v, ok := res.Data.Timings[name]; ok {
			out[name] = v
		}
	}
	if len(out) == 0 {
		return nil, ErrNoTimings
	}
	return out, nil
}
