// Package inspiration provides the Today tab's verse, quote and Hijri date
package inspiration

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "https://api.alquran.cloud"
	Edition        = "en.asad"

	NoAyahs      = "No ayahs found."
	NoData       = "No data found."
	VerseFailure = "Error loading verse."
)

// Quotes are shown one per day
var Quotes = []string{
	`"Indeed, with hardship comes ease." (Quran 94:6)`,
	`"So remember Me; I will remember you." (Quran 2:152)`,
	`"And whoever puts their trust in Allah, He will suffice them." (Quran 65:3)`,
}

// DailyQuote picks one of Quotes using rng
func DailyQuote(rng *rand.Rand) string {
	return Quotes[rng.Intn(len(Quotes))]
}

// HijriDate is an approximation of the Islamic calendar date, written
// day/month/year H with the year shifted by 580.
func HijriDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d H", t.Day(), int(t.Month()), t.Year()-580)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

func NewClient(baseURL string, timeout time.Duration, rng *rand.Rand) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		rng:     rng,
	}
}

type ayah struct {
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
}

type surah struct {
	EnglishName string `json:"englishName"`
	Ayahs       []ayah `json:"ayahs"`
}

type quranResponse struct {
	Data *struct {
		Surahs []surah `json:"surahs"`
	} `json:"data"`
}

// RandomVerse fetches the whole edition and formats one ayah picked at
// random. It always returns displayable text; err is set when the fetch
// itself failed.
func (c *Client) RandomVerse(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/quran/"+Edition, nil)
	if err != nil {
		return VerseFailure, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return VerseFailure, fmt.Errorf("failed to fetch verse: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return VerseFailure, fmt.Errorf("quran http status: %s", resp.Status)
	}

	var res quranResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return VerseFailure, fmt.Errorf("failed to decode verse: %w", err)
	}
	if res.Data == nil || len(res.Data.Surahs) == 0 {
		return NoData, nil
	}

	type located struct {
		ayah
		surah string
	}
	var all []located
	for _, s := range res.Data.Surahs {
		for _, a := range s.Ayahs {
			all = append(all, located{ayah: a, surah: s.EnglishName})
		}
	}
	if len(all) == 0 {
		return NoAyahs, nil
	}

	c.mu.Lock()
	pick := all[c.rng.Intn(len(all))]
	c.mu.Unlock()

	return fmt.Sprintf("\"%s\" - Quran %s Ayah %d", pick.Text, pick.surah, pick.NumberInSurah), nil
}
