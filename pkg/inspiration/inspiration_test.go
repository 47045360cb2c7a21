package inspiration

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quran/en.asad", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRandomVerse(t *testing.T) {
	srv := serve(t, `{"data":{"surahs":[{"englishName":"Al-Faatiha","ayahs":[
		{"text":"In the name of God","numberInSurah":1}]}]}}`, http.StatusOK)

	c := NewClient(srv.URL, time.Second, rand.New(rand.NewSource(1)))
	got, err := c.RandomVerse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `"In the name of God" - Quran Al-Faatiha Ayah 1`, got)
}

func TestRandomVerse_PicksAcrossSurahs(t *testing.T) {
	srv := serve(t, `{"data":{"surahs":[
		{"englishName":"A","ayahs":[{"text":"a1","numberInSurah":1},{"text":"a2","numberInSurah":2}]},
		{"englishName":"B","ayahs":[{"text":"b1","numberInSurah":1}]}]}}`, http.StatusOK)

	c := NewClient(srv.URL, time.Second, rand.New(rand.NewSource(7)))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		got, err := c.RandomVerse(context.Background())
		require.NoError(t, err)
		seen[got] = true
	}
	assert.Contains(t, seen, `"b1" - Quran B Ayah 1`)
	assert.LessOrEqual(t, len(seen), 3)
}

func TestRandomVerse_Fallbacks(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		status  int
		want    string
		wantErr bool
	}{
		{"no ayahs", `{"data":{"surahs":[{"englishName":"A","ayahs":[]}]}}`, http.StatusOK, NoAyahs, false},
		{"no data", `{"code":404,"data":null}`, http.StatusOK, NoData, false},
		{"server error", `oops`, http.StatusInternalServerError, VerseFailure, true},
		{"bad json", `{"data":`, http.StatusOK, VerseFailure, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serve(t, tc.body, tc.status)
			got, err := NewClient(srv.URL, time.Second, nil).RandomVerse(context.Background())
			assert.Equal(t, tc.want, got)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDailyQuote(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		assert.Contains(t, Quotes, DailyQuote(rng))
	}
}

func TestHijriDate(t *testing.T) {
	assert.Equal(t, "16/10/1446 H", HijriDate(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)))
}
