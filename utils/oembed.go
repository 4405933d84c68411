package utils

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// OEmbed is the subset of an oEmbed response used to render videos
type OEmbed struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	HTML         string `json:"html"`
	ThumbnailURL string `json:"thumbnail_url"`
	Error        string `json:"error"`
}

var (
	oembedClient = resty.New().SetTimeout(5 * time.Second)
	oembedCache  = newEmbedCache(512, 6*time.Hour)
)

type embedEntry struct {
	value   *OEmbed
	expires time.Time
}

// embedCache holds at most max answers, each for ttl
type embedCache struct {
	mu      sync.Mutex
	max     int
	ttl     time.Duration
	entries map[string]embedEntry
}

func newEmbedCache(max int, ttl time.Duration) *embedCache {
	return &embedCache{max: max, ttl: ttl, entries: make(map[string]embedEntry)}
}

func (c *embedCache) get(key string) (*OEmbed, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *embedCache) put(key string, value *OEmbed) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.max {
		for k, entry := range c.entries {
			if now.After(entry.expires) {
				delete(c.entries, k)
			}
		}
		// still full: evict the entry closest to expiry
		if len(c.entries) >= c.max {
			var oldest string
			for k, entry := range c.entries {
				if oldest == "" || entry.expires.Before(c.entries[oldest].expires) {
					oldest = k
				}
			}
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = embedEntry{value: value, expires: now.Add(c.ttl)}
}

func (c *embedCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FetchOEmbed asks an oEmbed provider for the embed html of videoURL.
// Successful answers are cached for a few hours.
func FetchOEmbed(endpoint, videoURL string) (*OEmbed, error) {
	key := endpoint + "|" + videoURL
	if cached, ok := oembedCache.get(key); ok {
		return cached, nil
	}

	var result OEmbed
	resp, err := oembedClient.R().
		SetQueryParams(map[string]string{"url": videoURL, "format": "json"}).
		SetHeader("Accept", "application/json").
		SetResult(&result).
		Get(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "oembed request")
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("oembed provider responded %d", resp.StatusCode())
	}
	if result.Error != "" || result.HTML == "" {
		return nil, errors.Errorf("oembed provider returned no html for %s", videoURL)
	}

	oembedCache.put(key, &result)
	return &result, nil
}

// VideoEmbedURL maps YouTube and Vimeo page URLs to their player URL.
// It returns "" for other hosts.
func VideoEmbedURL(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
		if len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts") {
			return "https://www.youtube.com/embed/" + url.PathEscape(segments[1])
		}
	case "youtu.be":
		if segments[0] != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(segments[0])
		}
	case "vimeo.com":
		if last := segments[len(segments)-1]; last != "" && isDigits(last) {
			return "https://player.vimeo.com/video/" + last
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
