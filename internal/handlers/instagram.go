package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rickychen930/giftforyou-sub002/internal/cache"
)

const instagramCacheKey = "instagram-feed"

var instagramClient = &http.Client{Timeout: 10 * time.Second}

// NewInstagramCache holds the last successful feed response for ten minutes so
// the storefront does not hammer the upstream on every page view.
func NewInstagramCache() *cache.LRU {
	return cache.NewLRU(1, 10*time.Minute)
}

func InstagramFeed(feedURL string, feedCache *cache.LRU) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/instagram"

		if feedURL == "" {
			respondWithError(c, http.StatusNotFound, route, "instagram feed not configured")
			return
		}

		if cached, ok := feedCache.Get(instagramCacheKey); ok {
			c.Data(http.StatusOK, "application/json", cached.([]byte))
			return
		}

		resp, err := instagramClient.Get(feedURL)
		if err != nil {
			log.Println("[INSTAGRAM] [ERROR] feed fetch failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "feed unavailable")
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Println("[INSTAGRAM] [ERROR] feed status:", resp.StatusCode)
			respondWithError(c, http.StatusBadGateway, route, "feed unavailable")
			return
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			respondWithError(c, http.StatusBadGateway, route, "feed unavailable")
			return
		}

		feedCache.Set(instagramCacheKey, body)
		c.Data(http.StatusOK, "application/json", body)
	}
}
