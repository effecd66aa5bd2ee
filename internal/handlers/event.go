package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rickychen930/giftforyou-sub002/internal/models"
)

const (
	maxEventNameLen = 64
	maxEventPathLen = 200
	maxEventMetaLen = 16
)

type EventRequest struct {
	Name string            `json:"name" binding:"required"`
	Path string            `json:"path"`
	Meta map[string]string `json:"meta"`
}

// CaptureEvent records a storefront analytics event. Fire-and-forget: the UI
// never waits on anything beyond the insert.
func CaptureEvent(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/events"

		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := clampString(req.Name, maxEventNameLen)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}

		event := models.Event{
			Name:      name,
			Path:      clampString(req.Path, maxEventPathLen),
			CreatedAt: time.Now(),
		}

		if len(req.Meta) > 0 {
			meta := make(map[string]string, len(req.Meta))
			for key, value := range req.Meta {
				if len(meta) >= maxEventMetaLen {
					break
				}
				meta[clampString(key, maxEventNameLen)] = clampString(value, maxEventPathLen)
			}
			event.Meta = meta
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("events").InsertOne(ctx, event)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			event.ID = id
		}

		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	}
}
