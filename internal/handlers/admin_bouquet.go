package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rickychen930/giftforyou-sub002/internal/models"
)

const maxBouquetDescriptionLen = 2000

/* =========================
   ADMIN CATALOG
========================= */

func GetAllBouquets(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/bouquets"

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
		}
		if isActive := strings.TrimSpace(c.Query("isActive")); isActive != "" {
			filter["isActive"] = strings.EqualFold(isActive, "true")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("bouquets").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("bouquets").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		bouquets := make([]models.Bouquet, 0)
		if err := cursor.All(ctx, &bouquets); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": bouquets,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}

func CreateBouquet(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/bouquets"
		defer handlePanic(c, route)

		raw, ok := readJSONBody(c, route)
		if !ok {
			return
		}

		name := ""
		if value, found := stringField(raw, "name"); found {
			name = clampString(value, maxBouquetNameLen)
		}
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}

		price := 0
		if value, found := numberField(raw, "price"); found {
			price = clampAmount(value)
		}

		bouquet := models.Bouquet{
			Name:        name,
			Price:       price,
			Collections: models.StringList{},
			IsActive:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if value, found := stringField(raw, "description"); found {
			bouquet.Description = clampString(value, maxBouquetDescriptionLen)
		}
		if value, found := stringField(raw, "imagePath"); found {
			bouquet.ImagePath = strings.TrimSpace(value)
		}
		if names, found := stringListField(raw, "collections"); found {
			bouquet.Collections = models.StringList(normalizeCollectionNames(names))
		}
		if value, ok := raw["isActive"].(bool); ok {
			bouquet.IsActive = value
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("bouquets").InsertOne(ctx, bouquet)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		bouquet.ID = res.InsertedID.(primitive.ObjectID)

		log.Println("[CATALOG] [INFO] bouquet created:", bouquet.ID.Hex())
		c.JSON(http.StatusCreated, bouquet)
	}
}

func UpdateBouquet(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/bouquets/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		raw, ok := readJSONBody(c, route)
		if !ok {
			return
		}

		updateSet := bson.M{}
		updateUnset := bson.M{}

		if value, found := stringField(raw, "name"); found {
			name := clampString(value, maxBouquetNameLen)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			updateSet["name"] = name
		}
		if value, found := numberField(raw, "price"); found {
			updateSet["price"] = clampAmount(value)
		}
		if value, found := stringField(raw, "description"); found {
			updateSet["description"] = clampString(value, maxBouquetDescriptionLen)
		}
		if value, found := stringField(raw, "imagePath"); found {
			path := strings.TrimSpace(value)
			if path == "" {
				updateUnset["imagePath"] = ""
			} else {
				updateSet["imagePath"] = path
			}
		}
		if names, found := stringListField(raw, "collections"); found {
			updateSet["collections"] = models.StringList(normalizeCollectionNames(names))
		}
		if value, ok := raw["isActive"].(bool); ok {
			updateSet["isActive"] = value
		}

		if len(updateSet) == 0 && len(updateUnset) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		update := bson.M{"$set": updateSet}
		if len(updateUnset) > 0 {
			update["$unset"] = updateUnset
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Bouquet
		if err := db.Collection("bouquets").FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "bouquet not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var updated models.Bouquet
		err = db.Collection("bouquets").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "bouquet not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// drop the replaced image file once the document points elsewhere
		if newPath, found := stringField(raw, "imagePath"); found {
			trimmedNew := strings.TrimSpace(newPath)
			if existing.ImagePath != "" && existing.ImagePath != trimmedNew {
				if err := safeDeleteUpload(existing.ImagePath); err != nil {
					log.Printf("[CATALOG] [ERROR] old image delete failed: %v", err)
				}
			}
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteBouquet(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/bouquets/:id"

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Bouquet
		err = db.Collection("bouquets").FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "bouquet not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if existing.ImagePath != "" {
			if err := safeDeleteUpload(existing.ImagePath); err != nil {
				log.Printf("[CATALOG] [ERROR] image delete failed: %v", err)
			}
		}

		log.Println("[CATALOG] [INFO] bouquet deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

/* =========================
   HELPERS
========================= */

func stringListField(raw map[string]interface{}, key string) ([]string, bool) {
	value, ok := raw[key]
	if !ok {
		return nil, false
	}
	switch typed := value.(type) {
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		return []string{typed}, true
	case nil:
		return []string{}, true
	default:
		return nil, false
	}
}

func normalizeCollectionNames(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)

	for _, v := range values {
		name := strings.TrimSpace(v)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
