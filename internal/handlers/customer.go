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

type CustomerCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Address     string `json:"address"`
	UserID      string `json:"userId"`
}

type CustomerUpdateRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	UserID      *string `json:"userId"`
}

func GetCustomers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/customers"

		filter := bson.M{}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			pattern := regexp.QuoteMeta(q)
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": pattern, "$options": "i"}},
				{"phoneNumber": bson.M{"$regex": pattern, "$options": "i"}},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("customers").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		customers := make([]models.Customer, 0)
		if err := cursor.All(ctx, &customers); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, customers)
	}
}

func CreateCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/customers"
		defer handlePanic(c, route)

		var req CustomerCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := clampString(req.Name, maxBuyerNameLen)
		phone := clampString(req.PhoneNumber, maxPhoneNumberLen)
		if name == "" || phone == "" {
			respondWithError(c, http.StatusBadRequest, route, "name and phoneNumber are required")
			return
		}

		now := time.Now()
		customer := models.Customer{
			Name:        name,
			PhoneNumber: phone,
			Address:     clampString(req.Address, maxAddressLen),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if raw := strings.TrimSpace(req.UserID); raw != "" {
			userID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid userId")
				return
			}
			customer.UserID = &userID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("customers").InsertOne(ctx, customer)
		if err != nil {
			log.Println("[CUSTOMER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		customer.ID = res.InsertedID.(primitive.ObjectID)

		log.Println("[CUSTOMER] [INFO] customer created:", customer.ID.Hex())
		c.JSON(http.StatusCreated, customer)
	}
}

func UpdateCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/customers/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req CustomerUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		updateSet := bson.M{}
		updateUnset := bson.M{}

		if req.Name != nil {
			name := clampString(*req.Name, maxBuyerNameLen)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			updateSet["name"] = name
		}
		if req.PhoneNumber != nil {
			phone := clampString(*req.PhoneNumber, maxPhoneNumberLen)
			if phone == "" {
				respondWithError(c, http.StatusBadRequest, route, "phoneNumber cannot be empty")
				return
			}
			updateSet["phoneNumber"] = phone
		}
		if req.Address != nil {
			updateSet["address"] = clampString(*req.Address, maxAddressLen)
		}
		if req.UserID != nil {
			raw := strings.TrimSpace(*req.UserID)
			if raw == "" {
				updateUnset["userId"] = ""
			} else {
				userID, err := primitive.ObjectIDFromHex(raw)
				if err != nil {
					respondWithError(c, http.StatusBadRequest, route, "invalid userId")
					return
				}
				updateSet["userId"] = userID
			}
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

		var updated models.Customer
		err = db.Collection("customers").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/customers/:id"

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("customers").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}

		// existing orders keep their buyer snapshot; the dangling link is
		// tolerated and simply stops resolving
		log.Println("[CUSTOMER] [INFO] customer deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
