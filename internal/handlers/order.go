package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rickychen930/giftforyou-sub002/internal/models"
)

const (
	defaultOrderPageSize = int64(50)
	maxOrderPageSize     = int64(200)
)

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		raw, ok := readJSONBody(c, route)
		if !ok {
			return
		}

		input, err := parseOrderInput(raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if input.CustomerID != "" {
			contact, err := lookupCustomerContact(ctx, db, input.CustomerID)
			if err == errCustomerNotFound {
				respondWithError(c, http.StatusBadRequest, route, "customer not found")
				return
			}
			if err != nil {
				log.Println("[ORDER] [ERROR] customer lookup failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			input.BuyerName = contact.Name
			input.PhoneNumber = contact.PhoneNumber
			input.Address = contact.Address
		}

		snap, lookupErr := lookupBouquetSnapshot(ctx, db, input.BouquetID)
		resolved := resolveBouquetSnapshot(snap, lookupErr, input.BouquetName, input.BouquetPrice)

		order, err := buildOrderFromInput(input, resolved, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] order insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ORDER] [INFO] order created:", order.ID.Hex())
		c.JSON(http.StatusCreated, order)
	}
}

// buildOrderFromInput validates the normalized input against the resolved
// bouquet snapshot and assembles the document to persist. totalAmount and
// paymentStatus are derived here, never taken from the caller.
func buildOrderFromInput(input orderInput, snap bouquetSnapshot, now time.Time) (models.Order, error) {
	missing := make([]string, 0, 4)
	if input.BuyerName == "" {
		missing = append(missing, "buyerName")
	}
	if input.PhoneNumber == "" {
		missing = append(missing, "phoneNumber")
	}
	if input.Address == "" {
		missing = append(missing, "address")
	}
	if input.BouquetID == "" {
		missing = append(missing, "bouquetId")
	}
	if snap.Name == "" {
		missing = append(missing, "bouquetName")
	}
	if len(missing) > 0 {
		return models.Order{}, fmt.Errorf("%s required", strings.Join(missing, ", "))
	}

	totalAmount := snap.Price + input.DeliveryPrice

	return models.Order{
		CustomerID:        input.CustomerID,
		BuyerName:         input.BuyerName,
		PhoneNumber:       input.PhoneNumber,
		Address:           input.Address,
		BouquetID:         input.BouquetID,
		BouquetName:       snap.Name,
		BouquetPrice:      snap.Price,
		DeliveryPrice:     input.DeliveryPrice,
		DownPaymentAmount: input.DownPaymentAmount,
		AdditionalPayment: input.AdditionalPayment,
		TotalAmount:       totalAmount,
		PaymentStatus:     derivePaymentStatus(totalAmount, input.DownPaymentAmount, input.AdditionalPayment),
		PaymentMethod:     input.PaymentMethod,
		OrderStatus:       input.OrderStatus,
		DeliveryAt:        input.DeliveryAt,
		Activity:          []models.ActivityEntry{newCreatedEntry(now)},
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

/* =========================
   UPDATE ORDER
========================= */

func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:id"
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

		patch, err := parseOrderPatch(raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			log.Println("[ORDER] [ERROR] order load failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var contact *customerContact
		if patch.CustomerIDSet && patch.CustomerID != "" {
			resolved, err := lookupCustomerContact(ctx, db, patch.CustomerID)
			if err == errCustomerNotFound {
				respondWithError(c, http.StatusBadRequest, route, "customer not found")
				return
			}
			if err != nil {
				log.Println("[ORDER] [ERROR] customer lookup failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			contact = &resolved
		}

		var snap *bouquetSnapshot
		if patch.BouquetIDSet && patch.BouquetID != existing.BouquetID {
			fallbackName := existing.BouquetName
			if patch.BouquetNameSet {
				fallbackName = patch.BouquetName
			}
			fallbackPrice := existing.BouquetPrice
			if patch.BouquetPriceSet {
				fallbackPrice = patch.BouquetPrice
			}
			looked, lookupErr := lookupBouquetSnapshot(ctx, db, patch.BouquetID)
			resolved := resolveBouquetSnapshot(looked, lookupErr, fallbackName, fallbackPrice)
			snap = &resolved
		}

		now := time.Now()
		next := mergeOrderPatch(existing, patch, contact, snap)
		entries := recordOrderChanges(existing, next, patch.DeliveryAtSet, patch.amountsSupplied(), now)
		next.Activity = appendActivity(existing.Activity, entries...)
		next.UpdatedAt = now

		update := orderUpdateDocument(next)

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			// deleted between load and write
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			log.Println("[ORDER] [ERROR] order update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order updated:", updated.ID.Hex())
		c.JSON(http.StatusOK, updated)
	}
}

// mergeOrderPatch applies the patch onto the stored order and recomputes the
// derived fields from the merged view. While the order is linked to a customer
// the buyer fields follow the resolved contact; direct edits to them are
// ignored until the order is unlinked with customerId: "".
func mergeOrderPatch(existing models.Order, patch orderPatch, contact *customerContact, snap *bouquetSnapshot) models.Order {
	next := existing

	if patch.CustomerIDSet {
		next.CustomerID = patch.CustomerID
	}
	if contact != nil {
		next.BuyerName = contact.Name
		next.PhoneNumber = contact.PhoneNumber
		next.Address = contact.Address
	}
	if next.CustomerID == "" {
		if patch.BuyerNameSet {
			next.BuyerName = patch.BuyerName
		}
		if patch.PhoneNumberSet {
			next.PhoneNumber = patch.PhoneNumber
		}
		if patch.AddressSet {
			next.Address = patch.Address
		}
	}

	if patch.BouquetIDSet {
		next.BouquetID = patch.BouquetID
	}
	if snap != nil {
		// catalog truth wins on an id change, even over values supplied in
		// the same request
		next.BouquetName = snap.Name
		next.BouquetPrice = snap.Price
	} else {
		if patch.BouquetNameSet {
			next.BouquetName = patch.BouquetName
		}
		if patch.BouquetPriceSet {
			next.BouquetPrice = patch.BouquetPrice
		}
	}

	if patch.DeliveryPriceSet {
		next.DeliveryPrice = patch.DeliveryPrice
	}
	if patch.DownPaymentAmountSet {
		next.DownPaymentAmount = patch.DownPaymentAmount
	}
	if patch.AdditionalPaymentSet {
		next.AdditionalPayment = patch.AdditionalPayment
	}
	if patch.PaymentMethodSet {
		next.PaymentMethod = patch.PaymentMethod
	}
	if patch.OrderStatusSet {
		next.OrderStatus = patch.OrderStatus
	}
	if patch.DeliveryAtSet {
		next.DeliveryAt = patch.DeliveryAt
	}

	next.TotalAmount = next.BouquetPrice + next.DeliveryPrice
	next.PaymentStatus = derivePaymentStatus(next.TotalAmount, next.DownPaymentAmount, next.AdditionalPayment)

	return next
}

func orderUpdateDocument(next models.Order) bson.M {
	set := bson.M{
		"buyerName":         next.BuyerName,
		"phoneNumber":       next.PhoneNumber,
		"address":           next.Address,
		"bouquetId":         next.BouquetID,
		"bouquetName":       next.BouquetName,
		"bouquetPrice":      next.BouquetPrice,
		"deliveryPrice":     next.DeliveryPrice,
		"downPaymentAmount": next.DownPaymentAmount,
		"additionalPayment": next.AdditionalPayment,
		"totalAmount":       next.TotalAmount,
		"paymentStatus":     next.PaymentStatus,
		"paymentMethod":     next.PaymentMethod,
		"orderStatus":       next.OrderStatus,
		"activity":          next.Activity,
		"updatedAt":         next.UpdatedAt,
	}
	unset := bson.M{}

	if next.CustomerID == "" {
		unset["customerId"] = ""
	} else {
		set["customerId"] = next.CustomerID
	}
	if next.DeliveryAt == nil {
		unset["deliveryAt"] = ""
	} else {
		set["deliveryAt"] = *next.DeliveryAt
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

/* =========================
   LIST / DELETE
========================= */

func GetOrders(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		role, subject := identityFromHeader(c.GetHeader("Authorization"), jwtSecret)

		filter := bson.M{}
		switch role {
		case "admin":
			if q := strings.TrimSpace(c.Query("q")); q != "" {
				// escape the literal so search input never acts as a pattern
				pattern := regexp.QuoteMeta(q)
				filter["$or"] = []bson.M{
					{"buyerName": bson.M{"$regex": pattern, "$options": "i"}},
					{"phoneNumber": bson.M{"$regex": pattern, "$options": "i"}},
				}
			}
		case "user":
			userID, err := primitive.ObjectIDFromHex(subject)
			if err != nil {
				c.JSON(http.StatusOK, []models.Order{})
				return
			}
			var customer models.Customer
			if err := db.Collection("customers").FindOne(ctx, bson.M{"userId": userID}).Decode(&customer); err != nil {
				c.JSON(http.StatusOK, []models.Order{})
				return
			}
			filter["customerId"] = customer.ID.Hex()
		default:
			c.JSON(http.StatusOK, []models.Order{})
			return
		}

		limit := defaultOrderPageSize
		if value := strings.TrimSpace(c.Query("limit")); value != "" {
			if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		if limit > maxOrderPageSize {
			limit = maxOrderPageSize
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit)

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id"

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		log.Println("[ORDER] [INFO] order deleted:", orderID.Hex())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

/* =========================
   HELPERS
========================= */

func readJSONBody(c *gin.Context, route string) (map[string]interface{}, bool) {
	body, err := c.GetRawData()
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid body")
		return nil, false
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid body")
		return nil, false
	}
	return raw, true
}

// identityFromHeader extracts (role, subject) from an optional bearer token.
// Listing is role-scoped, not rejected: callers without a valid token simply
// see nothing.
func identityFromHeader(header, secret string) (string, string) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", ""
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ""
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ""
	}

	role, _ := claims["role"].(string)
	subject, _ := claims["sub"].(string)
	return role, subject
}
