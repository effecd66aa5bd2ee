package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	maxBuyerNameLen   = 120
	maxPhoneNumberLen = 40
	maxAddressLen     = 500
	maxBouquetNameLen = 200
	maxEnumLen        = 32
)

const (
	orderStatusInquiry    = "bertanya"
	orderStatusOrdered    = "memesan"
	orderStatusProcessing = "sedang_diproses"
	orderStatusAwaiting   = "menunggu_driver"
	orderStatusDelivering = "pengantaran"
	orderStatusDelivered  = "terkirim"
)

var orderStatuses = []string{
	orderStatusInquiry,
	orderStatusOrdered,
	orderStatusProcessing,
	orderStatusAwaiting,
	orderStatusDelivering,
	orderStatusDelivered,
}

var paymentMethods = []string{"cash", "transfer", "qris"}

func isValidOrderStatus(value string) bool {
	for _, s := range orderStatuses {
		if value == s {
			return true
		}
	}
	return false
}

func isValidPaymentMethod(value string) bool {
	if value == "" {
		return true
	}
	for _, m := range paymentMethods {
		if value == m {
			return true
		}
	}
	return false
}

// stringField reads a string body field, tolerating numeric values the way
// the storefront UI sometimes sends phone numbers.
func stringField(raw map[string]interface{}, key string) (string, bool) {
	value, ok := raw[key]
	if !ok {
		return "", false
	}
	switch typed := value.(type) {
	case string:
		return typed, true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// numberField reads a monetary body field sent as a number or numeric string.
// Unparseable values collapse to zero; amounts are corrected, not rejected.
func numberField(raw map[string]interface{}, key string) (float64, bool) {
	value, ok := raw[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case float64:
		return typed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, true
		}
		return parsed, true
	case nil:
		return 0, true
	default:
		return 0, true
	}
}

func parseDeliveryAt(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deliveryAt: %s", trimmed)
}

type orderInput struct {
	CustomerID        string
	BuyerName         string
	PhoneNumber       string
	Address           string
	BouquetID         string
	BouquetName       string
	BouquetPrice      int
	DeliveryPrice     int
	DownPaymentAmount int
	AdditionalPayment int
	PaymentMethod     string
	OrderStatus       string
	DeliveryAt        *time.Time
}

func parseOrderInput(raw map[string]interface{}) (orderInput, error) {
	input := orderInput{OrderStatus: orderStatusInquiry}

	if value, ok := stringField(raw, "customerId"); ok {
		input.CustomerID = strings.TrimSpace(value)
	}
	if value, ok := stringField(raw, "buyerName"); ok {
		input.BuyerName = clampString(value, maxBuyerNameLen)
	}
	if value, ok := stringField(raw, "phoneNumber"); ok {
		input.PhoneNumber = clampString(value, maxPhoneNumberLen)
	}
	if value, ok := stringField(raw, "address"); ok {
		input.Address = clampString(value, maxAddressLen)
	}
	if value, ok := stringField(raw, "bouquetId"); ok {
		input.BouquetID = strings.TrimSpace(value)
	}
	if value, ok := stringField(raw, "bouquetName"); ok {
		input.BouquetName = clampString(value, maxBouquetNameLen)
	}

	if value, ok := numberField(raw, "bouquetPrice"); ok {
		input.BouquetPrice = clampAmount(value)
	}
	if value, ok := numberField(raw, "deliveryPrice"); ok {
		input.DeliveryPrice = clampAmount(value)
	}
	if value, ok := numberField(raw, "downPaymentAmount"); ok {
		input.DownPaymentAmount = clampAmount(value)
	}
	if value, ok := numberField(raw, "additionalPayment"); ok {
		input.AdditionalPayment = clampAmount(value)
	}

	if value, ok := stringField(raw, "orderStatus"); ok {
		status := clampString(value, maxEnumLen)
		if status != "" {
			if !isValidOrderStatus(status) {
				return orderInput{}, fmt.Errorf("invalid orderStatus: %s", status)
			}
			input.OrderStatus = status
		}
	}
	if value, ok := stringField(raw, "paymentMethod"); ok {
		method := clampString(value, maxEnumLen)
		if !isValidPaymentMethod(method) {
			return orderInput{}, fmt.Errorf("invalid paymentMethod: %s", method)
		}
		input.PaymentMethod = method
	}

	if value, ok := stringField(raw, "deliveryAt"); ok {
		if strings.TrimSpace(value) != "" {
			parsed, err := parseDeliveryAt(value)
			if err != nil {
				return orderInput{}, err
			}
			input.DeliveryAt = &parsed
		}
	}

	return input, nil
}

// orderPatch carries only the fields explicitly present in a PATCH body.
// Omitted keys leave the stored value untouched.
type orderPatch struct {
	CustomerID           string
	CustomerIDSet        bool
	BuyerName            string
	BuyerNameSet         bool
	PhoneNumber          string
	PhoneNumberSet       bool
	Address              string
	AddressSet           bool
	BouquetID            string
	BouquetIDSet         bool
	BouquetName          string
	BouquetNameSet       bool
	BouquetPrice         int
	BouquetPriceSet      bool
	DeliveryPrice        int
	DeliveryPriceSet     bool
	DownPaymentAmount    int
	DownPaymentAmountSet bool
	AdditionalPayment    int
	AdditionalPaymentSet bool
	PaymentMethod        string
	PaymentMethodSet     bool
	OrderStatus          string
	OrderStatusSet       bool
	DeliveryAt           *time.Time
	DeliveryAtSet        bool
}

func (p orderPatch) amountsSupplied() bool {
	return p.DownPaymentAmountSet || p.AdditionalPaymentSet || p.DeliveryPriceSet
}

func parseOrderPatch(raw map[string]interface{}) (orderPatch, error) {
	patch := orderPatch{}

	if value, ok := stringField(raw, "customerId"); ok {
		// empty string unlinks the order from its customer
		patch.CustomerID = strings.TrimSpace(value)
		patch.CustomerIDSet = true
	}
	if value, ok := stringField(raw, "buyerName"); ok {
		patch.BuyerName = clampString(value, maxBuyerNameLen)
		if patch.BuyerName == "" {
			return orderPatch{}, fmt.Errorf("buyerName cannot be empty")
		}
		patch.BuyerNameSet = true
	}
	if value, ok := stringField(raw, "phoneNumber"); ok {
		patch.PhoneNumber = clampString(value, maxPhoneNumberLen)
		if patch.PhoneNumber == "" {
			return orderPatch{}, fmt.Errorf("phoneNumber cannot be empty")
		}
		patch.PhoneNumberSet = true
	}
	if value, ok := stringField(raw, "address"); ok {
		patch.Address = clampString(value, maxAddressLen)
		if patch.Address == "" {
			return orderPatch{}, fmt.Errorf("address cannot be empty")
		}
		patch.AddressSet = true
	}
	if value, ok := stringField(raw, "bouquetId"); ok {
		patch.BouquetID = strings.TrimSpace(value)
		if patch.BouquetID == "" {
			return orderPatch{}, fmt.Errorf("bouquetId cannot be empty")
		}
		patch.BouquetIDSet = true
	}
	if value, ok := stringField(raw, "bouquetName"); ok {
		patch.BouquetName = clampString(value, maxBouquetNameLen)
		patch.BouquetNameSet = true
	}

	if value, ok := numberField(raw, "bouquetPrice"); ok {
		patch.BouquetPrice = clampAmount(value)
		patch.BouquetPriceSet = true
	}
	if value, ok := numberField(raw, "deliveryPrice"); ok {
		patch.DeliveryPrice = clampAmount(value)
		patch.DeliveryPriceSet = true
	}
	if value, ok := numberField(raw, "downPaymentAmount"); ok {
		patch.DownPaymentAmount = clampAmount(value)
		patch.DownPaymentAmountSet = true
	}
	if value, ok := numberField(raw, "additionalPayment"); ok {
		patch.AdditionalPayment = clampAmount(value)
		patch.AdditionalPaymentSet = true
	}

	if value, ok := stringField(raw, "orderStatus"); ok {
		status := clampString(value, maxEnumLen)
		if !isValidOrderStatus(status) {
			return orderPatch{}, fmt.Errorf("invalid orderStatus: %s", status)
		}
		patch.OrderStatus = status
		patch.OrderStatusSet = true
	}
	if value, ok := stringField(raw, "paymentMethod"); ok {
		method := clampString(value, maxEnumLen)
		if !isValidPaymentMethod(method) {
			return orderPatch{}, fmt.Errorf("invalid paymentMethod: %s", method)
		}
		patch.PaymentMethod = method
		patch.PaymentMethodSet = true
	}

	if value, ok := stringField(raw, "deliveryAt"); ok {
		patch.DeliveryAtSet = true
		if strings.TrimSpace(value) != "" {
			parsed, err := parseDeliveryAt(value)
			if err != nil {
				return orderPatch{}, err
			}
			patch.DeliveryAt = &parsed
		}
	}

	return patch, nil
}
