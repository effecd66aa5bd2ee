package handlers

import (
	"strings"
	"testing"
)

func TestNumberFieldAcceptsNumberOrNumericString(t *testing.T) {
	raw := map[string]interface{}{
		"a": 12500.0,
		"b": "12500",
		"c": "not-a-number",
	}

	if v, ok := numberField(raw, "a"); !ok || v != 12500 {
		t.Fatalf("expected 12500 from number, got %v ok=%v", v, ok)
	}
	if v, ok := numberField(raw, "b"); !ok || v != 12500 {
		t.Fatalf("expected 12500 from numeric string, got %v ok=%v", v, ok)
	}
	if v, ok := numberField(raw, "c"); !ok || v != 0 {
		t.Fatalf("expected unparseable value to collapse to 0, got %v ok=%v", v, ok)
	}
	if _, ok := numberField(raw, "missing"); ok {
		t.Fatal("expected missing key to report not present")
	}
}

func TestParseOrderInputDefaultsAndCaps(t *testing.T) {
	input, err := parseOrderInput(map[string]interface{}{
		"buyerName":     "  Ana  ",
		"phoneNumber":   "0812",
		"address":       "Jl. X",
		"bouquetId":     "b1",
		"bouquetPrice":  "100000",
		"deliveryPrice": 20000.0,
	})
	if err != nil {
		t.Fatalf("parseOrderInput returned error: %v", err)
	}
	if input.BuyerName != "Ana" {
		t.Fatalf("expected trimmed buyerName, got %q", input.BuyerName)
	}
	if input.OrderStatus != orderStatusInquiry {
		t.Fatalf("expected default orderStatus %q, got %q", orderStatusInquiry, input.OrderStatus)
	}
	if input.BouquetPrice != 100000 || input.DeliveryPrice != 20000 {
		t.Fatalf("unexpected amounts: %+v", input)
	}
}

func TestParseOrderInputCapsLongStrings(t *testing.T) {
	input, err := parseOrderInput(map[string]interface{}{
		"buyerName": strings.Repeat("a", 500),
	})
	if err != nil {
		t.Fatalf("parseOrderInput returned error: %v", err)
	}
	if len(input.BuyerName) != maxBuyerNameLen {
		t.Fatalf("expected buyerName capped at %d, got %d", maxBuyerNameLen, len(input.BuyerName))
	}
}

func TestParseOrderInputRejectsInvalidStatus(t *testing.T) {
	_, err := parseOrderInput(map[string]interface{}{"orderStatus": "teleported"})
	if err == nil {
		t.Fatal("expected error for unknown orderStatus")
	}
}

func TestParseOrderInputRejectsInvalidDeliveryAt(t *testing.T) {
	_, err := parseOrderInput(map[string]interface{}{"deliveryAt": "not-a-date"})
	if err == nil {
		t.Fatal("expected error for unparseable deliveryAt")
	}
}

func TestParseDeliveryAtLayouts(t *testing.T) {
	valid := []string{
		"2026-09-01T10:30:00Z",
		"2026-09-01T10:30",
		"2026-09-01",
	}
	for _, value := range valid {
		if _, err := parseDeliveryAt(value); err != nil {
			t.Errorf("parseDeliveryAt(%q) returned error: %v", value, err)
		}
	}
}

func TestParseOrderPatchPresenceFlags(t *testing.T) {
	patch, err := parseOrderPatch(map[string]interface{}{
		"orderStatus":       "memesan",
		"downPaymentAmount": 120000.0,
	})
	if err != nil {
		t.Fatalf("parseOrderPatch returned error: %v", err)
	}
	if !patch.OrderStatusSet || patch.OrderStatus != orderStatusOrdered {
		t.Fatalf("expected orderStatus set, got %+v", patch)
	}
	if !patch.DownPaymentAmountSet || patch.DownPaymentAmount != 120000 {
		t.Fatalf("expected downPaymentAmount set, got %+v", patch)
	}
	if patch.BuyerNameSet || patch.DeliveryAtSet {
		t.Fatalf("expected untouched fields to stay unset, got %+v", patch)
	}
	if !patch.amountsSupplied() {
		t.Fatal("expected amountsSupplied to be true")
	}
}

func TestParseOrderPatchUnlinkAndClearDelivery(t *testing.T) {
	patch, err := parseOrderPatch(map[string]interface{}{
		"customerId": "",
		"deliveryAt": "",
	})
	if err != nil {
		t.Fatalf("parseOrderPatch returned error: %v", err)
	}
	if !patch.CustomerIDSet || patch.CustomerID != "" {
		t.Fatalf("expected explicit empty customerId, got %+v", patch)
	}
	if !patch.DeliveryAtSet || patch.DeliveryAt != nil {
		t.Fatalf("expected deliveryAt cleared, got %+v", patch)
	}
}

func TestParseOrderPatchRejectsEmptyRequiredFields(t *testing.T) {
	for _, key := range []string{"buyerName", "phoneNumber", "address", "bouquetId"} {
		if _, err := parseOrderPatch(map[string]interface{}{key: "  "}); err == nil {
			t.Errorf("expected error when %s is explicitly emptied", key)
		}
	}
}
