package handlers

import (
	"testing"
	"time"
)

func TestBuildOrderFromInputSeedsCreatedActivity(t *testing.T) {
	now := time.Now()
	order, err := buildOrderFromInput(orderInput{
		BuyerName:     "Ana",
		PhoneNumber:   "0812",
		Address:       "Jl. X",
		BouquetID:     "b1",
		DeliveryPrice: 20000,
		OrderStatus:   orderStatusInquiry,
	}, bouquetSnapshot{Name: "Rose Box", Price: 100000}, now)
	if err != nil {
		t.Fatalf("buildOrderFromInput returned error: %v", err)
	}

	if len(order.Activity) != 1 {
		t.Fatalf("expected exactly 1 activity entry, got %d", len(order.Activity))
	}
	if order.Activity[0].Kind != activityCreated {
		t.Fatalf("expected created entry, got %q", order.Activity[0].Kind)
	}
	if order.TotalAmount != 120000 {
		t.Fatalf("expected totalAmount 120000, got %d", order.TotalAmount)
	}
	if order.PaymentStatus != paymentStatusUnpaid {
		t.Fatalf("expected paymentStatus %q, got %q", paymentStatusUnpaid, order.PaymentStatus)
	}
	if order.OrderStatus != orderStatusInquiry {
		t.Fatalf("expected orderStatus %q, got %q", orderStatusInquiry, order.OrderStatus)
	}
}

func TestBuildOrderFromInputReportsMissingFields(t *testing.T) {
	_, err := buildOrderFromInput(orderInput{BuyerName: "Ana"}, bouquetSnapshot{}, time.Now())
	if err == nil {
		t.Fatal("expected validation error for missing fields")
	}
}

func TestMergeOrderPatchLinkedCustomerWinsOverLiterals(t *testing.T) {
	existing := baseOrder()
	patch := orderPatch{
		CustomerID:     "c1",
		CustomerIDSet:  true,
		BuyerName:      "Someone Else",
		BuyerNameSet:   true,
		PhoneNumber:    "0999",
		PhoneNumberSet: true,
	}
	contact := &customerContact{Name: "Ana Lestari", PhoneNumber: "0812", Address: "Jl. Mawar 1"}

	next := mergeOrderPatch(existing, patch, contact, nil)
	if next.BuyerName != "Ana Lestari" || next.PhoneNumber != "0812" || next.Address != "Jl. Mawar 1" {
		t.Fatalf("expected resolved customer fields to win, got %+v", next)
	}
	if next.CustomerID != "c1" {
		t.Fatalf("expected link recorded, got %q", next.CustomerID)
	}
}

func TestMergeOrderPatchLockedBuyerFieldsWhileLinked(t *testing.T) {
	existing := baseOrder()
	existing.CustomerID = "c1"

	next := mergeOrderPatch(existing, orderPatch{BuyerName: "Hijacked", BuyerNameSet: true}, nil, nil)
	if next.BuyerName != existing.BuyerName {
		t.Fatalf("expected buyerName locked while linked, got %q", next.BuyerName)
	}
}

func TestMergeOrderPatchUnlinkAllowsDirectEdits(t *testing.T) {
	existing := baseOrder()
	existing.CustomerID = "c1"

	unlinked := mergeOrderPatch(existing, orderPatch{CustomerID: "", CustomerIDSet: true}, nil, nil)
	if unlinked.CustomerID != "" {
		t.Fatalf("expected order unlinked, got %q", unlinked.CustomerID)
	}

	next := mergeOrderPatch(unlinked, orderPatch{BuyerName: "Budi", BuyerNameSet: true}, nil, nil)
	if next.BuyerName != "Budi" {
		t.Fatalf("expected direct edit after unlink, got %q", next.BuyerName)
	}
}

func TestMergeOrderPatchSnapshotWinsOnBouquetChange(t *testing.T) {
	existing := baseOrder()
	patch := orderPatch{
		BouquetID:       "b2",
		BouquetIDSet:    true,
		BouquetName:     "caller says so",
		BouquetNameSet:  true,
		BouquetPrice:    1,
		BouquetPriceSet: true,
	}
	snap := &bouquetSnapshot{Name: "Lily Bouquet", Price: 150000}

	next := mergeOrderPatch(existing, patch, nil, snap)
	if next.BouquetName != "Lily Bouquet" || next.BouquetPrice != 150000 {
		t.Fatalf("expected catalog snapshot to win, got %+v", next)
	}
	if next.TotalAmount != 150000+existing.DeliveryPrice {
		t.Fatalf("expected totalAmount recomputed, got %d", next.TotalAmount)
	}
}

func TestMergeOrderPatchRederivesPaymentStatus(t *testing.T) {
	existing := baseOrder()

	next := mergeOrderPatch(existing, orderPatch{DownPaymentAmount: 120000, DownPaymentAmountSet: true}, nil, nil)
	if next.PaymentStatus != paymentStatusPaid {
		t.Fatalf("expected paymentStatus %q after full payment, got %q", paymentStatusPaid, next.PaymentStatus)
	}

	entries := recordOrderChanges(existing, next, false, true, time.Now())
	if len(entries) != 1 || entries[0].Kind != activityPayment {
		t.Fatalf("expected one payment entry, got %+v", entries)
	}
}

func TestMergeOrderPatchDoesNotTouchOmittedFields(t *testing.T) {
	existing := baseOrder()
	existing.PaymentMethod = "cash"

	next := mergeOrderPatch(existing, orderPatch{OrderStatus: orderStatusOrdered, OrderStatusSet: true}, nil, nil)
	if next.PaymentMethod != "cash" || next.BuyerName != existing.BuyerName {
		t.Fatalf("expected omitted fields untouched, got %+v", next)
	}
	if next.OrderStatus != orderStatusOrdered {
		t.Fatalf("expected orderStatus applied, got %q", next.OrderStatus)
	}
}
