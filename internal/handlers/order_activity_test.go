package handlers

import (
	"testing"
	"time"

	"github.com/Rickychen930/giftforyou-sub002/internal/models"
)

func baseOrder() models.Order {
	return models.Order{
		BuyerName:     "Ana",
		PhoneNumber:   "0812",
		Address:       "Jl. X",
		BouquetID:     "b1",
		BouquetName:   "Rose Box",
		BouquetPrice:  100000,
		DeliveryPrice: 20000,
		TotalAmount:   120000,
		PaymentStatus: paymentStatusUnpaid,
		OrderStatus:   orderStatusInquiry,
	}
}

func TestRecordOrderChangesStatusOnly(t *testing.T) {
	prev := baseOrder()
	next := prev
	next.OrderStatus = orderStatusOrdered

	entries := recordOrderChanges(prev, next, false, false, time.Now())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Kind != activityStatus {
		t.Fatalf("expected kind %q, got %q", activityStatus, entries[0].Kind)
	}
}

func TestRecordOrderChangesStatusAndMethod(t *testing.T) {
	prev := baseOrder()
	next := prev
	next.OrderStatus = orderStatusOrdered
	next.PaymentMethod = "cash"

	entries := recordOrderChanges(prev, next, false, false, time.Now())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != activityStatus || entries[1].Kind != activityPayment {
		t.Fatalf("unexpected kinds: %q, %q", entries[0].Kind, entries[1].Kind)
	}
}

func TestRecordOrderChangesEmptyPatchFallsBackToEdit(t *testing.T) {
	prev := baseOrder()

	entries := recordOrderChanges(prev, prev, false, false, time.Now())
	if len(entries) != 1 {
		t.Fatalf("expected 1 fallback entry, got %d", len(entries))
	}
	if entries[0].Kind != activityEdit || entries[0].Message != "Order diperbarui" {
		t.Fatalf("unexpected fallback entry: %+v", entries[0])
	}
}

func TestRecordOrderChangesAmountsCollapseWithPaymentStatus(t *testing.T) {
	prev := baseOrder()
	next := prev
	next.DownPaymentAmount = 120000
	next.PaymentStatus = paymentStatusPaid

	entries := recordOrderChanges(prev, next, false, true, time.Now())
	if len(entries) != 1 {
		t.Fatalf("expected a single combined payment entry, got %d", len(entries))
	}
	if entries[0].Kind != activityPayment {
		t.Fatalf("expected kind %q, got %q", activityPayment, entries[0].Kind)
	}
}

func TestRecordOrderChangesDeliveryAxis(t *testing.T) {
	prev := baseOrder()
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	next := prev
	next.DeliveryAt = &at
	entries := recordOrderChanges(prev, next, true, false, time.Now())
	if len(entries) != 1 || entries[0].Kind != activityDelivery {
		t.Fatalf("expected single delivery entry, got %+v", entries)
	}

	// removal is its own message
	entries = recordOrderChanges(next, prev, true, false, time.Now())
	if len(entries) != 1 || entries[0].Message != "Jadwal pengantaran dihapus" {
		t.Fatalf("expected removal entry, got %+v", entries)
	}

	// deliveryAt diff only counts when the caller actually sent the field
	entries = recordOrderChanges(prev, next, false, false, time.Now())
	if len(entries) != 1 || entries[0].Kind != activityEdit {
		t.Fatalf("expected fallback edit when deliveryAt not supplied, got %+v", entries)
	}
}

func TestRecordOrderChangesBouquetAxis(t *testing.T) {
	prev := baseOrder()
	next := prev
	next.BouquetID = "b2"
	next.BouquetName = "Lily Bouquet"

	entries := recordOrderChanges(prev, next, false, false, time.Now())
	if len(entries) != 1 || entries[0].Kind != activityBouquet {
		t.Fatalf("expected single bouquet entry, got %+v", entries)
	}
}

func TestHumanizeStatus(t *testing.T) {
	if got := humanizeStatus("sedang_diproses"); got != "sedang diproses" {
		t.Fatalf("expected underscores replaced, got %q", got)
	}
	if got := humanizeStatus(""); got != "—" {
		t.Fatalf("expected placeholder for empty value, got %q", got)
	}
}

func TestAppendActivityCapsAtFifty(t *testing.T) {
	entries := make([]models.ActivityEntry, 0, maxActivityEntries)
	for i := 0; i < maxActivityEntries; i++ {
		entries = append(entries, models.ActivityEntry{Kind: activityEdit, Message: "old"})
	}

	newest := models.ActivityEntry{Kind: activityStatus, Message: "newest"}
	capped := appendActivity(entries, newest)

	if len(capped) != maxActivityEntries {
		t.Fatalf("expected length %d, got %d", maxActivityEntries, len(capped))
	}
	if capped[len(capped)-1].Message != "newest" {
		t.Fatal("expected newest entry to be kept")
	}
	if capped[0].Message != "old" {
		t.Fatal("expected remaining entries to be the most recent ones")
	}
}

func TestAppendActivityDoesNotMutateInput(t *testing.T) {
	original := []models.ActivityEntry{{Kind: activityCreated, Message: "Order dibuat"}}
	_ = appendActivity(original, models.ActivityEntry{Kind: activityEdit, Message: "x"})
	if len(original) != 1 {
		t.Fatalf("expected input slice untouched, got %d entries", len(original))
	}
}
