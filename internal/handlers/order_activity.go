package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rickychen930/giftforyou-sub002/internal/models"
)

const maxActivityEntries = 50

const (
	activityCreated  = "created"
	activityStatus   = "status"
	activityPayment  = "payment"
	activityDelivery = "delivery"
	activityBouquet  = "bouquet"
	activityEdit     = "edit"
)

const deliveryAtDisplayLayout = "2006-01-02 15:04"

func newCreatedEntry(now time.Time) models.ActivityEntry {
	return models.ActivityEntry{At: now, Kind: activityCreated, Message: "Order dibuat"}
}

// appendActivity appends entries and drops the oldest once the log exceeds
// the cap. Entries themselves are never edited or removed individually.
func appendActivity(entries []models.ActivityEntry, added ...models.ActivityEntry) []models.ActivityEntry {
	merged := append(append([]models.ActivityEntry{}, entries...), added...)
	if len(merged) > maxActivityEntries {
		merged = merged[len(merged)-maxActivityEntries:]
	}
	return merged
}

func humanizeStatus(value string) string {
	if value == "" {
		return "—"
	}
	return strings.ReplaceAll(value, "_", " ")
}

func equalDeliveryAt(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// recordOrderChanges diffs the merged before/after view of an update along the
// change axes and returns one entry per axis that changed, not one per field.
// deliverySupplied/amountsSupplied report whether the request body carried
// those keys at all; an update that rewrites identical values still gets a
// fallback edit entry so the log never stays silent on a write.
func recordOrderChanges(prev, next models.Order, deliverySupplied, amountsSupplied bool, now time.Time) []models.ActivityEntry {
	entries := make([]models.ActivityEntry, 0, 4)

	if prev.OrderStatus != next.OrderStatus {
		entries = append(entries, models.ActivityEntry{
			At:   now,
			Kind: activityStatus,
			Message: fmt.Sprintf("Status pesanan diubah dari %s menjadi %s",
				humanizeStatus(prev.OrderStatus), humanizeStatus(next.OrderStatus)),
		})
	}

	if !amountsSupplied && prev.PaymentStatus != next.PaymentStatus {
		entries = append(entries, models.ActivityEntry{
			At:   now,
			Kind: activityPayment,
			Message: fmt.Sprintf("Status pembayaran berubah dari %s menjadi %s",
				humanizeStatus(prev.PaymentStatus), humanizeStatus(next.PaymentStatus)),
		})
	}

	if prev.PaymentMethod != next.PaymentMethod {
		label := next.PaymentMethod
		if label == "" {
			label = "—"
		}
		entries = append(entries, models.ActivityEntry{
			At:      now,
			Kind:    activityPayment,
			Message: fmt.Sprintf("Metode pembayaran diubah menjadi %s", label),
		})
	}

	if deliverySupplied && !equalDeliveryAt(prev.DeliveryAt, next.DeliveryAt) {
		if next.DeliveryAt == nil {
			entries = append(entries, models.ActivityEntry{
				At:      now,
				Kind:    activityDelivery,
				Message: "Jadwal pengantaran dihapus",
			})
		} else {
			entries = append(entries, models.ActivityEntry{
				At:   now,
				Kind: activityDelivery,
				Message: fmt.Sprintf("Jadwal pengantaran diperbarui menjadi %s",
					next.DeliveryAt.Format(deliveryAtDisplayLayout)),
			})
		}
	}

	if prev.BouquetID != next.BouquetID {
		entries = append(entries, models.ActivityEntry{
			At:      now,
			Kind:    activityBouquet,
			Message: fmt.Sprintf("Buket diganti menjadi %s", next.BouquetName),
		})
	}

	if amountsSupplied {
		// one combined entry for the three monetary fields, carrying the
		// resulting payment state so an amount-driven status flip is not
		// logged twice
		entries = append(entries, models.ActivityEntry{
			At:   now,
			Kind: activityPayment,
			Message: fmt.Sprintf("Rincian pembayaran diperbarui (status: %s)",
				humanizeStatus(next.PaymentStatus)),
		})
	}

	if len(entries) == 0 {
		entries = append(entries, models.ActivityEntry{
			At:      now,
			Kind:    activityEdit,
			Message: "Order diperbarui",
		})
	}

	return entries
}
