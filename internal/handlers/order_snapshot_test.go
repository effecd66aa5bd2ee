package handlers

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveBouquetSnapshotPrefersCatalog(t *testing.T) {
	snap := resolveBouquetSnapshot(bouquetSnapshot{Name: "Rose Box", Price: 150000}, nil, "stale name", 1)
	if snap.Name != "Rose Box" || snap.Price != 150000 {
		t.Fatalf("expected catalog values, got %+v", snap)
	}
}

func TestResolveBouquetSnapshotFallsBackOnError(t *testing.T) {
	snap := resolveBouquetSnapshot(bouquetSnapshot{}, errors.New("catalog down"), "  Rose Box  ", 100000)
	if snap.Name != "Rose Box" || snap.Price != 100000 {
		t.Fatalf("expected fallback values, got %+v", snap)
	}
}

func TestResolveBouquetSnapshotCapsFallbackName(t *testing.T) {
	snap := resolveBouquetSnapshot(bouquetSnapshot{}, errors.New("nope"), strings.Repeat("x", 400), 0)
	if len(snap.Name) != maxBouquetNameLen {
		t.Fatalf("expected fallback name capped at %d, got %d", maxBouquetNameLen, len(snap.Name))
	}
}
