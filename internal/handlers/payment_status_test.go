package handlers

import "testing"

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name              string
		total             int
		downPayment       int
		additionalPayment int
		want              string
	}{
		{"zero-cost order is settled", 0, 0, 0, paymentStatusPaid},
		{"nothing paid", 120000, 0, 0, paymentStatusUnpaid},
		{"partial down payment", 120000, 50000, 0, paymentStatusPartial},
		{"down payment plus additional below total", 120000, 50000, 60000, paymentStatusPartial},
		{"exactly covered", 120000, 100000, 20000, paymentStatusPaid},
		{"overpaid", 120000, 200000, 0, paymentStatusPaid},
		{"negative amounts floor to zero", 120000, -500, -1, paymentStatusUnpaid},
		{"negative total treated as settled", -5, 0, 0, paymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := derivePaymentStatus(tt.total, tt.downPayment, tt.additionalPayment)
			if got != tt.want {
				t.Fatalf("derivePaymentStatus(%d, %d, %d) = %s, want %s",
					tt.total, tt.downPayment, tt.additionalPayment, got, tt.want)
			}
		})
	}
}

func TestDerivePaymentStatusIsPure(t *testing.T) {
	first := derivePaymentStatus(100000, 40000, 0)
	second := derivePaymentStatus(100000, 40000, 0)
	if first != second {
		t.Fatalf("expected identical results, got %s then %s", first, second)
	}
}

func TestClampAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{100000, 100000},
		{99.4, 99},
		{99.5, 100},
		{-1, 0},
		{-0.4, 0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := clampAmount(tt.in); got != tt.want {
			t.Errorf("clampAmount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
