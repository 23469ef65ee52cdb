package billing

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "ZERO RUPEES ONLY"},
		{7, "SEVEN RUPEES ONLY"},
		{15, "FIFTEEN RUPEES ONLY"},
		{42, "FORTY TWO RUPEES ONLY"},
		{100, "ONE HUNDRED RUPEES ONLY"},
		{505, "FIVE HUNDRED FIVE RUPEES ONLY"},
		{11970, "ELEVEN THOUSAND NINE HUNDRED SEVENTY RUPEES ONLY"},
		{100000, "ONE LAKH RUPEES ONLY"},
		{2550000, "TWENTY FIVE LAKH FIFTY THOUSAND RUPEES ONLY"},
		{10000000, "ONE CRORE RUPEES ONLY"},
		{12345678, "ONE CRORE TWENTY THREE LAKH FORTY FIVE THOUSAND SIX HUNDRED SEVENTY EIGHT RUPEES ONLY"},
		// Only the integer portion is rendered.
		{999.99, "NINE HUNDRED NINETY NINE RUPEES ONLY"},
	}

	for _, tt := range tests {
		if got := AmountInWords(tt.amount); got != tt.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
