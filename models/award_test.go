package models

import "testing"

func TestAgreementNumber(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		memoNumber int
		workSlNo   int
		want       string
	}{
		{"typical award", 2025, 12, 3, "AGR-2025-0012/3"},
		{"single digit memo", 2024, 7, 1, "AGR-2024-0007/1"},
		{"four digit memo keeps width", 2025, 1234, 10, "AGR-2025-1234/10"},
		{"five digit memo overflows width", 2025, 12345, 2, "AGR-2025-12345/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgreementNumber(tt.year, tt.memoNumber, tt.workSlNo)
			if got != tt.want {
				t.Errorf("AgreementNumber(%d, %d, %d) = %q, expected %q",
					tt.year, tt.memoNumber, tt.workSlNo, got, tt.want)
			}
		})
	}
}
