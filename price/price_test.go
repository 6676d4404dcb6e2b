package price

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}{
		{"currency with thousands separator", "$1,234.50 MXN", 1234.50, true},
		{"plain decimal", "89.90", 89.90, true},
		{"currency prefix", "MXN 89", 89, true},
		{"thousands without decimals", "2,399", 2399, true},
		{"zero price", "$0.00", 0, true},
		{"surrounding text", "Precio: $ 45.50 c/u", 45.50, true},
		{"out of stock", "Agotado", 0, false},
		{"empty", "", 0, false},
		{"no digits", "consulta en tienda", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
