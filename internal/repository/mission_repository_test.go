package repository

import "testing"

func TestContains(t *testing.T) {
	ne := Coordinates{Lat: 29, Lon: 78}
	sw := Coordinates{Lat: 28, Lon: 77}

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"inside", 28.6139, 77.2090, true},
		{"on corner", 28, 77, true},
		{"north of box", 29.5, 77.5, false},
		{"west of box", 28.5, 76.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(ne, sw, tt.lat, tt.lon); got != tt.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
