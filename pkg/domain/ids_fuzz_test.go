package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseLandID checks that parsing never panics and that accepted IDs round-trip.
func FuzzParseLandID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("SN100")
	f.Add("'; DROP TABLE lands;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		landID, err := ParseLandID(input)
		if err == nil {
			roundTrip, err2 := ParseLandID(landID.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != landID {
				t.Error("round-trip changed ID value")
			}
			if landID.IsNil() {
				t.Error("nil ID was accepted")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}
