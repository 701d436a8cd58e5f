package app

import "testing"

func TestPackButtonsBitOrder(t *testing.T) {
	cases := []struct {
		name    string
		buttons [8]bool
		want    uint8
	}{
		{"none", [8]bool{}, 0x00},
		{"A only", [8]bool{true, false, false, false, false, false, false, false}, 0x01},
		{"B only", [8]bool{false, true, false, false, false, false, false, false}, 0x02},
		{"Right only", [8]bool{false, false, false, false, false, false, false, true}, 0x80},
		{"all", [8]bool{true, true, true, true, true, true, true, true}, 0xFF},
		{"Up+A", [8]bool{true, false, false, false, true, false, false, false}, 0x11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := packButtons(tc.buttons); got != tc.want {
				t.Errorf("packButtons(%v) = %#02x, want %#02x", tc.buttons, got, tc.want)
			}
		})
	}
}

func TestInputStateChangedDetectsDifference(t *testing.T) {
	a := [8]bool{true, false, false, false, false, false, false, false}
	b := a

	app := &Application{}
	if app.inputStateChanged(a, b) {
		t.Error("identical states reported as changed")
	}

	b[3] = true
	if !app.inputStateChanged(a, b) {
		t.Error("differing states reported as unchanged")
	}
}
