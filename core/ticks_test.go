package core

import "testing"

func TestTimebaseConstants(t *testing.T) {
	if TickPeriodUS != 4 {
		t.Errorf("TickPeriodUS = %d, want 4", TickPeriodUS)
	}
	if TicksPerMS != 250 {
		t.Errorf("TicksPerMS = %d, want 250", TicksPerMS)
	}
	if MaxIntervalUS != 262140 {
		t.Errorf("MaxIntervalUS = %d, want 262140", MaxIntervalUS)
	}
}

func TestValidateTimebase(t *testing.T) {
	if err := ValidateTimebase(); err != nil {
		t.Fatalf("ValidateTimebase failed for build constants: %v", err)
	}
}

func TestUSecToTicks(t *testing.T) {
	testCases := []struct {
		usec     uint32
		expected uint32
	}{
		{0, 0},
		{4, 1},
		{1000, 250},
		{500000, 125000},
		{MaxIntervalUS, 65535},
	}

	for _, tc := range testCases {
		if got := USecToTicks(tc.usec); got != tc.expected {
			t.Errorf("USecToTicks(%d) = %d, want %d", tc.usec, got, tc.expected)
		}
	}
}

func TestUSecToTicksTruncates(t *testing.T) {
	// 6us is a tick and a half; the conversion must truncate, not round.
	if got := USecToTicks(6); got != 1 {
		t.Errorf("USecToTicks(6) = %d, want 1 (truncated)", got)
	}
	if got := USecToTicks(3); got != 0 {
		t.Errorf("USecToTicks(3) = %d, want 0 (truncated)", got)
	}
}

func TestMSecToTicks(t *testing.T) {
	if got := MSecToTicks(1); got != 250 {
		t.Errorf("MSecToTicks(1) = %d, want 250", got)
	}
	if got := MSecToTicks(10); got != 2500 {
		t.Errorf("MSecToTicks(10) = %d, want 2500", got)
	}
}

func TestTicksToUSec(t *testing.T) {
	if got := TicksToUSec(65535); got != 262140 {
		t.Errorf("TicksToUSec(65535) = %d, want 262140", got)
	}
	if got := TicksToUSec(250); got != 1000 {
		t.Errorf("TicksToUSec(250) = %d, want 1000", got)
	}
}

func TestConversionRoundTripWithinTick(t *testing.T) {
	// Truncation loses at most one tick period per conversion.
	for _, us := range []uint32{1, 7, 999, 1001, 262139} {
		back := TicksToUSec(USecToTicks(us))
		if back > us || us-back >= TickPeriodUS {
			t.Errorf("round trip of %dus gave %dus, off by a full tick", us, back)
		}
	}
}
