package model

import (
	"testing"
	"time"
)

func TestSlotValidate(t *testing.T) {
	cases := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{"valid", Slot{Date: "2025-03-12", StartTime: "09:30"}, false},
		{"midnight", Slot{Date: "2025-03-12", StartTime: "00:00"}, false},
		{"empty", Slot{}, true},
		{"french date format", Slot{Date: "12/03/2025", StartTime: "09:30"}, true},
		{"missing leading zero", Slot{Date: "2025-3-12", StartTime: "09:30"}, true},
		{"time with seconds", Slot{Date: "2025-03-12", StartTime: "09:30:00"}, true},
		{"out of range time", Slot{Date: "2025-03-12", StartTime: "25:00"}, true},
		{"impossible date", Slot{Date: "2025-02-30", StartTime: "09:30"}, true},
	}
	for _, tc := range cases {
		err := tc.slot.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestSlotIsPast(t *testing.T) {
	// Late evening: time of day must not matter, only the date.
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		slot Slot
		want bool
	}{
		{"yesterday", Slot{Date: "2025-03-09", StartTime: "18:00"}, true},
		{"earlier today", Slot{Date: "2025-03-10", StartTime: "08:00"}, false},
		{"later today", Slot{Date: "2025-03-10", StartTime: "23:45"}, false},
		{"tomorrow", Slot{Date: "2025-03-11", StartTime: "08:00"}, false},
		{"unparseable date", Slot{Date: "demain", StartTime: "08:00"}, true},
	}
	for _, tc := range cases {
		if got := tc.slot.IsPast(now); got != tc.want {
			t.Errorf("%s: IsPast = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSlotEqualAndZero(t *testing.T) {
	a := Slot{Date: "2025-03-12", StartTime: "09:30"}
	b := Slot{Date: "2025-03-12", StartTime: "09:30"}
	c := Slot{Date: "2025-03-12", StartTime: "10:00"}
	if !a.Equal(b) {
		t.Errorf("identical slots reported unequal")
	}
	if a.Equal(c) {
		t.Errorf("different times reported equal")
	}
	if a.IsZero() {
		t.Errorf("populated slot reported zero")
	}
	if !(Slot{}).IsZero() {
		t.Errorf("empty slot not reported zero")
	}
}
