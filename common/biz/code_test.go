package biz

import (
	"errors"
	"testing"

	"miniroom/framework/msError"
)

func TestEnterCodesAreStable(t *testing.T) {
	tests := []struct {
		err  *msError.Error
		code int
	}{
		{RoomAlreadyClosed, 1},
		{FullCapacity, 2},
		{OtherRequests, 3},
		{CantWhileDead, 4},
		{CantInMiddleOfEvent, 5},
		{IncorrectPassword, 17},
	}
	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("%v: code = %d, want %d", tt.err, tt.err.Code, tt.code)
		}
	}
}

func TestIsSilent(t *testing.T) {
	if !IsSilent(OtherRequests) {
		t.Error("OtherRequests should be silent")
	}
	if IsSilent(FullCapacity) {
		t.Error("FullCapacity should show a dialog")
	}
	if !errors.Is(msError.NewError(2, errors.New("x")), FullCapacity) {
		t.Error("errors.Is should match by code")
	}
}
