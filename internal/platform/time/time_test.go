package time

import (
	"testing"
	stdtime "time"
)

func TestPtr(t *testing.T) {
	now := stdtime.Now()
	p := Ptr(now)
	if p == nil || !p.Equal(now) {
		t.Fatalf("Ptr mismatch: %v", p)
	}
	if Ptr(stdtime.Time{}) != nil {
		t.Fatalf("Ptr(zero) should be nil")
	}
}
