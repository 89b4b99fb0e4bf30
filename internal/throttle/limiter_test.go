package throttle

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("u1") {
		t.Error("first request should be allowed")
	}
	if !l.Allow("u1") {
		t.Error("second request should be allowed within burst")
	}
	if l.Allow("u1") {
		t.Error("third request should be denied after burst exhausted")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("u1") {
		t.Error("u1 should be allowed")
	}
	if !l.Allow("u2") {
		t.Error("u2 should have its own bucket")
	}
}

func TestLimiter_Wait(t *testing.T) {
	l := NewLimiter(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "u1"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}

func TestLimiter_SetKeyRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetKeyRate("premium-user", 100, 10)

	for i := 0; i < 10; i++ {
		if !l.Allow("premium-user") {
			t.Errorf("request %d: expected the raised burst to admit it", i+1)
		}
	}

	if !l.Allow("other-user") {
		t.Error("other keys keep the default rate")
	}
	if l.Allow("other-user") {
		t.Error("default burst of 1 must deny the second request")
	}
}
