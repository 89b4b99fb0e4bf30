package throttle

import (
	"testing"
	"time"
)

func TestCounter_AllowsUpToLimit(t *testing.T) {
	c := NewCounter(3, time.Minute)

	for i := 0; i < 3; i++ {
		d := c.Allow("chat", "u1")
		if !d.Allowed {
			t.Fatalf("request %d: expected allowed", i+1)
		}
		if d.Remaining != 3-i-1 {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 3-i-1, d.Remaining)
		}
	}

	d := c.Allow("chat", "u1")
	if d.Allowed {
		t.Error("expected denial past the limit")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("expected a retry-after within the window, got %v", d.RetryAfter)
	}
}

func TestCounter_KeysAreIndependent(t *testing.T) {
	c := NewCounter(1, time.Minute)

	if d := c.Allow("chat", "u1"); !d.Allowed {
		t.Fatal("u1 first request must be allowed")
	}
	if d := c.Allow("chat", "u2"); !d.Allowed {
		t.Error("u2 must have its own window")
	}
	if d := c.Allow("upload", "u1"); !d.Allowed {
		t.Error("a different route must have its own window")
	}
	if d := c.Allow("chat", "u1"); d.Allowed {
		t.Error("u1 second request on the same route must be denied")
	}
}

func TestCounter_WindowResets(t *testing.T) {
	c := NewCounter(1, 40*time.Millisecond)

	if d := c.Allow("chat", "u1"); !d.Allowed {
		t.Fatal("first request must be allowed")
	}
	if d := c.Allow("chat", "u1"); d.Allowed {
		t.Fatal("second request must be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if d := c.Allow("chat", "u1"); !d.Allowed {
		t.Error("expected a fresh window after expiry")
	}
}
