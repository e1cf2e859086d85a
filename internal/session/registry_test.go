package session

import (
	"errors"
	"testing"
	"time"
)

func TestArmTwiceRejected(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	if _, err := r.Arm("u1", func(string) {}); err != nil {
		t.Fatalf("first arm: %v", err)
	}
	if _, err := r.Arm("u1", func(string) {}); !errors.Is(err, ErrAlreadyPending) {
		t.Fatalf("second arm err = %v, want ErrAlreadyPending", err)
	}
	// distinct users are independent
	if _, err := r.Arm("u2", func(string) {}); err != nil {
		t.Fatalf("other user arm: %v", err)
	}
}

func TestCancelThenRearm(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	if _, err := r.Arm("u1", func(string) {}); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if !r.Cancel("u1") {
		t.Fatal("cancel returned false for armed session")
	}
	if r.Cancel("u1") {
		t.Fatal("cancel of missing session should be a no-op")
	}
	if _, err := r.Arm("u1", func(string) {}); err != nil {
		t.Fatalf("re-arm after cancel: %v", err)
	}
}

func TestConsumeClaimsExactlyOnce(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	sid, err := r.Arm("u1", func(string) {})
	if err != nil {
		t.Fatalf("arm: %v", err)
	}
	got, ok := r.Consume("u1")
	if !ok || got != sid {
		t.Fatalf("consume = %q/%v, want %q/true", got, ok, sid)
	}
	if _, ok := r.Consume("u1"); ok {
		t.Fatal("second consume should find nothing")
	}
	if r.Armed("u1") {
		t.Fatal("still armed after consume")
	}
}

func TestTimeoutFiresWhenUnclaimed(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	defer r.Close()

	fired := make(chan string, 1)
	sid, err := r.Arm("u1", func(sessionID string) { fired <- sessionID })
	if err != nil {
		t.Fatalf("arm: %v", err)
	}

	select {
	case got := <-fired:
		if got != sid {
			t.Fatalf("timeout session id = %q, want %q", got, sid)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout never fired")
	}

	// late submit is a no-op
	if _, ok := r.Consume("u1"); ok {
		t.Fatal("consume after timeout should find nothing")
	}
}

func TestConsumeSuppressesTimeout(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	defer r.Close()

	fired := make(chan string, 1)
	if _, err := r.Arm("u1", func(sessionID string) { fired <- sessionID }); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if _, ok := r.Consume("u1"); !ok {
		t.Fatal("consume failed")
	}

	select {
	case <-fired:
		t.Fatal("timeout fired after consume")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseCancelsTimersAndRejectsArm(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)

	fired := make(chan string, 1)
	if _, err := r.Arm("u1", func(sessionID string) { fired <- sessionID }); err != nil {
		t.Fatalf("arm: %v", err)
	}
	r.Close()

	select {
	case <-fired:
		t.Fatal("timeout fired after close")
	case <-time.After(100 * time.Millisecond):
	}
	if _, err := r.Arm("u2", func(string) {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("arm after close err = %v, want ErrClosed", err)
	}
}
