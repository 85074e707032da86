package notify

import (
	"testing"
	"time"

	"careerhub/client/internal/log"
)

func TestPostAndAutoClear(t *testing.T) {
	c := NewCenter(50*time.Millisecond, log.Nop())

	c.Success("application submitted")
	if got := c.Active(); len(got) != 1 || got[0].Severity != SeveritySuccess {
		t.Fatalf("expected one success notification, got %+v", got)
	}

	deadline := time.Now().Add(time.Second)
	for len(c.Active()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("notification never auto-cleared")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestExplicitDismiss(t *testing.T) {
	c := NewCenter(time.Hour, log.Nop())

	id := c.Error("submission failed")
	c.Info("unrelated")

	c.Dismiss(id)

	active := c.Active()
	if len(active) != 1 {
		t.Fatalf("expected one remaining notification, got %d", len(active))
	}
	if active[0].Severity != SeverityInfo {
		t.Errorf("wrong notification dismissed: %+v", active[0])
	}

	// dismissing again is a no-op
	c.Dismiss(id)
	if len(c.Active()) != 1 {
		t.Error("double dismiss changed state")
	}
}

func TestOnChangeFires(t *testing.T) {
	c := NewCenter(time.Hour, log.Nop())

	fired := 0
	c.OnChange(func() { fired++ })

	id := c.Success("ok")
	c.Dismiss(id)

	if fired != 2 {
		t.Errorf("expected 2 change callbacks, got %d", fired)
	}
}
