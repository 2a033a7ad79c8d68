package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestDispatcher_TurnOnBedroomLight(t *testing.T) {
	d, dir, _ := newTestDispatcher(t)
	notifier := &recordingNotifier{}
	d.SetNotifier(notifier)

	result := d.HandleMessage(context.Background(), "turn on bedroom light")

	if result.Type != TypeSuccess {
		t.Fatalf("type = %s, want success: %s", result.Type, result.Text)
	}

	got, _ := dir.Get("2")
	if !got.Status {
		t.Error("bedroom light not switched on")
	}

	if len(notifier.deviceEvents) != 1 {
		t.Fatalf("device events = %d, want 1", len(notifier.deviceEvents))
	}
	ev := notifier.deviceEvents[0]
	if ev.DeviceID != "2" || !ev.Status {
		t.Errorf("event = %+v, want device 2 on", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Error("event has no timestamp")
	}
}

func TestDispatcher_CreateAutomationWinsOverTurnOn(t *testing.T) {
	d, dir, store := newTestDispatcher(t)
	notifier := &recordingNotifier{}
	d.SetNotifier(notifier)

	result := d.HandleMessage(context.Background(),
		"create automation morning lights when time is 7:00 then turn on living room light")

	if result.Type != TypeSuccess {
		t.Fatalf("type = %s, want success: %s", result.Type, result.Text)
	}
	if store.Count() != 1 {
		t.Errorf("store has %d rules, want 1", store.Count())
	}

	// The light itself must stay untouched; only the rule was created.
	got, _ := dir.Get("1")
	if got.Status {
		t.Error("living room light switched on by a create command")
	}

	if len(notifier.deviceEvents) != 0 {
		t.Errorf("device events = %d, want 0", len(notifier.deviceEvents))
	}
	if len(notifier.automationEvents) != 1 || notifier.automationEvents[0].Change != "created" {
		t.Errorf("automation events = %+v, want one created", notifier.automationEvents)
	}
}

func TestDispatcher_UnknownDeviceEmitsNothing(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	notifier := &recordingNotifier{}
	d.SetNotifier(notifier)

	result := d.HandleMessage(context.Background(), "turn on the toaster")

	if result.Type != TypeError {
		t.Errorf("type = %s, want error", result.Type)
	}
	if len(notifier.deviceEvents)+len(notifier.automationEvents) != 0 {
		t.Error("failed command produced notifications")
	}
}

func TestDispatcher_RejectedTemperatureLeavesState(t *testing.T) {
	d, dir, _ := newTestDispatcher(t)
	notifier := &recordingNotifier{}
	d.SetNotifier(notifier)

	result := d.HandleMessage(context.Background(), "set living room ac to 35")

	if result.Type != TypeError {
		t.Fatalf("type = %s, want error: %s", result.Type, result.Text)
	}

	got, _ := dir.Get("3")
	if *got.Temperature != 22 {
		t.Errorf("temperature = %d, want unchanged 22", *got.Temperature)
	}
	if len(notifier.deviceEvents) != 0 {
		t.Error("rejected command produced notifications")
	}
}

func TestDispatcher_EmptyMessage(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	for _, message := range []string{"", "   "} {
		result := d.HandleMessage(context.Background(), message)
		if result.Type != TypeError {
			t.Errorf("HandleMessage(%q) type = %s, want error", message, result.Type)
		}
		if !strings.Contains(result.Text, "didn't quite catch that") {
			t.Errorf("HandleMessage(%q) = %s", message, result.Text)
		}
	}
}

func TestDispatcher_Unrecognised(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	result := d.HandleMessage(context.Background(), "flibbertigibbet")

	if result.Type != TypeError {
		t.Errorf("type = %s, want error", result.Type)
	}
	if result.Text == "" {
		t.Error("empty fallback reply")
	}
}

func TestDispatcher_WithoutNotifier(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	// No notifier attached; mutations must still succeed.
	result := d.HandleMessage(context.Background(), "turn on bedroom light")
	if result.Type != TypeSuccess {
		t.Errorf("type = %s, want success: %s", result.Type, result.Text)
	}
}

func TestDispatcher_SerialisesCommands(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		message := "turn on bedroom light"
		if i%2 == 1 {
			message = "turn off bedroom light"
		}
		go func() {
			defer wg.Done()
			if result := d.HandleMessage(ctx, message); result.Text == "" {
				t.Error("empty reply under concurrency")
			}
		}()
	}
	wg.Wait()
}
