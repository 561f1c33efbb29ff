package utils_test

import (
	"testing"
	"time"

	"goalboard/internal/utils"

	"github.com/stretchr/testify/require"
)

func TestEventBusDispatch(t *testing.T) {
	bus := utils.NewEventBus()
	got := make(chan utils.Event, 2)

	bus.Subscribe("goal_created", func(e utils.Event) { got <- e })
	go bus.Run()
	defer bus.Stop()

	bus.Publish("goal_created", "payload")
	bus.Publish("unrelated", "ignored")

	select {
	case e := <-got:
		require.Equal(t, "goal_created", e.Event)
		require.Equal(t, "payload", e.Data)
	case <-time.After(time.Second):
		t.Fatal("event was not dispatched")
	}

	select {
	case e := <-got:
		t.Fatalf("unexpected event %q", e.Event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBusPublishNeverBlocks(t *testing.T) {
	bus := utils.NewEventBus()

	// no Run loop, fill the buffer past capacity
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			bus.Publish("flood", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
}
