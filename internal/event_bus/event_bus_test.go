package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEvent EventType = "test.event"

func TestEventBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewEventBus()
	var received []string
	bus.Subscribe(testEvent, func(e Event) error {
		received = append(received, e.Data.(string))
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), testEvent, "hello"))

	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, received)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	unsubscribe := bus.Subscribe(testEvent, func(Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), testEvent, nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), testEvent, nil)))

	assert.Equal(t, 1, calls)
}

func TestEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()
	secondCalled := false
	bus.Subscribe(testEvent, func(Event) error {
		return errors.New("first handler failed")
	})
	bus.Subscribe(testEvent, func(Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), testEvent, nil))

	assert.Error(t, err)
	assert.True(t, secondCalled)
}

func TestEventBus_RecoversFromHandlerPanic(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(testEvent, func(Event) error {
		panic("boom")
	})

	err := bus.Publish(NewEvent(context.Background(), testEvent, nil))

	assert.ErrorContains(t, err, "panic")
}

func TestSubscribeTyped_SkipsMismatchedPayload(t *testing.T) {
	bus := NewEventBus()
	var received []int
	SubscribeTyped(bus, testEvent, func(e EventT[int]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), testEvent, 42)))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), testEvent, "not an int")))

	assert.Equal(t, []int{42}, received)
}

func TestEventBus_PublishCancelledContext(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(testEvent, func(Event) error {
		t.Fatal("handler must not run for cancelled context")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, testEvent, nil))

	assert.Error(t, err)
}
