package events_test

import (
	"testing"

	"asset-loader/core/events"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("FanOutInRegistrationOrder", func(t *testing.T) {
		sig := events.NewSignal[int]()

		var order []string
		sig.Subscribe(func(int) { order = append(order, "first") })
		sig.Subscribe(func(int) { order = append(order, "second") })
		sig.Subscribe(func(int) { order = append(order, "third") })

		sig.Emit(1)
		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		sig := events.NewSignal[int]()

		calls := 0
		off := sig.Subscribe(func(int) { calls++ })

		sig.Emit(1)
		off()
		sig.Emit(2)

		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, sig.Len())
	})

	t.Run("UnsubscribeTwiceIsNoop", func(t *testing.T) {
		sig := events.NewSignal[int]()

		off := sig.Subscribe(func(int) {})
		sig.Subscribe(func(int) {})

		off()
		off()
		assert.Equal(t, 1, sig.Len())
	})

	t.Run("OnceFiresOnlyOnce", func(t *testing.T) {
		sig := events.NewSignal[string]()

		var got []string
		sig.Once(func(v string) { got = append(got, v) })

		sig.Emit("a")
		sig.Emit("b")

		assert.Equal(t, []string{"a"}, got)
		assert.Equal(t, 0, sig.Len())
	})

	t.Run("PayloadDelivered", func(t *testing.T) {
		sig := events.NewSignal[string]()

		var got string
		sig.Subscribe(func(v string) { got = v })

		sig.Emit("payload")
		assert.Equal(t, "payload", got)
	})

	t.Run("SubscribeDuringEmit", func(t *testing.T) {
		sig := events.NewSignal[int]()

		lateCalls := 0
		sig.Subscribe(func(int) {
			sig.Subscribe(func(int) { lateCalls++ })
		})

		sig.Emit(1)
		assert.Equal(t, 0, lateCalls, "late subscriber must not see the emit that registered it")

		sig.Emit(2)
		assert.Equal(t, 1, lateCalls)
	})
}
