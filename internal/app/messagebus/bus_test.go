package messagebus

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"maptrack/internal/domain"
)

type testEvent struct {
	kind string
}

func (e testEvent) Type() string           { return e.kind }
func (e testEvent) PublishedAt() time.Time { return time.Time{} }

func TestPublishDispatchesInRegistrationOrder(t *testing.T) {
	bus := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var order []string
	bus.Register("a", func(domain.Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Register("a", func(domain.Event) error {
		order = append(order, "second")
		return nil
	})
	bus.Register("b", func(domain.Event) error {
		order = append(order, "other")
		return nil
	})

	bus.PublishEvents(testEvent{kind: "a"})

	require.Equal(t, []string{"first", "second"}, order)
}

func TestHandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var reached bool
	bus.Register("a", func(domain.Event) error {
		return errors.New("boom")
	})
	bus.Register("a", func(domain.Event) error {
		reached = true
		return nil
	})

	bus.PublishEvents(testEvent{kind: "a"})

	require.True(t, reached)
}
