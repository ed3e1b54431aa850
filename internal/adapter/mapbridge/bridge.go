package mapbridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"maptrack/internal/app/presenter"
	"maptrack/internal/domain/workout"
)

const keepAliveInterval = 15 * time.Second

// Marker is one live pin on the map surface.
type Marker struct {
	ID      string  `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Label   string  `json:"label"`
	Variant string  `json:"variant"`
}

type command struct {
	Op     string  `json:"op"`
	Marker *Marker `json:"marker,omitempty"`
	Lat    float64 `json:"lat,omitempty"`
	Lng    float64 `json:"lng,omitempty"`
	Zoom   int     `json:"zoom,omitempty"`
}

// Bridge is the server side of the map widget: marker commands are streamed
// to the attached browser over SSE, and the live marker set is replayed to
// every client that (re)attaches. The first attach marks the map ready.
type Bridge struct {
	logger *slog.Logger

	// OnAttach fires once, when the first client connects.
	OnAttach func()

	mu       sync.RWMutex
	seq      int64
	markers  map[string]Marker
	order    []string
	subs     map[chan []byte]struct{}
	attached bool
}

func New(logger *slog.Logger) *Bridge {
	return &Bridge{
		logger:  logger,
		markers: make(map[string]Marker),
		subs:    make(map[chan []byte]struct{}),
	}
}

func (b *Bridge) PlaceMarker(coords workout.Coordinates, label, variantKey string) (presenter.MarkerHandle, error) {
	b.mu.Lock()
	b.seq++
	handle := strconv.FormatInt(b.seq, 10)
	m := Marker{
		ID:      handle,
		Lat:     coords.Lat,
		Lng:     coords.Lng,
		Label:   label,
		Variant: variantKey,
	}
	b.markers[handle] = m
	b.order = append(b.order, handle)
	b.mu.Unlock()

	b.broadcast(command{Op: "place", Marker: &m})
	return handle, nil
}

func (b *Bridge) RemoveMarker(handle presenter.MarkerHandle) {
	id, ok := handle.(string)
	if !ok {
		return
	}

	b.mu.Lock()
	m, present := b.markers[id]
	if present {
		delete(b.markers, id)
		for i, h := range b.order {
			if h == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
	b.mu.Unlock()

	if present {
		b.broadcast(command{Op: "remove", Marker: &m})
	}
}

func (b *Bridge) CenterOn(coords workout.Coordinates, zoomLevel int) {
	b.broadcast(command{Op: "center", Lat: coords.Lat, Lng: coords.Lng, Zoom: zoomLevel})
}

// Markers returns the live marker set in placement order.
func (b *Bridge) Markers() []Marker {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Marker, 0, len(b.order))
	for _, h := range b.order {
		out = append(out, b.markers[h])
	}
	return out
}

// Subscribe attaches a map client. The current marker set is replayed
// first, then live commands follow until ctx is done.
func (b *Bridge) Subscribe(ctx context.Context) <-chan []byte {
	b.mu.Lock()
	ch := make(chan []byte, len(b.order)+32)
	first := !b.attached
	b.attached = true
	for _, h := range b.order {
		m := b.markers[h]
		ch <- formatEvent(command{Op: "place", Marker: &m})
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	if first && b.OnAttach != nil {
		b.OnAttach()
	}

	go b.keepAlive(ctx, ch)
	return ch
}

func (b *Bridge) keepAlive(ctx context.Context, ch chan []byte) {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
			return
		case <-ticker.C:
			select {
			case ch <- []byte(":keep-alive\n\n"):
			default:
			}
		}
	}
}

func (b *Bridge) broadcast(cmd command) {
	payload := formatEvent(cmd)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- payload:
		default:
			// drop if slow; the replay on reattach restores the full set
		}
	}
}

func formatEvent(cmd command) []byte {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("event: map\n")
	sb.WriteString("data: ")
	sb.Write(data)
	sb.WriteString("\n\n")
	return []byte(sb.String())
}
