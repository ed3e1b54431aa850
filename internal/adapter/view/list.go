package view

import (
	"html/template"
	"strings"
	"sync"

	"maptrack/internal/domain/workout"
)

// itemTemplate mirrors the sidebar entry of the web UI: one list item per
// workout, keyed by record id.
const itemTemplate = `<li class="workout workout--{{.Type}}" data-id="{{.ID}}">
  <h2 class="workout__title">{{.Description}}</h2>
  <div class="workout__details">
    <span class="workout__icon">{{.Icon}}</span>
    <span class="workout__value">{{.DistanceKm}}</span>
    <span class="workout__unit">km</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">⏱</span>
    <span class="workout__value">{{.DurationMin}}</span>
    <span class="workout__unit">min</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">⚡️</span>
    <span class="workout__value">{{printf "%.1f" .Metric}}</span>
    <span class="workout__unit">{{.MetricUnit}}</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">{{.VariantIcon}}</span>
    <span class="workout__value">{{.VariantValue}}</span>
    <span class="workout__unit">{{.VariantUnit}}</span>
  </div>
</li>`

type item struct {
	id   string
	html string
}

// List is the rendered workout list: an ordered sequence of HTML elements
// keyed by record id, the server-side stand-in for the sidebar DOM.
type List struct {
	tmpl *template.Template

	mu    sync.RWMutex
	items []item
}

func NewList() *List {
	return &List{
		tmpl: template.Must(template.New("workout").Parse(itemTemplate)),
	}
}

type itemData struct {
	ID           string
	Type         string
	Description  string
	Icon         string
	DistanceKm   float64
	DurationMin  float64
	Metric       float64
	MetricUnit   string
	VariantIcon  string
	VariantValue float64
	VariantUnit  string
}

func (l *List) RenderItem(w *workout.Workout) {
	data := itemData{
		ID:          w.ID,
		Type:        w.Type,
		Description: w.Description,
		DistanceKm:  w.DistanceKm,
		DurationMin: w.DurationMin,
	}
	switch w.Type {
	case workout.TypeRunning:
		data.Icon = "🏃‍♂️"
		data.Metric = w.PaceMinPerKm
		data.MetricUnit = "min/km"
		data.VariantIcon = "🦶🏼"
		data.VariantValue = w.CadenceSpm
		data.VariantUnit = "spm"
	case workout.TypeCycling:
		data.Icon = "🚴‍♀️"
		data.Metric = w.SpeedKmPerH
		data.MetricUnit = "km/h"
		data.VariantIcon = "⛰"
		data.VariantValue = w.ElevationGainM
		data.VariantUnit = "m"
	}

	var sb strings.Builder
	if err := l.tmpl.Execute(&sb, data); err != nil {
		// The template is static and the data plain values; an execute
		// failure would be a programming error.
		panic(err)
	}

	l.mu.Lock()
	l.items = append(l.items, item{id: w.ID, html: sb.String()})
	l.mu.Unlock()
}

func (l *List) RemoveItem(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, it := range l.items {
		if it.id == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

func (l *List) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

// Empty reports whether anything is rendered; the UI shows the how-to-use
// hint while the list is empty.
func (l *List) Empty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items) == 0
}

// IDs returns the ids of the rendered items in display order.
func (l *List) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = it.id
	}
	return out
}

// HTML returns the whole rendered list in display order.
func (l *List) HTML() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("<ul class=\"workouts\">\n")
	for _, it := range l.items {
		sb.WriteString(it.html)
		sb.WriteByte('\n')
	}
	sb.WriteString("</ul>")
	return sb.String()
}
