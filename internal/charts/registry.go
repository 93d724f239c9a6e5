// Package charts holds the chart drivers. Each driver sweeps a domain,
// evaluates a physio formula over it, and describes the resulting figure.
// Drivers never touch the filesystem; rendering is left to chart.Renderer.
package charts

import (
	"errors"
	"fmt"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
)

var ErrUnknownChart = errors.New("charts: unknown chart")

// Chart is one named figure.
type Chart struct {
	Name        string
	Group       string
	Description string
	Build       func(cfg *config.Config) (*chart.Figure, error)
}

type Registry struct {
	charts map[string]Chart
	order  []string
}

func NewRegistry() *Registry {
	r := &Registry{charts: make(map[string]Chart)}

	registerGrowth(r)
	registerMaintenance(r)
	registerPhotosynthesis(r)
	registerNitrogen(r)
	registerRatio(r)
	registerRubisco(r)
	registerTemperature(r)

	return r
}

func (r *Registry) register(c Chart) {
	if _, dup := r.charts[c.Name]; dup {
		panic("charts: duplicate chart " + c.Name)
	}
	r.charts[c.Name] = c
	r.order = append(r.order, c.Name)
}

func (r *Registry) Get(name string) (Chart, error) {
	c, ok := r.charts[name]
	if !ok {
		return Chart{}, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	return c, nil
}

// Names returns chart names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Groups returns group names in the order they were first registered.
func (r *Registry) Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, name := range r.order {
		g := r.charts[name].Group
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

// Select resolves chart or group names. No names selects every chart. The
// result follows registration order and holds each chart once.
func (r *Registry) Select(names ...string) ([]Chart, error) {
	if len(names) == 0 {
		names = r.order
	}
	want := make(map[string]bool)
	for _, n := range names {
		if _, ok := r.charts[n]; ok {
			want[n] = true
			continue
		}
		found := false
		for _, name := range r.order {
			if r.charts[name].Group == n {
				want[name] = true
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChart, n)
		}
	}

	out := make([]Chart, 0, len(want))
	for _, name := range r.order {
		if want[name] {
			out = append(out, r.charts[name])
		}
	}
	return out, nil
}
