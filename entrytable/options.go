// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package entrytable

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/danielhkuo/project-judge/cliparse"
)

var generateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "judge",
	Subsystem: "entrytable",
	Name:      "generate_duration_seconds",
	Help:      "Time spent generating an entry table",
	Buckets:   prometheus.DefBuckets,
}, []string{"variant", "outcome"})

// ActionTemplate describes one admin action. Path may contain {set}, {id}
// and {order}.
type ActionTemplate struct {
	Name   string
	Method string
	Path   string
}

// Options holds the presentation settings shared by all variants
type Options struct {
	RedactionMarker string
	BadgePath       string
	SliderMin       int64
	SliderMax       int64
	SliderDefault   int64
	FieldPrefix     string
	Actions         []ActionTemplate
}

// DefaultActions matches the entry routes served by the router
func DefaultActions() []ActionTemplate {
	return []ActionTemplate{
		{Name: "move_up", Method: "POST", Path: "/sets/{set}/entries/{id}/move-up"},
		{Name: "move_down", Method: "POST", Path: "/sets/{set}/entries/{id}/move-down"},
		{Name: "edit", Method: "PUT", Path: "/sets/{set}/entries/{id}"},
		{Name: "delete", Method: "DELETE", Path: "/sets/{set}/entries/{id}"},
	}
}

func DefaultOptions() Options {
	return NewOptions(cliparse.DefaultConfig().Render)
}

// NewOptions builds Options from the render section of the configuration
func NewOptions(rc cliparse.RenderConfig) Options {
	return Options{
		RedactionMarker: rc.RedactionMarker,
		BadgePath:       rc.BadgePath,
		SliderMin:       rc.SliderMin,
		SliderMax:       rc.SliderMax,
		SliderDefault:   rc.SliderDefault,
		FieldPrefix:     "p",
		Actions:         DefaultActions(),
	}
}

func (t ActionTemplate) expand(set string, e Row) string {
	return strings.NewReplacer(
		"{set}", url.PathEscape(set),
		"{id}", strconv.FormatInt(e.Entry.ID, 10),
		"{order}", strconv.Itoa(e.Entry.Order),
	).Replace(t.Path)
}
