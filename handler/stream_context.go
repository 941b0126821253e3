package handler

import (
	"encoding/json"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext extends Context with SSE streaming capabilities.
type StreamContext interface {
	Context

	// SendComponent patches a templ component into the page.
	SendComponent(component templ.Component, opts ...TemplOption) error

	// SendMultiple sends several patches in order.
	SendMultiple(patches ...TemplPatch) error

	// SendSignal updates a single frontend signal.
	SendSignal(name string, value any) error

	// SendSignals updates multiple frontend signals at once.
	SendSignals(signals map[string]any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component templ.Component, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	for _, patch := range patches {
		if err := c.SendComponent(patch.Component, patch.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) SendSignal(name string, value any) error {
	return c.SendSignals(map[string]any{name: value})
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}
