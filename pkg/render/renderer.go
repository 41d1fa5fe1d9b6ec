// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
)

// NullRenderer draws nothing. It logs every call at debug level, which makes
// it the renderer of choice for headless runs and tests.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames were presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "clear called", "frame", d.frames+1)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "present called", "frame", d.frames)
}

// RenderBody implements entity.Renderer.
func (d *NullRenderer) RenderBody(body *entity.Body) {
	ctx := context.Background()
	if body == nil {
		d.logger.Debug(ctx, "render body called with nil body")
		return
	}
	d.logger.Debug(ctx, "render body",
		"body_id", body.ID,
		"category", body.Category().String(),
		"x", body.Position.X,
		"y", body.Position.Y,
		"speed", body.Velocity.Length(),
	)
}

// RenderRing implements entity.Renderer.
func (d *NullRenderer) RenderRing(ring *entity.Ring) {
	ctx := context.Background()
	if ring == nil {
		d.logger.Debug(ctx, "render ring called with nil ring")
		return
	}
	d.logger.Debug(ctx, "render ring",
		"ring_id", ring.ID,
		"category", ring.Category().String(),
		"radius", ring.Radius(),
		"state", ring.State().String(),
		"opacity", ring.Opacity(),
	)
}

// RenderArena implements entity.Renderer.
func (d *NullRenderer) RenderArena(arena *entity.ArenaRing) {
	ctx := context.Background()
	if arena == nil {
		d.logger.Debug(ctx, "render arena called with nil arena")
		return
	}
	d.logger.Debug(ctx, "render arena",
		"arena_id", arena.ID,
		"radius", arena.Radius(),
		"pulsing", arena.Pulsing(),
	)
}

// NullRendererInstance is a shared NullRenderer that discards its output
var NullRendererInstance entity.Renderer = NewNullRenderer(nil)
