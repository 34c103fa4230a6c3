// Package host is the presentation shell: an
// SDL2 window that drives the fixed-35Hz Level.Tick loop off
// wall-clock time, translates keyboard state into player.TicCmd, and
// presents the renderer's indexed framebuffer through PicData's active
// palette. It follows a familiar window/renderer/streaming-texture
// triple shape (PollEvent loop, scancode-polled held-key state,
// sdl.Delay pacing) adapted from a fixed 320x200 RGB888 NES-style
// buffer to doomgo's variable-resolution, palette-indexed one.
package host

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/doomgo/doomgo/internal/pic"
	"github.com/doomgo/doomgo/internal/player"
)

// Framebuffer is what the renderer hands the host each frame: a
// palette-indexed pixel grid. Host depends on this narrow shape rather
// than internal/render directly so the two packages can be built and
// tested independently, the same structural-interface split the rest
// of this module uses to avoid import cycles.
type Framebuffer interface {
	Width() int
	Height() int
	// Pixels returns one byte per pixel, row-major, each byte an index
	// into the active PLAYPAL palette.
	Pixels() []byte
}

// Renderer draws one frame of a Level into a Framebuffer. Host never
// touches level.Level or mapdata directly; it only needs a frame to
// present and an active palette to expand it with.
type Renderer interface {
	Render() Framebuffer
}

// Host owns the SDL2 window/renderer/texture triple and the keyboard
// state that feeds TicCmd construction.
type Host struct {
	window *sdl.Window
	renderer *sdl.Renderer
	texture *sdl.Texture

	scale int
	width int
	height int

	running bool

	pics *pic.PicData
	draw Renderer
	tick func(elapsedSeconds float64, cmds []player.TicCmd)

	audio *audioSink
}

// New opens a scaled window sized to width x height game pixels and
// wires it to pics for palette lookups, draw for frame production, and
// tick for advancing the sim. Both draw and tick are supplied by the
// caller (cmd/doomgo) so host never imports internal/level or
// internal/render, matching the structural seams the rest of the
// module keeps between layers.
func New(width, height, scale int, pics *pic.PicData, draw Renderer, tick func(float64, []player.TicCmd)) (*Host, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("host: init sdl: %w", err)
	}

	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	winW, winH := int32(width*scale), int32(height*scale)
	window, err := sdl.CreateWindow(
		"doomgo",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		winW, winH,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("host: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("host: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("host: create texture: %w", err)
	}

	audio, err := newAudioSink()
	if err != nil {
		// Audio is optional; a dead sink just drops samples silently.
		audio = nil
	}

	return &Host{
		window: window,
		renderer: renderer,
		texture: texture,
		scale: scale,
		width: width,
		height: height,
		running: true,
		pics: pics,
		draw: draw,
		tick: tick,
		audio: audio,
	}, nil
}

// Run drives the main loop until the window is closed or Escape is
// pressed: pump events, build this tic's TicCmd from held keys, step
// the sim by however much wall-clock time has passed, present the
// rendered frame, and pace the loop.
func (h *Host) Run(playerCount int) error {
	defer h.Close()

	lastTicks := sdl.GetTicks64()
	for h.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			h.handleEvent(event)
		}

		now := sdl.GetTicks64()
		elapsed := float64(now-lastTicks) / 1000.0
		lastTicks = now

		cmds := make([]player.TicCmd, playerCount)
		if playerCount > 0 {
			cmds[0] = BuildTicCmd(sdl.GetKeyboardState())
		}
		h.tick(elapsed, cmds)

		if err := h.present(); err != nil {
			return err
		}

		sdl.Delay(1)
	}
	return nil
}

func (h *Host) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		h.running = false
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			h.running = false
		}
	}
}

// present expands the renderer's indexed framebuffer through the
// active palette into RGB888 bytes and blits it to the window, the
// same streaming-texture update/copy/present sequence any fixed-size
// indexed-buffer renderer uses.
func (h *Host) present() error {
	fb := h.draw.Render()
	if fb == nil {
		return nil
	}
	w, hgt := fb.Width(), fb.Height()
	indices := fb.Pixels()
	if len(indices) != w*hgt {
		return fmt.Errorf("host: framebuffer size mismatch: expected %d, got %d", w*hgt, len(indices))
	}

	palette := h.pics.ActivePalette()
	pixels := make([]byte, w*hgt*3)
	for i, idx := range indices {
		c := palette[idx]
		pixels[i*3] = c.R
		pixels[i*3+1] = c.G
		pixels[i*3+2] = c.B
	}

	if err := h.texture.Update(nil, unsafe.Pointer(&pixels[0]), w*3); err != nil {
		return fmt.Errorf("host: update texture: %w", err)
	}

	h.renderer.Clear()
	if err := h.renderer.Copy(h.texture, nil, nil); err != nil {
		return fmt.Errorf("host: copy texture: %w", err)
	}
	h.renderer.Present()
	return nil
}

// QueueAudio forwards mixed PCM samples to the audio sink, a no-op
// when no audio device could be opened at startup.
func (h *Host) QueueAudio(samples []float32) {
	if h.audio != nil {
		h.audio.queue(samples)
	}
}

// Close tears down SDL resources in reverse acquisition order.
func (h *Host) Close() {
	if h.audio != nil {
		h.audio.close()
	}
	if h.texture != nil {
		h.texture.Destroy()
	}
	if h.renderer != nil {
		h.renderer.Destroy()
	}
	if h.window != nil {
		h.window.Destroy()
	}
	sdl.Quit()
}
