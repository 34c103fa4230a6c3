package render

import (
	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/mapdata"
	"github.com/doomgo/doomgo/internal/mobj"
	"github.com/doomgo/doomgo/internal/pic"
	"github.com/doomgo/doomgo/internal/player"
)

// Renderer owns the reusable per-frame scratch state (the Frame itself)
// across calls so a tick loop running at 35Hz doesn't reallocate a
// framebuffer every tick.
type Renderer struct {
	md *mapdata.MapData
	pics *pic.PicData
	mobjs *mobj.Mobjs
	frame *Frame
	logger *debug.Logger
}

// New returns a Renderer sized to width x height, bound to one level's
// map data, texture store and mobj manager for its lifetime.
func New(md *mapdata.MapData, pics *pic.PicData, mobjs *mobj.Mobjs, width, height int, logger *debug.Logger) *Renderer {
	return &Renderer{
		md: md,
		pics: pics,
		mobjs: mobjs,
		frame: NewFrame(width, height),
		logger: logger,
	}
}

// Render draws one frame from viewer's eye and returns the shared
// Frame. The returned Frame is reused on the next call; callers
// that need to keep a copy across frames must copy Pixels themselves.
func (r *Renderer) Render(viewer *player.Player) *Frame {
	r.frame.clear()
	if viewer == nil || viewer.Mobj == nil {
		return r.frame
	}

	mo := viewer.Mobj
	viewZ := mo.Z.Add(viewer.ViewHeight)
	v := newView(mo.X, mo.Y, viewZ, mo.Angle, r.frame.width, r.frame.height)

	wp := newWallPainter(r.frame, v, r.md, r.pics)

	r.md.TraverseBSP(mapdata.Vec2{X: mo.X, Y: mo.Y}, func(b [2]mapdata.BBox) bool {
		return v.boxVisible(b[0]) || v.boxVisible(b[1])
	}, func(id mapdata.SubsectorID) bool {
		sub := r.md.SubSector(id)
		for i := int32(0); i < sub.SegCount; i++ {
			seg := r.md.Seg(mapdata.SegID(int32(sub.FirstSeg) + i))
			wp.addLine(seg)
		}
		return true
	})

	r.drawSprites(v, wp, mo)

	if r.logger != nil {
		r.logger.LogRender(debug.LogLevelDebug, "frame drawn", nil)
	}

	return r.frame
}
