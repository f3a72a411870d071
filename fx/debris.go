package fx

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

const chipsPerBurst = 14

// Debris scatters cell chips under gravity for the mine blast. Chips are
// free bodies with no shapes; they never collide, they just arc off screen
// and get culled.
type Debris struct {
	space *cp.Space
	chips []*chip
	floor float64
}

type chip struct {
	body *cp.Body
	size float64
	clr  color.RGBA
}

// NewDebris simulates under gravity (pixels per second squared, downward
// positive) and culls chips once they fall past floor.
func NewDebris(gravity, floor float64) *Debris {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &Debris{space: space, floor: floor}
}

// Burst scatters chips from the center of the given cell rect, launched in
// random directions with an upward bias.
func (d *Debris) Burst(x, y, size float64, clr color.RGBA, rng *rand.Rand) {
	for i := 0; i < chipsPerBurst; i++ {
		cs := size * (0.12 + rng.Float64()*0.18)
		mass := cs * cs * 0.01
		body := cp.NewBody(mass, cp.MomentForBox(mass, cs, cs))
		body.SetPosition(cp.Vector{X: x + size/2, Y: y + size/2})

		a := rng.Float64() * 2 * math.Pi
		speed := size * (3 + rng.Float64()*5)
		body.SetVelocity(math.Cos(a)*speed, math.Sin(a)*speed-size*4)
		body.SetAngularVelocity((rng.Float64() - 0.5) * 12)

		d.space.AddBody(body)
		d.chips = append(d.chips, &chip{body: body, size: cs, clr: clr})
	}
}

// Active reports whether any chips are still airborne.
func (d *Debris) Active() bool { return len(d.chips) > 0 }

// Update steps the simulation by dt seconds and culls fallen chips.
func (d *Debris) Update(dt float64) {
	if len(d.chips) == 0 {
		return
	}
	d.space.Step(dt)

	kept := d.chips[:0]
	for _, c := range d.chips {
		if c.body.Position().Y > d.floor+c.size {
			d.space.RemoveBody(c.body)
			continue
		}
		kept = append(kept, c)
	}
	d.chips = kept
}

// Draw paints every chip as a rotated square.
func (d *Debris) Draw(screen *ebiten.Image) {
	for _, c := range d.chips {
		pos := c.body.Position()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(c.size, c.size)
		op.GeoM.Translate(-c.size/2, -c.size/2)
		op.GeoM.Rotate(c.body.Angle())
		op.GeoM.Translate(pos.X, pos.Y)
		op.ColorScale.ScaleWithColor(c.clr)
		screen.DrawImage(chipImage(), op)
	}
}

var chipImg *ebiten.Image

func chipImage() *ebiten.Image {
	if chipImg == nil {
		chipImg = ebiten.NewImage(1, 1)
		chipImg.Fill(color.White)
	}
	return chipImg
}
