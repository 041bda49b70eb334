package scenes

import (
	"fmt"

	"github.com/seqlab/framecast/internal/interp"
	"github.com/seqlab/framecast/internal/scene"
	"github.com/seqlab/framecast/internal/spring"
)

// pixelMask is the 7x5 "FC" monogram. '#' cells are lit.
var pixelMask = []string{
	"###.###",
	"#...#..",
	"##..#..",
	"#...#..",
	"#...###",
}

const (
	pixelCell    = 24 // cell size in output pixels
	pixelStagger = 2  // frames between successive cell pops
	pixelPopFrom = 20 // frame at which the first cell pops
)

var pixelLitColor = scene.Color{R: 0.36, G: 0.93, B: 0.62, A: 1}

// PixelTitle is the pixel-art title sequence: the monogram's cells pop in
// one after another on springs, then shimmer with per-cell flicker.
//
// The flicker is deterministic: each cell derives its brightness from
// scene.Noise keyed by (composition, cell, frame) instead of a shared RNG,
// so re-rendering a frame always reproduces the same shimmer.
func PixelTitle() *scene.Composition {
	return &scene.Composition{
		ID:               PixelTitleID,
		DurationInFrames: 240,
		FPS:              30,
		Width:            640,
		Height:           360,
		DefaultProps: scene.Props{
			"caption": scene.PropString("a framecast production"),
		},
		Root: renderPixelTitle,
	}
}

func renderPixelTitle(ctx scene.Context, props scene.Props) (scene.Node, error) {
	frame := &scene.Frame{Fill: scene.Color{R: 0.04, G: 0.04, B: 0.07, A: 1}}

	rows := len(pixelMask)
	cols := len(pixelMask[0])
	originX := (float64(ctx.Width) - float64(cols*pixelCell)) / 2
	originY := (float64(ctx.Height)-float64(rows*pixelCell))/2 - 30

	popCfg := spring.Config{Damping: 9, Stiffness: 260, Mass: 1}

	cell := 0
	for row, line := range pixelMask {
		for col, ch := range line {
			if ch != '#' {
				continue
			}
			cellID := fmt.Sprintf("cell-%d-%d", row, col)
			delay := pixelPopFrom + cell*pixelStagger
			cell++

			cctx, active := scene.Enter(ctx, scene.Window{From: delay})
			if !active {
				continue
			}

			pop := spring.MustValue(cctx.Frame, cctx.FPS, popCfg)

			// Shimmer between 85% and 100% brightness, re-derived per
			// frame from the deterministic noise source.
			flicker := 0.85 + 0.15*scene.Noise(PixelTitleID, cellID, ctx.Frame)

			frame.Children = append(frame.Children, &scene.Group{
				ID:      cellID,
				X:       originX + float64(col*pixelCell) + pixelCell/2,
				Y:       originY + float64(row*pixelCell) + pixelCell/2,
				Scale:   pop,
				Opacity: flicker,
				Children: []scene.Node{
					&scene.Text{
						ID:      cellID + "-px",
						Value:   "█", // full block
						Size:    pixelCell,
						Color:   pixelLitColor,
						Opacity: 1,
					},
				},
			})
		}
	}

	// Caption fades in once the monogram has finished popping.
	if captx, active := scene.Enter(ctx, scene.Window{From: 110}); active {
		fade, err := interp.Interpolate(float64(captx.Frame),
			interp.ClampBoth(interp.Frames(0, 30), []float64{0, 1}))
		if err != nil {
			return nil, err
		}
		frame.Children = append(frame.Children, &scene.Text{
			ID:      "caption",
			Value:   props.String("caption", ""),
			X:       float64(ctx.Width) / 2,
			Y:       float64(ctx.Height) * 0.78,
			Size:    20,
			Color:   introMutedColor,
			Opacity: fade,
		})
	}

	return frame, nil
}
