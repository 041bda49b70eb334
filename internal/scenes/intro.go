package scenes

import (
	"github.com/seqlab/framecast/internal/interp"
	"github.com/seqlab/framecast/internal/scene"
	"github.com/seqlab/framecast/internal/spring"
)

var (
	introBackground = scene.Color{R: 0.06, G: 0.07, B: 0.12, A: 1}
	introTitleColor = scene.Color{R: 0.95, G: 0.96, B: 0.98, A: 1}
	introMutedColor = scene.Color{R: 0.62, G: 0.66, B: 0.74, A: 1}
)

// Intro is the opening card: the title pops in on a spring, the subtitle
// fades up behind it, and the whole scene fades to black over the last
// second.
func Intro() *scene.Composition {
	return &scene.Composition{
		ID:               IntroID,
		DurationInFrames: 150,
		FPS:              30,
		Width:            1280,
		Height:           720,
		DefaultProps: scene.Props{
			"title":    scene.PropString("framecast"),
			"subtitle": scene.PropString("deterministic frames, any order"),
		},
		Root: renderIntro,
	}
}

func renderIntro(ctx scene.Context, props scene.Props) (scene.Node, error) {
	frame := &scene.Frame{Fill: introBackground}

	// Title: spring-driven scale pop starting at frame 10.
	if tctx, active := scene.Enter(ctx, scene.Window{From: 10}); active {
		pop := spring.MustValue(tctx.Frame, tctx.FPS, spring.Config{
			Damping:   12,
			Stiffness: 200,
			Mass:      1,
		})
		fadeIn, err := interp.Interpolate(float64(tctx.Frame),
			interp.ClampBoth(interp.Frames(0, 12), []float64{0, 1}))
		if err != nil {
			return nil, err
		}

		frame.Children = append(frame.Children, &scene.Group{
			ID:      "title",
			X:       float64(ctx.Width) / 2,
			Y:       float64(ctx.Height) * 0.42,
			Scale:   pop,
			Opacity: fadeIn,
			Children: []scene.Node{
				&scene.Text{
					ID:      "title-text",
					Value:   props.String("title", "framecast"),
					Size:    96,
					Color:   introTitleColor,
					Opacity: 1,
				},
			},
		})
	}

	// Subtitle: fades up 50 frames in, riding an eased slide.
	if sctx, active := scene.Enter(ctx, scene.Window{From: 50, DurationInFrames: scene.Frames(100)}); active {
		outCubic, err := interp.EasingByName("out-cubic")
		if err != nil {
			return nil, err
		}

		rise := interp.Spec{
			Input:            interp.Frames(0, 25),
			Output:           []float64{40, 0},
			ExtrapolateLeft:  interp.Clamp,
			ExtrapolateRight: interp.Clamp,
			Easing:           outCubic,
		}
		offset, err := interp.Interpolate(float64(sctx.Frame), rise)
		if err != nil {
			return nil, err
		}
		fade, err := interp.Interpolate(float64(sctx.Frame),
			interp.ClampBoth(interp.Frames(0, 20), []float64{0, 1}))
		if err != nil {
			return nil, err
		}

		frame.Children = append(frame.Children, &scene.Text{
			ID:      "subtitle",
			Value:   props.String("subtitle", ""),
			X:       float64(ctx.Width) / 2,
			Y:       float64(ctx.Height)*0.58 + offset,
			Size:    32,
			Color:   introMutedColor,
			Opacity: fade,
		})
	}

	// Scene-level fade out across the final 30 frames.
	fadeOut, err := interp.Interpolate(float64(ctx.Frame),
		interp.ClampBoth(interp.Frames(120, 150), []float64{1, 0}))
	if err != nil {
		return nil, err
	}

	return &scene.Group{
		ID:       "intro-root",
		Scale:    1,
		Opacity:  fadeOut,
		Children: []scene.Node{frame},
	}, nil
}
