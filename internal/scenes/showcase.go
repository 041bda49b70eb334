package scenes

import (
	"fmt"

	"github.com/seqlab/framecast/internal/interp"
	"github.com/seqlab/framecast/internal/scene"
)

// showcaseCard describes one feature card in the showcase reel.
type showcaseCard struct {
	id      string
	heading string
	asset   string
	from    int
}

// The three cards occupy sequential 60-frame windows at 90/150/210; the
// opening 90 frames belong to the reel's heading. Windows are declared in
// paint order.
var showcaseCards = []showcaseCard{
	{id: "card-compose", heading: "Compose scenes declaratively", asset: "compose.png", from: 90},
	{id: "card-schedule", heading: "Window and re-base time", asset: "schedule.png", from: 150},
	{id: "card-render", heading: "Render frames in parallel", asset: "render.png", from: 210},
}

const showcaseCardFrames = 60

// Showcase is the feature reel: a heading, then three cards that each own a
// 60-frame window and slide in from the right.
func Showcase() *scene.Composition {
	return &scene.Composition{
		ID:               ShowcaseID,
		DurationInFrames: 300,
		FPS:              30,
		Width:            1920,
		Height:           1080,
		DefaultProps: scene.Props{
			"heading": scene.PropString("What framecast does"),
		},
		Root: renderShowcase,
	}
}

func renderShowcase(ctx scene.Context, props scene.Props) (scene.Node, error) {
	frame := &scene.Frame{Fill: introBackground}

	// Heading owns the first 90 frames and fades out as the cards begin.
	if hctx, active := scene.Enter(ctx, scene.Window{From: 0, DurationInFrames: scene.Frames(90)}); active {
		fade, err := interp.Interpolate(float64(hctx.Frame),
			interp.ClampBoth(interp.Frames(0, 15, 70, 90), []float64{0, 1, 1, 0}))
		if err != nil {
			return nil, err
		}
		frame.Children = append(frame.Children, &scene.Text{
			ID:      "heading",
			Value:   props.String("heading", ""),
			X:       float64(ctx.Width) / 2,
			Y:       float64(ctx.Height) / 2,
			Size:    72,
			Color:   introTitleColor,
			Opacity: fade,
		})
	}

	for i, card := range showcaseCards {
		cctx, active := scene.Enter(ctx, scene.Window{
			From:             card.from,
			DurationInFrames: scene.Frames(showcaseCardFrames),
		})
		if !active {
			continue
		}

		node, err := renderCard(cctx, card, i)
		if err != nil {
			return nil, err
		}
		frame.Children = append(frame.Children, node)
	}

	return frame, nil
}

func renderCard(ctx scene.Context, card showcaseCard, index int) (scene.Node, error) {
	outCubic, err := interp.EasingByName("out-cubic")
	if err != nil {
		return nil, err
	}

	// Slide in over the first 20 local frames, hold, fade out over the
	// last 10.
	slide := interp.Spec{
		Input:            interp.Frames(0, 20),
		Output:           []float64{float64(ctx.Width), float64(ctx.Width) / 2},
		ExtrapolateLeft:  interp.Clamp,
		ExtrapolateRight: interp.Clamp,
		Easing:           outCubic,
	}
	x, err := interp.Interpolate(float64(ctx.Frame), slide)
	if err != nil {
		return nil, err
	}

	opacity, err := interp.Interpolate(float64(ctx.Frame),
		interp.ClampBoth(
			interp.Frames(0, 10, showcaseCardFrames-10, showcaseCardFrames),
			[]float64{0, 1, 1, 0},
		))
	if err != nil {
		return nil, err
	}

	return &scene.Group{
		ID:      card.id,
		X:       x,
		Y:       float64(ctx.Height) / 2,
		Scale:   1,
		Opacity: opacity,
		Children: []scene.Node{
			&scene.Image{
				ID:      fmt.Sprintf("%s-art", card.id),
				Ref:     card.asset,
				X:       -320,
				Y:       -180,
				W:       640,
				H:       360,
				Opacity: 1,
			},
			&scene.Text{
				ID:      fmt.Sprintf("%s-heading", card.id),
				Value:   card.heading,
				Y:       220,
				Size:    48,
				Color:   introTitleColor,
				Opacity: 1,
			},
			&scene.Text{
				ID:      fmt.Sprintf("%s-index", card.id),
				Value:   fmt.Sprintf("%d / %d", index+1, len(showcaseCards)),
				Y:       280,
				Size:    24,
				Color:   introMutedColor,
				Opacity: 1,
			},
		},
	}, nil
}
