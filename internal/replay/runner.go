package replay

import (
	"context"

	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/poi"
)

// Run plays script against ctrl and returns the recorded trace. The
// controller is used as given; scripts that name a start position expect
// a controller built with it. Cancellation is checked between frames.
func Run(ctx context.Context, ctrl *helm.Controller, script *Script) (*Trace, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	trace := NewTrace(script.Name, script.Delta, script.Frames)
	ctrl.AddObserver(trace)
	defer ctrl.RemoveObserver(trace)

	frame := 0
	ctrl.OnAnchor(func(p poi.Point) {
		trace.Anchors = append(trace.Anchors, Anchor{Frame: frame, PointID: p.ID})
	})
	defer ctrl.OnAnchor(nil)

	next := 0
	for ; frame < script.Frames; frame++ {
		select {
		case <-ctx.Done():
			return trace, ctx.Err()
		default:
		}

		for next < len(script.Events) && script.Events[next].Frame == frame {
			apply(ctrl, script.Events[next])
			next++
		}
		ctrl.Step(script.Delta)
	}
	return trace, nil
}

func apply(ctrl *helm.Controller, ev Event) {
	switch ev.Op {
	case OpSeek:
		ctrl.SeekTo(ev.X)
	case OpNudge:
		ctrl.Nudge(ev.X)
	case OpDragBegin:
		ctrl.BeginDrag(ev.X)
	case OpDragMove:
		ctrl.UpdateDrag(ev.X)
	case OpDragEnd:
		ctrl.EndDrag()
	case OpPointerDown:
		ctrl.PointerDown(ev.X, ev.OnBoat)
	case OpPointerMove:
		ctrl.PointerMove(ev.X)
	case OpPointerUp:
		ctrl.PointerUp()
	case OpKey:
		if k, ok := helm.ParseKey(ev.Key); ok {
			ctrl.HandleKey(k)
		}
	case OpActivate:
		ctrl.Activate()
	}
}
