package view

import (
	"context"

	"github.com/google/uuid"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/sink"
)

// Render produces artifacts for whatever state the store is in: the loading
// view before the fetch completes, the error view after a failed fetch, and
// the treemap otherwise. The returned result's State says which one it is.
func Render(ctx context.Context, r *pipeline.Runner, s *Store, opts pipeline.Options) (*pipeline.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	snap := s.Snapshot()

	switch snap.State {
	case pipeline.StateUnloaded:
		artifacts, err := renderLoading(opts)
		if err != nil {
			return nil, err
		}
		return &pipeline.Result{State: pipeline.StateUnloaded, RenderID: uuid.NewString(), Artifacts: artifacts}, nil

	case pipeline.StateFailed:
		opts.RenderFailures = true
		return r.Build(ctx, snap.Fetch, opts)
	}

	res, err := r.Build(ctx, snap.Fetch, opts)
	if err != nil {
		return nil, err
	}
	s.MarkRendered()
	return res, nil
}

func renderLoading(opts pipeline.Options) (map[string][]byte, error) {
	v := pipeline.LoadingView(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		switch f {
		case pipeline.FormatSVG:
			artifacts[f] = sink.RenderStateSVG(v)
		case pipeline.FormatHTML:
			data, err := sink.RenderStateHTML(v)
			if err != nil {
				return nil, err
			}
			artifacts[f] = data
		case pipeline.FormatJSON:
			artifacts[f] = []byte(`{"state": "loading"}`)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "no loading view for %s", f)
		}
	}
	return artifacts, nil
}
