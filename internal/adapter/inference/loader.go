package inference

import (
	"context"
	"fmt"
	"io"
)

// ArtifactOpener fetches raw artifact bytes from a location
type ArtifactOpener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// Load reads, decodes and validates the artifact at location. Any error is
// fatal for the caller: a process must not serve without a model.
func Load(ctx context.Context, opener ArtifactOpener, location string) (*Model, error) {
	rc, err := opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	artifact, err := DecodeArtifact(location, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", location, err)
	}

	return NewModel(artifact, location)
}
