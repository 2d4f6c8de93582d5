package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Lister enumerates installed packages as a raw registry listing. It is an
// injected read-only data source so tests can supply a fixed snapshot.
type Lister interface {
	List(ctx context.Context) (io.ReadCloser, error)
}

// GhcPkg queries the registry by running "<binary> dump".
type GhcPkg struct {
	Binary string
}

// List runs the registry dump and returns its output.
func (g GhcPkg) List(ctx context.Context) (io.ReadCloser, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, g.Binary, "dump")
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s dump: %w (%s)", g.Binary, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return io.NopCloser(bytes.NewReader(out)), nil
}

// StaticLister serves a fixed in-memory listing; used in tests and offline
// runs.
type StaticLister struct {
	Listing string
}

// List returns the fixed listing.
func (s StaticLister) List(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader([]byte(s.Listing))), nil
}
