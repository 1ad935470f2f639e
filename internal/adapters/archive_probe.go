package adapters

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
)

// probeTimeout bounds the pre-flight reachability check. This is the
// only network timeout in the tool; apt subprocesses run unbounded.
const probeTimeout = 10 * time.Second

// ArchiveProbeAdapter checks archive reachability with a HEAD request.
// Any HTTP response counts as reachable; only transport errors fail.
type ArchiveProbeAdapter struct {
	Client *http.Client
}

func NewArchiveProbeAdapter() ArchiveProbeAdapter {
	return ArchiveProbeAdapter{
		Client: &http.Client{
			Timeout: probeTimeout,
			Transport: &http.Transport{
				TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
				ForceAttemptHTTP2: true,
			},
		},
	}
}

func (a ArchiveProbeAdapter) Reachable(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid archive probe URL").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("network unreachable: cannot reach the package archive").
			WithCause(err)
	}
	resp.Body.Close()
	return nil
}

var _ ports.ArchiveProbePort = ArchiveProbeAdapter{}
