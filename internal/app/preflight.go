package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/dragon-Elec/gfx-doctor/internal/shared"
)

// preflight runs the safety checks that must all pass before the
// scanner touches anything. The first failure aborts the run with no
// system mutation.
func (s Service) preflight(ctx context.Context, minFreeBytes uint64, probeURL string) error {
	if minFreeBytes == 0 {
		minFreeBytes = DefaultMinFreeBytes
	}
	if probeURL == "" {
		probeURL = DefaultProbeURL
	}

	if s.Euid() != 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("insufficient privilege: this tool must run as root")
	}
	log.Ctx(ctx).Debug().Msg("pre-flight: running as root")

	free, err := s.Disk.FreeBytes(AptCachePath)
	if err != nil {
		return err
	}
	if free < minFreeBytes {
		return errbuilder.New().
			WithCode(errbuilder.CodeResourceExhausted).
			WithMsg(fmt.Sprintf("insufficient resources: %s free on %s, need at least %s",
				shared.FormatBytes(free), AptCachePath, shared.FormatBytes(minFreeBytes)))
	}
	log.Ctx(ctx).Debug().Uint64("free_bytes", free).Msg("pre-flight: disk space ok")

	audit, err := s.Dpkg.Audit(ctx)
	if err != nil {
		return err
	}
	if audit != "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("broken package state: run 'dpkg --configure -a' before retrying").
			WithCause(fmt.Errorf("%s", audit))
	}
	log.Ctx(ctx).Debug().Msg("pre-flight: package database healthy")

	if err := s.Probe.Reachable(ctx, probeURL); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("url", probeURL).Msg("pre-flight: archive reachable")
	return nil
}
