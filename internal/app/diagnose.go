package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dragon-Elec/gfx-doctor/internal/core"
	"github.com/dragon-Elec/gfx-doctor/internal/policies"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// Diagnose probes the environment, runs pre-flight, and scans sources
// and packages. Read-only: it never writes pins or touches the package
// database.
func (s Service) Diagnose(ctx context.Context, req DiagnoseRequest) (DiagnoseResult, error) {
	info, err := s.Release.Detect(ctx)
	if err != nil {
		return DiagnoseResult{}, err
	}
	if err := s.preflight(ctx, req.MinFreeBytes, req.ProbeURL); err != nil {
		return DiagnoseResult{}, err
	}
	report, err := s.scan(ctx, info, req.OfficialMirrors)
	if err != nil {
		return DiagnoseResult{}, err
	}
	return DiagnoseResult{Report: report}, nil
}

// scan builds the diagnosis section of the run report: classified
// repository entries, package records for the full target list, and
// graphics-stack residual configurations.
func (s Service) scan(ctx context.Context, info types.ReleaseInfo, extraMirrors []string) (types.RunReport, error) {
	classifier := core.NewClassifier(policies.NewMirrorPolicy(extraMirrors))
	report := types.RunReport{
		Codename: info.EffectiveCodename(),
		Arch:     info.Arch,
	}

	repositories, err := s.Sources.ListRepositories()
	if err != nil {
		return types.RunReport{}, err
	}
	for _, entry := range repositories {
		report.Repositories = append(report.Repositories, classifier.ClassifyRepository(entry))
	}

	deps, err := core.ResolveReleaseDependencies(report.Codename)
	if err != nil {
		return types.RunReport{}, err
	}
	targets := append(append([]string(nil), core.GraphicsPackages...), deps...)

	residual, err := s.Dpkg.ResidualConfigs(ctx)
	if err != nil {
		return types.RunReport{}, err
	}
	residualSet := make(map[string]struct{})
	for _, name := range residual {
		if core.IsGraphicsResidual(name) {
			residualSet[name] = struct{}{}
			report.Residual = append(report.Residual, name)
		}
	}

	for _, name := range targets {
		policy, err := s.Apt.Policy(ctx, name)
		if err != nil {
			return types.RunReport{}, err
		}
		record := classifier.ClassifyPackage(policy)
		_, record.ResidualConfig = residualSet[record.Name]
		report.Packages = append(report.Packages, record)
	}

	log.Ctx(ctx).Debug().
		Int("repositories", len(report.Repositories)).
		Int("packages", len(report.Packages)).
		Int("foreign", len(report.ForeignPackages())).
		Int("residual", len(report.Residual)).
		Msg("scan complete")
	return report, nil
}
