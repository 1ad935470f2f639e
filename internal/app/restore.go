package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/dragon-Elec/gfx-doctor/internal/core"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// Restore runs the full pipeline: pre-flight, scan, plan, confirmation,
// pin + force-downgrade, verification, cleanup. In dry-run mode it
// stops after planning and reports every action it would take. The pin
// file is removed on every exit path, including failure and external
// interruption: the apt subprocesses inherit ctx, so cancellation kills
// them and unwinds through the deferred removal.
func (s Service) Restore(ctx context.Context, req RestoreRequest) (RestoreResult, error) {
	info, err := s.Release.Detect(ctx)
	if err != nil {
		return RestoreResult{}, err
	}
	if err := s.preflight(ctx, req.MinFreeBytes, req.ProbeURL); err != nil {
		return RestoreResult{}, err
	}
	report, err := s.scan(ctx, info, req.OfficialMirrors)
	if err != nil {
		return RestoreResult{}, err
	}

	plan, err := core.BuildPlan(ctx, report.Packages, report.Residual, report.Codename)
	if err != nil {
		return RestoreResult{}, err
	}
	result := RestoreResult{State: types.RunStatePlanned, Report: report}

	if plan.Empty() {
		result.Report.Actions = append(result.Report.Actions, types.Action{
			Stage:       "plan",
			Description: "graphics stack is already stock; nothing to restore",
			Outcome:     types.ActionOutcomeSkipped,
		})
		return result, nil
	}

	if req.DryRun {
		for _, action := range plannedActions(plan) {
			action.Outcome = types.ActionOutcomeSimulated
			result.Report.Actions = append(result.Report.Actions, action)
		}
		return result, nil
	}
	result.Report.Actions = append(result.Report.Actions, plannedActions(plan)...)

	if !req.AssumeYes {
		confirmed, err := s.Prompt.Confirm(fmt.Sprintf(
			"This will force-downgrade %d package(s) and purge %d remnant(s).",
			len(plan.Directives), len(plan.Purge)))
		if err != nil {
			return result, err
		}
		if !confirmed {
			return result, errbuilder.New().
				WithCode(errbuilder.CodeCanceled).
				WithMsg("user cancelled; no changes were made")
		}
	}
	result.State = types.RunStateConfirmed

	if len(plan.Directives) > 0 {
		remove, err := s.Pins.Apply(plan.Directives)
		if err != nil {
			return result, err
		}
		defer func() {
			if err := remove(); err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("cleanup: failed to remove pin file")
				return
			}
			log.Ctx(ctx).Info().Msg("cleanup: temporary pin file removed")
		}()
	}
	result.State = types.RunStateApplying

	steps := []struct {
		description string
		run         func(context.Context) error
	}{
		{"apt-get update", s.Apt.Update},
		{"apt-get dist-upgrade", s.Apt.DistUpgrade},
		{"apt-get autoremove", s.Apt.AutoRemove},
	}
	if len(plan.Purge) > 0 {
		steps = append(steps, struct {
			description string
			run         func(context.Context) error
		}{
			fmt.Sprintf("apt-get purge %s", strings.Join(plan.Purge, " ")),
			func(ctx context.Context) error { return s.Apt.Purge(ctx, plan.Purge) },
		})
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			result.State = types.RunStateFailed
			result.Report.Actions = append(result.Report.Actions, types.Action{
				Stage:       "apply",
				Description: step.description,
				Outcome:     types.ActionOutcomeFailed,
			})
			// Already-applied package changes stay as-is; rolling back a
			// partial transaction is less safe than leaving it.
			return result, err
		}
		result.Report.Actions = append(result.Report.Actions, types.Action{
			Stage:       "apply",
			Description: step.description,
			Outcome:     types.ActionOutcomeApplied,
		})
	}

	verification, err := s.scan(ctx, info, req.OfficialMirrors)
	if err != nil {
		result.State = types.RunStateFailed
		return result, err
	}
	result.Report.Packages = verification.Packages
	result.Report.Residual = verification.Residual
	outcome := types.ActionOutcomeApplied
	description := "post-restore verification: graphics stack is stock"
	if foreign := verification.ForeignPackages(); len(foreign) > 0 {
		outcome = types.ActionOutcomeFailed
		description = fmt.Sprintf("post-restore verification: %d package(s) still foreign", len(foreign))
	}
	result.Report.Actions = append(result.Report.Actions, types.Action{
		Stage:       "verify",
		Description: description,
		Outcome:     outcome,
	})

	result.State = types.RunStateApplied
	return result, nil
}

func plannedActions(plan core.Plan) []types.Action {
	var actions []types.Action
	for _, directive := range plan.Directives {
		actions = append(actions, types.Action{
			Stage:       "pin",
			Description: fmt.Sprintf("pin %q to %q at priority %d", directive.Package, directive.Pin, directive.Priority),
			Outcome:     types.ActionOutcomePlanned,
		})
	}
	for _, name := range plan.Purge {
		actions = append(actions, types.Action{
			Stage:       "purge",
			Description: fmt.Sprintf("purge residual configuration of %s", name),
			Outcome:     types.ActionOutcomePlanned,
		})
	}
	actions = append(actions, types.Action{
		Stage:       "apply",
		Description: "apt-get update, dist-upgrade, autoremove under temporary pins",
		Outcome:     types.ActionOutcomePlanned,
	})
	return actions
}
