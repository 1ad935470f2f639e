package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dragon-Elec/gfx-doctor/internal/app"
)

type restoreOptions struct {
	DryRun    bool
	AssumeYes bool
	Mirrors   []string
}

func newRestoreCommand() *cobra.Command {
	opts := restoreOptions{}
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Force-downgrade foreign graphics packages to the official versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRestore(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report planned actions without changing the system")
	cmd.Flags().BoolVar(&opts.AssumeYes, "assume-yes", false, "Skip the interactive confirmation")
	cmd.Flags().StringSliceVar(&opts.Mirrors, "official-mirror", nil, "Extra official mirror host(s)")
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("assume_yes", cmd.Flags().Lookup("assume-yes"))
	_ = viper.BindPFlag("official_mirrors", cmd.Flags().Lookup("official-mirror"))
	return cmd
}

func runRestore(ctx context.Context, cmd *cobra.Command, opts restoreOptions) error {
	mirrors, err := gatherMirrors(cmd, opts.Mirrors)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Restore(ctx, app.RestoreRequest{
		DryRun:          resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		AssumeYes:       resolveBool(cmd, opts.AssumeYes, "assume_yes", "assume-yes"),
		OfficialMirrors: mirrors,
		MinFreeBytes:    uint64(viper.GetInt64("min_free_mb")) << 20,
		ProbeURL:        viper.GetString("archive_probe_url"),
	})
	if len(result.Report.Actions) > 0 || err == nil {
		renderReport(os.Stdout, result.Report)
	}
	if err != nil {
		return err
	}
	fmt.Printf("run finished in state: %s\n", result.State)
	return nil
}
