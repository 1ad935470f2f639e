package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dragon-Elec/gfx-doctor/internal/adapters"
	"github.com/dragon-Elec/gfx-doctor/internal/app"
)

type diagnoseOptions struct {
	Output  string
	Mirrors []string
}

func newDiagnoseCommand() *cobra.Command {
	opts := diagnoseOptions{}
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Scan repositories and graphics packages, report foreign origins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiagnose(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "text", "Report format: text or json")
	cmd.Flags().StringSliceVar(&opts.Mirrors, "official-mirror", nil, "Extra official mirror host(s)")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("official_mirrors", cmd.Flags().Lookup("official-mirror"))
	return cmd
}

func runDiagnose(ctx context.Context, cmd *cobra.Command, opts diagnoseOptions) error {
	mirrors, err := gatherMirrors(cmd, opts.Mirrors)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Diagnose(ctx, app.DiagnoseRequest{
		OfficialMirrors: mirrors,
		MinFreeBytes:    uint64(viper.GetInt64("min_free_mb")) << 20,
		ProbeURL:        viper.GetString("archive_probe_url"),
	})
	if err != nil {
		return err
	}

	switch resolveString(cmd, opts.Output, "output", "output") {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result.Report)
	case "text", "":
		renderReport(os.Stdout, result.Report)
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown report format %q", opts.Output))
	}
}

// gatherMirrors merges mirror hosts from the flag/env/config value with
// the optional mirrors file.
func gatherMirrors(cmd *cobra.Command, flagValue []string) ([]string, error) {
	mirrors := resolveStrings(cmd, flagValue, "official_mirrors", "official-mirror")
	path := viper.GetString("mirrors_file")
	if path == "" {
		return mirrors, nil
	}
	fromFile, err := adapters.LoadMirrorsFile(path)
	if err != nil {
		return nil, err
	}
	return append(mirrors, fromFile...), nil
}
