package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dragon-Elec/gfx-doctor/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "GFX_DOCTOR"

type RootConfig struct {
	ConfigFile  string
	LogLevel    string
	PinDir      string
	MirrorsFile string
}

func ExecuteContext(ctx context.Context) {
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "gfx-doctor",
		Short:         "Diagnose and restore a PPA-tainted graphics stack to stock",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.PinDir, "pin-dir", "", "Apt preferences directory for the temporary pin file")
	cmd.PersistentFlags().StringVar(&cfg.MirrorsFile, "mirrors-file", "", "YAML file with extra official mirror hosts")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("pin_dir", cmd.PersistentFlags().Lookup("pin-dir"))
	_ = viper.BindPFlag("mirrors_file", cmd.PersistentFlags().Lookup("mirrors-file"))

	cmd.AddCommand(newDiagnoseCommand())
	cmd.AddCommand(newRestoreCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("gfx-doctor")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/gfx-doctor")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService() app.Service {
	return app.NewService(viper.GetString("pin_dir"))
}

// exitCodeForError maps the error taxonomy to process exit codes:
// 2 invalid usage, 3 user cancellation, 4 pre-flight/environment/plan
// failure, 5 package-manager execution failure.
func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeCanceled:
		return 3
	case errbuilder.CodePermissionDenied,
		errbuilder.CodeFailedPrecondition,
		errbuilder.CodeResourceExhausted,
		errbuilder.CodeUnavailable,
		errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
