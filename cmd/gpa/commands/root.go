package commands

import (
	"context"
	"gpacalc/internal/components/telemetry"
	"gpacalc/lib/serviceutil"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var verbose *bool

var otelSetup telemetry.Telemetry

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

var rootCmd = &cobra.Command{
	Use:           "gpa",
	Short:         "gpa fetches a student's course records and computes their credit-hour weighted GPA.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		var err error
		otelSetup, err = telemetry.SetupFromEnv(cmd.Context(), "gpa")
		if err != nil {
			slog.Debug("telemetry disabled", "err", err)
		}
	},
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := otelSetup.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	shutdownTelemetry()
	if err != nil {
		serviceutil.Fatal("gpa failed", err)
	}
}
