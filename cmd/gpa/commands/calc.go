package commands

import (
	"context"
	"fmt"
	"gpacalc/internal/components/telemetry"
	"gpacalc/internal/gpa"
	"gpacalc/internal/studentcourses"
	"gpacalc/lib/restyutil"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

const (
	report_calc_gpa  = "calc.gpa"
	report_calc_dump = "calc.dump"
)

var tracer = otel.Tracer("gpacalc/cmd/gpa")

var (
	configPath *string
	flagConfig Config
	asTable    *bool
	dumpHttp   *string
)

func init() {
	flags := calcCmd.Flags()
	configPath = flags.String("config", "", "Path to a json5 config file, defaults to the nearest gpa.json5.")
	flags.StringVar(&flagConfig.ApiUrl, "url", "", "The student courses endpoint.")
	flags.StringVar(&flagConfig.Token, "token", "", "The bearer token to authenticate with.")
	flags.StringVar(&flagConfig.StudentId, "student", "", "The id of the student.")
	asTable = flags.Bool("table", false, "Render the course records as a table.")
	dumpHttp = flags.String("dump-http", "", "A directory to write the raw HTTP exchange to.")
	rootCmd.AddCommand(calcCmd)
}

var calcCmd = &cobra.Command{
	Use:   "calc [--url <endpoint>] [--token <token>] [--student <id>] [--table] [--dump-http <dir>]",
	Short: "Fetches the student's course records and prints their GPA.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(*configPath, flagConfig)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg, runOptions{
			Table:   *asTable,
			DumpDir: *dumpHttp,
		}, cmd.OutOrStdout(), telemetry.SlogAPI{})
	},
}

type runOptions struct {
	Table   bool
	DumpDir string
}

func run(ctx context.Context, cfg Config, opts runOptions, stdout io.Writer, tel telemetry.API) error {
	ctx, span := tracer.Start(ctx, "gpa:calc")
	defer span.End()

	var dump restyutil.InstrumentOutput
	if opts.DumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return fmt.Errorf("create http dump directory: %w", err)
		}
		tel.ReportDebug(report_calc_dump, "writing http exchanges", out.Directory())
		dump = out
	}

	client, err := studentcourses.NewClient(studentcourses.ClientOptions{
		BaseUrl:    cfg.ApiUrl,
		Token:      cfg.Token,
		DumpOutput: dump,
	}, tel)
	if err != nil {
		return err
	}

	res, err := client.Fetch(ctx, cfg.StudentId)
	if err != nil {
		return fmt.Errorf("fetch student courses: %w", err)
	}

	records, err := gpa.Extract(ctx, res.Body, tel)
	if err != nil {
		return fmt.Errorf("extract course records: %w", err)
	}

	stats := gpa.Aggregate(records)
	if !stats.Defined {
		tel.ReportWarning(report_calc_gpa, "no counted course has credit hours, GPA is undefined")
	}

	report := gpa.Report
	if opts.Table {
		report = gpa.ReportTable
	}
	return report(stdout, records, stats)
}
