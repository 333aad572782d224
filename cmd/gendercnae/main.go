package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emptyOVO/mrkit-gender/batch"
)

func getenvDefault(name, d string) string {
	v := os.Getenv(name)
	if v == "" {
		return d
	}
	return v
}

func getenvInt(name string, d int) int {
	v := os.Getenv(name)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return n
}

func getenvBool(name string, d bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return d
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return d
	}
	return b
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options shared by every command
type globalOptions struct {
	logLevel     string
	allowPartial bool
	noProgress   bool
}

func main() {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "gendercnae",
		Short: "Classify registry partners by first name and aggregate per company and CNAE segment",
		Long: `gendercnae classifies the presumed gender of business-registry partners from
their first names and aggregates the labels per company (partners job) and
per CNAE segment (categories job). Units run on local goroutines or on gRPC
workers started with the worker command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", getenvDefault("GENDERCNAE_LOG_LEVEL", "info"), "trace|debug|info|warn|error")
	root.PersistentFlags().BoolVar(&opts.allowPartial, "allow-partial", getenvBool("GENDERCNAE_ALLOW_PARTIAL", false), "Exit 0 even when some units failed")
	root.PersistentFlags().BoolVar(&opts.noProgress, "no-progress", false, "Do not draw the unit progress bar")

	root.AddCommand(
		newRunCmd(opts),
		newPartnersCmd(opts),
		newCategoriesCmd(opts),
		newWorkerCmd(),
		newCheckCmd(),
	)
	must(root.Execute())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func defaultWorkers() int {
	return getenvInt("GENDERCNAE_WORKERS", runtime.NumCPU())
}

// runFlow runs cfg with a progress bar, prints the summary and exits non-zero
// on an incomplete run unless partial results were allowed.
func runFlow(opts *globalOptions, cfg batch.FlowConfig) {
	ctx, cancel := signalContext()
	defer cancel()

	hooks, finish := progressHooks(!opts.noProgress)
	report, err := batch.RunFlowWithHooks(ctx, cfg, hooks)
	finish()
	printReport(os.Stdout, report)
	must(err)
	if !report.Complete() {
		fmt.Fprintln(os.Stderr, "INCOMPLETE: some units failed; the written statistics do not cover the whole input")
		if !opts.allowPartial {
			os.Exit(2)
		}
	}
}

func progressHooks(enabled bool) (batch.FlowHooks, func()) {
	if !enabled {
		return batch.FlowHooks{}, func() {}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("units"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	failed := 0
	hooks := batch.FlowHooks{OnUnit: func(job, unitID string, restored bool, err error) {
		if err != nil {
			failed++
		}
		desc := job + " units"
		if failed > 0 {
			desc = fmt.Sprintf("%s units (%d failed)", job, failed)
		}
		bar.Describe(desc)
		bar.Add(1)
	}}
	return hooks, func() { bar.Finish() }
}

func printReport(w io.Writer, r batch.FlowReport) {
	if r.RunID == "" {
		return
	}
	fmt.Fprintf(w, "run %s\n", r.RunID)
	for _, j := range []*batch.JobReport{r.Partners, r.Categories} {
		if j == nil {
			continue
		}
		fmt.Fprintf(w, "  %v\n", j)
		fmt.Fprintf(w, "    read %s rows (%s), %s rows dropped, %s blank lines\n",
			humanize.Comma(j.Read.Rows), humanize.Bytes(uint64(j.Read.Bytes)), humanize.Comma(j.Read.SkippedRows), humanize.Comma(j.Read.BlankLines))
		if j.Job == batch.JobCategories {
			fmt.Fprintf(w, "    companies: %s filtered by status, %s invalid capital, %s without partners, %s bad codes\n",
				humanize.Comma(j.Join.Filtered), humanize.Comma(j.Join.Invalid), humanize.Comma(j.Join.Missing), humanize.Comma(j.BadCodes))
		}
		d := j.Durations
		fmt.Fprintf(w, "    source=%s transform=%s sink=%s total=%s\n",
			d.SourceDuration.Round(time.Millisecond), d.TransformDuration.Round(time.Millisecond),
			d.SinkDuration.Round(time.Millisecond), d.TotalDuration.Round(time.Millisecond))
		for _, f := range j.Failures {
			fmt.Fprintf(w, "    failed %s\n", f)
		}
	}
}

// sinkFlags are the outputs a job command can write.
type sinkFlags struct {
	parquet    string
	sqlite     string
	mysqlTable string
	table      string
	replace    bool
}

func (f *sinkFlags) register(cmd *cobra.Command, table string) {
	cmd.Flags().StringVar(&f.parquet, "parquet", "", "Write the statistics to this parquet file")
	cmd.Flags().StringVar(&f.sqlite, "sqlite", "", "Write the statistics to this SQLite database")
	cmd.Flags().StringVar(&f.mysqlTable, "mysql-table", "", "Write the statistics to this MySQL table (connection from MYSQL_* variables)")
	cmd.Flags().StringVar(&f.table, "table", table, "Table name for --sqlite")
	cmd.Flags().BoolVar(&f.replace, "replace", getenvBool("SINK_REPLACE", true), "Empty SQL tables before writing")
}

func (f *sinkFlags) sinks() []batch.FlowSinkConfig {
	var out []batch.FlowSinkConfig
	if f.parquet != "" {
		out = append(out, batch.FlowSinkConfig{Type: "parquet", Parquet: batch.ParquetConfig{Path: f.parquet}})
	}
	if f.sqlite != "" {
		out = append(out, batch.FlowSinkConfig{
			Type:   "sqlite",
			DB:     batch.DBConfig{Driver: "sqlite", Path: f.sqlite},
			Config: batch.SinkConfig{TargetTable: f.table, Replace: f.replace},
		})
	}
	if f.mysqlTable != "" {
		out = append(out, batch.FlowSinkConfig{
			Type:   "mysql",
			DB:     mysqlFromEnv(),
			Config: batch.SinkConfig{TargetTable: f.mysqlTable, Replace: f.replace, BatchSize: getenvInt("SINK_BATCH_SIZE", 2000)},
		})
	}
	return out
}

func mysqlFromEnv() batch.DBConfig {
	return batch.DBConfig{
		Driver:   "mysql",
		Host:     getenvDefault("MYSQL_HOST", "127.0.0.1"),
		Port:     getenvInt("MYSQL_PORT", 3306),
		User:     getenvDefault("MYSQL_USER", "root"),
		Password: os.Getenv("MYSQL_PASSWORD"),
		Database: os.Getenv("MYSQL_DB"),
	}
}

// parseSegment reads "start:end".
func parseSegment(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("segment must look like start:end, got %q", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("segment start: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("segment end: %w", err)
	}
	return start, end, nil
}
