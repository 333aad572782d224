package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/batch"
	"github.com/emptyOVO/mrkit-gender/worker"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the flow described by a JSON config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := batch.LoadFlowConfig(path)
			if err != nil {
				return err
			}
			runFlow(opts, cfg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", getenvDefault("FLOW_CONFIG", "flow.json"), "Flow config file")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a flow config without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := batch.LoadFlowConfig(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (job %s, version %s)\n", path, cfg.Job, cfg.Version)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", getenvDefault("FLOW_CONFIG", "flow.json"), "Flow config file")
	return cmd
}

// transformFlags hold the options of the unit runner.
type transformFlags struct {
	runner      string
	workers     int
	addrs       []string
	spawn       int
	port        int
	perWorker   int
	policy      string
	unitTimeout string
}

func (f *transformFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.runner, "runner", getenvDefault("GENDERCNAE_RUNNER", "local"), "local|grpc")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", defaultWorkers(), "Concurrent units for the local runner")
	cmd.Flags().StringSliceVar(&f.addrs, "addrs", nil, "Worker addresses for the grpc runner")
	cmd.Flags().IntVar(&f.spawn, "spawn", 0, "Start this many in-process gRPC workers")
	cmd.Flags().IntVar(&f.port, "port", getenvInt("GENDERCNAE_PORT", 0), "First port of spawned workers (0 picks free ports)")
	cmd.Flags().IntVar(&f.perWorker, "per-worker", 2, "Units in flight per gRPC worker")
	cmd.Flags().StringVar(&f.policy, "policy", "fail-fast", "fail-fast|best-effort")
	cmd.Flags().StringVar(&f.unitTimeout, "unit-timeout", "", "Abandon a unit after this long, e.g. 30s")
}

func (f *transformFlags) config() batch.FlowTransformConfig {
	return batch.FlowTransformConfig{
		Runner:      f.runner,
		Workers:     f.workers,
		Addrs:       f.addrs,
		Spawn:       f.spawn,
		Port:        f.port,
		PerWorker:   f.perWorker,
		Policy:      f.policy,
		UnitTimeout: f.unitTimeout,
	}
}

// sourceFlags describe a delimited file input.
type sourceFlags struct {
	inputs    []string
	delimiter string
	batchSize int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.inputs, "input", "i", nil, "Input files or glob patterns")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", getenvDefault("GENDERCNAE_DELIMITER", ","), "Field delimiter")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", getenvInt("GENDERCNAE_BATCH_SIZE", 0), "Rows per unit")
	_ = cmd.MarkFlagRequired("input")
}

func (f *sourceFlags) config() batch.FlowSourceConfig {
	return batch.FlowSourceConfig{
		Type:      "file",
		Inputs:    f.inputs,
		Delimiter: f.delimiter,
		BatchSize: f.batchSize,
	}
}

// storeFlags select the checkpoint and entity store.
type storeFlags struct {
	path    string
	backend string
	runID   string
	resume  bool
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "store", getenvDefault("GENDERCNAE_STORE", ""), "Store file for checkpoints and entity statistics")
	cmd.Flags().StringVar(&f.backend, "store-backend", "bbolt", "bbolt|memory")
	cmd.Flags().StringVar(&f.runID, "run-id", "", "Run id; reuse it with --resume to continue a run")
	cmd.Flags().BoolVar(&f.resume, "resume", false, "Restore the units a previous run with the same --run-id finished")
}

func (f *storeFlags) config() batch.FlowStoreConfig {
	if f.path == "" && f.backend != "memory" {
		return batch.FlowStoreConfig{}
	}
	return batch.FlowStoreConfig{Backend: f.backend, Path: f.path, Resume: f.resume}
}

func newPartnersCmd(opts *globalOptions) *cobra.Command {
	var (
		src       sourceFlags
		tr        transformFlags
		st        storeFlags
		sinks     sinkFlags
		reference string
		nameField string
		keyField  string
		noStore   bool
	)
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Classify partner names and aggregate the labels per company",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := tr.config()
			t.NameField = nameField
			t.EntityField = keyField
			cfg := batch.FlowConfig{
				Job:       batch.JobPartners,
				RunID:     st.runID,
				Source:    src.config(),
				Reference: batch.FlowReferenceConfig{Path: reference},
				Transform: t,
				Store:     st.config(),
				Sinks:     sinks.sinks(),
			}
			if cfg.Store.Backend != "" && !noStore {
				cfg.Sinks = append(cfg.Sinks, batch.FlowSinkConfig{Type: "store"})
			}
			if len(cfg.Sinks) == 0 {
				return fmt.Errorf("no output: give --parquet, --sqlite, --mysql-table or --store")
			}
			runFlow(opts, cfg)
			return nil
		},
	}
	src.register(cmd)
	tr.register(cmd)
	st.register(cmd)
	sinks.register(cmd, batch.JobPartners)
	cmd.Flags().StringVarP(&reference, "reference", "r", getenvDefault("GENDERCNAE_REFERENCE", ""), "Reference table first_name,classification")
	cmd.Flags().StringVar(&nameField, "name-field", "", "Partner name column")
	cmd.Flags().StringVar(&keyField, "entity-field", "", "Company key column")
	cmd.Flags().BoolVar(&noStore, "no-store-sink", false, "Keep checkpoints in --store but do not write the entity table there")
	return cmd
}

func newCategoriesCmd(opts *globalOptions) *cobra.Command {
	var (
		src         sourceFlags
		tr          transformFlags
		st          storeFlags
		sinks       sinkFlags
		segment     string
		entityTable string
		status      string
	)
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Join companies with stored partner statistics and sum them per CNAE segment",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseSegment(segment)
			if err != nil {
				return err
			}
			if st.path == "" {
				return fmt.Errorf("categories reads the partner statistics from --store")
			}
			cfg := batch.FlowConfig{
				Job:       batch.JobCategories,
				RunID:     st.runID,
				Transform: tr.config(),
				Store:     st.config(),
				Company: batch.FlowCompanyConfig{
					Source:      src.config(),
					EntityTable: entityTable,
					Sinks:       sinks.sinks(),
				},
			}
			cfg.Company.Segment.Start, cfg.Company.Segment.End = start, end
			cfg.Company.Fields.Status = status
			if len(cfg.Company.Sinks) == 0 {
				return fmt.Errorf("no output: give --parquet, --sqlite or --mysql-table")
			}
			runFlow(opts, cfg)
			return nil
		},
	}
	src.register(cmd)
	tr.register(cmd)
	st.register(cmd)
	sinks.register(cmd, batch.JobCategories)
	cmd.Flags().StringVar(&segment, "segment", "0:2", "Code prefix start:end used as the category")
	cmd.Flags().StringVar(&entityTable, "entity-table", batch.JobPartners, "Entity table in --store written by the partners job")
	cmd.Flags().StringVar(&status, "status", "", "Keep companies with this status (* keeps all)")
	return cmd
}

func newWorkerCmd() *cobra.Command {
	var (
		addr      string
		reference string
		cfg       worker.ServerConfig
	)
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Serve classification units over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(reference) == "" {
				return fmt.Errorf("worker needs --reference")
			}
			cfg.Reference = reference
			ctx, cancel := signalContext()
			defer cancel()
			log.Infof("[Worker] starting on %s", addr)
			return mapreduce.StartWorker(ctx, addr, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", getenvDefault("GENDERCNAE_WORKER_ADDR", fmt.Sprintf(":%d", mapreduce.DefaultPort)), "Listen address; the next free port is used when taken")
	cmd.Flags().StringVarP(&reference, "reference", "r", getenvDefault("GENDERCNAE_REFERENCE", ""), "Reference table first_name,classification")
	cmd.Flags().StringVar(&cfg.Fields.NameField, "name-field", "", "Partner name column")
	cmd.Flags().StringVar(&cfg.Fields.EntityField, "entity-field", "", "Company key column")
	cmd.Flags().IntVar(&cfg.MaxMsgBytes, "max-msg-bytes", 0, "Largest gRPC message accepted")
	return cmd
}
