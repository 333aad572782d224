package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/store"
)

// Jobs a flow can run. JobAll runs the partner job and feeds its result
// straight into the category job.
const (
	JobPartners   = "partners"
	JobCategories = "categories"
	JobAll        = "all"
)

// FlowConfig describes a source -> classify/aggregate -> sink run.
type FlowConfig struct {
	Version   string              `json:"version"`
	Job       string              `json:"job"`
	RunID     string              `json:"run_id"`
	Source    FlowSourceConfig    `json:"source"`
	Reference FlowReferenceConfig `json:"reference"`
	Transform FlowTransformConfig `json:"transform"`
	Company   FlowCompanyConfig   `json:"company"`
	Store     FlowStoreConfig     `json:"store"`
	Sinks     []FlowSinkConfig    `json:"sinks"`
}

// FlowSourceConfig locates delimited input: files matching Inputs, or a SQL
// table exported into shards first.
type FlowSourceConfig struct {
	Type         string       `json:"type"`
	Inputs       []string     `json:"inputs"`
	Delimiter    string       `json:"delimiter"`
	BatchSize    int          `json:"batch_size"`
	MaxRowBytes  int          `json:"max_row_bytes"`
	OnParseError string       `json:"on_parse_error"`
	DB           DBConfig     `json:"db"`
	Config       SourceConfig `json:"config"`
}

type FlowReferenceConfig struct {
	Path        string `json:"path"`
	NameColumn  string `json:"name_column"`
	LabelColumn string `json:"label_column"`
	Delimiter   string `json:"delimiter"`
}

type FlowTransformConfig struct {
	Runner      string   `json:"runner"`
	Workers     int      `json:"workers"`
	QueueDepth  int      `json:"queue_depth"`
	Addrs       []string `json:"addrs"`
	Spawn       int      `json:"spawn"`
	Port        int      `json:"port"`
	PerWorker   int      `json:"per_worker"`
	Policy      string   `json:"policy"`
	UnitTimeout string   `json:"unit_timeout"`
	NameField   string   `json:"name_field"`
	EntityField string   `json:"entity_field"`
}

// FlowCompanyConfig drives the category job.
type FlowCompanyConfig struct {
	Source      FlowSourceConfig    `json:"source"`
	Fields      stats.CompanyConfig `json:"fields"`
	Segment     stats.Segment       `json:"segment"`
	EntityTable string              `json:"entity_table"`
	Sinks       []FlowSinkConfig    `json:"sinks"`
}

// FlowStoreConfig enables checkpoints, run records and the entity table.
// Backend "memory" needs no path; it lives as long as the flow.
type FlowStoreConfig struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
	Resume  bool   `json:"resume"`
}

func (c FlowStoreConfig) enabled() bool {
	return strings.EqualFold(c.Backend, "memory") || strings.TrimSpace(c.Path) != ""
}

// FlowSinkConfig is one output. Type is parquet, mysql, sqlite or store.
type FlowSinkConfig struct {
	Type    string        `json:"type"`
	Parquet ParquetConfig `json:"parquet"`
	DB      DBConfig      `json:"db"`
	Config  SinkConfig    `json:"config"`
	// Table names the entity table of a store sink.
	Table string `json:"table"`
}

func (c *FlowSourceConfig) withDefaults() {
	if c.Type == "" {
		c.Type = "file"
	}
	if c.Type == "sqlite" {
		c.DB.Driver = "sqlite"
		c.Type = "sql"
	}
	c.Config.WithDefaults()
	if c.Delimiter == "" {
		c.Delimiter = c.Config.Delimiter
	}
	c.Config.Delimiter = c.Delimiter
}

func (c *FlowSinkConfig) withDefaults() {
	switch c.Type {
	case "sqlite":
		c.DB.Driver = "sqlite"
		c.Config.Dialect = "sqlite"
	case "mysql":
		c.Config.Dialect = "mysql"
	}
	c.Parquet.WithDefaults()
	c.Config.WithDefaults()
}

func (c *FlowConfig) withDefaults() {
	if c.Version == "" {
		c.Version = FlowVersionV1
	}
	if c.Job == "" {
		c.Job = JobPartners
	}
	c.Source.withDefaults()
	c.Company.Source.withDefaults()
	if c.Transform.Runner == "" {
		c.Transform.Runner = "local"
	}
	if c.Transform.Workers <= 0 {
		c.Transform.Workers = 16
	}
	if c.Transform.QueueDepth <= 0 {
		c.Transform.QueueDepth = c.Transform.Workers
	}
	if c.Transform.PerWorker <= 0 {
		c.Transform.PerWorker = 2
	}
	c.Company.Fields.WithDefaults()
	c.Company.Segment.WithDefaults()
	if c.Company.EntityTable == "" {
		c.Company.EntityTable = JobPartners
	}
	// the sink slices may be shared with the caller
	c.Sinks = append([]FlowSinkConfig(nil), c.Sinks...)
	c.Company.Sinks = append([]FlowSinkConfig(nil), c.Company.Sinks...)
	for i := range c.Sinks {
		c.Sinks[i].withDefaults()
		if c.Sinks[i].Table == "" {
			c.Sinks[i].Table = c.Company.EntityTable
		}
	}
	for i := range c.Company.Sinks {
		c.Company.Sinks[i].withDefaults()
	}
}

// FlowBenchmarkResult captures source/transform/sink stage durations.
type FlowBenchmarkResult struct {
	SourceDuration    time.Duration
	TransformDuration time.Duration
	SinkDuration      time.Duration
	TotalDuration     time.Duration
}

func (b FlowBenchmarkResult) Plus(o FlowBenchmarkResult) FlowBenchmarkResult {
	return FlowBenchmarkResult{
		SourceDuration:    b.SourceDuration + o.SourceDuration,
		TransformDuration: b.TransformDuration + o.TransformDuration,
		SinkDuration:      b.SinkDuration + o.SinkDuration,
		TotalDuration:     b.TotalDuration + o.TotalDuration,
	}
}

// FlowHooks observe a running flow. Hooks run on the folding goroutine.
type FlowHooks struct {
	// OnUnit is called once per finished unit; err is nil on success.
	OnUnit func(job, unitID string, restored bool, err error)
}

// FlowReport is what RunFlow returns. A job that did not run is nil.
type FlowReport struct {
	RunID      string
	Partners   *JobReport
	Categories *JobReport
	Durations  FlowBenchmarkResult
}

// Complete reports whether every job that ran folded all of its units.
func (r FlowReport) Complete() bool {
	for _, j := range []*JobReport{r.Partners, r.Categories} {
		if j != nil && !j.Complete {
			return false
		}
	}
	return true
}

// RunFlow executes the job selected by cfg.
func RunFlow(ctx context.Context, cfg FlowConfig) (FlowReport, error) {
	return RunFlowWithHooks(ctx, cfg, FlowHooks{})
}

// RunFlowWithHooks is RunFlow reporting progress through hooks.
func RunFlowWithHooks(ctx context.Context, cfg FlowConfig, hooks FlowHooks) (FlowReport, error) {
	started := time.Now()
	cfg.withDefaults()
	if err := ValidateFlowConfig(cfg); err != nil {
		return FlowReport{}, err
	}
	report := FlowReport{RunID: cfg.RunID}
	if report.RunID == "" {
		report.RunID = uuid.New().String()
	}

	var backend store.Backend
	if cfg.Store.enabled() {
		b, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
		if err != nil {
			return report, err
		}
		defer b.Close()
		backend = b
	}
	env := &jobEnv{
		cfg:     cfg,
		runID:   report.RunID,
		backend: backend,
		hooks:   hooks,
	}
	log.Infof("[Flow] run %s: job %s", report.RunID, cfg.Job)

	var lookup stats.EntityLookup
	if cfg.Job == JobPartners || cfg.Job == JobAll {
		jr, value, err := runPartnerJob(ctx, env)
		report.Partners = jr
		if jr != nil {
			report.Durations = report.Durations.Plus(jr.Durations)
		}
		if err != nil {
			return report, fmt.Errorf("partners: %w", err)
		}
		lookup = value
	}
	if cfg.Job == JobCategories || cfg.Job == JobAll {
		if lookup == nil {
			lookup = store.NewEntityStore(backend, cfg.Company.EntityTable)
		}
		jr, err := runCategoryJob(ctx, env, lookup)
		report.Categories = jr
		if jr != nil {
			report.Durations = report.Durations.Plus(jr.Durations)
		}
		if err != nil {
			return report, fmt.Errorf("categories: %w", err)
		}
	}
	report.Durations.TotalDuration = time.Since(started)
	return report, nil
}
