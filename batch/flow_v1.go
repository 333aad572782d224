package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/reader"
)

const FlowVersionV1 = "v1"

// LoadFlowConfig decodes a JSON flow file. Unknown fields are rejected.
func LoadFlowConfig(path string) (FlowConfig, error) {
	var cfg FlowConfig
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ValidateFlowConfig validates v1 flow schema and required fields.
func ValidateFlowConfig(cfg FlowConfig) error {
	cfg.withDefaults()

	if strings.TrimSpace(cfg.Version) != FlowVersionV1 {
		return fmt.Errorf("unsupported version: %q (expected %q)", cfg.Version, FlowVersionV1)
	}
	switch cfg.Job {
	case JobPartners, JobCategories, JobAll:
	default:
		return fmt.Errorf("unsupported job: %q", cfg.Job)
	}
	partners := cfg.Job != JobCategories
	categories := cfg.Job != JobPartners

	if partners {
		if err := validateSource("source", cfg.Source); err != nil {
			return err
		}
		if err := validateTransform(cfg.Transform); err != nil {
			return err
		}
		remoteOnly := cfg.Transform.Runner == "grpc" && cfg.Transform.Spawn == 0
		if !remoteOnly && strings.TrimSpace(cfg.Reference.Path) == "" {
			return fmt.Errorf("reference.path is required unless transform uses remote grpc workers")
		}
		if err := validateDelimiter("reference.delimiter", cfg.Reference.Delimiter); err != nil {
			return err
		}
		for i, s := range cfg.Sinks {
			if err := validateSink(fmt.Sprintf("sinks[%d]", i), s, cfg.Store, true); err != nil {
				return err
			}
		}
	}

	if categories {
		if err := validateSource("company.source", cfg.Company.Source); err != nil {
			return err
		}
		if err := cfg.Company.Segment.Validate(); err != nil {
			return fmt.Errorf("company.segment: %w", err)
		}
		if cfg.Job == JobCategories && !cfg.Store.enabled() {
			return fmt.Errorf("job categories reads entity statistics from the store: store.path or store.backend=memory is required")
		}
		for i, s := range cfg.Company.Sinks {
			if err := validateSink(fmt.Sprintf("company.sinks[%d]", i), s, cfg.Store, false); err != nil {
				return err
			}
		}
	}

	switch strings.ToLower(cfg.Store.Backend) {
	case "", "bbolt", "bolt", "memory":
	default:
		return fmt.Errorf("unsupported store.backend: %q", cfg.Store.Backend)
	}
	if cfg.Store.Resume {
		if !cfg.Store.enabled() {
			return fmt.Errorf("store.resume needs a store")
		}
		if strings.TrimSpace(cfg.RunID) == "" {
			return fmt.Errorf("store.resume needs run_id")
		}
	}
	return nil
}

func validateSource(prefix string, c FlowSourceConfig) error {
	switch c.Type {
	case "file":
		if len(c.Inputs) == 0 {
			return fmt.Errorf("%s.inputs is required for file source", prefix)
		}
	case "sql":
		if err := c.DB.validate(prefix + ".db"); err != nil {
			return err
		}
		if strings.TrimSpace(c.Config.Table) == "" {
			return fmt.Errorf("%s.config.table is required for sql source", prefix)
		}
	default:
		return fmt.Errorf("unsupported %s.type: %s", prefix, c.Type)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%s.batch_size: %w", prefix, reader.ErrInvalidBatchSize)
	}
	if _, err := reader.ParseErrorPolicy(c.OnParseError); err != nil {
		return fmt.Errorf("%s.on_parse_error: %w", prefix, err)
	}
	return validateDelimiter(prefix+".delimiter", c.Delimiter)
}

func validateDelimiter(field, d string) error {
	if d == "" {
		return nil
	}
	if utf8.RuneCountInString(d) != 1 || strings.ContainsAny(d, "\"\r\n") {
		return fmt.Errorf("%s must be a single character other than a quote or line break: %q", field, d)
	}
	return nil
}

func validateTransform(c FlowTransformConfig) error {
	switch c.Runner {
	case "local":
	case "grpc":
		if len(c.Addrs) == 0 && c.Spawn <= 0 {
			return fmt.Errorf("transform.runner=grpc needs transform.addrs or transform.spawn")
		}
		if len(c.Addrs) > 0 && c.Spawn > 0 {
			return fmt.Errorf("transform.addrs and transform.spawn are exclusive")
		}
	default:
		if _, err := runnerFor(c.Runner); err != nil {
			return err
		}
	}
	if _, err := mapreduce.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("transform.policy: %w", err)
	}
	if _, err := parseUnitTimeout(c.UnitTimeout); err != nil {
		return err
	}
	return nil
}

func parseUnitTimeout(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid transform.unit_timeout: %q", s)
	}
	return d, nil
}

func validateSink(prefix string, s FlowSinkConfig, st FlowStoreConfig, entities bool) error {
	switch s.Type {
	case "parquet":
		if strings.TrimSpace(s.Parquet.Path) == "" {
			return fmt.Errorf("%s.parquet.path is required for parquet sink", prefix)
		}
	case "mysql", "sqlite":
		if err := s.DB.validate(prefix + ".db"); err != nil {
			return err
		}
		if strings.TrimSpace(s.Config.TargetTable) == "" {
			return fmt.Errorf("%s.config.targettable is required for %s sink", prefix, s.Type)
		}
	case "store":
		if !entities {
			return fmt.Errorf("%s: store sink only holds entity statistics", prefix)
		}
		if !st.enabled() {
			return fmt.Errorf("%s: store sink needs store.path or store.backend=memory", prefix)
		}
	default:
		return fmt.Errorf("unsupported %s.type: %s", prefix, s.Type)
	}
	return nil
}
