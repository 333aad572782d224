package store

import "fmt"

// Checkpoints keeps the finished partial of every unit of one run, so that a
// rerun with the same run id skips those units.
type Checkpoints[P any] struct {
	backend Backend
	bucket  []byte
}

func NewCheckpoints[P any](b Backend, runID string) *Checkpoints[P] {
	return &Checkpoints[P]{backend: b, bucket: []byte("checkpoints/" + runID)}
}

func (c *Checkpoints[P]) Load(unitID string) (P, bool, error) {
	var p P
	ok, err := getJSON(c.backend, c.bucket, []byte(unitID), &p)
	if err != nil {
		return p, false, fmt.Errorf("checkpoint %s: %w", unitID, err)
	}
	return p, ok, nil
}

func (c *Checkpoints[P]) Save(unitID string, p P) error {
	return putJSON(c.backend, c.bucket, []byte(unitID), p)
}

// Units lists the ids of the checkpointed units.
func (c *Checkpoints[P]) Units() ([]string, error) {
	var ids []string
	err := c.backend.ForEach(c.bucket, func(k, _ []byte) error {
		ids = append(ids, string(k))
		return nil
	})
	return ids, err
}

// Clear drops every checkpoint of the run.
func (c *Checkpoints[P]) Clear() error {
	return c.backend.DeleteBucket(c.bucket)
}
