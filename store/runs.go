package store

import (
	"fmt"
	"time"
)

var runsBucket = []byte("runs")

// RunInfo records how a job run ended.
type RunInfo struct {
	ID       string    `json:"id"`
	Job      string    `json:"job"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Units    int       `json:"units"`
	Skipped  int       `json:"skipped"`
	Complete bool      `json:"complete"`
	Rows     int       `json:"output_rows"`
}

func PutRun(b Backend, info RunInfo) error {
	return putJSON(b, runsBucket, []byte(info.ID), info)
}

func GetRun(b Backend, id string) (RunInfo, error) {
	var info RunInfo
	ok, err := getJSON(b, runsBucket, []byte(id), &info)
	if err != nil {
		return info, err
	}
	if !ok {
		return info, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return info, nil
}
