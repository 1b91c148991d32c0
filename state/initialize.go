package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"colcss/columns"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// NewGenerator creates column generator seeded with configured defaults.
// Without configuration built-in defaults are used.
func (e *LocalEnv) NewGenerator() (*columns.Generator, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	if e.Cfg == nil {
		return columns.New(log), nil
	}
	opts, err := e.Cfg.Generator.Options()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare generator: %w", err)
	}
	return columns.New(log, opts...), nil
}
