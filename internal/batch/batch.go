// Package batch fans a per-file operation out over a worker pool.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Job processes one input file.
type Job func(path string) error

// Processor runs one Job over many files with a fixed-size worker pool.
// Each worker owns the files it is handed exclusively, so Jobs that open
// bitmaps never share one across goroutines.
type Processor struct {
	startTime time.Time
	endTime   time.Time
	poolSize  int
	paths     []string
	jobs      chan string
	results   chan error
	run       Job
}

func NewProcessor(paths []string, poolSize int, run Job) (*Processor, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	if len(paths) == 0 {
		return nil, errors.New("no files to process")
	}
	return &Processor{
		startTime: time.Now(),
		poolSize:  poolSize,
		paths:     paths,
		jobs:      make(chan string),
		results:   make(chan error),
		run:       run,
	}, nil
}

func (p *Processor) StartWorkers() {
	log.Printf("Starting processing files with pool size: %d", p.poolSize)

	for i := range p.poolSize {
		go p.worker(i)
	}
}

// DispatchJobs sends files to the jobs channel for processing by workers.
func (p *Processor) DispatchJobs() {
	go func() {
		for _, path := range p.paths {
			p.jobs <- path
		}
		close(p.jobs)
	}()
}

func (p *Processor) worker(i int) {
	log.Printf("Worker %d started", i)
	for path := range p.jobs {
		if err := p.run(path); err != nil {
			p.results <- fmt.Errorf("%s: %w", path, err)
		} else {
			p.results <- nil
		}
	}
	log.Printf("Worker %d finished", i)
}

// Wait blocks until every dispatched file has been processed and returns
// the per-file errors, if any.
func (p *Processor) Wait() []error {
	errs := make([]error, 0, 10)
	for range p.paths {
		if err := <-p.results; err != nil {
			errs = append(errs, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Printf("All %d files processed in %s (errors=%d)", len(p.paths), elapsed, len(errs))
	return errs
}

// FindBitmaps walks dir and returns every .bmp file beneath it in lexical
// order.
func FindBitmaps(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".bmp") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
