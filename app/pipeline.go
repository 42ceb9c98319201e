package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"datasweep/domain/clean"
	"datasweep/domain/core"
	"datasweep/domain/table"
	"datasweep/ports"
)

// Pipeline orchestrates the per-file flow: load, clean, project,
// summarize, export. It holds no per-request state, so one instance
// serves any number of concurrent callers.
type Pipeline struct {
	codecs     map[ports.Format]ports.Codec
	summarizer ports.Summarizer
	workers    int64
}

// Pipeline stage names, used to locate failures
const (
	StageQueue     = "queue"
	StageLoad      = "load"
	StageClean     = "clean"
	StageProject   = "project"
	StageSummarize = "summarize"
	StageExport    = "export"
)

// FileJob describes one file's trip through the pipeline
type FileJob struct {
	Name      string        `json:"name"`
	Data      []byte        `json:"-"`
	Format    ports.Format  `json:"format"`
	Clean     clean.Request `json:"clean"`
	Columns   []string      `json:"columns,omitempty"` // nil keeps every column
	Target    ports.Format  `json:"target"`
	Summarize bool          `json:"summarize"`
}

// FileResult is the outcome of one file's run. Err is nil on success;
// otherwise Stage names the step that failed. A failed file never
// affects its batch peers.
type FileResult struct {
	Name      string                   `json:"name"`
	Table     *table.Table             `json:"-"`
	Output    *ConversionResult        `json:"output,omitempty"`
	Summary   *ports.CorrelationMatrix `json:"summary,omitempty"`
	Note      string                   `json:"note,omitempty"`
	Stage     string                   `json:"stage,omitempty"`
	Err       error                    `json:"-"`
	RuntimeMs int64                    `json:"runtime_ms"`
}

// ConversionResult is an exported file ready to serve
type ConversionResult struct {
	Data     []byte       `json:"-"`
	Filename string       `json:"filename"`
	Format   ports.Format `json:"format"`
	MIME     string       `json:"mime"`
}

// NewPipeline creates a pipeline over the given codecs. workers bounds
// how many files RunAll processes at once; values below one fall back
// to a single worker.
func NewPipeline(summarizer ports.Summarizer, workers int, codecs ...ports.Codec) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	byFormat := make(map[ports.Format]ports.Codec, len(codecs))
	for _, c := range codecs {
		byFormat[c.Format()] = c
	}
	return &Pipeline{
		codecs:     byFormat,
		summarizer: summarizer,
		workers:    int64(workers),
	}
}

// Load parses raw file bytes in the given format into a table
func (p *Pipeline) Load(data []byte, format ports.Format) (*table.Table, error) {
	codec, err := p.codec(format)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}

// Clean applies the selected cleaning operations in canonical order
func (p *Pipeline) Clean(t *table.Table, req clean.Request) (*table.Table, error) {
	return clean.Apply(t, req)
}

// Project returns the named columns in the caller's order
func (p *Pipeline) Project(t *table.Table, columns []string) (*table.Table, error) {
	return table.Project(t, columns)
}

// Summarizer exposes the numeric summary engine
func (p *Pipeline) Summarizer() ports.Summarizer {
	return p.summarizer
}

// Export serializes a table into the target format. The output file
// name is sourceName with its extension replaced.
func (p *Pipeline) Export(t *table.Table, format ports.Format, sourceName string) (*ConversionResult, error) {
	codec, err := p.codec(format)
	if err != nil {
		return nil, err
	}
	data, err := codec.Encode(t)
	if err != nil {
		return nil, err
	}
	return &ConversionResult{
		Data:     data,
		Filename: OutputFilename(sourceName, format),
		Format:   format,
		MIME:     format.MIME(),
	}, nil
}

// Run takes one file through the pipeline. Failures are reported in
// the result, never panicked or retried: every stage is a
// deterministic function of the inputs.
func (p *Pipeline) Run(job FileJob) FileResult {
	start := time.Now()
	res := FileResult{Name: job.Name}
	fail := func(stage string, err error) FileResult {
		res.Stage = stage
		res.Err = fmt.Errorf("file %q: %s: %w", job.Name, stage, err)
		res.RuntimeMs = time.Since(start).Milliseconds()
		log.Printf("[Pipeline] %s failed at %s: %v", job.Name, stage, err)
		return res
	}

	t, err := p.Load(job.Data, job.Format)
	if err != nil {
		return fail(StageLoad, err)
	}

	t, err = p.Clean(t, job.Clean)
	if err != nil {
		return fail(StageClean, err)
	}

	if job.Columns != nil {
		t, err = p.Project(t, job.Columns)
		if err != nil {
			return fail(StageProject, err)
		}
	}
	res.Table = t

	if job.Summarize {
		m, err := p.summarizer.Correlation(t)
		switch {
		case err == nil:
			res.Summary = m
		case core.IsSoft(err):
			res.Note = err.Error()
		default:
			return fail(StageSummarize, err)
		}
	}

	out, err := p.Export(t, job.Target, job.Name)
	if err != nil {
		return fail(StageExport, err)
	}
	res.Output = out
	res.RuntimeMs = time.Since(start).Milliseconds()
	log.Printf("[Pipeline] %s: %d rows, %d columns -> %s in %dms",
		job.Name, t.NumRows(), t.NumColumns(), out.Filename, res.RuntimeMs)
	return res
}

// RunAll processes a batch of files, one worker per file up to the
// configured bound. Results keep the order of jobs. Files share no
// state, so a failure in one never aborts the rest; ctx only limits
// how long the batch may keep starting new files.
func (p *Pipeline) RunAll(ctx context.Context, jobs []FileJob) []FileResult {
	results := make([]FileResult, len(jobs))
	sem := semaphore.NewWeighted(p.workers)
	var wg sync.WaitGroup

	for i := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = FileResult{
				Name:  jobs[i].Name,
				Stage: StageQueue,
				Err:   fmt.Errorf("file %q: %s: %w", jobs[i].Name, StageQueue, err),
			}
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = p.Run(jobs[i])
		}(i)
	}
	wg.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	log.Printf("[Pipeline] batch done: %d files, %d failed", len(jobs), failed)
	return results
}

// codec resolves the codec registered for a format
func (p *Pipeline) codec(format ports.Format) (ports.Codec, error) {
	c, ok := p.codecs[format]
	if !ok {
		return nil, core.NewUnsupportedFormatError(format.String())
	}
	return c, nil
}

// OutputFilename swaps name's extension for the target format's
func OutputFilename(name string, target ports.Format) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = name
	}
	return base + target.Ext()
}
