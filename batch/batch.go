package batch

import (
	"net/http"

	"github.com/alitto/pond"
	"go.uber.org/atomic"
	"golang.org/x/exp/slices"

	"simple_yaml_parser/cfg"
	"simple_yaml_parser/deps"
	"simple_yaml_parser/source"
	"simple_yaml_parser/util/logger"
	"simple_yaml_parser/yaml"
)

// repo represents dependencies holder for this package
type repo struct {
	log    *logger.Logger
	cfg    cfg.Root
	client *http.Client
	stop   *atomic.Bool
}

// NewRepo returns new dependencies holder for this package.
//
// <client> is used to read documents given as URL.
func NewRepo(log *logger.Logger, cfg cfg.Root, client *http.Client) repo {
	return repo{log: log, cfg: cfg, client: client, stop: atomic.NewBool(false)}
}

// Log used to satisfy deps.Global interface
func (r repo) Log() *logger.Logger {
	return r.log
}

// Cfg used to satisfy deps.Global interface
func (r repo) Cfg() cfg.Root {
	return r.cfg
}

// Result represents outcome of scanning one document
type Result struct {
	Doc    source.Document
	Events []yaml.Event
	Err    error

	// Truncated is true if scanning stopped after reaching the output.limit setting
	Truncated bool

	// Interrupted is true if scanning stopped or was skipped due to Stop call
	Interrupted bool
}

// Failed returns true if document of <res> could not be read or scanned
func (res Result) Failed() bool {
	return res.Err != nil
}

// logOutcome writes summary of <res> to the log of <r>
func (res Result) logOutcome(r deps.Global) {
	switch {
	case res.Failed():
		r.Log().ErrorFi("Failed to scan document", "name", res.Doc.Name, "values", len(res.Events), "error", res.Err)
	case res.Interrupted:
		r.Log().WarnFi("Document scanning interrupted", "name", res.Doc.Name, "values", len(res.Events))
	case res.Truncated:
		r.Log().InfoFi("Document scanning stopped at limit", "name", res.Doc.Name, "limit", r.Cfg().Output.Limit)
	default:
		r.Log().DebugFi("Document scanned", "name", res.Doc.Name, "values", len(res.Events))
	}
}

// Stop makes running and pending scans finish after the current value
func (r repo) Stop() {
	r.stop.Store(true)
}

// Scan returns results of reading and scanning documents <names> in the same order.
//
// Documents are processed simultaneously by source.workers workers.
func (r repo) Scan(names []string) []Result {
	return r.run(len(names), func(idx int) Result {
		if r.stop.Load() {
			return Result{Doc: source.Document{Name: names[idx]}, Interrupted: true}
		}
		doc, err := source.Read(names[idx], r.client)
		if err != nil {
			return Result{Doc: doc, Err: err}
		}
		return r.scan(doc)
	})
}

// ScanDocs returns results of scanning <docs> in the same order.
//
// Documents are processed simultaneously by source.workers workers.
func (r repo) ScanDocs(docs []source.Document) []Result {
	return r.run(len(docs), func(idx int) Result {
		return r.scan(docs[idx])
	})
}

// run returns results of <job> called for every index below <amount> in the worker pool
func (r repo) run(amount int, job func(idx int) Result) []Result {
	out := make([]Result, amount)
	done := atomic.NewInt64(0)

	pool := pond.New(r.cfg.Source.Workers, 0, pond.MinWorkers(0))
	for idx := range out {
		idx := idx
		pool.Submit(func() {
			out[idx] = job(idx)
			out[idx].logOutcome(r)
			r.log.DebugFi("Progress", "done", done.Inc(), "total", amount)
		})
	}
	pool.StopAndWait()

	return out
}

// scan returns result of scanning <doc> with options from config
func (r repo) scan(doc source.Document) Result {
	res := Result{Doc: doc}
	if r.stop.Load() {
		res.Interrupted = true
		return res
	}

	opts := yaml.Options{
		IndentSize:    r.cfg.Scanner.IndentSize,
		Strict:        r.cfg.Scanner.Strict,
		DetectNumbers: r.cfg.Scanner.DetectNumbers,
	}
	limit := r.cfg.Output.Limit
	res.Err = yaml.ParseWithExitSignal(doc.Text, func(path yaml.KeyPath, value yaml.Value) bool {
		res.Events = append(res.Events, yaml.Event{Path: slices.Clone(path), Value: value})
		if limit > 0 && len(res.Events) >= limit {
			res.Truncated = true
			return true
		}
		if r.stop.Load() {
			res.Interrupted = true
			return true
		}
		return false
	}, opts)

	return res
}
