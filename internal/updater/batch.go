package updater

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

// Event reports the outcome for one file during a batch run.
type Event struct {
	Path string
	// WrongExt is set for files skipped because they lack the .ymj
	// extension; Result and Err are meaningless in that case.
	WrongExt bool
	Result   Result
	Err      error
}

// Summary tallies a batch run.
type Summary struct {
	// Total is the number of files given, including wrong-extension ones.
	Total int
	// Updated counts files that received a fresh embedding.
	Updated int
	// Skipped counts files that already had one (a success: the guarded
	// no-op is the expected second-run outcome).
	Skipped int
	// Failed counts files with parse, provider, or write errors.
	Failed int
	// WrongExt counts files skipped for not being .ymj.
	WrongExt int
}

// Processed returns the count reported to the user: files handled
// successfully, whether embedded this run or already embedded.
func (s Summary) Processed() int {
	return s.Updated + s.Skipped
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	Force bool
	// Workers bounds concurrency. Files are independent; only the
	// per-file parse-then-write sequence is ordered. Defaults to 1.
	Workers int
	// OnEvent is called once per file as it completes. Calls are
	// serialized, so callers can print from it without interleaving.
	OnEvent func(Event)
}

// Batch embeds many files. Per-file errors are reported through OnEvent
// and the summary; no single bad file aborts the run. Context cancellation
// stops scheduling new files but never interrupts an in-progress write.
func (u *Updater) Batch(ctx context.Context, files []string, opts BatchOptions) Summary {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	summary := Summary{Total: len(files)}

	emit := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case ev.WrongExt:
			summary.WrongExt++
		case ev.Err != nil:
			summary.Failed++
		case ev.Result == ResultUpdated:
			summary.Updated++
		default:
			summary.Skipped++
		}
		if opts.OnEvent != nil {
			opts.OnEvent(ev)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range files {
		path := path
		if gctx.Err() != nil {
			break
		}
		if !ymj.IsYMJ(path) {
			emit(Event{Path: path, WrongExt: true})
			continue
		}
		g.Go(func() error {
			res, err := u.Update(gctx, path, opts.Force)
			emit(Event{Path: path, Result: res, Err: err})
			return nil
		})
	}

	_ = g.Wait()
	return summary
}
