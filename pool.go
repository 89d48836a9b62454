package sprokkel

import (
	"errors"
	"runtime"
	"sync"
)

// forEachEntry runs fn over entries on a bounded worker pool and joins the
// failures, so one broken document reports its error without hiding the
// others. Entry work is CPU-bound; the pool is sized from GOMAXPROCS
// (adjusted by automaxprocs in containers).
func forEachEntry(entries []*Entry, fn func(*Entry) error) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(entries) {
		workers = len(entries)
	}
	if workers < 1 {
		return nil
	}

	work := make(chan int)
	errs := make([]error, len(entries))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range work {
				errs[i] = fn(entries[i])
			}
		}()
	}
	for i := range entries {
		work <- i
	}
	close(work)
	wg.Wait()

	return errors.Join(errs...)
}
