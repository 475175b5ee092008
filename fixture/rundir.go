package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"
)

// FileSummary aggregates Run results for every case in one fixture file.
type FileSummary struct {
	Path    string
	Total   int
	Passed  int
	Failing []Result
}

// Summary aggregates FileSummary across an entire fixture directory.
type Summary struct {
	Files  []FileSummary
	Total  int
	Passed int
}

// RunDir scans dir for *.json fixture files, loads and runs each file's
// cases concurrently (spec.md §5: independent (CPU, Bus) pairs may be
// stepped from separate goroutines since neither cpu nor bus retains shared
// state), and returns an aggregated Summary. workers caps concurrent file
// loads; a value <= 0 means unlimited.
func RunDir(ctx context.Context, dir string, workers int) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	results := make([]FileSummary, len(paths))
	var mu sync.Mutex

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fs, err := runFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = fs
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{Files: results}
	for _, fs := range results {
		sum.Total += fs.Total
		sum.Passed += fs.Passed
	}
	return sum, nil
}

func runFile(path string) (FileSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileSummary{}, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	cases, err := ParseCases(data)
	if err != nil {
		return FileSummary{}, fmt.Errorf("fixture: %s: %w", path, err)
	}

	fs := FileSummary{Path: path, Total: len(cases)}
	for _, c := range cases {
		res := Run(c)
		if res.Pass {
			fs.Passed++
		} else {
			fs.Failing = append(fs.Failing, res)
		}
	}
	return fs, nil
}

// Explain renders a failing Result's field diffs plus a full dump of the
// expected final state, for -v output in cmd/conform.
func Explain(r Result) string {
	if r.Pass {
		return ""
	}
	return fmt.Sprintf("case %q: cpu %v ram %v\nwant-final: %s",
		r.Case.Name, r.CPUDiff, r.RAMDiff, spew.Sdump(r.Case.Final))
}
