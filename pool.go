package devdiary

import (
	"context"
	"runtime"
	"sync"

	"github.com/alnah/go-devdiary/internal/content"
	"github.com/alnah/go-devdiary/internal/pipeline"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps the automatic worker count.
	MaxPoolSize = 8
)

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// buildProjects renders projects concurrently, one job per project.
// Results keep the order of projects. Jobs that have not started when ctx
// is cancelled carry ctx.Err().
func (b *Builder) buildProjects(ctx context.Context, projects []content.Project, targets []pipeline.LinkTarget) []ProjectResult {
	if len(projects) == 0 {
		return nil
	}

	concurrency := ResolvePoolSize(b.workers)
	if concurrency > len(projects) {
		concurrency = len(projects)
	}

	results := make([]ProjectResult, len(projects))
	var wg sync.WaitGroup
	jobs := make(chan int, len(projects))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ProjectResult{
						Name: projects[idx].DisplayName,
						Err:  ctx.Err(),
					}
					continue
				}
				results[idx] = b.buildProject(ctx, projects[idx], targets)
				b.report(results[idx])
			}
		}()
	}

	for i := range projects {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
