package slack

import (
	"context"
	"iter"
)

// maxPages bounds every listing regardless of what the API reports.
const maxPages = 10

type page[T any] struct {
	items      []T
	nextCursor string
	// last is set when the API says there is nothing more, independent of the cursor.
	// An empty items slice alone does not end paging.
	last bool
}

type pageFetcher[T any] func(ctx context.Context, cursor string) (page[T], error)

// Pager lazily walks a cursor-paginated Slack listing. A page is fetched only
// when the items of the previous one are used up, so stopping early saves the
// remaining requests. Paging ends on an empty cursor, a page marked last, a
// fetch error, or after maxPages pages.
type Pager[T any] struct {
	fetch   pageFetcher[T]
	cursor  string
	fetched int
	buffer  []T
	done    bool
	err     error
}

func newPager[T any](fetch pageFetcher[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch}
}

// Next returns the next item and false once the listing is exhausted or failed
func (p *Pager[T]) Next(ctx context.Context) (T, bool) {
	for len(p.buffer) == 0 {
		if p.done {
			var zero T
			return zero, false
		}
		p.fetchPage(ctx)
	}

	item := p.buffer[0]
	p.buffer = p.buffer[1:]
	return item, true
}

// Err returns the error that stopped paging, if any
func (p *Pager[T]) Err() error {
	return p.err
}

// PagesFetched returns how many pages have been requested so far
func (p *Pager[T]) PagesFetched() int {
	return p.fetched
}

// All adapts the pager to a range-over-func sequence. A fetch error is
// yielded once, after the items that were read successfully.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok := p.Next(ctx)
			if !ok {
				break
			}
			if !yield(item, nil) {
				return
			}
		}

		if p.err != nil {
			var zero T
			yield(zero, p.err)
		}
	}
}

func (p *Pager[T]) fetchPage(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		p.err = err
		p.done = true
		return
	}

	result, err := p.fetch(ctx, p.cursor)
	p.fetched++
	if err != nil {
		p.err = err
		p.done = true
		return
	}

	p.buffer = result.items
	p.cursor = result.nextCursor
	if result.last || result.nextCursor == "" || p.fetched >= maxPages {
		p.done = true
	}
}
