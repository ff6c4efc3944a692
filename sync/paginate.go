package sync

import (
	"context"

	"github.com/google/go-github/v36/github"
)

const perPage = 100

type listFunc[T any] func(context.Context, github.ListOptions) ([]T, *github.Response, error)

// fetchAll follows the next page links until the collection is exhausted.
func fetchAll[T any](ctx context.Context, list listFunc[T]) ([]T, error) {
	opts := github.ListOptions{PerPage: perPage}

	var r []T
	for {
		items, resp, err := list(ctx, opts)
		if err != nil {
			return nil, err
		}

		r = append(r, items...)

		if resp == nil || resp.NextPage == 0 {
			return r, nil
		}

		opts.Page = resp.NextPage
	}
}
