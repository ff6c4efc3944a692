package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v36/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAllFollowsNextPage(t *testing.T) {
	pages := map[int][]int{0: {1, 2}, 2: {3, 4}, 3: {5}}
	next := map[int]int{0: 2, 2: 3, 3: 0}

	var seen []github.ListOptions
	got, err := fetchAll(context.Background(), func(_ context.Context, opts github.ListOptions) ([]int, *github.Response, error) {
		seen = append(seen, opts)

		return pages[opts.Page], &github.Response{NextPage: next[opts.Page]}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	require.Len(t, seen, 3)
	for _, v := range seen {
		assert.Equal(t, perPage, v.PerPage)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	got, err := fetchAll(context.Background(), func(context.Context, github.ListOptions) ([]string, *github.Response, error) {
		return nil, &github.Response{}, nil
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAllStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	_, err := fetchAll(context.Background(), func(context.Context, github.ListOptions) ([]string, *github.Response, error) {
		calls++
		if calls == 2 {
			return nil, nil, boom
		}

		return []string{"a"}, &github.Response{NextPage: calls + 1}, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
