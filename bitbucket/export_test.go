package bitbucket

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "issues": [
    {"id": 2, "title": "Second", "content": "two", "status": "resolved", "kind": "task",
     "assignee": "jdoe", "reporter": "bob",
     "created_on": "2019-05-01T10:00:00.123456+00:00", "updated_on": "2019-06-01T10:00:00+00:00"},
    {"id": 1, "title": "First", "content": "one", "status": "new", "kind": "bug",
     "assignee": null, "reporter": "alice",
     "created_on": "2019-01-01T00:00:00Z", "updated_on": "2019-01-01T00:00:00Z"}
  ],
  "comments": [
    {"issue": 1, "user": "carol", "content": "newest", "created_on": "2019-01-03T00:00:00Z"},
    {"issue": 1, "user": "dave", "content": null, "created_on": "2019-01-02T00:00:00Z"},
    {"issue": 1, "user": "erin", "content": "oldest", "created_on": "2019-01-01T12:00:00Z"}
  ]
}`

func TestParseExport(t *testing.T) {
	e, err := ParseExport(strings.NewReader(sampleExport), "sample.json")
	require.NoError(t, err)

	assert.Equal(t, "sample.json", e.Name)
	require.Len(t, e.Issues, 2)
	assert.Equal(t, 1, e.Issues[0].ID)
	assert.Equal(t, 2, e.Issues[1].ID)

	assert.Nil(t, e.Issues[0].Assignee)
	require.NotNil(t, e.Issues[1].Assignee)
	assert.Equal(t, "jdoe", *e.Issues[1].Assignee)

	comments := e.CommentsOf(1)
	require.Len(t, comments, 3)
	assert.Equal(t, "erin", comments[0].User)
	assert.Nil(t, comments[1].Content)
	assert.Equal(t, "carol", comments[2].User)

	assert.NotNil(t, e.CommentsOf(2))
	assert.Empty(t, e.CommentsOf(2))
}

func TestParseExportErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{
			name:  "no issues",
			input: `{"issues": [], "comments": []}`,
			is:    ErrNoIssues,
		},
		{
			name:  "missing issues key",
			input: `{"comments": []}`,
			is:    ErrNoIssues,
		},
		{
			name:  "malformed json",
			input: `{"issues": [`,
		},
		{
			name: "unparsable timestamp",
			input: `{"issues": [{"id": 1, "title": "t", "created_on": "yesterday",
				"updated_on": "2019-01-01T00:00:00Z"}], "comments": []}`,
		},
		{
			name:  "missing timestamp",
			input: `{"issues": [{"id": 1, "title": "t"}], "comments": []}`,
		},
		{
			name: "comment of unknown issue",
			input: `{"issues": [{"id": 1, "title": "t", "created_on": "2019-01-01T00:00:00Z",
				"updated_on": "2019-01-01T00:00:00Z"}],
				"comments": [{"issue": 9, "user": "u", "content": "c", "created_on": "2019-01-01T00:00:00Z"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExport(strings.NewReader(tt.input), "bad.json")
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestReadExport(t *testing.T) {
	p := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(p, []byte(sampleExport), 0o600))

	e, err := ReadExport(p)
	require.NoError(t, err)
	assert.Equal(t, p, e.Name)
	assert.Len(t, e.Issues, 2)

	_, err = ReadExport(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
