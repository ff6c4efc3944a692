// Package bitbucket reads the issue export produced by the Bitbucket issue tracker.
package bitbucket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrNoIssues the export does not contain a single issue.
var ErrNoIssues = errors.New("could not find any issue")

type Issue struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Kind      string    `json:"kind"`
	Assignee  *string   `json:"assignee"`
	Reporter  string    `json:"reporter"`
	CreatedOn Timestamp `json:"created_on"`
	UpdatedOn Timestamp `json:"updated_on"`
}

type Comment struct {
	Issue     int       `json:"issue"`
	User      string    `json:"user"`
	Content   *string   `json:"content"`
	CreatedOn Timestamp `json:"created_on"`
}

type document struct {
	Issues   []Issue   `json:"issues"`
	Comments []Comment `json:"comments"`
}

// Export the parsed content of one export file.
type Export struct {
	// Issues sorted ascending by id.
	Issues []Issue
	// Comments of every issue, oldest first. Every issue has an entry.
	Comments map[int][]Comment
	// Name the export file name, used in diagnostics.
	Name string
}

// CommentsOf returns the comments of the issue, oldest first.
func (e *Export) CommentsOf(id int) []Comment {
	return e.Comments[id]
}

// ReadExport parses the export file at path.
func ReadExport(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseExport(f, path)
}

// ParseExport decodes an export document read from r.
func ParseExport(r io.Reader, name string) (*Export, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	if len(doc.Issues) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoIssues, name)
	}

	issues := doc.Issues
	for i := range issues {
		if issues[i].CreatedOn.IsZero() || issues[i].UpdatedOn.IsZero() {
			return nil, fmt.Errorf("parse %s: issue %d misses a timestamp", name, issues[i].ID)
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].ID < issues[j].ID
	})

	comments := make(map[int][]Comment, len(issues))
	for i := range issues {
		comments[issues[i].ID] = []Comment{}
	}

	for _, c := range doc.Comments {
		if c.CreatedOn.IsZero() {
			return nil, fmt.Errorf("parse %s: comment of issue %d misses a timestamp", name, c.Issue)
		}

		v, ok := comments[c.Issue]
		if !ok {
			return nil, fmt.Errorf("parse %s: comment refers to unknown issue %d", name, c.Issue)
		}

		comments[c.Issue] = append(v, c)
	}

	// the export stores comments newest first
	for _, v := range comments {
		for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
			v[i], v[j] = v[j], v[i]
		}
	}

	return &Export{
		Issues:   issues,
		Comments: comments,
		Name:     name,
	}, nil
}
