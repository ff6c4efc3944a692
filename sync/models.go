package sync

import (
	"github.com/google/go-github/v36/github"
)

const (
	stateOpen   = "open"
	stateClosed = "closed"

	cardContentTypeIssue = "Issue"
)

// IssuePatch the desired state of a destination issue. It is always sent as a whole.
type IssuePatch struct {
	Body      string
	Assignees []string
	Labels    []string
	State     string
}

func (p *IssuePatch) request() *github.IssueRequest {
	assignees := append([]string{}, p.Assignees...)
	labels := append([]string{}, p.Labels...)

	return &github.IssueRequest{
		Body:      github.String(p.Body),
		Assignees: &assignees,
		Labels:    &labels,
		State:     github.String(p.State),
	}
}

// differsFrom whether applying the patch would change the issue.
// Assignees and labels are compared as sets.
func (p *IssuePatch) differsFrom(issue *github.Issue) bool {
	if issue.GetState() != p.State {
		return true
	}

	if issue.GetBody() != p.Body {
		return true
	}

	current := make([]string, 0, len(issue.Assignees))
	for _, u := range issue.Assignees {
		current = append(current, u.GetLogin())
	}

	if !sameSet(current, p.Assignees) {
		return true
	}

	current = make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		current = append(current, l.GetName())
	}

	return !sameSet(current, p.Labels)
}

func sameSet(a, b []string) bool {
	sa := toSet(a)
	sb := toSet(b)

	if len(sa) != len(sb) {
		return false
	}

	for k := range sa {
		if _, ok := sb[k]; !ok {
			return false
		}
	}

	return true
}

func toSet(v []string) map[string]struct{} {
	s := make(map[string]struct{}, len(v))
	for _, item := range v {
		s[item] = struct{}{}
	}

	return s
}

// Report counts what a run did to the destination repository.
type Report struct {
	Issues    int
	Created   int
	Patched   int
	Unchanged int
	Comments  int
	Cards     int
}
