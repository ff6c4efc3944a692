package sync

import (
	"github.com/google/go-github/v36/github"

	"github.com/opensourceways/robot-issue-migrator/bitbucket"
	"github.com/opensourceways/robot-issue-migrator/config"
)

// fieldMapper translates source values into destination values using the mapping tables.
type fieldMapper struct {
	cfg *config.Configuration
}

// state an issue is open only when its status is one of the open states.
func (m fieldMapper) state(status string) string {
	if m.cfg.IsOpenState(status) {
		return stateOpen
	}

	return stateClosed
}

// assignees unmapped users are dropped.
func (m fieldMapper) assignees(assignee *string) []string {
	if assignee == nil {
		return []string{}
	}

	if v, ok := m.cfg.UserMapping.Resolve(*assignee, config.FallbackDrop); ok {
		return []string{v}
	}

	return []string{}
}

func (m fieldMapper) addStatusLabel(status string, labels *labelSet) {
	if v, ok := m.cfg.StatusLabels.Resolve(status, config.FallbackDrop); ok {
		labels.add(v)
	}
}

// addKindLabel an unmapped kind becomes a label as is.
func (m fieldMapper) addKindLabel(kind string, labels *labelSet) {
	if v, ok := m.cfg.KindLabels.Resolve(kind, config.FallbackRaw); ok {
		labels.add(v)
	}
}

func (m fieldMapper) column(status string) (string, bool) {
	return m.cfg.StatusColumns.Resolve(status, config.FallbackDrop)
}

func (m fieldMapper) desiredPatch(issue *bitbucket.Issue) IssuePatch {
	var labels labelSet
	m.addKindLabel(issue.Kind, &labels)
	m.addStatusLabel(issue.Status, &labels)

	return IssuePatch{
		Body:      formatIssueBody(issue, m.cfg.SourceName),
		Assignees: m.assignees(issue.Assignee),
		Labels:    labels.list(),
		State:     m.state(issue.Status),
	}
}

// columnsByName the last column wins when names collide.
func columnsByName(columns []*github.ProjectColumn) map[string]int64 {
	r := make(map[string]int64, len(columns))
	for _, c := range columns {
		r[c.GetName()] = c.GetID()
	}

	return r
}

// labelSet keeps insertion order.
type labelSet struct {
	items []string
}

func (s *labelSet) add(label string) {
	for _, v := range s.items {
		if v == label {
			return
		}
	}

	s.items = append(s.items, label)
}

func (s *labelSet) list() []string {
	return append([]string{}, s.items...)
}
