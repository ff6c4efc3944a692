package sync

import (
	"strings"

	"github.com/opensourceways/robot-issue-migrator/bitbucket"
)

// bodyBuilder collects the pieces of a body and joins them once.
type bodyBuilder struct {
	parts []string
}

func (b *bodyBuilder) append(parts ...string) *bodyBuilder {
	b.parts = append(b.parts, parts...)

	return b
}

func (b *bodyBuilder) provenance(label string, ts bitbucket.Timestamp) *bodyBuilder {
	return b.append(label, ": ", ts.String())
}

func (b *bodyBuilder) String() string {
	return strings.Join(b.parts, "")
}

func formatIssueBody(issue *bitbucket.Issue, source string) string {
	b := new(bodyBuilder)
	b.append(issue.Content, "\n\n").
		provenance("Issue created by "+issue.Reporter, issue.CreatedOn)

	if issue.UpdatedOn.String() != issue.CreatedOn.String() {
		b.append("\n").provenance("Last updated on "+source, issue.UpdatedOn)
	}

	return b.String()
}

// formatCommentBody returns false for a comment without content, which is not migrated.
func formatCommentBody(comment *bitbucket.Comment) (string, bool) {
	if comment.Content == nil || *comment.Content == "" {
		return "", false
	}

	b := new(bodyBuilder)
	b.provenance("Comment created by "+comment.User, comment.CreatedOn).
		append("\n\n", *comment.Content)

	return b.String(), true
}
