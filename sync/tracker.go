package sync

import (
	"context"

	"github.com/google/go-github/v36/github"
)

// Tracker the calls made against the destination repository.
type Tracker interface {
	ListIssues(ctx context.Context, opts github.ListOptions) ([]*github.Issue, *github.Response, error)
	CreateIssue(ctx context.Context, req *github.IssueRequest) (*github.Issue, error)
	EditIssue(ctx context.Context, number int, req *github.IssueRequest) (*github.Issue, error)
	ListComments(ctx context.Context, number int, opts github.ListOptions) ([]*github.IssueComment, *github.Response, error)
	CreateComment(ctx context.Context, number int, body string) error
	ListProjectColumns(ctx context.Context, projectID int64, opts github.ListOptions) ([]*github.ProjectColumn, *github.Response, error)
	CreateProjectCard(ctx context.Context, columnID, issueID int64) error
}

// GithubTracker implements Tracker for one GitHub repository.
type GithubTracker struct {
	gc    *github.Client
	owner string
	repo  string
}

func NewGithubTracker(gc *github.Client, owner, repo string) *GithubTracker {
	return &GithubTracker{gc: gc, owner: owner, repo: repo}
}

// RepoURL the html address of the repository, used in diagnostics.
func (t *GithubTracker) RepoURL() string {
	return "https://github.com/" + t.owner + "/" + t.repo
}

// ListIssues lists both open and closed issues.
func (t *GithubTracker) ListIssues(ctx context.Context, opts github.ListOptions) ([]*github.Issue, *github.Response, error) {
	return t.gc.Issues.ListByRepo(ctx, t.owner, t.repo, &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: opts,
	})
}

func (t *GithubTracker) CreateIssue(ctx context.Context, req *github.IssueRequest) (*github.Issue, error) {
	v, _, err := t.gc.Issues.Create(ctx, t.owner, t.repo, req)

	return v, err
}

func (t *GithubTracker) EditIssue(ctx context.Context, number int, req *github.IssueRequest) (*github.Issue, error) {
	v, _, err := t.gc.Issues.Edit(ctx, t.owner, t.repo, number, req)

	return v, err
}

func (t *GithubTracker) ListComments(ctx context.Context, number int, opts github.ListOptions) ([]*github.IssueComment, *github.Response, error) {
	return t.gc.Issues.ListComments(ctx, t.owner, t.repo, number, &github.IssueListCommentsOptions{
		ListOptions: opts,
	})
}

func (t *GithubTracker) CreateComment(ctx context.Context, number int, body string) error {
	_, _, err := t.gc.Issues.CreateComment(ctx, t.owner, t.repo, number, &github.IssueComment{
		Body: github.String(body),
	})

	return err
}

func (t *GithubTracker) ListProjectColumns(ctx context.Context, projectID int64, opts github.ListOptions) ([]*github.ProjectColumn, *github.Response, error) {
	return t.gc.Projects.ListProjectColumns(ctx, projectID, &opts)
}

func (t *GithubTracker) CreateProjectCard(ctx context.Context, columnID, issueID int64) error {
	_, _, err := t.gc.Projects.CreateProjectCard(ctx, columnID, &github.ProjectCardOptions{
		ContentID:   issueID,
		ContentType: cardContentTypeIssue,
	})

	return err
}
