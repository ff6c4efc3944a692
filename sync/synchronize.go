package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v36/github"
	"github.com/sirupsen/logrus"

	"github.com/opensourceways/robot-issue-migrator/bitbucket"
	"github.com/opensourceways/robot-issue-migrator/config"
)

// ErrInconsistentIssues the destination issue matched to a source issue carries another title.
var ErrInconsistentIssues = errors.New("inconsistent issues")

// Synchronizer migrates the issues of an export into the destination repository.
// Running it again against the same export only patches what changed, but
// comments are posted again on every run.
type Synchronizer struct {
	tracker Tracker
	cfg     *config.Configuration
	mapper  fieldMapper
	log     *logrus.Entry
}

func NewSynchronizer(tracker Tracker, cfg *config.Configuration, log *logrus.Entry) *Synchronizer {
	return &Synchronizer{
		tracker: tracker,
		cfg:     cfg,
		mapper:  fieldMapper{cfg: cfg},
		log:     log,
	}
}

// run the destination snapshot fetched once at the start, never refreshed.
type run struct {
	issues  []*github.Issue
	columns map[string]int64
	report  Report
}

// Run synchronizes every issue of the export in ascending id order and stops at the first error.
func (sc *Synchronizer) Run(ctx context.Context, export *bitbucket.Export) (Report, error) {
	issues, err := fetchAll(ctx, sc.tracker.ListIssues)
	if err != nil {
		return Report{}, fmt.Errorf("list issues: %w", err)
	}

	columns, err := sc.fetchColumns(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list project columns: %w", err)
	}

	sc.log.WithFields(logrus.Fields{
		"destination_issues": len(issues),
		"source_issues":      len(export.Issues),
		"export":             export.Name,
		"project_columns":    len(columns),
	}).Info("start synchronizing")

	warnDuplicateTitles(export.Issues, sc.log)

	r := &run{
		issues:  issues,
		columns: columnsByName(columns),
	}

	for i := range export.Issues {
		issue := &export.Issues[i]
		if err := sc.syncIssue(ctx, r, issue, export.CommentsOf(issue.ID)); err != nil {
			return r.report, fmt.Errorf("synchronize issue %d: %w", issue.ID, err)
		}

		r.report.Issues++
	}

	return r.report, nil
}

func (sc *Synchronizer) fetchColumns(ctx context.Context) ([]*github.ProjectColumn, error) {
	if !sc.cfg.HasProject() {
		return nil, nil
	}

	projectID := *sc.cfg.ProjectID

	return fetchAll(ctx, func(ctx context.Context, opts github.ListOptions) ([]*github.ProjectColumn, *github.Response, error) {
		return sc.tracker.ListProjectColumns(ctx, projectID, opts)
	})
}

func (sc *Synchronizer) syncIssue(ctx context.Context, r *run, issue *bitbucket.Issue, comments []bitbucket.Comment) error {
	log := sc.log.WithFields(logrus.Fields{"issue": issue.ID, "title": issue.Title})

	gi, created, err := sc.resolve(ctx, r, issue)
	if err != nil {
		return err
	}

	log = log.WithField("number", gi.GetNumber())
	if created {
		r.report.Created++
		log.Info("created issue")
	}

	patched, err := sc.patch(ctx, gi, issue)
	if err != nil {
		return err
	}

	if patched {
		r.report.Patched++
		log.Info("patched issue")
	} else {
		r.report.Unchanged++
		log.Info("skip issue since there are no changes")
	}

	n, err := sc.replayComments(ctx, gi, created, comments, log)
	if err != nil {
		return err
	}
	r.report.Comments += n

	carded, err := sc.fileCard(ctx, r, gi, issue)
	if err != nil {
		return err
	}

	if carded {
		r.report.Cards++
	}

	return nil
}

// resolve finds the destination issue by title or creates it with the raw content.
func (sc *Synchronizer) resolve(ctx context.Context, r *run, issue *bitbucket.Issue) (*github.Issue, bool, error) {
	for _, gi := range r.issues {
		if gi.GetTitle() == issue.Title {
			return gi, false, nil
		}
	}

	gi, err := sc.tracker.CreateIssue(ctx, &github.IssueRequest{
		Title: github.String(issue.Title),
		Body:  github.String(issue.Content),
	})
	if err != nil {
		return nil, false, fmt.Errorf("create issue: %w", err)
	}

	return gi, true, nil
}

// patch sends the full desired patch when any field differs.
func (sc *Synchronizer) patch(ctx context.Context, gi *github.Issue, issue *bitbucket.Issue) (bool, error) {
	if gi.GetTitle() != issue.Title {
		return false, fmt.Errorf("%w: %q and %q", ErrInconsistentIssues, gi.GetTitle(), issue.Title)
	}

	p := sc.mapper.desiredPatch(issue)
	if !p.differsFrom(gi) {
		return false, nil
	}

	if _, err := sc.tracker.EditIssue(ctx, gi.GetNumber(), p.request()); err != nil {
		return false, fmt.Errorf("patch issue #%d: %w", gi.GetNumber(), err)
	}

	return true, nil
}

// replayComments posts every comment with content. Comments posted by a
// previous run are not detected and get posted again.
func (sc *Synchronizer) replayComments(
	ctx context.Context, gi *github.Issue, created bool, comments []bitbucket.Comment, log *logrus.Entry,
) (int, error) {
	if !created && len(comments) > 0 {
		existing, err := fetchAll(ctx, func(ctx context.Context, opts github.ListOptions) ([]*github.IssueComment, *github.Response, error) {
			return sc.tracker.ListComments(ctx, gi.GetNumber(), opts)
		})
		if err != nil {
			return 0, fmt.Errorf("list comments of #%d: %w", gi.GetNumber(), err)
		}

		if len(existing) > 0 {
			log.WithField("existing_comments", len(existing)).Warn("issue already has comments, they will be posted again")
		}
	}

	n := 0
	for i := range comments {
		body, ok := formatCommentBody(&comments[i])
		if !ok {
			continue
		}

		if err := sc.tracker.CreateComment(ctx, gi.GetNumber(), body); err != nil {
			return n, fmt.Errorf("create comment on #%d: %w", gi.GetNumber(), err)
		}

		n++
	}

	return n, nil
}

// fileCard puts the issue into the project column its status maps to.
func (sc *Synchronizer) fileCard(ctx context.Context, r *run, gi *github.Issue, issue *bitbucket.Issue) (bool, error) {
	if !sc.cfg.HasProject() || len(r.columns) == 0 {
		return false, nil
	}

	name, ok := sc.mapper.column(issue.Status)
	if !ok {
		return false, nil
	}

	columnID, ok := r.columns[name]
	if !ok {
		return false, fmt.Errorf("project column %q of status %q does not exist", name, issue.Status)
	}

	if err := sc.tracker.CreateProjectCard(ctx, columnID, gi.GetID()); err != nil {
		return false, fmt.Errorf("create project card for #%d: %w", gi.GetNumber(), err)
	}

	return true, nil
}

// warnDuplicateTitles titles are the join key, issues sharing one resolve to the same destination issue.
func warnDuplicateTitles(issues []bitbucket.Issue, log *logrus.Entry) {
	seen := make(map[string]int, len(issues))
	for i := range issues {
		if first, ok := seen[issues[i].Title]; ok {
			log.WithFields(logrus.Fields{
				"issue": issues[i].ID,
				"first": first,
				"title": issues[i].Title,
			}).Warn("duplicate title in the export")

			continue
		}

		seen[issues[i].Title] = issues[i].ID
	}
}
