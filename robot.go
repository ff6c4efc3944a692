package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opensourceways/robot-issue-migrator/bitbucket"
	conf "github.com/opensourceways/robot-issue-migrator/config"
	"github.com/opensourceways/robot-issue-migrator/sync"
)

const botName = "issue-migrator"

func newMigrator(cfg *conf.Configuration, token string, o options) *migrator {
	return &migrator{cfg: cfg, token: token, apiURL: o.apiURL, debug: o.debug}
}

type migrator struct {
	cfg    *conf.Configuration
	token  string
	apiURL string
	debug  bool
}

// run reads the export before touching the network, then synchronizes it.
func (m *migrator) run(ctx context.Context, exportPath string) error {
	log := logrus.WithField("repo", m.cfg.TargetRepo)

	log.Infof("Parsing %s...", exportPath)

	export, err := bitbucket.ReadExport(exportPath)
	if err != nil {
		return err
	}

	gc, err := sync.NewGithubClient(ctx, sync.ClientOptions{
		Token:  m.token,
		APIURL: m.apiURL,
		Debug:  m.debug,
	}, log.WithField("component", "http"))
	if err != nil {
		return fmt.Errorf("init github client: %w", err)
	}

	owner, repo := m.cfg.OwnerRepo()
	tracker := sync.NewGithubTracker(gc, owner, repo)

	report, err := sync.NewSynchronizer(tracker, m.cfg, log).Run(ctx, export)

	entry := log.WithFields(logrus.Fields{
		"url":       tracker.RepoURL(),
		"issues":    report.Issues,
		"created":   report.Created,
		"patched":   report.Patched,
		"unchanged": report.Unchanged,
		"comments":  report.Comments,
		"cards":     report.Cards,
	})
	if err != nil {
		entry.Error("migration aborted")

		return err
	}

	entry.Info("migration finished")

	return nil
}
