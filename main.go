package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/opensourceways/community-robot-lib/logrusutil"
	"github.com/sirupsen/logrus"
)

type options struct {
	configPath string
	apiURL     string
	envFile    string
	debug      bool

	exportPath string
}

func (o *options) Validate() error {
	if o.exportPath == "" {
		return fmt.Errorf("missing the bitbucket export json file")
	}

	if o.configPath == "" {
		return fmt.Errorf("missing config param")
	}

	return nil
}

func gatherOptions(fs *flag.FlagSet, args ...string) options {
	var o options

	fs.StringVar(&o.configPath, "config", "config.yaml", "path to the migration configuration file")
	fs.StringVar(&o.apiURL, "api-url", "", "the github api root path, default is https://api.github.com/")
	fs.StringVar(&o.envFile, "env-file", ".env", "optional file to load GITHUB_ACCESS_TOKEN from")
	fs.BoolVar(&o.debug, "debug", false, "dump every request and response")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] <bitbucket export json file>\n", fs.Name())
		fs.PrintDefaults()
	}

	_ = fs.Parse(args)

	o.exportPath = fs.Arg(0)

	return o
}

func main() {
	logrusutil.ComponentInit(botName)

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	o := gatherOptions(fs, os.Args[1:]...)
	if err := o.Validate(); err != nil {
		fs.Usage()
		logrus.WithError(err).Fatal("Invalid options")
	}

	if o.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfiguration(o)
	if err != nil {
		logrus.WithError(err).Fatal("Error loading configuration.")
	}

	token := accessToken(o.envFile)
	if token == "" {
		logrus.Warnf("Environment variable %s is not set. The migration will fail for private repositories.", tokenEnv)
	}

	m := newMigrator(cfg, token, o)
	if err := m.run(context.Background(), o.exportPath); err != nil {
		logrus.WithError(err).Fatal("Error migrating issues.")
	}
}
