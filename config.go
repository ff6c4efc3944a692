package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	conf "github.com/opensourceways/robot-issue-migrator/config"
)

const tokenEnv = "GITHUB_ACCESS_TOKEN"

func loadConfiguration(o options) (*conf.Configuration, error) {
	return conf.Load(o.configPath)
}

// accessToken prefers the environment over the env file.
func accessToken(envFile string) string {
	if v := os.Getenv(tokenEnv); v != "" {
		return v
	}

	if envFile == "" {
		return ""
	}

	env, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logrus.WithError(err).Warnf("Error reading %s.", envFile)
		}

		return ""
	}

	return env[tokenEnv]
}
