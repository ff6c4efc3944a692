package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/opensourceways/community-robot-lib/utils"
	"gopkg.in/yaml.v3"
)

const defaultSourceName = "bitbucket"

// Configuration the static data describing where issues go and how the
// fields of the source tracker map onto the destination.
type Configuration struct {
	// TargetRepo the destination repository in the form of owner/repo.
	TargetRepo string `json:"target_repo" yaml:"target_repo" required:"true"`
	// ProjectID the destination project board, cards are not filed if it is empty.
	ProjectID *int64 `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	// SourceName the name of the source tracker used in the provenance footer.
	SourceName string `json:"source_name,omitempty" yaml:"source_name,omitempty"`
	// OpenStates the source statuses which keep a destination issue open.
	OpenStates []string `json:"open_states,omitempty" yaml:"open_states,omitempty"`
	// StatusLabels mapping of source status to destination label.
	StatusLabels Mapping `json:"status_labels,omitempty" yaml:"status_labels,omitempty"`
	// StatusColumns mapping of source status to project column name.
	StatusColumns Mapping `json:"status_columns,omitempty" yaml:"status_columns,omitempty"`
	// KindLabels mapping of source kind to destination label.
	KindLabels Mapping `json:"kind_labels,omitempty" yaml:"kind_labels,omitempty"`
	// UserMapping mapping of source username to destination login.
	UserMapping Mapping `json:"user_mapping,omitempty" yaml:"user_mapping,omitempty"`
}

// Load reads the configuration file at path, fills the defaults and validates it.
func Load(path string) (*Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := new(Configuration)
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	c.SetDefault()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Configuration) SetDefault() {
	if c == nil {
		return
	}

	if c.SourceName == "" {
		c.SourceName = defaultSourceName
	}

	c.TargetRepo = strings.Trim(strings.TrimSpace(c.TargetRepo), "/")
}

func (c *Configuration) Validate() error {
	if c == nil {
		return fmt.Errorf("missing configuration")
	}

	if c.TargetRepo == "" {
		return fmt.Errorf("the target_repo configuration item cannot be empty")
	}

	var mErr utils.MultiError

	if _, _, err := splitRepo(c.TargetRepo); err != nil {
		mErr.AddError(err)
	}

	if c.ProjectID != nil && *c.ProjectID <= 0 {
		mErr.AddError(fmt.Errorf("invalid project_id: %d", *c.ProjectID))
	}

	if len(c.StatusColumns) > 0 && c.ProjectID == nil {
		mErr.AddError(fmt.Errorf("status_columns is configured without a project_id"))
	}

	for k, v := range c.UserMapping {
		if strings.TrimSpace(v) == "" {
			mErr.AddError(fmt.Errorf("the user_mapping of %s cannot be empty", k))
		}
	}

	return mErr.Err()
}

// OwnerRepo splits the target repository into its owner and name.
func (c *Configuration) OwnerRepo() (string, string) {
	owner, repo, _ := splitRepo(c.TargetRepo)

	return owner, repo
}

// IsOpenState whether the source status keeps the destination issue open.
func (c *Configuration) IsOpenState(status string) bool {
	for _, v := range c.OpenStates {
		if v == status {
			return true
		}
	}

	return false
}

// HasProject whether cards should be filed into a project board.
func (c *Configuration) HasProject() bool {
	return c.ProjectID != nil
}

func splitRepo(s string) (string, string, error) {
	v := strings.Split(s, "/")
	if len(v) != 2 || v[0] == "" || v[1] == "" {
		return "", "", fmt.Errorf("invalid target_repo %q, it must be owner/repo", s)
	}

	return v[0], v[1], nil
}
