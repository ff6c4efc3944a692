package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func TestLoad(t *testing.T) {
	p := writeFile(t, `
target_repo: owner/repo
project_id: 42
open_states: [new, open]
status_labels:
  open: open-label
status_columns:
  new: To do
kind_labels:
  enhancement: feature
user_mapping:
  jdoe: john
`)

	c, err := Load(p)
	require.NoError(t, err)

	owner, repo := c.OwnerRepo()
	assert.Equal(t, "owner", owner)
	assert.Equal(t, "repo", repo)
	assert.Equal(t, defaultSourceName, c.SourceName)
	assert.True(t, c.HasProject())
	assert.Equal(t, int64(42), *c.ProjectID)
	assert.True(t, c.IsOpenState("new"))
	assert.False(t, c.IsOpenState("resolved"))
	assert.Equal(t, "To do", c.StatusColumns["new"])
	assert.Equal(t, "john", c.UserMapping["jdoe"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	id := int64(7)
	zero := int64(0)

	tests := []struct {
		name    string
		cfg     Configuration
		wantErr bool
	}{
		{
			name:    "missing target repo",
			cfg:     Configuration{},
			wantErr: true,
		},
		{
			name:    "malformed target repo",
			cfg:     Configuration{TargetRepo: "owner"},
			wantErr: true,
		},
		{
			name:    "invalid project id",
			cfg:     Configuration{TargetRepo: "o/r", ProjectID: &zero},
			wantErr: true,
		},
		{
			name:    "columns without project",
			cfg:     Configuration{TargetRepo: "o/r", StatusColumns: Mapping{"new": "To do"}},
			wantErr: true,
		},
		{
			name:    "empty user mapping",
			cfg:     Configuration{TargetRepo: "o/r", UserMapping: Mapping{"jdoe": " "}},
			wantErr: true,
		},
		{
			name: "valid",
			cfg: Configuration{
				TargetRepo:    "o/r",
				ProjectID:     &id,
				StatusColumns: Mapping{"new": "To do"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			c.SetDefault()

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetDefaultTrimsRepo(t *testing.T) {
	c := Configuration{TargetRepo: " /owner/repo/ ", SourceName: "jira"}
	c.SetDefault()

	assert.Equal(t, "owner/repo", c.TargetRepo)
	assert.Equal(t, "jira", c.SourceName)
}

func TestMappingResolve(t *testing.T) {
	m := Mapping{"bug": "defect"}

	v, ok := m.Resolve("bug", FallbackDrop)
	assert.True(t, ok)
	assert.Equal(t, "defect", v)

	v, ok = m.Resolve("task", FallbackRaw)
	assert.True(t, ok)
	assert.Equal(t, "task", v)

	_, ok = m.Resolve("task", FallbackDrop)
	assert.False(t, ok)

	var empty Mapping
	_, ok = empty.Resolve("bug", FallbackDrop)
	assert.False(t, ok)
}
