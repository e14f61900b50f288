package run

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

func (c *Controller) searchFiles() ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	if len(c.cfg.Files) > 0 {
		return c.searchFilesByConfig()
	}
	return c.listWorkflows()
}

// listWorkflows returns the workflow files under the root path.
// No matches is a normal outcome, not an error.
func (c *Controller) listWorkflows() ([]string, error) {
	patterns := []string{
		".github/workflows/*.yml",
		".github/workflows/*.yaml",
	}
	files := []string{}
	for _, pattern := range patterns {
		matches, err := afero.Glob(c.fs, filepath.Join(c.param.RootPath, pattern))
		if err != nil {
			return nil, fmt.Errorf("look for workflow files using glob: %w", logerr.WithFields(err, logrus.Fields{
				"pattern": pattern,
			}))
		}
		files = append(files, matches...)
	}
	return files, nil
}

func (c *Controller) searchFilesByConfig() ([]string, error) {
	files := []string{}
	if err := fs.WalkDir(afero.NewIOFS(c.fs), c.param.RootPath, func(p string, dirEntry fs.DirEntry, e error) error {
		if e != nil {
			return nil //nolint:nilerr
		}
		if dirEntry.IsDir() {
			return nil
		}
		filePath, err := filepath.Rel(c.param.RootPath, p)
		if err != nil {
			return nil //nolint:nilerr
		}
		for _, file := range c.cfg.Files {
			if file.Match(filePath) {
				files = append(files, filepath.Join(c.param.RootPath, filePath))
				break
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk the root path: %w", err)
	}
	return files, nil
}
