package list

import (
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/pinbump/pinbump/pkg/controller/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Entry is the data passed to the line template for each action reference.
type Entry struct {
	File string
	Line int
	Name string
	Ref  string
}

func (c *Controller) List(logE *logrus.Entry) error {
	workflowFilePaths, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}

	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}

	for _, workflowFilePath := range workflowFilePaths {
		logE := logE.WithField("workflow_file", workflowFilePath)
		if err := c.listWorkflow(workflowFilePath, tmpl); err != nil {
			logerr.WithError(logE, err).Error("list actions in a workflow")
		}
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	if c.param.LineTemplate == "" {
		return nil, nil //nolint:nilnil
	}
	tmpl, err := template.New("line").Parse(c.param.LineTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse line template: %w", err)
	}
	return tmpl, nil
}

func (c *Controller) listWorkflow(workflowFilePath string, tmpl *template.Template) error {
	content, err := afero.ReadFile(c.fs, workflowFilePath)
	if err != nil {
		return fmt.Errorf("read a workflow file: %w", err)
	}
	actions, err := run.ScanUses(content)
	if err != nil {
		return err
	}
	for _, action := range actions {
		entry := &Entry{
			File: workflowFilePath,
			Line: action.Line,
			Name: action.Name(),
			Ref:  action.Reference,
		}
		if tmpl == nil {
			fmt.Fprintf(c.param.Stdout, "%s:%d: %s@%s\n", entry.File, entry.Line, entry.Name, entry.Ref)
			continue
		}
		if err := tmpl.Execute(c.param.Stdout, entry); err != nil {
			return fmt.Errorf("render a line template: %w", err)
		}
		fmt.Fprintln(c.param.Stdout)
	}
	return nil
}

func (c *Controller) searchFiles() ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	patterns := []string{
		".github/workflows/*.yml",
		".github/workflows/*.yaml",
	}
	files := []string{}
	for _, pattern := range patterns {
		matches, err := afero.Glob(c.fs, filepath.Join(c.param.RootPath, pattern))
		if err != nil {
			return nil, fmt.Errorf("look for workflow files using glob: %w", err)
		}
		files = append(files, matches...)
	}
	return files, nil
}
