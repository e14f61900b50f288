package run

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pinbump/pinbump/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// ErrActionsNotPinned is returned by check mode when any action isn't pinned
// or can't be resolved.
var ErrActionsNotPinned = errors.New("actions aren't pinned")

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	workflowFilePaths, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}

	failed := false
	for _, workflowFilePath := range workflowFilePaths {
		logE := logE.WithField("workflow_file", workflowFilePath)
		if err := c.runWorkflow(ctx, logE, workflowFilePath); err != nil {
			failed = true
			if errors.Is(err, ErrActionsNotPinned) {
				continue
			}
			logerr.WithError(logE, err).Error("update a workflow")
		}
	}
	if c.param.Format == formatSARIF {
		if err := c.outputSARIF(); err != nil {
			return err
		}
	}
	if c.param.Check && failed {
		return ErrActionsNotPinned
	}
	return nil
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, c.param.ConfigFilePath); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	c.cfg = cfg
	return nil
}

// runWorkflow pins the action references of a single workflow file.
// A reference that can't be resolved is reported and excluded from the change
// set; the rest of the file is still processed. The file is only written when
// something actually changed.
func (c *Controller) runWorkflow(ctx context.Context, logE *logrus.Entry, workflowFilePath string) error { //nolint:cyclop
	content, err := afero.ReadFile(c.fs, workflowFilePath)
	if err != nil {
		return fmt.Errorf("read a workflow file: %w", err)
	}
	actions, err := ScanUses(content)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		return nil
	}

	failed := false
	changes := make([]*Change, 0, len(actions))
	for _, action := range actions {
		if c.ignored(action) {
			logE.WithField("action", action.String()).Debug("ignore the action")
			continue
		}
		pin, err := c.resolve(ctx, logE, action)
		if err != nil {
			logerr.WithError(logE, err).WithField("action", action.String()).Error("resolve an action reference")
			c.findings = append(c.findings, &Finding{
				File:    workflowFilePath,
				Line:    action.Line,
				Message: fmt.Sprintf("resolve %s: %v", action.String(), err),
			})
			failed = true
			continue
		}
		if alreadyPinned(action.Reference, pin.SHA) {
			continue
		}
		change := &Change{
			Old: action.String(),
			New: fmt.Sprintf("%s/%s@%s # %s", action.Owner, action.Repo, pin.SHA, pin.Label),
		}
		changes = append(changes, change)
		c.findings = append(c.findings, &Finding{
			File: workflowFilePath,
			Line: action.Line,
			Old:  change.Old,
			New:  change.New,
		})
	}

	if len(changes) == 0 {
		if c.param.Check && failed {
			return ErrActionsNotPinned
		}
		return nil
	}
	if c.param.Fix {
		text := string(content)
		newText := rewrite(text, changes)
		if newText != text {
			if err := c.writeWorkflow(workflowFilePath, newText); err != nil {
				return err
			}
		}
		for _, change := range changes {
			c.logger.Change(workflowFilePath, change)
		}
	}
	if c.param.Check {
		return ErrActionsNotPinned
	}
	return nil
}

// alreadyPinned reports whether the reference already starts with the first
// seven characters of the resolved SHA.
func alreadyPinned(reference, sha string) bool {
	if len(sha) > shortSHALength {
		sha = sha[:shortSHALength]
	}
	return strings.HasPrefix(reference, sha)
}

func (c *Controller) ignored(action *ActionReference) bool {
	for _, ia := range c.cfg.IgnoreActions {
		if ia.Match(action.Name(), action.Reference) {
			return true
		}
	}
	return false
}

func (c *Controller) writeWorkflow(workflowFilePath, content string) error {
	stat, err := c.fs.Stat(workflowFilePath)
	if err != nil {
		return fmt.Errorf("get workflow file stat: %w", err)
	}
	if err := afero.WriteFile(c.fs, workflowFilePath, []byte(content), stat.Mode()); err != nil {
		return fmt.Errorf("write a workflow file: %w", err)
	}
	return nil
}
