package cli

import (
	"context"
	"os"

	"github.com/pinbump/pinbump/pkg/config"
	"github.com/pinbump/pinbump/pkg/controller/run"
	"github.com/pinbump/pinbump/pkg/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create .pinbump.yaml if it doesn't exist",
		Description: `Create .pinbump.yaml if it doesn't exist

$ pinbump init

You can also pass a configuration file path.

e.g.

$ pinbump init .github/pinbump.yaml
`,
		Action: r.initAction,
	}
}

func (r *Runner) initAction(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	fs := afero.NewOsFs()
	ctrl := run.New(nil, nil, fs, config.NewFinder(fs), config.NewReader(fs), &run.ParamRun{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = c.String("config")
	}
	if configFilePath == "" {
		configFilePath = ".pinbump.yaml"
	}
	return ctrl.Init(configFilePath) //nolint:wrapcheck
}
