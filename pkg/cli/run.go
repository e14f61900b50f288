package cli

import (
	"context"
	"os"

	"github.com/pinbump/pinbump/pkg/config"
	"github.com/pinbump/pinbump/pkg/controller/run"
	"github.com/pinbump/pinbump/pkg/github"
	"github.com/pinbump/pinbump/pkg/log"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newRunCommand(ldflags *urfave.LDFlags) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Pin GitHub Actions to commit SHAs",
		Description: `If no argument is passed, pinbump searches GitHub Actions workflow files from .github/workflows.

$ pinbump run

You can also pass workflow file paths as arguments.

e.g.

$ pinbump run .github/workflows/test.yaml
`,
		Action: func(ctx context.Context, c *cli.Command) error {
			return r.runAction(ctx, c, ldflags)
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "update",
				Aliases: []string{"u"},
				Usage:   "Update actions to latest release versions",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit with a non-zero status code if actions aren't pinned. If this is true, files aren't updated",
			},
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "Fix files. By default, this is true. If -check is true, this is false by default",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format of check findings (sarif)",
			},
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Repository root path",
				Value:   ".",
			},
		},
	}
}

func (r *Runner) runAction(ctx context.Context, c *cli.Command, ldflags *urfave.LDFlags) error {
	log.SetLevel(c.String("log-level"), r.logE)
	gh := github.New(ctx, r.logE)
	fs := afero.NewOsFs()
	param := &run.ParamRun{
		WorkflowFilePaths: c.Args().Slice(),
		ConfigFilePath:    c.String("config"),
		RootPath:          c.String("path"),
		Update:            c.Bool("update"),
		Check:             c.Bool("check"),
		Format:            c.String("format"),
		Fix:               true,
		Version:           ldflags.Version,
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	}
	if c.IsSet("fix") {
		param.Fix = c.Bool("fix")
	} else if param.Check {
		param.Fix = false
	}
	ctrl := run.New(&run.RepositoriesServiceImpl{
		Commits:             map[string]*run.GetCommitSHA1Result{},
		Releases:            map[string]*run.GetLatestReleaseResult{},
		RepositoriesService: gh.Repositories,
	}, &run.GitServiceImpl{
		Refs:       map[string]*run.GetRefResult{},
		Tags:       map[string]*run.GetTagResult{},
		GitService: gh.Git,
	}, fs, config.NewFinder(fs), config.NewReader(fs), param)
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
