// Package cli defines the command line interface of pinbump.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

type Runner struct {
	logE *logrus.Entry
}

func Run(ctx context.Context, logE *logrus.Entry, ldflags *urfave.LDFlags, args ...string) error {
	r := &Runner{
		logE: logE,
	}
	cmd := &cli.Command{
		Name:    "pinbump",
		Usage:   "Pin GitHub Actions to commit SHAs and update them to the latest versions. https://github.com/pinbump/pinbump",
		Version: ldflags.Version + " (" + ldflags.Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level",
				Sources: cli.EnvVars("PINBUMP_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file path",
				Sources: cli.EnvVars("PINBUMP_CONFIG"),
			},
		},
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			r.newRunCommand(ldflags),
			r.newListCommand(),
			r.newInitCommand(),
			r.newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
