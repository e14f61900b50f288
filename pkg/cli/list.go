package cli

import (
	"context"
	"os"

	"github.com/pinbump/pinbump/pkg/controller/list"
	"github.com/pinbump/pinbump/pkg/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List action references found in workflow files",
		Description: `List action references found in workflow files.

$ pinbump list

The output format can be customized with a Go template rendering
{{.File}}, {{.Line}}, {{.Name}}, and {{.Ref}}.

e.g.

$ pinbump list -f '{{.Name}}@{{.Ref}}'
`,
		Action: r.listAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "line-template",
				Aliases: []string{"f"},
				Usage:   "Go template of each output line",
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

func (r *Runner) listAction(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	ctrl := list.New(afero.NewOsFs(), &list.Param{
		WorkflowFilePaths: c.Args().Slice(),
		RootPath:          c.String("path"),
		LineTemplate:      c.String("line-template"),
		Stdout:            os.Stdout,
	})
	return ctrl.List(r.logE) //nolint:wrapcheck
}
