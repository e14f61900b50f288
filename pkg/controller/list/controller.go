// Package list implements the list command, which prints every action
// reference found in workflow files without modifying anything.
package list

import (
	"io"

	"github.com/spf13/afero"
)

type Controller struct {
	fs    afero.Fs
	param *Param
}

type Param struct {
	WorkflowFilePaths []string
	RootPath          string
	LineTemplate      string
	Stdout            io.Writer
}

func New(fs afero.Fs, param *Param) *Controller {
	return &Controller{
		fs:    fs,
		param: param,
	}
}
