// Package run implements the core logic for pinning GitHub Actions.
// The controller scans workflow files for action references, resolves each
// reference to a full commit SHA through the GitHub API, and rewrites the
// files so that mutable tags and branches are replaced with immutable commit
// SHAs. It supports updating references to the latest release, a check mode
// that reports without writing, and SARIF output of findings.
package run

import (
	"io"

	"github.com/pinbump/pinbump/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	repositoriesService RepositoriesService
	gitService          GitService
	fs                  afero.Fs
	cfg                 *config.Config
	param               *ParamRun
	cfgFinder           ConfigFinder
	cfgReader           ConfigReader
	logger              *Logger
	findings            []*Finding
}

type ParamRun struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	RootPath          string
	Update            bool
	Check             bool
	Fix               bool
	Format            string
	Version           string
	Stdout            io.Writer
	Stderr            io.Writer
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

func New(repositoriesService RepositoriesService, gitService GitService, fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *ParamRun) *Controller {
	return &Controller{
		repositoriesService: repositoriesService,
		gitService:          gitService,
		fs:                  fs,
		cfg:                 &config.Config{},
		param:               param,
		cfgFinder:           cfgFinder,
		cfgReader:           cfgReader,
		logger:              NewLogger(param.Stderr),
	}
}
