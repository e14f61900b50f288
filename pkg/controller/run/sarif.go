package run

import (
	"encoding/json"
	"fmt"

	"github.com/pinbump/pinbump/pkg/sarif"
)

const (
	formatSARIF = "sarif"

	ruleUnpinnedAction = "unpinned-action"
	ruleResolveError   = "resolve-error"
)

// outputSARIF writes the findings of the run to stdout in SARIF format.
func (c *Controller) outputSARIF() error {
	log := sarif.Log{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:    "pinbump",
						Version: c.param.Version,
						Rules: []sarif.Rule{
							{
								ID: ruleUnpinnedAction,
								ShortDescription: sarif.Message{
									Text: "GitHub Action is not pinned to a commit SHA",
								},
							},
							{
								ID: ruleResolveError,
								ShortDescription: sarif.Message{
									Text: "Failed to resolve an action reference",
								},
							},
						},
					},
				},
				Results: c.buildSARIFResults(),
			},
		},
	}

	encoder := json.NewEncoder(c.param.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (c *Controller) buildSARIFResults() []sarif.Result {
	results := make([]sarif.Result, 0, len(c.findings))
	for _, f := range c.findings {
		ruleID := ruleUnpinnedAction
		level := "warning"
		msg := "Action should be pinned: " + f.Old
		if f.New != "" {
			msg += " -> " + f.New
		}
		if f.Message != "" {
			ruleID = ruleResolveError
			level = "error"
			msg = f.Message
		}

		results = append(results, sarif.Result{
			RuleID:  ruleID,
			Level:   level,
			Message: sarif.Message{Text: msg},
			Locations: []sarif.Location{
				{
					PhysicalLocation: sarif.PhysicalLocation{
						ArtifactLocation: sarif.ArtifactLocation{
							URI: f.File,
						},
						Region: sarif.Region{
							StartLine: f.Line,
						},
					},
				},
			},
		})
	}
	return results
}
