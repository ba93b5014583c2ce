package app

import (
	"fmt"
	"io"

	"github.com/certlab/certmeter/internal/cert/coordination"
	"github.com/certlab/certmeter/internal/cli"
	apperrors "github.com/certlab/certmeter/internal/errors"
)

// coordinationReport is the JSON document written for a coordination run.
type coordinationReport struct {
	coordination.Input
	coordination.Result
}

// runCoordination computes a coordination effect from the configured
// baselines and presents the classified result.
func (a *Application) runCoordination(out io.Writer) int {
	input := coordination.Input{
		AgentAID:               a.Config.AgentID,
		AgentBID:               a.Config.AgentBID,
		AgentABaseline:         a.Config.BaselineA,
		AgentBBaseline:         a.Config.BaselineB,
		CoordinatedPerformance: a.Config.Coordinated,
		Pattern:                coordination.Pattern(a.Config.Pattern),
	}

	analyzer := coordination.NewAnalyzer(coordination.WithLogger(a.Logger))
	result, err := analyzer.Effect(input)
	if err != nil {
		return a.reportError(err)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	cli.DisplayCoordinationResult(out, input, result, outputCfg)

	report := coordinationReport{Input: input, Result: result}
	if err := cli.WriteResultToFile(a.Config.OutputFile, report); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	cli.DisplaySavedNotice(out, a.Config.OutputFile, outputCfg)

	return apperrors.ExitSuccess
}
