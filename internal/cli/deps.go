package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/lucasnoah/disktriage/internal/analyze"
	"github.com/lucasnoah/disktriage/internal/config"
	"github.com/lucasnoah/disktriage/internal/report"
	"github.com/lucasnoah/disktriage/internal/tsk"
)

// runTimestampFormat is the prefix applied to every file of one run.
const runTimestampFormat = "20060102_150405"

// loadConfig loads an explicit config path, or searches the standard
// locations when path is empty. The loaded config is validated.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", errs[0].Error())
	}
	return cfg, nil
}

// loadRaw loads a config without validating it.
func loadRaw(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// newAnalyzer wires an Analyzer for one run against the real filesystem
// and a shelling command runner.
func newAnalyzer(cfg *config.Config, image, outDir, caseID string, now time.Time, progress io.Writer) *analyze.Analyzer {
	rep := report.New(now, image, caseID)
	writer := report.NewWriter(afero.NewOsFs(), outDir, now.Format(runTimestampFormat))
	client := tsk.NewClient(&tsk.ExecRunner{}, time.Duration(cfg.TimeoutSeconds)*time.Second)
	cmds := tsk.NewCommands(tsk.Tools{
		Mmls:   cfg.Tools.Mmls,
		Fsstat: cfg.Tools.Fsstat,
		Fls:    cfg.Tools.Fls,
		Istat:  cfg.Tools.Istat,
		Icat:   cfg.Tools.Icat,
	}, image)
	opts := report.HTMLOptions{
		MaxFileRows:    cfg.HTML.MaxFileRows,
		MaxFSInfoChars: cfg.HTML.MaxFSInfoChars,
	}
	return analyze.New(client, cmds, writer, rep, opts, progress)
}
