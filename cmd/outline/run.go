package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

var (
	runOutDir string
	runTitle  string
	runQuiet  bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Extract the outline of a document and write the artifacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if runQuiet {
			level = slog.LevelError
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		p := pipeline.New(cfg, log)
		res, err := p.RunFile(args[0], runTitle)
		if err != nil {
			return err
		}
		for _, stepErr := range res.Errors {
			log.Error("step failed", "step", stepErr.Step, "error", stepErr.Err)
		}

		if err := p.WriteArtifacts(res, runOutDir); err != nil {
			return fmt.Errorf("write artifacts: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"%s: %d pages, %d TOC entries, %d sections (%.1f%% TOC coverage) -> %s\n",
			res.DocTitle,
			res.Report.TotalPages,
			res.Report.TotalTOCEntries,
			res.Report.SectionsParsed,
			res.Report.TOCCoveragePct,
			runOutDir,
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", ".", "directory for output artifacts")
	runCmd.Flags().StringVarP(&runTitle, "title", "t", "", "document title override")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "only log errors")
}
