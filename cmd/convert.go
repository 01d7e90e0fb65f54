package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/duration"
	"github.com/spigell/cv2profile/internal/pipeline"
	"github.com/spigell/cv2profile/internal/report"
)

const (
	PromptShowReport = "Show report"
	PromptShowJSON   = "Show JSON"
	PromptDumpToFile = "Dump profile to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptShowJSON, PromptDumpToFile, PromptExit},
}

var convertCmd = &cobra.Command{
	Use:   "convert <path|url|s3://bucket/key>",
	Short: "Extract a profile from a CV and compute experience totals",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		convert(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("format", "f", "", "report format: markdown, text or json (default from report.format)")
	convertCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	convertCmd.Flags().BoolP("yes", "y", false, "print the report and exit without the interactive menu")
	convertCmd.Flags().String("today", "", "reference date for ongoing periods, DD-MM-YYYY (default is the current date)")

	viper.BindPFlag("report.format", convertCmd.Flags().Lookup("format"))
}

func convert(cmd *cobra.Command, location string) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the cv2profile", zap.String("version", version))

	format, err := report.ParseFormat(viper.GetString("report.format"))
	if err != nil {
		logger.Fatal("parsing report format", zap.Error(err))
	}

	now, err := referenceTime(cmd.Flag("today").Value.String())
	if err != nil {
		logger.Fatal("parsing --today", zap.Error(err))
	}

	fetcher, err := newFetcher(ctx, config.Source, logger)
	if err != nil {
		logger.Fatal("preparing document sources", zap.Error(err))
	}

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("preparing the extractor", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	deps := pipeline.Deps{Fetcher: fetcher, Extractor: extractor, Logger: logger}
	steps := pipeline.DefaultSteps()

	publisher, err := newPublisher(config.Publish, logger)
	switch {
	case err != nil:
		logger.Warn("skipping publishing", zap.Error(err))
		pipeline.DisableByName(steps, "publish", err.Error())
	case publisher == nil:
		pipeline.DisableByName(steps, "publish", "publish.amqp.url is not set")
	default:
		defer publisher.Close()
		deps.Publisher = publisher
	}

	for _, status := range pipeline.Describe(steps) {
		logger.Debug("pipeline step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	state := pipeline.NewState(pipeline.NewRequest(location, now))
	if err := pipeline.Run(ctx, deps, steps, state); err != nil {
		logger.Fatal("conversion failed", zap.Error(err))
	}

	if len(state.Issues) > 0 {
		logger.Info("extraction was repaired", zap.Int("issues", len(state.Issues)))
	}

	if output := cmd.Flag("output").Value.String(); output != "" {
		if err := writeReport(output, state.Report, format); err != nil {
			logger.Fatal("writing the report", zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", output))
		return
	}

	if cmd.Flag("yes").Value.String() == "true" {
		if err := report.Render(os.Stdout, state.Report, format); err != nil {
			logger.Fatal("rendering the report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, state.Report, format, os.Stdout); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, r *report.Report, format report.Format, out io.Writer) error {
	switch action {
	case PromptShowReport:
		return report.Render(out, r, format)
	case PromptShowJSON:
		return report.Render(out, r, report.FormatJSON)
	case PromptDumpToFile:
		filename, err := r.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump profile to file: %w", err)
		}
		logger.Info("dumping profile to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// referenceTime resolves --today. Empty means the wall clock.
func referenceTime(today string) (time.Time, error) {
	if today == "" {
		return time.Now(), nil
	}

	d, err := duration.Parse(today)
	if err != nil {
		return time.Time{}, err
	}

	return d.Time(), nil
}

func writeReport(path string, r *report.Report, format report.Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return report.Render(file, r, format)
}
