package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esimov/outline"
	"github.com/esimov/outline/config"
	"github.com/esimov/outline/logger"
	"github.com/esimov/outline/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const helpBanner = `
┌─┐┬ ┬┌┬┐┬  ┬┌┐┌┌─┐
│ ││ │ │ │  ││││├┤
└─┘└─┘ ┴ ┴─┘┴┘└┘└─┘

Raster to vector outline tracer.
    Version: %s
`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the command line interface: outline [flags] <input> <output>.
func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "outline [flags] <input> <output>",
		Short:         "Trace the outlines of raster images into SVG files",
		Long:          fmt.Sprintf(helpBanner, Version),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				cmd.PrintErrln(utils.DecorateText(err.Error(), utils.ErrorMessage))
				cmd.PrintErrln(cmd.UsageString())
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
				return err
			}
			applyFlags(cmd, cfg)

			logger.Setup(cfg.Environment)
			ctx := context.Background()
			defer func() { _ = logger.Get(ctx).Sync() }()

			return run(ctx, cfg, args[0], args[1])
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(utils.DecorateText(err.Error(), utils.ErrorMessage))
		return err
	})

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file path (yaml)")
	flags.Int("threshold", int(outline.DefaultThreshold), "Highest intensity treated as foreground (0-255)")
	flags.Int("conc", 0, "Number of files to process concurrently (0 means the number of CPUs)")
	flags.String("fill", outline.DefaultStyle.Fill, "Path fill color")
	flags.String("stroke", outline.DefaultStyle.Stroke, "Path stroke color")
	flags.Int("stroke-width", outline.DefaultStyle.StrokeWidth, "Path stroke width")
	flags.Bool("quiet", false, "Disable the progress indicator")

	return cmd
}

// loadConfig reads the config file when provided, otherwise the environment.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadEnv()
}

// applyFlags overrides the configuration with the explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("conc") {
		cfg.Workers, _ = flags.GetInt("conc")
	}
	if flags.Changed("fill") {
		cfg.Style.Fill, _ = flags.GetString("fill")
	}
	if flags.Changed("stroke") {
		cfg.Style.Stroke, _ = flags.GetString("stroke")
	}
	if flags.Changed("stroke-width") {
		cfg.Style.StrokeWidth, _ = flags.GetInt("stroke-width")
	}
	if quiet, _ := flags.GetBool("quiet"); quiet {
		cfg.Spinner = false
	}
}

// run traces the source into the destination and prints the status of every file.
func run(ctx context.Context, cfg *config.Config, src, dst string) error {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		return err
	}

	proc := &outline.Processor{
		Threshold: uint8(cfg.Threshold),
		Style: outline.Style{
			Fill:        cfg.Style.Fill,
			Stroke:      cfg.Style.Stroke,
			StrokeWidth: cfg.Style.StrokeWidth,
		},
	}

	// The spinner would corrupt the output when writing to stdout.
	if cfg.Spinner && dst != pipeName {
		proc.Spinner = utils.NewSpinner(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ OUTLINE", utils.StatusMessage),
			utils.DecorateText("⇢ tracing the image outlines...", utils.DefaultMessage),
		), time.Millisecond*80, true)

		// Capture CTRL-C signal and restores back the cursor visibility.
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signalChan)
		go func() {
			if _, ok := <-signalChan; ok {
				proc.Spinner.RestoreCursor()
				os.Exit(1)
			}
		}()
	}

	summary, err := proc.Execute(ctx, &outline.Ops{
		Src:      src,
		Dst:      dst,
		PipeName: pipeName,
		Workers:  cfg.WorkerCount(),
	})
	if err != nil {
		logger.Error(ctx, "could not trace the source", zap.Error(err))
		fmt.Fprintln(os.Stderr, utils.DecorateText(fmt.Sprintf("\nError tracing the image: %v", err), utils.ErrorMessage))
		return err
	}
	printStatus(summary, dst)

	return summary.Err()
}

// printStatus displays the relevant information about the tracing process.
func printStatus(summary *outline.Summary, dst string) {
	for _, o := range summary.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "%s %s\n",
				utils.DecorateText("\nError tracing the image:", utils.ErrorMessage),
				utils.DecorateText(fmt.Sprintf("%s\n\tReason: %v", o.Src, o.Err), utils.DefaultMessage),
			)
		}
	}
	if dst == pipeName {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s image(s) traced, %s failed. Execution time: %s\n",
		utils.DecorateText(fmt.Sprint(summary.Succeeded()), utils.SuccessMessage),
		utils.DecorateText(fmt.Sprint(summary.Failed()), utils.ErrorMessage),
		utils.DecorateText(utils.FormatTime(summary.Elapsed), utils.SuccessMessage),
	)
}
