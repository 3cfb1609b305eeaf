package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/esimov/facextract"
	"github.com/esimov/facextract/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version indicates the current build version.
var Version = "0.0.1"

// defaultModelURL points to the published binary cascade file used
// when the --fetch flag is given and no local copy exists yet.
const defaultModelURL = "https://raw.githubusercontent.com/esimov/pigo/master/cascade/facefinder"

var (
	opts     facextract.Options
	detOpts  facextract.DetectorOptions
	model    string
	modelURL string
	fetch    bool
)

var rootCmd = &cobra.Command{
	Use:          "facextract",
	Short:        "Extract face crops from a directory of images",
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&opts.InputDir, "in", "i", "./images", "Input directory containing images")
	rootCmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "./faces", "Output directory for the extracted faces")
	rootCmd.Flags().IntVar(&opts.TargetFaces, "target", 5000, "Target number of faces to extract")
	rootCmd.Flags().StringVarP(&model, "model", "m", "./facefinder", "Path to the binary cascade file")
	rootCmd.Flags().BoolVar(&fetch, "fetch", false, "Download the cascade file when it is missing")
	rootCmd.Flags().StringVar(&modelURL, "model-url", defaultModelURL, "Cascade file download location")
	rootCmd.Flags().IntVar(&detOpts.MinFaceSize, "min-face", 40, "Minimum face size in pixels")
	rootCmd.Flags().Float64VarP(&detOpts.ScoreThreshold, "threshold", "t", 2.0, "Detection score threshold")
	rootCmd.Flags().Float64Var(&detOpts.ScaleFactor, "scale-factor", 1.1, "Detection window resize factor")
	rootCmd.Flags().Float64Var(&detOpts.ShiftFactor, "shift-factor", 0.1, "Detection window shift percentage")
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
}

func run() error {
	now := time.Now()
	isTerm := term.IsTerminal(int(os.Stderr.Fd()))

	if err := ensureModel(isTerm); err != nil {
		return err
	}

	detector, err := facextract.NewPigoDetector(model, detOpts)
	if err != nil {
		return err
	}

	ext, err := facextract.NewExtractor(detector, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s %s\n",
		utils.DecorateText("⚡ FACEXTRACT", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("target: %d faces", opts.TargetFaces), utils.DefaultMessage))

	var bar *progressbar.ProgressBar
	if isTerm {
		ext.Progress = func(path string, index, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("🔍 scanning"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
				)
			}
			bar.Add(1)
		}
	}
	ext.Logf = func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "\n"+format+"\n", args...)
	}

	sum, err := ext.Run()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nImages processed: %d\n", sum.Processed)
	fmt.Fprintf(os.Stderr, "Errors: %d\n", sum.Errors)
	fmt.Fprintf(os.Stderr, "Faces extracted: %d\n", sum.Extracted)
	fmt.Fprintf(os.Stderr, "Output directory: %s\n", opts.OutputDir)
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}

// ensureModel fetches the cascade file when it is missing and --fetch is given.
// A missing model without --fetch is left to the detector setup to report.
func ensureModel(isTerm bool) error {
	if _, err := os.Stat(model); err == nil || !fetch {
		return nil
	}

	if !utils.IsValidUrl(modelURL) {
		return fmt.Errorf("invalid cascade file URL: %s", modelURL)
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FACEXTRACT", utils.StatusMessage),
		utils.DecorateText("is fetching the cascade file...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, isTerm)

	spinner.Start()
	err := utils.DownloadFile(modelURL, model)
	spinner.Stop()

	if err != nil {
		return fmt.Errorf("unable to fetch the cascade file: %w", err)
	}
	return nil
}
