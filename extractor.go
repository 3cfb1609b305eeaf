package facextract

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// validExtensions lists the supported source image file types.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Options groups the batch extraction parameters.
type Options struct {
	// InputDir is the directory tree scanned for source images.
	InputDir string
	// OutputDir receives one image file per extracted face.
	OutputDir string
	// TargetFaces stops the run once this many faces were extracted.
	TargetFaces int
}

// Validate checks the extraction options once, at startup.
func (o *Options) Validate() error {
	if o.InputDir == "" {
		return fmt.Errorf("the input directory must be provided")
	}
	if o.OutputDir == "" {
		return fmt.Errorf("the output directory must be provided")
	}
	if o.TargetFaces <= 0 {
		return fmt.Errorf("target face count must be positive, got %d", o.TargetFaces)
	}
	return nil
}

// quota hands out extraction slots up to a fixed limit. The sequence numbers
// are strictly increasing and never reused, which keeps the generated file
// names collision-free within one run. Slots are claimed with a compare and
// swap, so a future concurrent driver could share one quota without changes.
type quota struct {
	count atomic.Int64
	limit int64
}

func newQuota(limit int) *quota {
	return &quota{limit: int64(limit)}
}

// reserve claims the next slot and returns its 1-based sequence number.
// It reports false once the limit is reached.
func (q *quota) reserve() (int64, bool) {
	for {
		cur := q.count.Load()
		if cur >= q.limit {
			return 0, false
		}
		if q.count.CompareAndSwap(cur, cur+1) {
			return cur + 1, true
		}
	}
}

// release hands a claimed slot back after a failed save. The driver is
// sequential, so no later reservation can exist when a slot is returned.
func (q *quota) release() {
	q.count.Add(-1)
}

func (q *quota) filled() bool {
	return q.count.Load() >= q.limit
}

func (q *quota) total() int64 {
	return q.count.Load()
}

// Summary reports the outcome of one extraction run.
type Summary struct {
	// Processed counts the image files decoded and scanned for faces.
	Processed int
	// Errors counts the files skipped because of decode or save failures.
	Errors int
	// Extracted counts the face crops saved into the output directory.
	Extracted int
}

// Extractor walks the input directory tree and feeds every image through the
// detect, filter, crop and save pipeline until the target face count is
// reached. Files are processed strictly one after the other and each decoded
// image buffer is released before the next file is loaded.
type Extractor struct {
	// Progress, when set, is invoked before each file is processed.
	Progress func(path string, index, total int)
	// Logf, when set, receives the informational status messages.
	// It defaults to log.Printf.
	Logf func(format string, args ...any)

	opts     Options
	detector Detector
	quota    *quota
}

// NewExtractor validates the options and returns a ready to run extractor.
func NewExtractor(detector Detector, opts Options) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		opts:     opts,
		detector: detector,
		quota:    newQuota(opts.TargetFaces),
	}, nil
}

// Run executes the batch extraction. Decode and save failures are contained
// at the per-file boundary: the file is skipped, the error counter is bumped
// and the run carries on. Only setup failures abort the run.
func (e *Extractor) Run() (Summary, error) {
	var sum Summary

	if err := os.MkdirAll(e.opts.OutputDir, 0755); err != nil {
		return sum, fmt.Errorf("unable to create the output directory: %w", err)
	}

	paths, err := imagePaths(e.opts.InputDir)
	if err != nil {
		return sum, fmt.Errorf("unable to walk the input directory: %w", err)
	}
	if len(paths) == 0 {
		e.logf("no images found in %s", e.opts.InputDir)
		return sum, nil
	}
	e.logf("found %d images to process", len(paths))

	for i, path := range paths {
		if e.quota.filled() {
			e.logf("target reached, extracted %d faces", e.quota.total())
			break
		}
		if e.Progress != nil {
			e.Progress(path, i+1, len(paths))
		}

		extracted, err := e.processFile(path)
		if err != nil {
			sum.Errors++
			e.logf("skipping %s: %v", path, err)
			continue
		}
		sum.Processed++
		if extracted > 0 {
			e.logf("extracted %d faces from %s", extracted, filepath.Base(path))
		}
	}

	sum.Extracted = int(e.quota.total())
	return sum, nil
}

// processFile runs the detection pipeline over a single image file and
// returns the number of faces saved from it.
func (e *Extractor) processFile(path string) (int, error) {
	img, err := decodeImage(path)
	if err != nil {
		return 0, err
	}
	bounds := img.Bounds()

	// Transform the image to a grayscale pixel array.
	pixels := pigo.RgbToGrayscale(img)

	regions := e.detector.Detect(pixels, bounds.Dy(), bounds.Dx())
	if len(regions) == 0 {
		return 0, nil
	}

	regions = FilterRegions(regions, bounds.Dx(), bounds.Dy())
	if len(regions) == 0 {
		return 0, nil
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var extracted int
	for _, reg := range regions {
		seq, ok := e.quota.reserve()
		if !ok {
			break
		}
		face := CropRegion(img, reg)

		name := fmt.Sprintf("%s_%04d_%.0f.jpg", stem, seq, reg.Q*100)
		if err := imaging.Save(face, filepath.Join(e.opts.OutputDir, name)); err != nil {
			e.quota.release()
			return extracted, fmt.Errorf("unable to save the cropped face: %w", err)
		}
		extracted++
	}
	return extracted, nil
}

func (e *Extractor) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// imagePaths walks the directory tree in a recursive manner and collects the
// regular files carrying a supported image extension.
func imagePaths(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fx := strings.ToLower(filepath.Ext(d.Name()))
		for _, ext := range validExtensions {
			if ext == fx {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	return paths, err
}
