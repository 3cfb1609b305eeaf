package facextract

import (
	"errors"
	"fmt"
	"os"

	"github.com/esimov/facextract/utils"
	pigo "github.com/esimov/pigo/core"
)

// Detector locates face candidates in a grayscale converted pixel buffer.
// Implementations return zero or more candidate regions together with their
// detection score. The filter, cropper and batch driver only depend on this
// interface, keeping them detector backend agnostic.
type Detector interface {
	Detect(pixels []uint8, rows, cols int) []Region
}

// DetectorOptions groups the tunable detection parameters.
type DetectorOptions struct {
	// MinFaceSize is the smallest detection window size in pixels.
	MinFaceSize int
	// ScoreThreshold discards the detections scored at or below its value.
	ScoreThreshold float64
	// ScaleFactor defines in percentage the resize value of the detection
	// window when moving to a higher scale.
	ScaleFactor float64
	// ShiftFactor determines to what percentage to move the detection
	// window over its size.
	ShiftFactor float64
}

func (o *DetectorOptions) validate() error {
	if o.MinFaceSize <= 0 {
		return fmt.Errorf("minimum face size must be positive, got %d", o.MinFaceSize)
	}
	if o.ScoreThreshold < 0 {
		return fmt.Errorf("score threshold must not be negative, got %f", o.ScoreThreshold)
	}
	if o.ScaleFactor <= 1.0 {
		return fmt.Errorf("scale factor must be greater than 1.0, got %f", o.ScaleFactor)
	}
	if o.ShiftFactor <= 0 || o.ShiftFactor > 1.0 {
		return fmt.Errorf("shift factor must be in the (0.0, 1.0] interval, got %f", o.ShiftFactor)
	}
	return nil
}

// PigoDetector runs the Pigo cascade classifier over the image pixel data.
type PigoDetector struct {
	classifier *pigo.Pigo
	opts       DetectorOptions
}

var _ Detector = (*PigoDetector)(nil)

// NewPigoDetector reads the binary cascade file from the given path and
// unpacks it into a classifier. A missing or malformed cascade file means
// no detection can ever run, so the error is meant to abort the whole run.
func NewPigoDetector(cascadePath string, opts DetectorOptions) (*PigoDetector, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	if len(cascade) == 0 {
		return nil, errors.New("the cascade file is empty")
	}

	p := pigo.NewPigo()

	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := p.Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}

	return &PigoDetector{
		classifier: classifier,
		opts:       opts,
	}, nil
}

// Detect runs the classifier over the grayscale pixel buffer and converts the
// clustered detections into square face regions anchored at their top-left corner.
func (d *PigoDetector) Detect(pixels []uint8, rows, cols int) []Region {
	cParams := pigo.CascadeParams{
		MinSize:     d.opts.MinFaceSize,
		MaxSize:     utils.Max(rows, cols),
		ShiftFactor: d.opts.ShiftFactor,
		ScaleFactor: d.opts.ScaleFactor,

		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.classifier.RunCascade(cParams, 0.0)

	// Calculate the intersection over union (IoU) of two clusters.
	dets = d.classifier.ClusterDetections(dets, 0.2)

	regions := make([]Region, 0, len(dets))
	for _, det := range dets {
		if float64(det.Q) <= d.opts.ScoreThreshold {
			continue
		}
		regions = append(regions, Region{
			X: det.Col - det.Scale/2,
			Y: det.Row - det.Scale/2,
			W: det.Scale,
			H: det.Scale,
			Q: float64(det.Q),
		})
	}
	return regions
}
