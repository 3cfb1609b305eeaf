package facextract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultDetectorOptions() DetectorOptions {
	return DetectorOptions{
		MinFaceSize:    40,
		ScoreThreshold: 2.0,
		ScaleFactor:    1.1,
		ShiftFactor:    0.1,
	}
}

func TestDetector_ShouldFailOnMissingCascadeFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "facefinder")

	_, err := NewPigoDetector(missing, defaultDetectorOptions())
	assert.Error(t, err)
}

func TestDetector_ShouldRejectInvalidOptions(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name   string
		mutate func(*DetectorOptions)
	}{
		{"zero min face size", func(o *DetectorOptions) { o.MinFaceSize = 0 }},
		{"negative score threshold", func(o *DetectorOptions) { o.ScoreThreshold = -1 }},
		{"scale factor at one", func(o *DetectorOptions) { o.ScaleFactor = 1.0 }},
		{"zero shift factor", func(o *DetectorOptions) { o.ShiftFactor = 0 }},
		{"shift factor above one", func(o *DetectorOptions) { o.ShiftFactor = 1.5 }},
	}

	for _, c := range cases {
		opts := defaultDetectorOptions()
		c.mutate(&opts)

		_, err := NewPigoDetector("testdata/facefinder", opts)
		assert.Error(err, c.name)
	}
}
