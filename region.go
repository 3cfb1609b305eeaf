package facextract

// Acceptance thresholds applied to the detected face candidates.
// The confidence gate is fixed on purpose and independent of the
// configurable detector score threshold.
const (
	minAreaRatio   = 0.02
	maxAreaRatio   = 0.4
	minConfidence  = 2.0
	minAspectRatio = 0.5
	maxAspectRatio = 2.0
	minRegionSize  = 40
)

// Region is an axis-aligned bounding box describing one detected face candidate.
// Q holds the detection score expressed on the detector's own scale,
// it is not normalized to the [0,1] interval.
type Region struct {
	X, Y int
	W, H int
	Q    float64
}

// FilterRegions returns the order-preserving subset of the face candidates
// considered valid for extraction. A region is accepted when its area covers
// between 2% and 40% of the image, its detection score exceeds the fixed
// confidence gate, its aspect ratio is reasonably rectangular and both of its
// sides reach the minimum absolute size. All the bounds are strict.
func FilterRegions(regions []Region, imgWidth, imgHeight int) []Region {
	imgArea := float64(imgWidth * imgHeight)
	valid := make([]Region, 0, len(regions))

	for _, reg := range regions {
		// Guard against malformed regions and degenerate images
		// before any of the ratios are computed.
		if reg.W <= 0 || reg.H <= 0 || imgArea <= 0 {
			continue
		}
		areaRatio := float64(reg.W*reg.H) / imgArea
		sizeOk := areaRatio > minAreaRatio && areaRatio < maxAreaRatio

		confidenceOk := reg.Q > minConfidence

		aspectRatio := float64(reg.W) / float64(reg.H)
		ratioOk := aspectRatio > minAspectRatio && aspectRatio < maxAspectRatio

		minSizeOk := reg.W >= minRegionSize && reg.H >= minRegionSize

		if sizeOk && confidenceOk && ratioOk && minSizeOk {
			valid = append(valid, reg)
		}
	}
	return valid
}
