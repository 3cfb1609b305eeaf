/*
Package facextract scans a directory tree of images, detects the faces inside them
and saves the cropped face regions into an output directory until a target count is reached.

The face candidates returned by the detector are filtered by size, aspect ratio and
confidence heuristics, then each accepted region is expanded with some surrounding
context and clamped to the image bounds before being cropped and saved.

The package provides a command line interface, supporting various flags for tuning
the detector and the extraction run. To check the supported commands type:

	$ facextract --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/facextract"
	)

	func main() {
		detector, err := facextract.NewPigoDetector("./facefinder", facextract.DetectorOptions{
			MinFaceSize:    40,
			ScoreThreshold: 2.0,
			ScaleFactor:    1.1,
			ShiftFactor:    0.1,
		})
		if err != nil {
			fmt.Printf("Error loading the face detector: %s", err.Error())
			return
		}

		ext, err := facextract.NewExtractor(detector, facextract.Options{
			InputDir:    "./images",
			OutputDir:   "./faces",
			TargetFaces: 5000,
		})
		if err != nil {
			fmt.Printf("Error configuring the extractor: %s", err.Error())
			return
		}

		if _, err := ext.Run(); err != nil {
			fmt.Printf("Error extracting the faces: %s", err.Error())
		}
	}
*/
package facextract
