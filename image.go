package facextract

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	pigo "github.com/esimov/pigo/core"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
)

// decodeImage decodes an image file into an NRGBA buffer with the min-point at (0, 0).
// The file content type is sniffed upfront, so a non-image file carrying an image
// extension is rejected before reaching the decoder.
func decodeImage(path string) (*image.NRGBA, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not detect the file content type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("expected an image file, detected %s", mtype.String())
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %w", err)
	}

	return pigo.ImgToNRGBA(src), nil
}
