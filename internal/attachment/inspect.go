package attachment

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder for image.DecodeConfig
	_ "image/png"  // register PNG decoder for image.DecodeConfig
	"net/http"

	_ "golang.org/x/image/webp" // register WebP decoder for image.DecodeConfig
)

// Info describes an uploaded image without decoding its pixels.
type Info struct {
	MIMEType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Inspect reads the image header to report its format and dimensions.
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return Info{
		MIMEType: "image/" + format,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// DetectType sniffs the MIME type of data. Used when an upload declares no
// type or a generic one.
func DetectType(data []byte) string {
	return normalizeType(http.DetectContentType(data))
}
