// Package attachment converts user-supplied images to and from inline data
// URLs of the form data:<mimeType>;base64,<payload>.
//
// Inline strings are how images travel to the generation API and how they are
// stored in a prompt's attachment fields.
package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

// MaxSize is the largest payload Encode accepts (10 MiB).
const MaxSize = 10 << 20

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// allowedTypes is the upload allowlist: JPEG, PNG and WebP.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ErrMalformedAttachment is returned by Decode for strings that are not a
// base64 data URL.
var ErrMalformedAttachment = errors.New("malformed attachment")

// ValidationError is a user-facing rejection of an upload. Nothing is encoded.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks a declared MIME type and payload size against the upload limits.
func Validate(size int, declaredMIMEType string) error {
	if !allowedTypes[normalizeType(declaredMIMEType)] {
		return &ValidationError{Reason: "Invalid file type. Please use JPG, PNG, or WebP."}
	}
	if size == 0 {
		return &ValidationError{Reason: "File is empty."}
	}
	if size > MaxSize {
		return &ValidationError{Reason: "File is too large. Maximum size is 10MB."}
	}
	return nil
}

// Encode validates an upload and returns its inline data URL.
func Encode(data []byte, declaredMIMEType string) (string, error) {
	if err := Validate(len(data), declaredMIMEType); err != nil {
		return "", err
	}
	return Format(normalizeType(declaredMIMEType), data), nil
}

// Format builds a data URL without upload validation. It is used for
// generated images, which are not bound by the upload limits.
func Format(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len(dataPrefix) + len(mimeType) + len(base64Marker) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(dataPrefix)
	b.WriteString(mimeType)
	b.WriteString(base64Marker)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Decode parses a data URL back into its MIME type and raw bytes.
func Decode(inline string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(inline, dataPrefix)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing %q prefix", ErrMalformedAttachment, dataPrefix)
	}
	mimeType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing base64 marker", ErrMalformedAttachment)
	}
	if mimeType == "" || payload == "" {
		return "", nil, fmt.Errorf("%w: empty MIME type or payload", ErrMalformedAttachment)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedAttachment, err)
	}
	return mimeType, data, nil
}

// IsInline reports whether s looks like a data URL rather than an external reference.
func IsInline(s string) bool {
	return strings.HasPrefix(s, dataPrefix)
}

// normalizeType lower-cases a MIME type and drops any parameters.
func normalizeType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mediaType
}
