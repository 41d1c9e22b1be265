package attachment

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"image/png":  bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 256),
		"image/jpeg": {0xff, 0xd8, 0xff, 0x00, 0x01},
		"image/webp": []byte("RIFF\x00\x00\x00\x00WEBPVP8 "),
	}
	for mimeType, data := range payloads {
		inline, err := Encode(data, mimeType)
		require.NoError(t, err, mimeType)
		assert.True(t, IsInline(inline))

		gotType, gotData, err := Decode(inline)
		require.NoError(t, err, mimeType)
		assert.Equal(t, mimeType, gotType)
		assert.Equal(t, data, gotData)
	}
}

func TestEncode_Format(t *testing.T) {
	inline, err := Encode([]byte("hi"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGk=", inline)
}

func TestEncode_AcceptsOneKiBPNG(t *testing.T) {
	_, err := Encode(make([]byte, 1<<10), "image/png")
	assert.NoError(t, err)
}

func TestEncode_RejectsOversize(t *testing.T) {
	_, err := Encode(make([]byte, 11<<20), "image/png")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "too large")
}

func TestEncode_AcceptsExactLimit(t *testing.T) {
	_, err := Encode(make([]byte, MaxSize), "image/jpeg")
	assert.NoError(t, err)
}

func TestEncode_RejectsDisallowedType(t *testing.T) {
	_, err := Encode([]byte("GIF89a"), "image/gif")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "Invalid file type")
}

func TestEncode_RejectsEmpty(t *testing.T) {
	_, err := Encode(nil, "image/png")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestEncode_NormalizesDeclaredType(t *testing.T) {
	inline, err := Encode([]byte{1, 2, 3}, "Image/PNG; charset=binary")
	require.NoError(t, err)
	mimeType, _, err := Decode(inline)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestDecode_Malformed(t *testing.T) {
	for _, s := range []string{
		"",
		"https://example.com/a.png",
		"data:image/png,plain",
		"data:;base64,aGk=",
		"data:image/png;base64,",
		"data:image/png;base64,!!!not-base64",
	} {
		_, _, err := Decode(s)
		assert.ErrorIs(t, err, ErrMalformedAttachment, "input %q", s)
	}
}

func TestFormat_SkipsValidation(t *testing.T) {
	inline := Format("image/gif", []byte("GIF89a"))
	mimeType, data, err := Decode(inline)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", mimeType)
	assert.Equal(t, []byte("GIF89a"), data)
}

func TestInspectPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	info, err := Inspect(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Info{MIMEType: "image/png", Width: 3, Height: 2}, info)
	assert.Equal(t, "image/png", DetectType(buf.Bytes()))
}

func TestInspect_NotAnImage(t *testing.T) {
	_, err := Inspect([]byte("plain text"))
	assert.Error(t, err)
}
