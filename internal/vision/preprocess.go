package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"strings"

	// Decoders for uploads that are not JPEG.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gocv.io/x/gocv"
)

// Preprocessor shrinks images before they are uploaded and re-encodes them as JPEG
type Preprocessor struct {
	maxDimension int
	quality      int
}

// NewPreprocessor creates a preprocessor from the vision config
func NewPreprocessor(cfg *Config) *Preprocessor {
	return &Preprocessor{
		maxDimension: cfg.MaxDimension,
		quality:      cfg.JPEGQuality,
	}
}

// LoadFile reads and prepares an image file
func (p *Preprocessor) LoadFile(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	return p.Prepare(data)
}

// Prepare decodes raw image bytes and prepares them. Formats registered with
// the image package are tried first, then whatever OpenCV can read.
func (p *Preprocessor) Prepare(raw []byte) (Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return p.PrepareImage(img)
	}

	mat, cvErr := gocv.IMDecode(raw, gocv.IMReadColor)
	if cvErr != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer mat.Close()
	if mat.Empty() {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return p.prepareMat(mat)
}

// PrepareImage downscales img so its longest side fits MaxDimension and encodes it as JPEG
func (p *Preprocessor) PrepareImage(img image.Image) (Image, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer mat.Close()
	return p.prepareMat(mat)
}

func (p *Preprocessor) prepareMat(mat gocv.Mat) (Image, error) {
	if mat.Empty() {
		return Image{}, fmt.Errorf("%w: empty image", ErrDecode)
	}

	out := mat
	width, height := ScaledSize(mat.Cols(), mat.Rows(), p.maxDimension)
	if width != mat.Cols() || height != mat.Rows() {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(mat, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
		out = resized
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, out, []int{int(gocv.IMWriteJpegQuality), p.quality})
	if err != nil {
		return Image{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return Image{Data: data, MIMEType: "image/jpeg"}, nil
}

// ScaledSize fits width x height inside a maxDim square keeping the aspect ratio.
// Images are never enlarged and a non-positive maxDim disables scaling.
func ScaledSize(width, height, maxDim int) (int, int) {
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return width, height
	}
	if width > height {
		h := height * maxDim / width
		if h < 1 {
			h = 1
		}
		return maxDim, h
	}
	w := width * maxDim / height
	if w < 1 {
		w = 1
	}
	return w, maxDim
}

// DecodeDataURL accepts a base64 data URL or a bare base64 payload
func DecodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
			return nil, fmt.Errorf("%w: not a base64 data URL", ErrDecode)
		}
		s = s[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}

// PrepareDataURL decodes a base64 data URL and prepares the image it carries
func (p *Preprocessor) PrepareDataURL(s string) (Image, error) {
	raw, err := DecodeDataURL(s)
	if err != nil {
		return Image{}, err
	}
	return p.Prepare(raw)
}
