package vision

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// ErrVideo is returned when a recording cannot be opened or read
var ErrVideo = errors.New("vision: video unreadable")

// VideoInfo holds metadata about a video
type VideoInfo struct {
	FPS        float64
	FrameCount int
	Width      int
	Height     int
	Duration   time.Duration
}

// String returns a formatted string of video info
func (vi VideoInfo) String() string {
	return fmt.Sprintf("%dx%d, %.2f fps, %d frames, %v",
		vi.Width, vi.Height, vi.FPS, vi.FrameCount, vi.Duration)
}

// VideoSource takes the board image from one frame of a recording
type VideoSource struct {
	path  string
	prep  *Preprocessor
	info  VideoInfo
	frame int
}

// NewVideoSource opens path to read its metadata. frame selects the frame to
// scan; a negative value counts back from the end, so -1 is the last frame.
func NewVideoSource(path string, frame int, prep *Preprocessor) (*VideoSource, error) {
	video, err := openVideo(path)
	if err != nil {
		return nil, err
	}
	defer video.Close()

	fps := video.Get(gocv.VideoCaptureFPS)
	frameCount := int(video.Get(gocv.VideoCaptureFrameCount))

	var duration time.Duration
	if fps > 0 {
		duration = time.Duration(float64(frameCount) / fps * float64(time.Second))
	}

	return &VideoSource{
		path: path,
		prep: prep,
		info: VideoInfo{
			FPS:        fps,
			FrameCount: frameCount,
			Width:      int(video.Get(gocv.VideoCaptureFrameWidth)),
			Height:     int(video.Get(gocv.VideoCaptureFrameHeight)),
			Duration:   duration,
		},
		frame: frame,
	}, nil
}

func openVideo(path string) (*gocv.VideoCapture, error) {
	video, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrVideo, path, err)
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("%w: %s not opened", ErrVideo, path)
	}
	return video, nil
}

// Info returns the recording's metadata
func (vs *VideoSource) Info() VideoInfo {
	return vs.info
}

// FrameIndex resolves the configured frame against the frame count
func (vs *VideoSource) FrameIndex() int {
	return ResolveFrame(vs.frame, vs.info.FrameCount)
}

// ResolveFrame clamps frame into [0, count). Negative frames count from the end.
func ResolveFrame(frame, count int) int {
	if count <= 0 {
		return 0
	}
	if frame < 0 {
		frame += count
	}
	if frame < 0 {
		return 0
	}
	if frame >= count {
		return count - 1
	}
	return frame
}

// Capture reads the selected frame and prepares it for analysis
func (vs *VideoSource) Capture() (Image, error) {
	video, err := openVideo(vs.path)
	if err != nil {
		return Image{}, err
	}
	defer video.Close()

	video.Set(gocv.VideoCapturePosFrames, float64(vs.FrameIndex()))

	mat := gocv.NewMat()
	defer mat.Close()
	if !video.Read(&mat) || mat.Empty() {
		return Image{}, fmt.Errorf("%w: no frame %d in %s", ErrVideo, vs.FrameIndex(), vs.path)
	}

	img, err := mat.ToImage()
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return vs.prep.PrepareImage(img)
}
