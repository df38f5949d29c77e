package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/jeebie-core/jeebie/video"
	"golang.org/x/image/draw"
)

// DefaultSnapshotScale is the upscaling applied to snapshots unless told
// otherwise.
const DefaultSnapshotScale = 4

// ScaleFrame converts the frame to an image enlarged scale times with
// nearest neighbour sampling, keeping pixels sharp.
func ScaleFrame(frame *video.FrameBuffer, scale int) *image.RGBA {
	src := frame.ToImage()
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth*scale, video.FramebufferHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveFramePNG writes the frame to path as a PNG.
func SaveFramePNG(frame *video.FrameBuffer, path string, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	if err := png.Encode(file, ScaleFrame(frame, scale)); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

// SaveFramePNGToDir saves a frame as <baseName>.png in directory, or in the
// working directory when directory is empty. It returns the written path.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string, scale int) (string, error) {
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, baseName+".png")
	if err := SaveFramePNG(frame, filePath, scale); err != nil {
		return "", err
	}

	slog.Info("Snapshot saved", "path", filePath, "scale", scale, "hash", FrameHashString(frame))
	return filePath, nil
}

// TakeSnapshot saves an interactive snapshot, timestamped, to the working
// directory.
func TakeSnapshot(frame *video.FrameBuffer) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	baseName := "jeebie_snapshot_" + time.Now().Format("20060102_150405")
	if _, err := SaveFramePNGToDir(frame, baseName, "", DefaultSnapshotScale); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}
