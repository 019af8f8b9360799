package composer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/semaphore"

	"github.com/Notifuse/mailcanvas/pkg/async"
	"github.com/Notifuse/mailcanvas/pkg/canvas"
	"github.com/Notifuse/mailcanvas/pkg/logger"
)

const (
	// defaultMaxImagePixels caps decoded dimensions to prevent memory bombs
	defaultMaxImagePixels = 40_000_000

	jpegQuality = 85
)

// formatMIME maps the names registered with the image package to MIME types
var formatMIME = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// DroppedFile is raw file data dropped onto an image slot or a column
type DroppedFile struct {
	Name string
	Data []byte
}

// DecoderConfig bounds the work an ImageDecoder accepts
type DecoderConfig struct {
	// MaxConcurrent limits simultaneous decodes; 0 means 4
	MaxConcurrent int64
	// MaxBytes rejects larger files before decoding; 0 disables the check
	MaxBytes int64
	// MaxPixels rejects images with more pixels; 0 means 40 million
	MaxPixels int64
	// MaxWidth downscales wider still images; 0 keeps the original size
	MaxWidth int
}

// ImageDecoder turns dropped files into data URIs off the caller's goroutine
type ImageDecoder struct {
	sem    *semaphore.Weighted
	cfg    DecoderConfig
	logger logger.Logger
}

// NewImageDecoder creates a decoder
func NewImageDecoder(cfg DecoderConfig, logger logger.Logger) *ImageDecoder {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = defaultMaxImagePixels
	}
	return &ImageDecoder{
		sem:    semaphore.NewWeighted(cfg.MaxConcurrent),
		cfg:    cfg,
		logger: logger,
	}
}

// Decode starts decoding file and returns a future resolving to a data URI.
// There is no timeout: a decode runs until it finishes or ctx is cancelled
// while waiting for a slot.
func (d *ImageDecoder) Decode(ctx context.Context, file DroppedFile) *async.Future[string] {
	return async.Async(ctx, file, d.decode)
}

func (d *ImageDecoder) decode(ctx context.Context, file DroppedFile) (string, error) {
	if d.cfg.MaxBytes > 0 && int64(len(file.Data)) > d.cfg.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit is %d", ErrImageTooLarge, len(file.Data), d.cfg.MaxBytes)
	}

	if err := d.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire decode slot: %w", err)
	}
	defer d.sem.Release(1)

	uri, err := ToDataURI(file.Data, d.cfg.MaxPixels, d.cfg.MaxWidth)
	if err != nil {
		d.logger.WithFields(map[string]interface{}{
			"file":  file.Name,
			"bytes": len(file.Data),
		}).Warn(fmt.Sprintf("Failed to decode dropped image: %v", err))
		return "", err
	}
	return uri, nil
}

// ToDataURI validates image data by decoding it and returns a base64 data URI.
// Still images wider than maxWidth are scaled down and re-encoded.
func ToDataURI(data []byte, maxPixels int64, maxWidth int) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	mime, ok := formatMIME[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	// GIFs keep their frames, so they are never re-encoded
	if maxWidth > 0 && cfg.Width > maxWidth && format != "gif" {
		data, mime, err = downscale(img, format, maxWidth)
		if err != nil {
			return "", err
		}
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func downscale(img image.Image, format string, maxWidth int) ([]byte, string, error) {
	bounds := img.Bounds()
	height := int(float64(bounds.Dy()) * float64(maxWidth) / float64(bounds.Dx()))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode resized image: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
	if err := png.Encode(&buf, dst); err != nil {
		return nil, "", fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

// AppendImageCommand is the single command applied once a column image drop
// has been decoded
func AppendImageCommand(rowID int, columnID, dataURI string) Command {
	return Command{
		Operation: OpColumnDrop,
		Payload:   ElementPayloadWithContent(canvas.KindImage, dataURI),
		Target:    Target{RowID: rowID, ColumnID: columnID},
	}
}

// SetImageCommand fills an existing Image or Logo element with decoded data
func SetImageCommand(elementID int, dataURI string) Command {
	payload, _ := json.Marshal(map[string]string{"content": dataURI})
	return Command{
		Operation: OpUpdateElement,
		Payload:   payload,
		Target:    Target{ElementID: elementID},
	}
}
