package render

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxLogoWidth is the widest the stamped logo may render, in points (3in).
// Narrower logos keep their natural size.
const maxLogoWidth = 216.0

// stampLogo paints the logo centered on every page of the document at the
// given opacity, scaled down only when wider than maxLogoWidth with aspect
// ratio preserved.
func stampLogo(doc, logo []byte, opacity float64) ([]byte, error) {
	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(logo))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo image: %w", err)
	}

	scale := 1.0
	if float64(imgCfg.Width) > maxLogoWidth {
		scale = maxLogoWidth / float64(imgCfg.Width)
	}

	tempDir, err := os.MkdirTemp("", "transcript-watermark-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logoPath := filepath.Join(tempDir, "logo."+format)
	if err := os.WriteFile(logoPath, logo, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write logo file: %w", err)
	}

	desc := fmt.Sprintf("pos:c, rot:0, scalefactor:%.4f abs, op:%.2f", scale, opacity)
	wm, err := api.ImageWatermark(logoPath, desc, false, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to build watermark: %w", err)
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, nil, wm, nil); err != nil {
		return nil, fmt.Errorf("failed to apply watermark: %w", err)
	}
	return out.Bytes(), nil
}
