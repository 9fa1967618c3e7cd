package workflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	dcimage "github.com/JaimeStill/document-context/pkg/image"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

const (
	sourcePDF   = "source.pdf"
	chequeImage = "cheque.png"
)

// InitNode returns a state node that downloads the cheque blob, normalizes
// it to a PNG image (rendering the first page via ImageMagick for PDF
// uploads), and seeds the ChequeState and audit trail in the workflow
// state bag.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		chequeID, tempDir, err := extractInitState(s)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		trail := NewTrail(rt.Logger)

		imagePath, err := materializeCheque(ctx, rt, chequeID, tempDir)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		trail.Record("init", "cheque image rendered for analysis")

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"cheque_id", chequeID,
			"image_path", imagePath,
		)

		s = s.Set(KeyChequeState, ChequeState{ImagePath: imagePath})
		s = s.Set(KeyTrail, trail)

		return s, nil
	})
}

func extractInitState(s state.State) (uuid.UUID, string, error) {
	idVal, ok := s.Get(KeyChequeID)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("%w: missing %s in state", ErrChequeNotFound, KeyChequeID)
	}

	chequeID, ok := idVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("%w: %s is not uuid.UUID", ErrChequeNotFound, KeyChequeID)
	}

	tempDirVal, ok := s.Get(KeyTempDir)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("%w: missing %s in state", ErrRenderFailed, KeyTempDir)
	}

	tempDir, ok := tempDirVal.(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("%w: %s is not string", ErrRenderFailed, KeyTempDir)
	}

	return chequeID, tempDir, nil
}

// materializeCheque downloads the cheque blob and produces a PNG image on
// disk: PDFs have their first page rendered via ImageMagick, raster images
// are decoded and re-encoded.
func materializeCheque(
	ctx context.Context,
	rt *Runtime,
	chequeID uuid.UUID,
	tempDir string,
) (string, error) {
	c, err := rt.Cheques.Find(ctx, chequeID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChequeNotFound, err)
	}

	blob, err := rt.Storage.Download(ctx, c.StorageKey)
	if err != nil {
		return "", fmt.Errorf("%w: download blob: %w", ErrRenderFailed, err)
	}
	defer blob.Body.Close()

	data, err := io.ReadAll(blob.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read blob: %w", ErrRenderFailed, err)
	}

	imagePath := filepath.Join(tempDir, chequeImage)

	var imgData []byte
	if c.ContentType == "application/pdf" {
		imgData, err = renderFirstPage(tempDir, data)
	} else {
		imgData, err = convertPNG(data)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(imagePath, imgData, 0600); err != nil {
		return "", fmt.Errorf("%w: write cheque image: %w", ErrRenderFailed, err)
	}

	return imagePath, nil
}

func renderFirstPage(tempDir string, data []byte) ([]byte, error) {
	pdfPath := filepath.Join(tempDir, sourcePDF)
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, fmt.Errorf("%w: write temp pdf: %w", ErrRenderFailed, err)
	}

	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", ErrRenderFailed, err)
	}
	defer pdfDoc.Close()

	page, err := pdfDoc.ExtractPage(1)
	if err != nil {
		return nil, fmt.Errorf("%w: extract page: %w", ErrRenderFailed, err)
	}

	renderer, err := dcimage.NewImageMagickRenderer(config.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create renderer: %w", ErrRenderFailed, err)
	}

	imgData, err := page.ToImage(renderer, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: render page: %w", ErrRenderFailed, err)
	}

	return imgData, nil
}

func convertPNG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %w", ErrRenderFailed, err)
	}

	if format == "png" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", ErrRenderFailed, err)
	}

	return buf.Bytes(), nil
}
