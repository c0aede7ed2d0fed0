// Package qrx renders small payloads as base64-encoded QR PNGs for the host
// display.
package qrx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const defaultSize = 256

// EncodePNGBase64 renders content as a QR code and returns the PNG bytes
// base64-encoded, ready for embedding in a JSON response or data URI.
func EncodePNGBase64(content string) (string, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("qrx: encode: %w", err)
	}

	code, err = barcode.Scale(code, defaultSize, defaultSize)
	if err != nil {
		return "", fmt.Errorf("qrx: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", fmt.Errorf("qrx: png encode: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
