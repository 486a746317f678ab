package qrcode

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// EncodePNG renders data as a QR code PNG.
func EncodePNG(data string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}

// DataURI renders data as a QR code and wraps it for an <img src>.
func DataURI(data string, size int) (string, error) {
	png, err := EncodePNG(data, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
