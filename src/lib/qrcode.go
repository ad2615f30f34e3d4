package lib

import (
	"github.com/yeqown/go-qrcode"
)

// SaveQRCode renders content as a JPEG QR code at path.
func SaveQRCode(content, path string) error {
	qrc, err := qrcode.New(content)
	if err != nil {
		return err
	}
	return qrc.Save(path)
}
