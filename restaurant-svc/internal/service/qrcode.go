package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the public order page as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(orderID string) string {
	return fmt.Sprintf("%s/orders/%s", strings.TrimRight(g.BaseURL, "/"), url.PathEscape(orderID))
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, qrSize)
}
