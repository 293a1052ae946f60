package badge

import (
	"bytes"
	"context"
	"fmt"

	"visitor-admission/internal/adapter/storage"
	"visitor-admission/pkg/id"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// QRIssuer renders the badge token as a PNG QR code and hosts it.
type QRIssuer struct {
	up     storage.Uploader
	folder string
	size   int
}

func NewQRIssuer(up storage.Uploader, folder string) *QRIssuer {
	return &QRIssuer{up: up, folder: folder, size: defaultSize}
}

func (q *QRIssuer) IssueBadge(ctx context.Context, token string) (string, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, q.size)
	if err != nil {
		return "", fmt.Errorf("render qr: %w", err)
	}
	return q.up.Upload(ctx, bytes.NewReader(png), q.folder, "badge-"+id.NewID32())
}
