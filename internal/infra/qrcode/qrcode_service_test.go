package qrcode

import (
	"bytes"
	"testing"

	"ladx/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateTrackingQR(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.FrontendURL = "https://app.test/"

	svc := NewQRCodeService(cfg)

	png, err := svc.GenerateTrackingQR("TRK17000000000000001")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestGenerateTrackingQRCustomSize(t *testing.T) {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "high"}}
	cfg.App.FrontendURL = "https://app.test"

	svc := NewQRCodeService(cfg)

	png, err := svc.GenerateTrackingQR("TRK17000000000000001")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
