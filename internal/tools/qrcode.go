package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"image/color"
	"strings"

	qrc "github.com/skip2/go-qrcode"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// QRCode renders text content into a PNG QR code.
type QRCode struct{}

func NewQRCode() *QRCode { return &QRCode{} }

func (*QRCode) Name() string { return "generate_qrcode" }

func (*QRCode) Description() string {
	return "Generates QR codes from text content. " +
		"This tool uses the qrcode library to create QR codes that can encode various types of data."
}

func (*QRCode) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "content",
			Type:        tool.TypeString,
			Required:    true,
			MinLen:      1,
			MaxLen:      4296,
			Description: "The content to encode in the QR code",
		},
		tool.Field{
			Name:        "scale",
			Type:        tool.TypeInteger,
			Default:     5,
			Min:         tool.FloatPtr(1),
			Max:         tool.FloatPtr(20),
			Description: "Scale of the QR code image",
		},
		tool.Field{
			Name:        "dark_color",
			Type:        tool.TypeString,
			Default:     "#000000",
			Description: "Color of the dark pixels in hex format",
		},
		tool.Field{
			Name:        "light_color",
			Type:        tool.TypeString,
			Default:     "#FFFFFF",
			Description: "Color of the light pixels in hex format",
		},
	)
}

// parseHexColor accepts "#RRGGBB" or "RRGGBB".
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func (*QRCode) Run(_ context.Context, args tool.Args) []tool.Content {
	content := args.String("content")
	scale := args.Int("scale")

	if content == "" {
		return tool.Errorf(400, "Missing required argument: content")
	}

	dark, err := parseHexColor(args.String("dark_color"))
	if err != nil {
		return tool.Errorf(400, "Invalid arguments: %v", err)
	}
	light, err := parseHexColor(args.String("light_color"))
	if err != nil {
		return tool.Errorf(400, "Invalid arguments: %v", err)
	}

	code, err := qrc.New(content, qrc.Medium)
	if err != nil {
		return tool.Errorf(500, "Error generating QR code: %v", err)
	}
	code.ForegroundColor = dark
	code.BackgroundColor = light

	// Negative size renders scale pixels per module instead of a fixed
	// image width.
	png, err := code.PNG(-scale)
	if err != nil {
		return tool.Errorf(500, "Error generating QR code: %v", err)
	}

	return []tool.Content{tool.ImageContent{
		Data:     base64.StdEncoding.EncodeToString(png),
		MIMEType: "image/png",
	}}
}
