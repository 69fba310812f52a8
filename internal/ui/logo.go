package ui

import (
	"strings"

	"github.com/superstarryeyes/bit/ansifonts"
)

const (
	logoFont = "8bitfortress"
	logoText = "OLLAMA"
)

// RenderLogo draws the startup banner text as a pixel-font block with a
// horizontal color gradient. It returns "" when the font cannot be loaded so
// callers can fall back to a plain banner.
func RenderLogo(textColor string, gradientColor string, scale float64) string {
	font, err := ansifonts.LoadFont(logoFont)
	if err != nil {
		return ""
	}

	options := ansifonts.RenderOptions{
		CharSpacing:       2,
		WordSpacing:       2,
		LineSpacing:       1,
		TextColor:         textColor,
		GradientColor:     gradientColor,
		UseGradient:       true,
		GradientDirection: ansifonts.LeftRight,
		Alignment:         ansifonts.LeftAlign,
		ScaleFactor:       scale,
		ShadowStyle:       ansifonts.MediumShade,
	}

	rendered := ansifonts.RenderTextWithOptions(logoText, font, options)
	logo := strings.Builder{}
	for _, line := range rendered {
		logo.WriteString(line + "\n")
	}
	return logo.String()
}
