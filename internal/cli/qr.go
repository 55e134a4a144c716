package cli

import (
	"io"

	"github.com/mdp/qrterminal/v3"
)

// Half block characters for compact QR output
const (
	blackWhite = "▄"
	blackBlack = " "
	whiteBlack = "▀"
	whiteWhite = "█"
)

// PrintQR writes target as a QR code so a phone can open the same server
func PrintQR(w io.Writer, target string) {
	config := qrterminal.Config{
		Level:          qrterminal.M,
		Writer:         w,
		HalfBlocks:     true,
		BlackChar:      blackBlack,
		WhiteBlackChar: whiteBlack,
		WhiteChar:      whiteWhite,
		BlackWhiteChar: blackWhite,
		QuietZone:      1,
	}
	qrterminal.GenerateWithConfig(target, config)
}
