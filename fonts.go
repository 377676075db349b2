package codepart

import (
	"gioui.org/font"
	"gioui.org/text"
	"github.com/ddkwork/golibrary/mylog"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jeffwilliams/codepart/internal/typeset"
)

// The built-in fonts are the Go fonts, so the widget works with no font
// files installed.
var MonoFont = text.FontFace{
	Font: font.Font{
		Typeface: "defaultMonoFont",
	},
	Face: MustParseTTFBytes(gomono.TTF),
}

var VariableFont = text.FontFace{
	Font: font.Font{
		Typeface: "defaultVariableFont",
	},
	Face: MustParseTTFBytes(goregular.TTF),
}

func MustParseTTFBytes(b []byte) font.Face {
	return mylog.Check2(typeset.ParseTTFBytes(b))
}
