package typeset

import (
	"io"

	"gioui.org/font/opentype"
)

func ParseTTFBytes(b []byte) (opentype.Face, error) {
	return opentype.Parse(b)
}

func ParseTTF(r io.Reader) (opentype.Face, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return opentype.Face{}, err
	}
	return ParseTTFBytes(b)
}
