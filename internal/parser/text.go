package parser

import (
	"bytes"
	"io"
)

// TextParser handles plain text and any unrecognized format: the bytes
// are taken as UTF-8 with undecodable sequences dropped.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(bytes.ToValidUTF8(data, nil)), nil
}
