// Package detect classifies uploaded buffers by byte signature, falling back
// to the filename extension.
package detect

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/joseph-ayodele/insight-ingest/constants"
)

// Leading-byte signatures, checked before any extension matching.
var (
	sigPDF  = []byte("%PDF")
	sigZIP  = []byte("PK")
	sigOLE  = []byte{0xD0, 0xCF, 0x11, 0xE0}
	sigPNG  = []byte{0x89, 0x50, 0x4E, 0x47}
	sigJPEG = []byte{0xFF, 0xD8, 0xFF}
)

// UnknownFileTypeError means neither signature nor extension identified a
// supported type. Unrecoverable; surfaced to the caller verbatim.
type UnknownFileTypeError struct {
	Filename string
}

func (e *UnknownFileTypeError) Error() string {
	return fmt.Sprintf("unknown file type for %q: no byte signature or extension matched", e.Filename)
}

// Detect decides which parser adapter applies to a buffer/filename pair.
// Pure function of its two inputs; branches are ordered and first match wins:
//
//  1. %PDF magic -> PDF
//  2. ZIP or OLE magic AND .xlsx/.xls extension -> EXCEL (two-factor check:
//     the signature alone is shared by many ZIP-based formats)
//  3. PNG magic -> SCREENSHOT
//  4. JPEG magic -> SCREENSHOT
//  5. extension table fallback
func Detect(buf []byte, filename string) (constants.DataSourceType, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))

	switch {
	case bytes.HasPrefix(buf, sigPDF):
		return constants.PDF, nil
	case (bytes.HasPrefix(buf, sigZIP) || bytes.HasPrefix(buf, sigOLE)) && constants.IsSpreadsheetExt(ext):
		return constants.EXCEL, nil
	case bytes.HasPrefix(buf, sigPNG):
		return constants.SCREENSHOT, nil
	case bytes.HasPrefix(buf, sigJPEG):
		return constants.SCREENSHOT, nil
	}

	if t, ok := constants.ExtensionTypes[ext]; ok {
		return t, nil
	}
	return "", &UnknownFileTypeError{Filename: filename}
}
