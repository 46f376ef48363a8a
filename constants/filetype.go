package constants

import "strings"

// DataSourceType identifies which parser adapter handles an uploaded file.
// Decided once per file by the detector, never inferred twice.
type DataSourceType string

// Stable values (serialized in results and logs).
const (
	CSV        DataSourceType = "CSV"
	EXCEL      DataSourceType = "EXCEL"
	PDF        DataSourceType = "PDF"
	SCREENSHOT DataSourceType = "SCREENSHOT"
	JSON       DataSourceType = "JSON"
)

// ExtensionTypes maps normalized file extensions to their source type.
// Consulted by the detector only after byte-signature sniffing fails.
var ExtensionTypes = map[string]DataSourceType{
	"csv":  CSV,
	"xlsx": EXCEL,
	"xls":  EXCEL,
	"pdf":  PDF,
	"png":  SCREENSHOT,
	"jpg":  SCREENSHOT,
	"jpeg": SCREENSHOT,
	"json": JSON,
}

// IsSpreadsheetExt reports whether ext (normalized) names a spreadsheet file.
// The detector requires this alongside a ZIP/OLE signature: the byte check
// alone is shared by too many container formats.
func IsSpreadsheetExt(ext string) bool {
	return ext == "xlsx" || ext == "xls"
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
