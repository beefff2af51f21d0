package models

// ReceiptImage carries a photographed paper receipt to the recognition service.
type ReceiptImage struct {
	Data     string `json:"data"` // base64-encoded bytes
	MimeType string `json:"mime_type"`
}

// ParseResult is the structured data the recognition service extracted from a
// receipt photo. It is never persisted directly; it is merged into the
// in-progress worksheet.
type ParseResult struct {
	Supplier string     `json:"supplier"`
	Items    []LineItem `json:"items"`
	Notes    string     `json:"notes"`
}

// Empty reports whether recognition produced nothing usable.
func (p ParseResult) Empty() bool {
	return p.Supplier == "" && p.Notes == "" && len(p.Items) == 0
}
