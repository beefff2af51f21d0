package models

// SelectCategoryRequest picks the category that seeds a fresh worksheet.
type SelectCategoryRequest struct {
	Category Category `json:"category" binding:"required"`
}

// UpdateItemRequest edits a single field of one worksheet row. Value arrives as
// text so half-typed numbers never fail the request.
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// WorksheetInfoRequest updates the supplier or notes of the active worksheet.
// Nil means "leave unchanged"; an empty string is a deliberate clear.
type WorksheetInfoRequest struct {
	Supplier *string `json:"supplier"`
	Notes    *string `json:"notes"`
}

// RecognizeRequest submits a receipt photo for asynchronous recognition.
type RecognizeRequest struct {
	Hint  string       `json:"hint"`
	Image ReceiptImage `json:"image" binding:"required"`
}
