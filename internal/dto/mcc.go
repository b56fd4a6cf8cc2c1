package dto

// ListCodesRequest carries the query parameters of the code listing
// endpoint. Query, range, and category filters combine conjunctively.
type ListCodesRequest struct {
	Query    string `query:"q"`
	Range    string `query:"range"`
	Category string `query:"category" validate:"omitempty,category_id"`
}

// CodeResponse is the compact code representation used in listings.
type CodeResponse struct {
	MCC         string `json:"mcc"`
	Description string `json:"description,omitempty"`
	Reportable  bool   `json:"irs_reportable"`
}

// ListCodesResponse wraps a code listing with its total.
type ListCodesResponse struct {
	Codes []CodeResponse `json:"codes"`
	Total int            `json:"total"`
}

// ValidateCodeRequest is the body of the validation endpoint. The code is
// intentionally untagged with mcc_candidate: the rule evaluator owns the
// format decision and reports it as a validation message, not a 400.
type ValidateCodeRequest struct {
	Code            *string  `json:"code"`
	Strict          bool     `json:"strict"`
	DenyCategories  []string `json:"deny_categories" validate:"omitempty,dive,category_id"`
	AllowCategories []string `json:"allow_categories" validate:"omitempty,dive,category_id"`
}

// ValidateCodeResponse reports the outcome of a validation run.
type ValidateCodeResponse struct {
	Code   *string  `json:"code"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// RangeResponse is one ISO industry-segment range.
type RangeResponse struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Reserved    bool   `json:"reserved"`
	Size        int    `json:"size"`
}

// ListRangesResponse wraps the range listing.
type ListRangesResponse struct {
	Ranges []RangeResponse `json:"ranges"`
	Total  int             `json:"total"`
}

// CategoryResponse is one risk category.
type CategoryResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Codes       []string `json:"codes"`
}

// ListCategoriesResponse wraps the category listing.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// ReloadResponse reports the dataset state after an explicit reload.
type ReloadResponse struct {
	Codes      int `json:"codes"`
	Ranges     int `json:"ranges"`
	Categories int `json:"categories"`
}
