package dto

// FounderSignupRequest is the founders list form on the home page.
type FounderSignupRequest struct {
	Email string `json:"email" form:"email" binding:"required,email,max=254"`
}

// FounderSignupResponse reports whether the address was new.
type FounderSignupResponse struct {
	Email   string `json:"email"`
	Created bool   `json:"created"`
}

// ContactRequest is the contact form.
type ContactRequest struct {
	Name         string `json:"name" form:"name" binding:"max=200"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Organization string `json:"organization" form:"organization" binding:"max=200"`
	InquiryType  string `json:"inquiryType" form:"inquiry_type" binding:"max=100"`
	Message      string `json:"message" form:"message" binding:"required"`
}

// Tier is a membership tier on the tiers page.
type Tier struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// FeedImportRequest names the feed to import popular articles from.
type FeedImportRequest struct {
	URL   string `json:"url" binding:"required,url"`
	Limit int    `json:"limit" binding:"omitempty,min=1,max=100"`
}

// FeedImportResult summarizes a feed import.
type FeedImportResult struct {
	Fetched  int `json:"fetched"`
	Created  int `json:"created"`
	Existing int `json:"existing"`
}
