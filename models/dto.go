package models

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type AuthorInput struct {
	Name        string     `json:"name" binding:"required,min=1,max=255"`
	Email       string     `json:"email,omitempty" binding:"omitempty,email"`
	Affiliation string     `json:"affiliation,omitempty"`
	PersonType  PersonType `json:"person_type,omitempty"`
	Role        AuthorRole `json:"role,omitempty"`
}

type SubmitPublicationRequest struct {
	Title      string           `json:"title" binding:"required,min=1,max=500"`
	VenueID    *uint            `json:"venue_id"`
	VenueName  string           `json:"venue_name,omitempty"`
	Level      PublicationLevel `json:"level,omitempty"`
	Year       *int             `json:"year"`
	Abstract   string           `json:"abstract,omitempty"`
	LinkURL    string           `json:"link_url,omitempty"`
	FilePath   string           `json:"file_path,omitempty"`
	Authors    []AuthorInput    `json:"authors" binding:"required,min=1,dive"`
	Categories []string         `json:"categories"`
}

// AbstractEdit is an incremental edit applied to the stored abstract as an
// alternative to full replacement. delete removes every occurrence of Text;
// delete_range removes the byte range [From, To).
type AbstractEdit struct {
	Op   string `json:"op" binding:"required,oneof=set prepend append delete delete_range"`
	Text string `json:"text,omitempty"`
	From int    `json:"from,omitempty"`
	To   int    `json:"to,omitempty"`
}

type UpdatePublicationRequest struct {
	Title        *string           `json:"title"`
	VenueID      *uint             `json:"venue_id"`
	VenueName    *string           `json:"venue_name"`
	Level        *PublicationLevel `json:"level"`
	Year         *int              `json:"year"`
	Abstract     *string           `json:"abstract"`
	AbstractEdit *AbstractEdit     `json:"abstract_edit"`
	LinkURL      *string           `json:"link_url"`
	FilePath     *string           `json:"file_path"`
	Authors      *[]AuthorInput    `json:"authors"`
	Categories   *[]string         `json:"categories"`
}

type TransitionStatusRequest struct {
	Status PublicationStatus `json:"status" binding:"required"`
	Note   string            `json:"note,omitempty"`
}

// TransitionResult reports the applied status. Warning is set when the
// transition was applied but is outside the intended lifecycle.
type TransitionResult struct {
	Status  PublicationStatus `json:"status"`
	Warning string            `json:"warning,omitempty"`
}

// PublicationSearchParams is the shared filter surface of the list, public
// and report endpoints. Authors and Categories are comma-separated terms
// with AND semantics: a publication must match every term. The remaining
// filters are OR within a dimension, AND across dimensions.
type PublicationSearchParams struct {
	Query      string `form:"q"`
	Status     string `form:"status"`
	Level      string `form:"level"`
	YearFrom   string `form:"year_from"`
	YearTo     string `form:"year_to"`
	HasFile    *bool  `form:"has_file"`
	VenueType  string `form:"venue_type"`
	Authors    string `form:"authors"`
	Categories string `form:"categories"`
	Mine       bool   `form:"mine"`
	LeadOnly   bool   `form:"lead_only"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`

	// Resolved server-side from the session, never bound from the request.
	OwnerID      uint `form:"-"`
	LeadPersonID uint `form:"-"`
}

type PublicationRow struct {
	ID         uint              `json:"id"`
	Title      *string           `json:"title"`
	VenueName  *string           `json:"venue_name"`
	Level      PublicationLevel  `json:"level"`
	Year       *int              `json:"year"`
	Status     PublicationStatus `json:"status"`
	LinkURL    *string           `json:"link_url"`
	HasFile    bool              `json:"has_file"`
	Authors    []string          `json:"authors"`
	Categories []string          `json:"categories"`
}

type SearchResult struct {
	Rows  []PublicationRow `json:"rows"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type ReportTotals struct {
	All      int64                       `json:"all"`
	ByStatus map[PublicationStatus]int64 `json:"by_status"`
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

type AuthorCount struct {
	PersonID uint   `json:"person_id"`
	Name     string `json:"name"`
	Count    int64  `json:"count"`
}

type PublicationReport struct {
	Totals     ReportTotals  `json:"totals"`
	ByYear     []YearCount   `json:"by_year"`
	TopAuthors []AuthorCount `json:"top_authors"`
}

type PublicationDetail struct {
	Publication
	AuthorList    []PublicationAuthor `json:"author_list"`
	CategoryNames []string            `json:"category_names"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type CreateVenueRequest struct {
	Name string    `json:"name" binding:"required,min=1,max=255"`
	Type VenueType `json:"type" binding:"required,oneof=JOURNAL CONFERENCE BOOK OTHER"`
}
