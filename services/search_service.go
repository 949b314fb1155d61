package services

import (
	"sort"
	"strconv"
	"strings"

	"pubregistry/models"
	"pubregistry/repositories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// SearchService is the single implementation of the criteria query engine.
// Every list, public and report endpoint resolves filters through it, so the
// matching rules cannot drift between surfaces.
type SearchService interface {
	Search(params models.PublicationSearchParams) (*models.SearchResult, error)
	MatchedIDs(params models.PublicationSearchParams) ([]uint, error)
}

type searchService struct {
	publicationRepo repositories.PublicationRepository
	authorshipRepo  repositories.AuthorshipRepository
	categoryRepo    repositories.CategoryRepository
}

func NewSearchService(
	publicationRepo repositories.PublicationRepository,
	authorshipRepo repositories.AuthorshipRepository,
	categoryRepo repositories.CategoryRepository,
) SearchService {
	return &searchService{
		publicationRepo: publicationRepo,
		authorshipRepo:  authorshipRepo,
		categoryRepo:    categoryRepo,
	}
}

// MatchedIDs resolves the full filter surface to the matched id set. Author
// and category terms carry AND semantics: each term resolves independently to
// an id set and the sets are intersected. An empty per-term set
// short-circuits the whole query to an empty result.
func (s *searchService) MatchedIDs(params models.PublicationSearchParams) ([]uint, error) {
	ids, err := s.publicationRepo.FilterIDs(scalarFilterFrom(params))
	if err != nil {
		return nil, err
	}
	matched := make(map[uint]bool, len(ids))
	for _, id := range ids {
		matched[id] = true
	}

	for _, term := range splitTerms(params.Authors) {
		termIDs, err := s.authorshipRepo.PublicationIDsByAuthorTerm(term)
		if err != nil {
			return nil, err
		}
		if len(termIDs) == 0 {
			return nil, nil
		}
		matched = intersect(matched, termIDs)
		if len(matched) == 0 {
			return nil, nil
		}
	}

	for _, term := range splitTerms(params.Categories) {
		termIDs, err := s.categoryRepo.PublicationIDsByCategoryTerm(term)
		if err != nil {
			return nil, err
		}
		if len(termIDs) == 0 {
			return nil, nil
		}
		matched = intersect(matched, termIDs)
		if len(matched) == 0 {
			return nil, nil
		}
	}

	if params.LeadPersonID > 0 {
		leadIDs, err := s.authorshipRepo.PublicationIDsByLead(params.LeadPersonID)
		if err != nil {
			return nil, err
		}
		matched = intersect(matched, leadIDs)
	}

	result := make([]uint, 0, len(matched))
	for id := range matched {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

func (s *searchService) Search(params models.PublicationSearchParams) (*models.SearchResult, error) {
	page, limit := clampPage(params.Page, params.Limit)

	ids, err := s.MatchedIDs(params)
	if err != nil {
		return nil, err
	}

	result := &models.SearchResult{
		Rows:  []models.PublicationRow{},
		Total: int64(len(ids)),
		Page:  page,
		Limit: limit,
	}
	if len(ids) == 0 {
		return result, nil
	}

	pubs, err := s.publicationRepo.GetPage(ids, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	pageIDs := make([]uint, 0, len(pubs))
	for _, pub := range pubs {
		pageIDs = append(pageIDs, pub.ID)
	}

	// Derived fields come from batch fetches keyed on the page's ids only.
	authorNames, err := s.authorshipRepo.OrderedNamesByPublicationIDs(pageIDs)
	if err != nil {
		return nil, err
	}
	categoryNames, err := s.categoryRepo.NamesByPublicationIDs(pageIDs)
	if err != nil {
		return nil, err
	}

	for _, pub := range pubs {
		row := models.PublicationRow{
			ID:         pub.ID,
			Title:      pub.Title,
			VenueName:  pub.VenueName,
			Level:      pub.Level,
			Year:       pub.Year,
			Status:     pub.Status,
			LinkURL:    pub.LinkURL,
			HasFile:    pub.HasFile,
			Authors:    authorNames[pub.ID],
			Categories: categoryNames[pub.ID],
		}
		if row.Authors == nil {
			row.Authors = []string{}
		}
		if row.Categories == nil {
			row.Categories = []string{}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func scalarFilterFrom(params models.PublicationSearchParams) repositories.ScalarFilter {
	filter := repositories.ScalarFilter{
		Query:   strings.TrimSpace(params.Query),
		OwnerID: params.OwnerID,
		HasFile: params.HasFile,
	}
	for _, term := range splitTerms(params.Status) {
		filter.Statuses = append(filter.Statuses, models.PublicationStatus(term))
	}
	for _, term := range splitTerms(params.Level) {
		filter.Levels = append(filter.Levels, models.PublicationLevel(term))
	}
	for _, term := range splitTerms(params.VenueType) {
		filter.VenueTypes = append(filter.VenueTypes, models.VenueType(term))
	}
	filter.YearFrom = parseYear(params.YearFrom)
	filter.YearTo = parseYear(params.YearTo)
	return filter
}

// splitTerms splits a comma-separated multi-value filter, dropping empty
// terms silently.
func splitTerms(csv string) []string {
	var terms []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			terms = append(terms, part)
		}
	}
	return terms
}

// parseYear treats a malformed year bound as absent, not as an error.
func parseYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &year
}

func intersect(set map[uint]bool, ids []uint) map[uint]bool {
	out := make(map[uint]bool)
	for _, id := range ids {
		if set[id] {
			out[id] = true
		}
	}
	return out
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
