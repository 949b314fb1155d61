package services

import (
	"pubregistry/models"
	"pubregistry/repositories"
)

const topAuthorsLimit = 10

type ReportService interface {
	Report(params models.PublicationSearchParams) (*models.PublicationReport, error)
}

type reportService struct {
	search          SearchService
	publicationRepo repositories.PublicationRepository
	authorshipRepo  repositories.AuthorshipRepository
}

func NewReportService(
	search SearchService,
	publicationRepo repositories.PublicationRepository,
	authorshipRepo repositories.AuthorshipRepository,
) ReportService {
	return &reportService{
		search:          search,
		publicationRepo: publicationRepo,
		authorshipRepo:  authorshipRepo,
	}
}

// Report aggregates over the id set resolved by the search service, so the
// report view and the list view always agree on what matched.
func (s *reportService) Report(params models.PublicationSearchParams) (*models.PublicationReport, error) {
	ids, err := s.search.MatchedIDs(params)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.publicationRepo.CountByStatus(ids)
	if err != nil {
		return nil, err
	}
	byYear, err := s.publicationRepo.CountByYear(ids)
	if err != nil {
		return nil, err
	}
	topAuthors, err := s.authorshipRepo.TopAuthors(ids, topAuthorsLimit)
	if err != nil {
		return nil, err
	}

	if byYear == nil {
		byYear = []models.YearCount{}
	}
	if topAuthors == nil {
		topAuthors = []models.AuthorCount{}
	}

	return &models.PublicationReport{
		Totals: models.ReportTotals{
			All:      int64(len(ids)),
			ByStatus: byStatus,
		},
		ByYear:     byYear,
		TopAuthors: topAuthors,
	}, nil
}
