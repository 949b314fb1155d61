package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pubregistry/models"
	"pubregistry/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PublicationService interface {
	Submit(req models.SubmitPublicationRequest, ownerID uint) (*models.Publication, error)
	Get(id uint, actorID uint, role models.UserRole, isPublic bool) (*models.PublicationDetail, error)
	Update(id uint, req models.UpdatePublicationRequest, actorID uint, role models.UserRole) (*models.Publication, error)
	Transition(id uint, req models.TransitionStatusRequest, actorID uint, role models.UserRole) (*models.TransitionResult, error)
	Delete(id uint, actorID uint, role models.UserRole) error
	EditHistory(id uint, limit int) ([]models.EditLog, error)
	StatusTimeline(id uint) ([]models.StatusHistory, error)
}

type publicationService struct {
	publicationRepo repositories.PublicationRepository
	personRepo      repositories.PersonRepository
	authorshipRepo  repositories.AuthorshipRepository
	categoryRepo    repositories.CategoryRepository
	editLogRepo     repositories.EditLogRepository
	historyRepo     repositories.StatusHistoryRepository
	logger          *zap.Logger
}

func NewPublicationService(
	publicationRepo repositories.PublicationRepository,
	personRepo repositories.PersonRepository,
	authorshipRepo repositories.AuthorshipRepository,
	categoryRepo repositories.CategoryRepository,
	editLogRepo repositories.EditLogRepository,
	historyRepo repositories.StatusHistoryRepository,
	logger *zap.Logger,
) PublicationService {
	return &publicationService{
		publicationRepo: publicationRepo,
		personRepo:      personRepo,
		authorshipRepo:  authorshipRepo,
		categoryRepo:    categoryRepo,
		editLogRepo:     editLogRepo,
		historyRepo:     historyRepo,
		logger:          logger,
	}
}

func (s *publicationService) Submit(req models.SubmitPublicationRequest, ownerID uint) (*models.Publication, error) {
	existing, err := s.publicationRepo.FindDuplicate(req.LinkURL, req.Title, req.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrorDuplicate{ConflictID: existing.ID}
	}

	level := req.Level
	if level == "" {
		level = models.LevelNational
	}

	pub := &models.Publication{
		OwnerID:   ownerID,
		Title:     &req.Title,
		VenueID:   req.VenueID,
		VenueName: optionalString(req.VenueName),
		Level:     level,
		Year:      req.Year,
		Abstract:  optionalString(req.Abstract),
		LinkURL:   optionalString(req.LinkURL),
		FilePath:  optionalString(req.FilePath),
		HasFile:   req.FilePath != "",
		Status:    models.StatusDraft,
	}
	if err := s.publicationRepo.Create(pub); err != nil {
		return nil, err
	}

	authors, err := s.resolveAuthors(req.Authors)
	if err != nil {
		return nil, err
	}
	if err := s.authorshipRepo.Replace(pub.ID, authors); err != nil {
		return nil, err
	}

	categoryIDs, err := s.resolveCategoryIDs(req.Categories)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Replace(pub.ID, categoryIDs); err != nil {
		return nil, err
	}

	publicationsSubmitted.Inc()
	s.logger.Info("publication submitted",
		zap.Uint("publication_id", pub.ID),
		zap.Uint("owner_id", ownerID))

	return s.publicationRepo.GetByID(pub.ID)
}

func (s *publicationService) Get(id uint, actorID uint, role models.UserRole, isPublic bool) (*models.PublicationDetail, error) {
	pub, err := s.publicationRepo.GetByID(id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	if isPublic {
		if pub.Status != models.StatusPublished {
			return nil, models.ErrorNotFound{Entity: "publication", ID: id}
		}
	} else if !role.CanModerate() && pub.OwnerID != actorID {
		return nil, models.ErrorForbidden{Reason: "not the owner of this record"}
	}

	authors, err := s.authorshipRepo.GetByPublicationID(id)
	if err != nil {
		return nil, err
	}
	categoryNames, err := s.categoryRepo.NamesByPublicationIDs([]uint{id})
	if err != nil {
		return nil, err
	}

	detail := &models.PublicationDetail{
		Publication:   *pub,
		AuthorList:    authors,
		CategoryNames: categoryNames[id],
	}
	if detail.CategoryNames == nil {
		detail.CategoryNames = []string{}
	}
	return detail, nil
}

func (s *publicationService) Update(id uint, req models.UpdatePublicationRequest, actorID uint, role models.UserRole) (*models.Publication, error) {
	pub, err := s.publicationRepo.GetByID(id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	if !role.CanModerate() {
		if pub.OwnerID != actorID {
			return nil, models.ErrorForbidden{Reason: "not the owner of this record"}
		}
		if pub.Status != models.StatusDraft && pub.Status != models.StatusNeedsRevision {
			return nil, models.ErrorForbidden{Reason: "record is read-only in status " + string(pub.Status)}
		}
	}

	before := publicationProjection(pub)
	next := make(map[string]string)
	columns := make(map[string]interface{})

	if req.Title != nil {
		next["title"] = *req.Title
		columns["title"] = *req.Title
	}
	if req.VenueID != nil {
		next["venue_id"] = strconv.FormatUint(uint64(*req.VenueID), 10)
		columns["venue_id"] = *req.VenueID
	}
	if req.VenueName != nil {
		next["venue_name"] = *req.VenueName
		columns["venue_name"] = *req.VenueName
	}
	if req.Level != nil {
		if *req.Level != models.LevelNational && *req.Level != models.LevelInternational {
			return nil, models.ErrorValidation{Field: "level", Reason: "unknown level " + string(*req.Level)}
		}
		next["level"] = string(*req.Level)
		columns["level"] = *req.Level
	}
	if req.Year != nil {
		next["year"] = strconv.Itoa(*req.Year)
		columns["year"] = *req.Year
	}
	if req.LinkURL != nil {
		next["link_url"] = *req.LinkURL
		columns["link_url"] = *req.LinkURL
	}
	if req.FilePath != nil {
		next["file_path"] = *req.FilePath
		columns["file_path"] = *req.FilePath
		next["has_file"] = strconv.FormatBool(*req.FilePath != "")
		columns["has_file"] = *req.FilePath != ""
	}

	if req.AbstractEdit != nil {
		materialized, err := applyAbstractEdit(stringValue(pub.Abstract), *req.AbstractEdit)
		if err != nil {
			return nil, err
		}
		next["abstract"] = materialized
		columns["abstract"] = materialized
	} else if req.Abstract != nil {
		next["abstract"] = *req.Abstract
		columns["abstract"] = *req.Abstract
	}

	entries := diffEntries(id, actorID, before, next)

	// Write only fields that actually changed; an identical payload touches
	// nothing and logs nothing.
	for field, value := range next {
		if before[field] == value {
			delete(columns, field)
		}
	}
	if len(columns) > 0 {
		if err := s.publicationRepo.UpdateFields(id, columns); err != nil {
			return nil, err
		}
	}

	// Audit failures never fail the primary update.
	if err := s.editLogRepo.AppendAll(entries); err != nil {
		s.logger.Warn("edit log write failed",
			zap.Uint("publication_id", id),
			zap.Error(err))
	}

	if req.Authors != nil {
		authors, err := s.resolveAuthors(*req.Authors)
		if err != nil {
			return nil, err
		}
		if err := s.authorshipRepo.Replace(id, authors); err != nil {
			return nil, err
		}
	}
	if req.Categories != nil {
		categoryIDs, err := s.resolveCategoryIDs(*req.Categories)
		if err != nil {
			return nil, err
		}
		if err := s.categoryRepo.Replace(id, categoryIDs); err != nil {
			return nil, err
		}
	}

	return s.publicationRepo.GetByID(id)
}

func (s *publicationService) Transition(id uint, req models.TransitionStatusRequest, actorID uint, role models.UserRole) (*models.TransitionResult, error) {
	if !req.Status.Valid() {
		return nil, models.ErrorValidation{Field: "status", Reason: "unrecognized status " + string(req.Status)}
	}

	pub, err := s.publicationRepo.GetByID(id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	if !role.CanModerate() {
		if pub.OwnerID != actorID {
			return nil, models.ErrorForbidden{Reason: "not the owner of this record"}
		}
		if !models.ProfessorTransitionAllowed(pub.Status, req.Status) {
			return nil, models.ErrorForbidden{Reason: "professors may only submit their own records for review"}
		}
	}

	// Same-value writes leave the ledger untouched.
	if pub.Status == req.Status {
		return &models.TransitionResult{Status: req.Status}, nil
	}

	var note *string
	if req.Note != "" {
		note = &req.Note
	}
	if err := s.publicationRepo.UpdateStatus(id, req.Status, actorID, note); err != nil {
		return nil, err
	}
	statusTransitions.WithLabelValues(string(req.Status)).Inc()

	result := &models.TransitionResult{Status: req.Status}
	if !models.TransitionExpected(pub.Status, req.Status) {
		result.Warning = fmt.Sprintf("transition %s -> %s is outside the intended lifecycle", pub.Status, req.Status)
		s.logger.Warn("unexpected status transition",
			zap.Uint("publication_id", id),
			zap.String("from", string(pub.Status)),
			zap.String("to", string(req.Status)),
			zap.Uint("actor_id", actorID))
	}
	return result, nil
}

func (s *publicationService) Delete(id uint, actorID uint, role models.UserRole) error {
	pub, err := s.publicationRepo.GetByID(id)
	if err != nil {
		return s.mapNotFound(err, id)
	}

	if pub.Status == models.StatusPublished {
		return models.ErrorForbidden{Reason: "published records cannot be deleted"}
	}
	if !role.CanModerate() && pub.OwnerID != actorID {
		return models.ErrorForbidden{Reason: "not the owner of this record"}
	}

	return s.publicationRepo.DeleteCascade(id)
}

func (s *publicationService) EditHistory(id uint, limit int) ([]models.EditLog, error) {
	if _, err := s.publicationRepo.GetByID(id); err != nil {
		return nil, s.mapNotFound(err, id)
	}
	return s.editLogRepo.ListByPublication(id, limit)
}

func (s *publicationService) StatusTimeline(id uint) ([]models.StatusHistory, error) {
	if _, err := s.publicationRepo.GetByID(id); err != nil {
		return nil, s.mapNotFound(err, id)
	}
	return s.historyRepo.ListByPublication(id)
}

func (s *publicationService) resolveAuthors(inputs []models.AuthorInput) ([]models.PublicationAuthor, error) {
	authors := make([]models.PublicationAuthor, 0, len(inputs))
	for i, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			continue
		}
		person, err := s.personRepo.Resolve(name, input.Email, input.PersonType)
		if err != nil {
			return nil, err
		}
		role := input.Role
		if role == "" {
			role = models.RoleCoauthor
		}
		authors = append(authors, models.PublicationAuthor{
			PersonID:    person.ID,
			AuthorOrder: i + 1,
			Role:        role,
		})
	}
	return authors, nil
}

func (s *publicationService) resolveCategoryIDs(names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	seen := make(map[uint]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category, err := s.categoryRepo.Resolve(name)
		if err != nil {
			return nil, err
		}
		if !seen[category.ID] {
			seen[category.ID] = true
			ids = append(ids, category.ID)
		}
	}
	return ids, nil
}

func (s *publicationService) mapNotFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrorNotFound{Entity: "publication", ID: id}
	}
	return err
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
