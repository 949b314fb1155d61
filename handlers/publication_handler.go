package handlers

import (
	"net/http"
	"strconv"

	"pubregistry/models"
	"pubregistry/services"

	"github.com/gin-gonic/gin"
)

type PublicationHandler struct {
	publicationService services.PublicationService
	searchService      services.SearchService
}

func NewPublicationHandler(publicationService services.PublicationService, searchService services.SearchService) *PublicationHandler {
	return &PublicationHandler{
		publicationService: publicationService,
		searchService:      searchService,
	}
}

func errStatus(err error) int {
	switch err.(type) {
	case models.ErrorDuplicate:
		return http.StatusConflict
	case models.ErrorNotFound:
		return http.StatusNotFound
	case models.ErrorForbidden:
		return http.StatusForbidden
	case models.ErrorValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	if dup, ok := err.(models.ErrorDuplicate); ok {
		body["conflict_id"] = dup.ConflictID
	}
	c.JSON(errStatus(err), body)
}

func actorFrom(c *gin.Context) (uint, models.UserRole, uint) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	personID, _ := c.Get("person_id")
	uid, _ := userID.(uint)
	roleStr, _ := role.(string)
	pid, _ := personID.(uint)
	return uid, models.UserRole(roleStr), pid
}

func (h *PublicationHandler) Submit(c *gin.Context) {
	userID, _, _ := actorFrom(c)

	var req models.SubmitPublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pub, err := h.publicationService.Submit(req, userID)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pub)
}

func (h *PublicationHandler) Search(c *gin.Context) {
	userID, _, personID := actorFrom(c)

	var params models.PublicationSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.Mine {
		params.OwnerID = userID
	}
	if params.LeadOnly {
		params.LeadPersonID = personID
	}

	result, err := h.searchService.Search(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// PublicSearch serves the anonymous surface: approved records only, no
// ownership scoping.
func (h *PublicationHandler) PublicSearch(c *gin.Context) {
	var params models.PublicationSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params.Status = string(models.StatusPublished)
	params.OwnerID = 0
	params.LeadPersonID = 0

	result, err := h.searchService.Search(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PublicationHandler) Get(c *gin.Context) {
	userID, role, _ := actorFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	detail, err := h.publicationService.Get(uint(id), userID, role, false)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *PublicationHandler) PublicGet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	detail, err := h.publicationService.Get(uint(id), 0, "", true)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *PublicationHandler) Update(c *gin.Context) {
	userID, role, _ := actorFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	var req models.UpdatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pub, err := h.publicationService.Update(uint(id), req, userID, role)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, pub)
}

func (h *PublicationHandler) UpdateStatus(c *gin.Context) {
	userID, role, _ := actorFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	var req models.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.publicationService.Transition(uint(id), req, userID, role)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PublicationHandler) Delete(c *gin.Context) {
	userID, role, _ := actorFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	if err := h.publicationService.Delete(uint(id), userID, role); err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *PublicationHandler) EditHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.publicationService.EditHistory(uint(id), limit)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *PublicationHandler) StatusHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	entries, err := h.publicationService.StatusTimeline(uint(id))
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
