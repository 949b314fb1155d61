package handlers

import (
	"strconv"

	"pubregistry/helper"
	"pubregistry/models"
	"pubregistry/services"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venueService services.VenueService
	Helper       *helper.HTTPHelper
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService, Helper: helper.NewHTTPHelper()}
}

func (h *VenueHandler) CreateVenue(c *gin.Context) {
	role, _ := c.Get("role")
	if role != string(models.RoleStaff) && role != string(models.RoleAdmin) {
		h.Helper.SendUnauthorizedError(c, "Only staff can create venues", h.Helper.EmptyJsonMap())
		return
	}
	var req models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	venue, err := h.venueService.CreateVenue(req)
	if err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	h.Helper.SendSuccess(c, "Venue created successfully", venue)
}

func (h *VenueHandler) GetVenues(c *gin.Context) {
	venues, err := h.venueService.GetVenues()
	if err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	h.Helper.SendSuccess(c, "Success", venues)
}

func (h *VenueHandler) GetVenue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid venue ID", h.Helper.EmptyJsonMap())
		return
	}

	venue, err := h.venueService.GetVenue(uint(id))
	if err != nil {
		h.Helper.SendNotFoundError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", venue)
}
