package handlers

import (
	"strconv"

	"pubregistry/helper"
	"pubregistry/models"
	"pubregistry/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, Helper: helper.NewHTTPHelper()}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	role, _ := c.Get("role")
	if role != string(models.RoleStaff) && role != string(models.RoleAdmin) {
		h.Helper.SendUnauthorizedError(c, "Only staff can create categories", h.Helper.EmptyJsonMap())
		return
	}
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	h.Helper.SendSuccess(c, "Category created successfully", category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	h.Helper.SendSuccess(c, "Success", categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid category ID", h.Helper.EmptyJsonMap())
		return
	}

	category, err := h.categoryService.GetCategory(uint(id))
	if err != nil {
		h.Helper.SendNotFoundError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", category)
}
