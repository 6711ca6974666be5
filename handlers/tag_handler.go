package handlers

import (
	"net/http"

	"task-management-api/helper"
	"task-management-api/models"
	"task-management-api/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, httpHelper *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: httpHelper}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	response := make([]models.TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, models.TagResponse{ID: tag.ID, Name: tag.Name})
	}

	c.JSON(http.StatusOK, response)
}
