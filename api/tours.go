package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vuhd/tourbooking/internal/repository"
	"github.com/vuhd/tourbooking/internal/service/tours"
)

type TourHandler struct {
	service tours.TourUseCase
}

func NewTourHandler(service tours.TourUseCase) *TourHandler {
	return &TourHandler{service: service}
}

func (h *TourHandler) Register(router *gin.RouterGroup) {
	router.GET("/tours", h.list)
	router.GET("/tours/tour-detail/:slug", h.detail)
	// legacy path kept for older frontend builds
	router.GET("/tour-detail/:slug", h.detail)
}

func (h *TourHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tours": list})
}

func (h *TourHandler) detail(c *gin.Context) {
	tour, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "tour not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tourDetail": tour})
}
