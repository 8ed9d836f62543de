package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	hostappsvc "stayhub/internal/app/hostapps"
)

type HostApplicationHTTP interface {
	Apply(c *gin.Context)
	ListMine(c *gin.Context)
}

type HostApplicationHandler struct {
	Service *hostappsvc.Service
	Logger  *slog.Logger
}

type applyRequest struct {
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Motivation  string `json:"motivation"`
	Experience  string `json:"experience"`
}

func (h HostApplicationHandler) Apply(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	app, err := h.Service.Apply(c.Request.Context(), hostappsvc.ApplyParams{
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		Motivation:  req.Motivation,
		Experience:  req.Experience,
		Actor:       p.actor(),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, newApplicationView(app))
}

func (h HostApplicationHandler) ListMine(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	list, err := h.Service.ListMine(c.Request.Context(), p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": newApplicationViews(list)})
}

var _ HostApplicationHTTP = HostApplicationHandler{}
