package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/milassets/backend/middleware"
	"github.com/milassets/backend/models"
	"github.com/milassets/backend/repository"
)

// Bases serves the base lookup used by the asset forms. There is no bases
// table; the list is derived from the bases users belong to.
type Bases struct {
	users *repository.Users
	log   *zap.Logger
}

// NewBases creates the bases handler.
func NewBases(users *repository.Users, log *zap.Logger) *Bases {
	return &Bases{users: users, log: log}
}

type baseEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List handles GET /api/bases. Admin gets every known base, everyone else
// just their own.
func (h *Bases) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if actor.Role != models.RoleAdmin {
		entries := []baseEntry{}
		if actor.Base != "" {
			entries = append(entries, baseEntry{ID: actor.Base, Name: actor.Base})
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	bases, err := h.users.Bases()
	if err != nil {
		h.log.Error("list bases", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	entries := make([]baseEntry, len(bases))
	for i, base := range bases {
		entries[i] = baseEntry{ID: base, Name: base}
	}
	c.JSON(http.StatusOK, entries)
}
