package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/services"
	"github.com/careerlens/careerlens/internal/storage"
)

type ProfileHandler struct {
	svc          services.ProfileService
	signer       storage.Signer
	signedURLTTL time.Duration
}

func NewProfileHandler(svc services.ProfileService, signer storage.Signer, signedURLTTL time.Duration) *ProfileHandler {
	if signedURLTTL <= 0 {
		signedURLTTL = 15 * time.Minute
	}
	return &ProfileHandler{svc: svc, signer: signer, signedURLTTL: signedURLTTL}
}

// Latest returns the newest profile with its ordered skills, interests, and
// documents; document rows carry short-lived download URLs when signing is
// configured.
func (h *ProfileHandler) Latest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetLatest(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.signer != nil {
		for i := range p.Documents {
			if url, err := h.signer.SignedGetURL(p.Documents[i].StoragePath, h.signedURLTTL); err == nil {
				p.Documents[i].DownloadURL = url
			}
		}
	}

	c.JSON(http.StatusOK, p)
}
