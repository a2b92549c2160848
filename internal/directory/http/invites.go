package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/service"
	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
	"github.com/NotFromFatec/Carometro-V2/pkg/httpx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

func (h *InvitesHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.MintInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	// Default to the authenticated admin when the body omits adminId.
	if req.AdminID == "" {
		if adminID, ok := httpx.AdminIDFromContext(ctx); ok {
			req.AdminID = adminID
		}
	}
	if req.AdminID == "" {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "adminId is required")
		return
	}

	invite, err := h.InviteService.MintInvite(ctx, req.AdminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Admin not found")
			return
		}
		log.Error("invite minting failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Failed to create invite")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInviteResponse(invite))
}

func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	invites, err := h.InviteService.ListInvites(ctx)
	if err != nil {
		log.Error("invite listing failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Listing failed")
		return
	}

	out := make([]dirsdk.InviteResponse, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toInviteResponse(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *InvitesHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.CancelInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "code is required")
		return
	}

	_, err := h.InviteService.CancelInvite(ctx, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Invite not found")
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			writeError(w, http.StatusConflict, dirsdk.ErrorCodeConflict,
				"Invite has already been used or cancelled")
		default:
			log.Error("invite cancellation failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Cancellation failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dirsdk.MessageResponse{Message: "Invite cancelled"})
}
