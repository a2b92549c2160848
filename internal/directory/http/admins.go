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

type AdminsHandler struct {
	AdminService *service.AdminService
}

func (h *AdminsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	admin, token, err := h.AdminService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Admin not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, dirsdk.ErrorCodeInvalidCredentials, "Invalid credentials")
		default:
			log.Error("admin login failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Login failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dirsdk.AdminLoginResponse{
		Token: token,
		Admin: toAdminResponse(admin),
	})
}

func (h *AdminsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	admin, err := h.AdminService.ProvisionAdmin(ctx, req.Name, req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest,
				"username and password are required")
		case errors.Is(err, service.ErrAdminUsernameTaken):
			writeError(w, http.StatusConflict, dirsdk.ErrorCodeUsernameTaken, "Username already taken")
		default:
			log.Error("admin provisioning failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Provisioning failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAdminResponse(admin))
}

func (h *AdminsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	admin, err := h.AdminService.GetAdmin(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Admin not found")
			return
		}
		log.Error("admin lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Lookup failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAdminResponse(admin))
}

func (h *AdminsHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "username query parameter is required")
		return
	}

	admin, err := h.AdminService.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Admin not found")
			return
		}
		log.Error("admin lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Lookup failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAdminResponse(admin))
}
