package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/service"
	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
	"github.com/NotFromFatec/Carometro-V2/pkg/httpx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

type AlumniHandler struct {
	RegistrationService *service.RegistrationService
	AccountService      *service.AccountService
}

// HandleRegister redeems an invite code and creates an alumni profile.
// An unknown invite code answers the same 409 as a spent one so the
// public endpoint does not reveal which codes were ever minted.
func (h *AlumniHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	draft := domain.Account{
		Username:            req.Username,
		Name:                req.Name,
		Course:              req.Course,
		GraduationYear:      req.GraduationYear,
		PersonalDescription: req.PersonalDescription,
		CareerDescription:   req.CareerDescription,
		TermsAccepted:       req.TermsAccepted,
		ProfileImage:        req.ProfileImage,
		FaceImage:           req.FaceImage,
		FacePoints:          req.FacePoints,
		ContactLinks:        req.ContactLinks,
	}

	account, err := h.RegistrationService.Register(ctx, draft, req.Password, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest,
				"inviteCode, username and password are required")
		case errors.Is(err, service.ErrInviteNotFound),
			errors.Is(err, service.ErrInviteAlreadyUsed):
			writeError(w, http.StatusConflict, dirsdk.ErrorCodeInviteUnavailable,
				"Invite code is not available")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, dirsdk.ErrorCodeUsernameTaken,
				"Username already taken")
		default:
			log.Error("registration failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError,
				"Failed to create account")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *AlumniHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	account, err := h.AccountService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Account not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, dirsdk.ErrorCodeInvalidCredentials, "Invalid credentials")
		default:
			log.Error("alumni login failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Login failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleList serves the directory listing. With ?username= it narrows to a
// single profile, still shaped as a list.
func (h *AlumniHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if username := r.URL.Query().Get("username"); username != "" {
		account, err := h.AccountService.GetAccountByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, service.ErrAccountNotFound) {
				writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Account not found")
				return
			}
			log.Error("account lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Lookup failed")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, []dirsdk.AccountResponse{toAccountResponse(account)})
		return
	}

	accounts, err := h.AccountService.ListAccounts(ctx)
	if err != nil {
		log.Error("account listing failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Listing failed")
		return
	}

	out := make([]dirsdk.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AlumniHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	account, err := h.AccountService.GetAccount(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Account not found")
			return
		}
		log.Error("account lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Lookup failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AlumniHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	patch := service.AccountPatch{
		Name:                req.Name,
		Course:              req.Course,
		GraduationYear:      req.GraduationYear,
		PersonalDescription: req.PersonalDescription,
		CareerDescription:   req.CareerDescription,
		Verified:            req.Verified,
		TermsAccepted:       req.TermsAccepted,
		ProfileImage:        req.ProfileImage,
		FaceImage:           req.FaceImage,
		FacePoints:          req.FacePoints,
		ContactLinks:        req.ContactLinks,
	}

	account, err := h.AccountService.UpdateAccount(ctx, r.PathValue("id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Account not found")
			return
		}
		log.Error("account update failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Update failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AlumniHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.AccountService.DeleteAccount(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Account not found")
			return
		}
		log.Error("account deletion failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Deletion failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dirsdk.MessageResponse{Message: "Account deleted"})
}
