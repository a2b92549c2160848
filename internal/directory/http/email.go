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

type EmailHandler struct {
	DispatchService *service.DispatchService
}

// ServeHTTP runs a batch invite email dispatch. The status code encodes the
// aggregate outcome: 200 all sent, 207 partial, 500 every send failed. The
// report body is the same shape in all three cases.
func (h *EmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.EmailSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	if req.AdminID == "" {
		if adminID, ok := httpx.AdminIDFromContext(ctx); ok {
			req.AdminID = adminID
		}
	}

	recipients := make([]string, 0, len(req.Recipients))
	for _, rcpt := range req.Recipients {
		recipients = append(recipients, rcpt.Email)
	}

	report, err := h.DispatchService.Dispatch(ctx, req.AdminID, recipients, req.Subject, req.HTML, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			writeError(w, http.StatusNotFound, dirsdk.ErrorCodeNotFound, "Admin not found")
		case errors.Is(err, service.ErrEmptyRecipients):
			writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Recipient list is empty")
		case errors.Is(err, service.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Subject or email body is empty")
		default:
			log.Error("invite dispatch failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Dispatch failed")
		}
		return
	}

	status := http.StatusOK
	switch {
	case report.AllFailed():
		status = http.StatusInternalServerError
	case report.Partial():
		status = http.StatusMultiStatus
	}

	httpx.WriteJSON(w, status, dirsdk.EmailSendResponse{
		Message: report.Message,
		Error:   report.Error,
		Details: &dirsdk.EmailSendDetails{
			SuccessfulSends: report.SuccessfulSends,
			FailedSends:     report.FailedSends,
			Errors:          toEmailErrors(report.Errors),
		},
	})
}

func toEmailErrors(errs []service.SendError) []dirsdk.EmailError {
	out := make([]dirsdk.EmailError, 0, len(errs))
	for _, e := range errs {
		out = append(out, dirsdk.EmailError{Email: e.Email, Error: e.Error})
	}
	return out
}
