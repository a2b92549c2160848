package http

import (
	"net/http"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
	"github.com/NotFromFatec/Carometro-V2/pkg/httpx"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	httpx.WriteJSON(w, status, &dirsdk.APIError{
		Code:    code,
		Message: message,
	})
}

func toAccountResponse(a domain.Account) dirsdk.AccountResponse {
	return dirsdk.AccountResponse{
		ID:                  a.ID,
		Username:            a.Username,
		Name:                a.Name,
		Course:              a.Course,
		GraduationYear:      a.GraduationYear,
		PersonalDescription: a.PersonalDescription,
		CareerDescription:   a.CareerDescription,
		Verified:            a.Verified,
		TermsAccepted:       a.TermsAccepted,
		ProfileImage:        a.ProfileImage,
		FaceImage:           a.FaceImage,
		FacePoints:          a.FacePoints,
		ContactLinks:        a.ContactLinks,
		InviteCode:          a.InviteCode,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func toInviteResponse(inv domain.Invite) dirsdk.InviteResponse {
	return dirsdk.InviteResponse{
		Code: inv.Code,
		// Used is kept for clients that predate the status field. Any
		// terminal status reads as used.
		Used:      inv.Status != domain.InviteActive,
		Status:    string(inv.Status),
		CreatedBy: inv.CreatedBy,
		UsedBy:    inv.UsedBy,
		CreatedAt: inv.CreatedAt,
	}
}

func toAdminResponse(a domain.Admin) dirsdk.AdminResponse {
	return dirsdk.AdminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Username:  a.Username,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
