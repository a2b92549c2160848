package dirsdk

import "time"

// AccountResponse is the public representation of an alumni profile.
// Password digests never leave the server.
type AccountResponse struct {
	ID                  string            `json:"id"`
	Username            string            `json:"username"`
	Name                string            `json:"name"`
	Course              string            `json:"course"`
	GraduationYear      string            `json:"graduationYear"`
	PersonalDescription string            `json:"personalDescription"`
	CareerDescription   string            `json:"careerDescription"`
	Verified            bool              `json:"verified"`
	TermsAccepted       bool              `json:"termsAccepted"`
	ProfileImage        string            `json:"profileImage"`
	FaceImage           string            `json:"faceImage"`
	FacePoints          string            `json:"facePoints"`
	ContactLinks        map[string]string `json:"contactLinks"`
	InviteCode          string            `json:"inviteCode"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// RegisterRequest creates an alumni account from a single-use invite code.
type RegisterRequest struct {
	InviteCode          string            `json:"inviteCode"`
	Username            string            `json:"username"`
	Password            string            `json:"password"`
	Name                string            `json:"name"`
	Course              string            `json:"course"`
	GraduationYear      string            `json:"graduationYear"`
	PersonalDescription string            `json:"personalDescription"`
	CareerDescription   string            `json:"careerDescription"`
	TermsAccepted       bool              `json:"termsAccepted"`
	ProfileImage        string            `json:"profileImage"`
	FaceImage           string            `json:"faceImage"`
	FacePoints          string            `json:"facePoints"`
	ContactLinks        map[string]string `json:"contactLinks"`
}

// UpdateAccountRequest is a partial profile update. Absent fields are left
// untouched; username and password are not updatable through this endpoint.
type UpdateAccountRequest struct {
	Name                *string           `json:"name,omitempty"`
	Course              *string           `json:"course,omitempty"`
	GraduationYear      *string           `json:"graduationYear,omitempty"`
	PersonalDescription *string           `json:"personalDescription,omitempty"`
	CareerDescription   *string           `json:"careerDescription,omitempty"`
	Verified            *bool             `json:"verified,omitempty"`
	TermsAccepted       *bool             `json:"termsAccepted,omitempty"`
	ProfileImage        *string           `json:"profileImage,omitempty"`
	FaceImage           *string           `json:"faceImage,omitempty"`
	FacePoints          *string           `json:"facePoints,omitempty"`
	ContactLinks        map[string]string `json:"contactLinks,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminResponse is the public representation of an administrator.
type AdminResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateAdminRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AdminLoginResponse carries the bearer token admin endpoints require.
type AdminLoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

type MintInviteRequest struct {
	AdminID string `json:"adminId"`
}

// InviteResponse lists an invite's state. Used stays in the wire format for
// older clients; it is true for both consumed and cancelled invites, which
// Status tells apart.
type InviteResponse struct {
	Code      string    `json:"code"`
	Used      bool      `json:"used"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	UsedBy    string    `json:"usedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CancelInviteRequest struct {
	Code string `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EmailRecipient struct {
	Email string `json:"email"`
}

type EmailSendRequest struct {
	AdminID    string           `json:"adminId"`
	Recipients []EmailRecipient `json:"recipients"`
	Subject    string           `json:"subject"`
	HTML       string           `json:"html"`
	Text       string           `json:"text,omitempty"`
}

type EmailError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type EmailSendDetails struct {
	SuccessfulSends int          `json:"successfulSends"`
	FailedSends     int          `json:"failedSends"`
	Errors          []EmailError `json:"errors"`
}

// EmailSendResponse is returned for every dispatch outcome, including the
// 207 and 500 partial and total failure cases.
type EmailSendResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Details *EmailSendDetails `json:"details,omitempty"`
}

type CreateCourseRequest struct {
	Name string `json:"name"`
}

type CourseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
