package grpc

import (
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the wire form of a user. The password never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredOn time.Time `json:"registered_on"`
}

type RegisterUserResponse struct {
	User User `json:"user"`
}

type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthenticateResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type Release struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	UserID      string          `json:"user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type,omitempty"`
	Status      string          `json:"status,omitempty"`
	CreatedOn   time.Time       `json:"created_on,omitempty"`
	HasReceipt  bool            `json:"has_receipt,omitempty"`
}

type ReleaseRequest struct {
	Release Release `json:"release"`
}

type ReleaseResponse struct {
	Release Release `json:"release"`
}

type DeleteReleaseRequest struct {
	ID string `json:"id"`
}

type DeleteReleaseResponse struct{}

type ChangeReleaseStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type GetReleaseRequest struct {
	ID string `json:"id"`
}

// SearchReleasesRequest filters by example; zero fields match anything.
type SearchReleasesRequest struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description,omitempty"`
	Month       int             `json:"month,omitempty"`
	Year        int             `json:"year,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type,omitempty"`
	Status      string          `json:"status,omitempty"`
}

type SearchReleasesResponse struct {
	Releases []Release `json:"releases"`
}

type BalanceRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type BalanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type ReceiptRequest struct {
	ReleaseID string `json:"release_id"`
}

type ReceiptUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ReceiptDownloadResponse struct {
	URL string `json:"url"`
}

func userToWire(u *models.User) User {
	return User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		RegisteredOn: u.RegisteredOn,
	}
}

func releaseToWire(r *models.Release) Release {
	return Release{
		ID:          r.ID,
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		UserID:      r.UserID,
		Amount:      r.Amount,
		Type:        string(r.Type),
		Status:      string(r.Status),
		CreatedOn:   r.CreatedOn,
		HasReceipt:  r.ReceiptKey != "",
	}
}

func releasesToWire(rs []*models.Release) []Release {
	out := make([]Release, 0, len(rs))
	for _, r := range rs {
		out = append(out, releaseToWire(r))
	}
	return out
}
