package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/auth"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error onto a gRPC status carrying the domain
// message.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrBusinessRule):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrAuth):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrPrecondition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrStorage):
		return status.Error(codes.Internal, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func parseType(v string) (models.ReleaseType, error) {
	t := models.ReleaseType(v)
	if v != "" && !t.Valid() {
		return "", status.Errorf(codes.InvalidArgument, "unknown release type %q", v)
	}
	return t, nil
}

func parseStatus(v string) (models.ReleaseStatus, error) {
	st := models.ReleaseStatus(v)
	if v != "" && !st.Valid() {
		return "", status.Errorf(codes.InvalidArgument, "unknown release status %q", v)
	}
	return st, nil
}

// ownerOr returns userID, or the caller's id when userID is empty.
func ownerOr(ctx context.Context, userID string) string {
	if userID != "" {
		return userID
	}
	id, _ := UserIDFromContext(ctx)
	return id
}

// applyRelease copies the editable wire fields onto r. An empty status
// leaves r.Status unchanged.
func applyRelease(ctx context.Context, r *models.Release, w Release) error {
	t, err := parseType(w.Type)
	if err != nil {
		return err
	}
	st, err := parseStatus(w.Status)
	if err != nil {
		return err
	}

	r.Description = w.Description
	r.Month = w.Month
	r.Year = w.Year
	r.UserID = ownerOr(ctx, w.UserID)
	r.Amount = w.Amount
	r.Type = t
	if st != "" {
		r.Status = st
	}
	return nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*RegisterUserResponse, error) {
	s.logger.Info(ctx, "Registration request", "email", req.Email)

	user, err := s.users.Register(ctx, &models.User{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		s.logger.Warn(ctx, "Registration failed", "email", req.Email, "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &RegisterUserResponse{User: userToWire(user)}, nil
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *AuthenticateRequest) (*AuthenticateResponse, error) {
	user, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "Token generation failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &AuthenticateResponse{User: userToWire(user), AccessToken: token}, nil
}

func (s *GRPCServer) CreateRelease(ctx context.Context, req *ReleaseRequest) (*ReleaseResponse, error) {
	r := &models.Release{}
	if err := applyRelease(ctx, r, req.Release); err != nil {
		return nil, err
	}

	saved, err := s.releases.Create(ctx, r)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ReleaseResponse{Release: releaseToWire(saved)}, nil
}

// UpdateRelease replaces the editable fields of a stored release. The
// receipt and creation date are kept.
func (s *GRPCServer) UpdateRelease(ctx context.Context, req *ReleaseRequest) (*ReleaseResponse, error) {
	if req.Release.ID == "" {
		return nil, status.Error(codes.FailedPrecondition, services.MsgUpdateUnsaved)
	}

	r, err := s.releases.FindByID(ctx, req.Release.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := applyRelease(ctx, r, req.Release); err != nil {
		return nil, err
	}

	saved, err := s.releases.Update(ctx, r)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ReleaseResponse{Release: releaseToWire(saved)}, nil
}

func (s *GRPCServer) DeleteRelease(ctx context.Context, req *DeleteReleaseRequest) (*DeleteReleaseResponse, error) {
	if err := s.releases.Delete(ctx, &models.Release{ID: req.ID}); err != nil {
		return nil, toStatus(err)
	}
	return &DeleteReleaseResponse{}, nil
}

func (s *GRPCServer) ChangeReleaseStatus(ctx context.Context, req *ChangeReleaseStatusRequest) (*ReleaseResponse, error) {
	st, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if st == "" {
		return nil, status.Error(codes.InvalidArgument, "status is required")
	}

	r, err := s.releases.FindByID(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	saved, err := s.releases.ChangeStatus(ctx, r, st)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ReleaseResponse{Release: releaseToWire(saved)}, nil
}

func (s *GRPCServer) SearchReleases(ctx context.Context, req *SearchReleasesRequest) (*SearchReleasesResponse, error) {
	t, err := parseType(req.Type)
	if err != nil {
		return nil, err
	}
	st, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	found, err := s.releases.Search(ctx, models.ReleaseFilter{
		ID:          req.ID,
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		UserID:      req.UserID,
		Amount:      req.Amount,
		Type:        t,
		Status:      st,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return &SearchReleasesResponse{Releases: releasesToWire(found)}, nil
}

func (s *GRPCServer) GetRelease(ctx context.Context, req *GetReleaseRequest) (*ReleaseResponse, error) {
	r, err := s.releases.FindByID(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ReleaseResponse{Release: releaseToWire(r)}, nil
}

func (s *GRPCServer) Balance(ctx context.Context, req *BalanceRequest) (*BalanceResponse, error) {
	userID := ownerOr(ctx, req.UserID)

	balance, err := s.releases.BalanceForUser(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &BalanceResponse{UserID: userID, Balance: balance}, nil
}

func (s *GRPCServer) ReceiptUploadURL(ctx context.Context, req *ReceiptRequest) (*ReceiptUploadResponse, error) {
	key, url, err := s.receipts.UploadURL(ctx, req.ReleaseID)
	if err != nil {
		if common.KindOf(err) == 0 && !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "Presigning upload failed", "release_id", req.ReleaseID, "error", err)
		}
		return nil, toStatus(err)
	}
	return &ReceiptUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) ReceiptDownloadURL(ctx context.Context, req *ReceiptRequest) (*ReceiptDownloadResponse, error) {
	url, err := s.receipts.DownloadURL(ctx, req.ReleaseID)
	if err != nil {
		if common.KindOf(err) == 0 && !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "Presigning download failed", "release_id", req.ReleaseID, "error", err)
		}
		return nil, toStatus(err)
	}
	return &ReceiptDownloadResponse{URL: url}, nil
}
