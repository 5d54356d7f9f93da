package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// LedgerClient calls the ledger service over an established connection.
// Every call is encoded with JSONCodec.
type LedgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) *LedgerClient {
	return &LedgerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(JSONCodec{})}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts...)
}

func (c *LedgerClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts...)
}

func (c *LedgerClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error) {
	return invoke[AuthenticateResponse](ctx, c.cc, MethodAuthenticate, in, opts...)
}

func (c *LedgerClient) CreateRelease(ctx context.Context, in *ReleaseRequest, opts ...grpc.CallOption) (*ReleaseResponse, error) {
	return invoke[ReleaseResponse](ctx, c.cc, MethodCreateRelease, in, opts...)
}

func (c *LedgerClient) UpdateRelease(ctx context.Context, in *ReleaseRequest, opts ...grpc.CallOption) (*ReleaseResponse, error) {
	return invoke[ReleaseResponse](ctx, c.cc, MethodUpdateRelease, in, opts...)
}

func (c *LedgerClient) DeleteRelease(ctx context.Context, in *DeleteReleaseRequest, opts ...grpc.CallOption) (*DeleteReleaseResponse, error) {
	return invoke[DeleteReleaseResponse](ctx, c.cc, MethodDeleteRelease, in, opts...)
}

func (c *LedgerClient) ChangeReleaseStatus(ctx context.Context, in *ChangeReleaseStatusRequest, opts ...grpc.CallOption) (*ReleaseResponse, error) {
	return invoke[ReleaseResponse](ctx, c.cc, MethodChangeReleaseStatus, in, opts...)
}

func (c *LedgerClient) SearchReleases(ctx context.Context, in *SearchReleasesRequest, opts ...grpc.CallOption) (*SearchReleasesResponse, error) {
	return invoke[SearchReleasesResponse](ctx, c.cc, MethodSearchReleases, in, opts...)
}

func (c *LedgerClient) GetRelease(ctx context.Context, in *GetReleaseRequest, opts ...grpc.CallOption) (*ReleaseResponse, error) {
	return invoke[ReleaseResponse](ctx, c.cc, MethodGetRelease, in, opts...)
}

func (c *LedgerClient) Balance(ctx context.Context, in *BalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, MethodBalance, in, opts...)
}

func (c *LedgerClient) ReceiptUploadURL(ctx context.Context, in *ReceiptRequest, opts ...grpc.CallOption) (*ReceiptUploadResponse, error) {
	return invoke[ReceiptUploadResponse](ctx, c.cc, MethodReceiptUploadURL, in, opts...)
}

func (c *LedgerClient) ReceiptDownloadURL(ctx context.Context, in *ReceiptRequest, opts ...grpc.CallOption) (*ReceiptDownloadResponse, error) {
	return invoke[ReceiptDownloadResponse](ctx, c.cc, MethodReceiptDownloadURL, in, opts...)
}
