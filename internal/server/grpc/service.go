package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "finkeeper.Ledger"

// Method names, as they appear after the service name in a full method.
const (
	MethodPing                = "Ping"
	MethodRegisterUser        = "RegisterUser"
	MethodAuthenticate        = "Authenticate"
	MethodCreateRelease       = "CreateRelease"
	MethodUpdateRelease       = "UpdateRelease"
	MethodDeleteRelease       = "DeleteRelease"
	MethodChangeReleaseStatus = "ChangeReleaseStatus"
	MethodSearchReleases      = "SearchReleases"
	MethodGetRelease          = "GetRelease"
	MethodBalance             = "Balance"
	MethodReceiptUploadURL    = "ReceiptUploadURL"
	MethodReceiptDownloadURL  = "ReceiptDownloadURL"
)

// FullMethod returns "/finkeeper.Ledger/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// LedgerServer is the server API of the ledger service.
type LedgerServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	CreateRelease(context.Context, *ReleaseRequest) (*ReleaseResponse, error)
	UpdateRelease(context.Context, *ReleaseRequest) (*ReleaseResponse, error)
	DeleteRelease(context.Context, *DeleteReleaseRequest) (*DeleteReleaseResponse, error)
	ChangeReleaseStatus(context.Context, *ChangeReleaseStatusRequest) (*ReleaseResponse, error)
	SearchReleases(context.Context, *SearchReleasesRequest) (*SearchReleasesResponse, error)
	GetRelease(context.Context, *GetReleaseRequest) (*ReleaseResponse, error)
	Balance(context.Context, *BalanceRequest) (*BalanceResponse, error)
	ReceiptUploadURL(context.Context, *ReceiptRequest) (*ReceiptUploadResponse, error)
	ReceiptDownloadURL(context.Context, *ReceiptRequest) (*ReceiptDownloadResponse, error)
}

// unary adapts a typed LedgerServer method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(LedgerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServer), ctx, req.(*Req))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LedgerServiceDesc describes the ledger service for grpc.Server.RegisterService.
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, LedgerServer.Ping),
		unary(MethodRegisterUser, LedgerServer.RegisterUser),
		unary(MethodAuthenticate, LedgerServer.Authenticate),
		unary(MethodCreateRelease, LedgerServer.CreateRelease),
		unary(MethodUpdateRelease, LedgerServer.UpdateRelease),
		unary(MethodDeleteRelease, LedgerServer.DeleteRelease),
		unary(MethodChangeReleaseStatus, LedgerServer.ChangeReleaseStatus),
		unary(MethodSearchReleases, LedgerServer.SearchReleases),
		unary(MethodGetRelease, LedgerServer.GetRelease),
		unary(MethodBalance, LedgerServer.Balance),
		unary(MethodReceiptUploadURL, LedgerServer.ReceiptUploadURL),
		unary(MethodReceiptDownloadURL, LedgerServer.ReceiptDownloadURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finkeeper/ledger",
}

// RegisterLedgerServer registers srv on s.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}
