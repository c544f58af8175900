package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

// MembershipServiceName is the fully-qualified name of the MembershipService service.
const MembershipServiceName = "sharedshop.v1.MembershipService"

// Procedure paths served under MembershipServiceName.
const (
	MembershipServiceCreateBudgetInvitationProcedure = "/sharedshop.v1.MembershipService/CreateBudgetInvitation"
	MembershipServiceAcceptBudgetInvitationProcedure = "/sharedshop.v1.MembershipService/AcceptBudgetInvitation"
	MembershipServiceRemoveBudgetMemberProcedure     = "/sharedshop.v1.MembershipService/RemoveBudgetMember"
)

// MembershipServiceHandler is the server side of the MembershipService service.
type MembershipServiceHandler interface {
	CreateBudgetInvitation(context.Context, *connect.Request[api.CreateBudgetInvitationRequest]) (*connect.Response[api.CreateBudgetInvitationResponse], error)
	AcceptBudgetInvitation(context.Context, *connect.Request[api.AcceptBudgetInvitationRequest]) (*connect.Response[api.AcceptBudgetInvitationResponse], error)
	RemoveBudgetMember(context.Context, *connect.Request[api.RemoveBudgetMemberRequest]) (*connect.Response[api.RemoveBudgetMemberResponse], error)
}

// NewMembershipServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewMembershipServiceHandler(svc MembershipServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createBudgetInvitationHandler := connect.NewUnaryHandler(MembershipServiceCreateBudgetInvitationProcedure, svc.CreateBudgetInvitation, opts...)
	acceptBudgetInvitationHandler := connect.NewUnaryHandler(MembershipServiceAcceptBudgetInvitationProcedure, svc.AcceptBudgetInvitation, opts...)
	removeBudgetMemberHandler := connect.NewUnaryHandler(MembershipServiceRemoveBudgetMemberProcedure, svc.RemoveBudgetMember, opts...)
	return "/" + MembershipServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case MembershipServiceCreateBudgetInvitationProcedure:
			createBudgetInvitationHandler.ServeHTTP(w, r)
		case MembershipServiceAcceptBudgetInvitationProcedure:
			acceptBudgetInvitationHandler.ServeHTTP(w, r)
		case MembershipServiceRemoveBudgetMemberProcedure:
			removeBudgetMemberHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// MembershipServiceClient is a client for the MembershipService service.
type MembershipServiceClient interface {
	CreateBudgetInvitation(context.Context, *connect.Request[api.CreateBudgetInvitationRequest]) (*connect.Response[api.CreateBudgetInvitationResponse], error)
	AcceptBudgetInvitation(context.Context, *connect.Request[api.AcceptBudgetInvitationRequest]) (*connect.Response[api.AcceptBudgetInvitationResponse], error)
	RemoveBudgetMember(context.Context, *connect.Request[api.RemoveBudgetMemberRequest]) (*connect.Response[api.RemoveBudgetMemberResponse], error)
}

// NewMembershipServiceClient constructs a client for the MembershipService service at baseURL.
func NewMembershipServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MembershipServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &membershipServiceClient{
		createBudgetInvitation: connect.NewClient[api.CreateBudgetInvitationRequest, api.CreateBudgetInvitationResponse](httpClient, baseURL+MembershipServiceCreateBudgetInvitationProcedure, opts...),
		acceptBudgetInvitation: connect.NewClient[api.AcceptBudgetInvitationRequest, api.AcceptBudgetInvitationResponse](httpClient, baseURL+MembershipServiceAcceptBudgetInvitationProcedure, opts...),
		removeBudgetMember: connect.NewClient[api.RemoveBudgetMemberRequest, api.RemoveBudgetMemberResponse](httpClient, baseURL+MembershipServiceRemoveBudgetMemberProcedure, opts...),
	}
}

type membershipServiceClient struct {
	createBudgetInvitation *connect.Client[api.CreateBudgetInvitationRequest, api.CreateBudgetInvitationResponse]
	acceptBudgetInvitation *connect.Client[api.AcceptBudgetInvitationRequest, api.AcceptBudgetInvitationResponse]
	removeBudgetMember     *connect.Client[api.RemoveBudgetMemberRequest, api.RemoveBudgetMemberResponse]
}

func (c *membershipServiceClient) CreateBudgetInvitation(ctx context.Context, req *connect.Request[api.CreateBudgetInvitationRequest]) (*connect.Response[api.CreateBudgetInvitationResponse], error) {
	return c.createBudgetInvitation.CallUnary(ctx, req)
}

func (c *membershipServiceClient) AcceptBudgetInvitation(ctx context.Context, req *connect.Request[api.AcceptBudgetInvitationRequest]) (*connect.Response[api.AcceptBudgetInvitationResponse], error) {
	return c.acceptBudgetInvitation.CallUnary(ctx, req)
}

func (c *membershipServiceClient) RemoveBudgetMember(ctx context.Context, req *connect.Request[api.RemoveBudgetMemberRequest]) (*connect.Response[api.RemoveBudgetMemberResponse], error) {
	return c.removeBudgetMember.CallUnary(ctx, req)
}
