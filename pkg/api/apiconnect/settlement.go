package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "cohouse.v1.SettlementService"

const (
	SettlementServicePreviewSplitProcedure     = "/cohouse.v1.SettlementService/PreviewSplit"
	SettlementServiceCreateSettlementProcedure = "/cohouse.v1.SettlementService/CreateSettlement"
	SettlementServiceGetSettlementProcedure    = "/cohouse.v1.SettlementService/GetSettlement"
	SettlementServiceListSettlementsProcedure  = "/cohouse.v1.SettlementService/ListSettlements"
	SettlementServiceDeleteSettlementProcedure = "/cohouse.v1.SettlementService/DeleteSettlement"
	SettlementServiceRecordPaymentProcedure    = "/cohouse.v1.SettlementService/RecordPayment"
	SettlementServiceGetGroupBalancesProcedure = "/cohouse.v1.SettlementService/GetGroupBalances"
)

// SettlementServiceClient is a client for the cohouse.v1.SettlementService service.
type SettlementServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
}

// NewSettlementServiceClient constructs a client for the cohouse.v1.SettlementService service.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &settlementServiceClient{
		previewSplit:     connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+SettlementServicePreviewSplitProcedure, opts...),
		createSettlement: connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+SettlementServiceCreateSettlementProcedure, opts...),
		getSettlement:    connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		listSettlements:  connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+SettlementServiceListSettlementsProcedure, opts...),
		deleteSettlement: connect.NewClient[api.DeleteSettlementRequest, api.DeleteSettlementResponse](httpClient, baseURL+SettlementServiceDeleteSettlementProcedure, opts...),
		recordPayment:    connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+SettlementServiceRecordPaymentProcedure, opts...),
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+SettlementServiceGetGroupBalancesProcedure, opts...),
	}
}

type settlementServiceClient struct {
	previewSplit     *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	createSettlement *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	getSettlement    *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	listSettlements  *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
	deleteSettlement *connect.Client[api.DeleteSettlementRequest, api.DeleteSettlementResponse]
	recordPayment    *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	getGroupBalances *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
}

func (c *settlementServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *settlementServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

// SettlementServiceHandler is an implementation of the cohouse.v1.SettlementService service.
type SettlementServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(SettlementServicePreviewSplitProcedure, connect.NewUnaryHandler(SettlementServicePreviewSplitProcedure, svc.PreviewSplit, opts...))
	mux.Handle(SettlementServiceCreateSettlementProcedure, connect.NewUnaryHandler(SettlementServiceCreateSettlementProcedure, svc.CreateSettlement, opts...))
	mux.Handle(SettlementServiceGetSettlementProcedure, connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(SettlementServiceListSettlementsProcedure, connect.NewUnaryHandler(SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts...))
	mux.Handle(SettlementServiceDeleteSettlementProcedure, connect.NewUnaryHandler(SettlementServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...))
	mux.Handle(SettlementServiceRecordPaymentProcedure, connect.NewUnaryHandler(SettlementServiceRecordPaymentProcedure, svc.RecordPayment, opts...))
	mux.Handle(SettlementServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(SettlementServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...))
	return "/" + SettlementServiceName + "/", mux
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.PreviewSplit is not implemented"))
}

func (UnimplementedSettlementServiceHandler) CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.CreateSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.GetSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.ListSettlements is not implemented"))
}

func (UnimplementedSettlementServiceHandler) DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.DeleteSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.RecordPayment is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("cohouse.v1.SettlementService.GetGroupBalances is not implemented"))
}
