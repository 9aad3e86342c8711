package compliancev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const IntegrationServiceName = "compliance.v1.IntegrationService"

const (
	IntegrationService_GetIntegration_FullMethodName        = "/compliance.v1.IntegrationService/GetIntegration"
	IntegrationService_ScheduleIntegrations_FullMethodName  = "/compliance.v1.IntegrationService/ScheduleIntegrations"
	IntegrationService_ApproveIntegration_FullMethodName    = "/compliance.v1.IntegrationService/ApproveIntegration"
	IntegrationService_ConfirmSchedule_FullMethodName       = "/compliance.v1.IntegrationService/ConfirmSchedule"
	IntegrationService_DeclineSchedule_FullMethodName       = "/compliance.v1.IntegrationService/DeclineSchedule"
	IntegrationService_ConfirmPresence_FullMethodName       = "/compliance.v1.IntegrationService/ConfirmPresence"
	IntegrationService_GetIntegrationHistory_FullMethodName = "/compliance.v1.IntegrationService/GetIntegrationHistory"
)

// IntegrationServiceServer は従業員インテグレーションサービスのサーバーインターフェースです。
type IntegrationServiceServer interface {
	GetIntegration(context.Context, *GetIntegrationRequest) (*GetIntegrationResponse, error)
	ScheduleIntegrations(context.Context, *ScheduleIntegrationsRequest) (*ScheduleIntegrationsResponse, error)
	ApproveIntegration(context.Context, *ApproveIntegrationRequest) (*ApproveIntegrationResponse, error)
	ConfirmSchedule(context.Context, *ConfirmScheduleRequest) (*ConfirmScheduleResponse, error)
	DeclineSchedule(context.Context, *DeclineScheduleRequest) (*DeclineScheduleResponse, error)
	ConfirmPresence(context.Context, *ConfirmPresenceRequest) (*ConfirmPresenceResponse, error)
	GetIntegrationHistory(context.Context, *GetIntegrationHistoryRequest) (*GetIntegrationHistoryResponse, error)
	mustEmbedUnimplementedIntegrationServiceServer()
}

// UnimplementedIntegrationServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedIntegrationServiceServer struct{}

func (UnimplementedIntegrationServiceServer) GetIntegration(context.Context, *GetIntegrationRequest) (*GetIntegrationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetIntegration not implemented")
}
func (UnimplementedIntegrationServiceServer) ScheduleIntegrations(context.Context, *ScheduleIntegrationsRequest) (*ScheduleIntegrationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ScheduleIntegrations not implemented")
}
func (UnimplementedIntegrationServiceServer) ApproveIntegration(context.Context, *ApproveIntegrationRequest) (*ApproveIntegrationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ApproveIntegration not implemented")
}
func (UnimplementedIntegrationServiceServer) ConfirmSchedule(context.Context, *ConfirmScheduleRequest) (*ConfirmScheduleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmSchedule not implemented")
}
func (UnimplementedIntegrationServiceServer) DeclineSchedule(context.Context, *DeclineScheduleRequest) (*DeclineScheduleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeclineSchedule not implemented")
}
func (UnimplementedIntegrationServiceServer) ConfirmPresence(context.Context, *ConfirmPresenceRequest) (*ConfirmPresenceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmPresence not implemented")
}
func (UnimplementedIntegrationServiceServer) GetIntegrationHistory(context.Context, *GetIntegrationHistoryRequest) (*GetIntegrationHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetIntegrationHistory not implemented")
}
func (UnimplementedIntegrationServiceServer) mustEmbedUnimplementedIntegrationServiceServer() {}

// RegisterIntegrationServiceServer は srv を s に登録します。
func RegisterIntegrationServiceServer(s grpc.ServiceRegistrar, srv IntegrationServiceServer) {
	s.RegisterService(&IntegrationService_ServiceDesc, srv)
}

// IntegrationService_ServiceDesc は compliance.v1.IntegrationService のサービス定義です。
var IntegrationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: IntegrationServiceName,
	HandlerType: (*IntegrationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetIntegration", Handler: unary(IntegrationService_GetIntegration_FullMethodName, IntegrationServiceServer.GetIntegration)},
		{MethodName: "ScheduleIntegrations", Handler: unary(IntegrationService_ScheduleIntegrations_FullMethodName, IntegrationServiceServer.ScheduleIntegrations)},
		{MethodName: "ApproveIntegration", Handler: unary(IntegrationService_ApproveIntegration_FullMethodName, IntegrationServiceServer.ApproveIntegration)},
		{MethodName: "ConfirmSchedule", Handler: unary(IntegrationService_ConfirmSchedule_FullMethodName, IntegrationServiceServer.ConfirmSchedule)},
		{MethodName: "DeclineSchedule", Handler: unary(IntegrationService_DeclineSchedule_FullMethodName, IntegrationServiceServer.DeclineSchedule)},
		{MethodName: "ConfirmPresence", Handler: unary(IntegrationService_ConfirmPresence_FullMethodName, IntegrationServiceServer.ConfirmPresence)},
		{MethodName: "GetIntegrationHistory", Handler: unary(IntegrationService_GetIntegrationHistory_FullMethodName, IntegrationServiceServer.GetIntegrationHistory)},
	},
	Streams: []grpc.StreamDesc{},
}

// IntegrationServiceClient は従業員インテグレーションサービスのクライアントです。
type IntegrationServiceClient interface {
	GetIntegration(ctx context.Context, in *GetIntegrationRequest, opts ...grpc.CallOption) (*GetIntegrationResponse, error)
	ScheduleIntegrations(ctx context.Context, in *ScheduleIntegrationsRequest, opts ...grpc.CallOption) (*ScheduleIntegrationsResponse, error)
	ApproveIntegration(ctx context.Context, in *ApproveIntegrationRequest, opts ...grpc.CallOption) (*ApproveIntegrationResponse, error)
	ConfirmSchedule(ctx context.Context, in *ConfirmScheduleRequest, opts ...grpc.CallOption) (*ConfirmScheduleResponse, error)
	DeclineSchedule(ctx context.Context, in *DeclineScheduleRequest, opts ...grpc.CallOption) (*DeclineScheduleResponse, error)
	ConfirmPresence(ctx context.Context, in *ConfirmPresenceRequest, opts ...grpc.CallOption) (*ConfirmPresenceResponse, error)
	GetIntegrationHistory(ctx context.Context, in *GetIntegrationHistoryRequest, opts ...grpc.CallOption) (*GetIntegrationHistoryResponse, error)
}

type integrationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewIntegrationServiceClient は IntegrationServiceClient を生成します。
func NewIntegrationServiceClient(cc grpc.ClientConnInterface) IntegrationServiceClient {
	return &integrationServiceClient{cc: cc}
}

func (c *integrationServiceClient) GetIntegration(ctx context.Context, in *GetIntegrationRequest, opts ...grpc.CallOption) (*GetIntegrationResponse, error) {
	return invoke[GetIntegrationResponse](ctx, c.cc, IntegrationService_GetIntegration_FullMethodName, in, opts)
}

func (c *integrationServiceClient) ScheduleIntegrations(ctx context.Context, in *ScheduleIntegrationsRequest, opts ...grpc.CallOption) (*ScheduleIntegrationsResponse, error) {
	return invoke[ScheduleIntegrationsResponse](ctx, c.cc, IntegrationService_ScheduleIntegrations_FullMethodName, in, opts)
}

func (c *integrationServiceClient) ApproveIntegration(ctx context.Context, in *ApproveIntegrationRequest, opts ...grpc.CallOption) (*ApproveIntegrationResponse, error) {
	return invoke[ApproveIntegrationResponse](ctx, c.cc, IntegrationService_ApproveIntegration_FullMethodName, in, opts)
}

func (c *integrationServiceClient) ConfirmSchedule(ctx context.Context, in *ConfirmScheduleRequest, opts ...grpc.CallOption) (*ConfirmScheduleResponse, error) {
	return invoke[ConfirmScheduleResponse](ctx, c.cc, IntegrationService_ConfirmSchedule_FullMethodName, in, opts)
}

func (c *integrationServiceClient) DeclineSchedule(ctx context.Context, in *DeclineScheduleRequest, opts ...grpc.CallOption) (*DeclineScheduleResponse, error) {
	return invoke[DeclineScheduleResponse](ctx, c.cc, IntegrationService_DeclineSchedule_FullMethodName, in, opts)
}

func (c *integrationServiceClient) ConfirmPresence(ctx context.Context, in *ConfirmPresenceRequest, opts ...grpc.CallOption) (*ConfirmPresenceResponse, error) {
	return invoke[ConfirmPresenceResponse](ctx, c.cc, IntegrationService_ConfirmPresence_FullMethodName, in, opts)
}

func (c *integrationServiceClient) GetIntegrationHistory(ctx context.Context, in *GetIntegrationHistoryRequest, opts ...grpc.CallOption) (*GetIntegrationHistoryResponse, error) {
	return invoke[GetIntegrationHistoryResponse](ctx, c.cc, IntegrationService_GetIntegrationHistory_FullMethodName, in, opts)
}
