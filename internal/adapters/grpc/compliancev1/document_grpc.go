package compliancev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DocumentServiceName = "compliance.v1.DocumentService"

const (
	DocumentService_SubmitDocument_FullMethodName         = "/compliance.v1.DocumentService/SubmitDocument"
	DocumentService_JustifyDocument_FullMethodName        = "/compliance.v1.DocumentService/JustifyDocument"
	DocumentService_ApproveDocument_FullMethodName        = "/compliance.v1.DocumentService/ApproveDocument"
	DocumentService_RejectDocument_FullMethodName         = "/compliance.v1.DocumentService/RejectDocument"
	DocumentService_GetDocument_FullMethodName            = "/compliance.v1.DocumentService/GetDocument"
	DocumentService_ListEmployeeDocuments_FullMethodName  = "/compliance.v1.DocumentService/ListEmployeeDocuments"
	DocumentService_GetDocumentHistory_FullMethodName     = "/compliance.v1.DocumentService/GetDocumentHistory"
	DocumentService_GetDocumentationStatus_FullMethodName = "/compliance.v1.DocumentService/GetDocumentationStatus"
)

// DocumentServiceServer は書類承認サービスのサーバーインターフェースです。
type DocumentServiceServer interface {
	SubmitDocument(context.Context, *SubmitDocumentRequest) (*SubmitDocumentResponse, error)
	JustifyDocument(context.Context, *JustifyDocumentRequest) (*JustifyDocumentResponse, error)
	ApproveDocument(context.Context, *ApproveDocumentRequest) (*ApproveDocumentResponse, error)
	RejectDocument(context.Context, *RejectDocumentRequest) (*RejectDocumentResponse, error)
	GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error)
	ListEmployeeDocuments(context.Context, *ListEmployeeDocumentsRequest) (*ListEmployeeDocumentsResponse, error)
	GetDocumentHistory(context.Context, *GetDocumentHistoryRequest) (*GetDocumentHistoryResponse, error)
	GetDocumentationStatus(context.Context, *GetDocumentationStatusRequest) (*GetDocumentationStatusResponse, error)
	mustEmbedUnimplementedDocumentServiceServer()
}

// UnimplementedDocumentServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedDocumentServiceServer struct{}

func (UnimplementedDocumentServiceServer) SubmitDocument(context.Context, *SubmitDocumentRequest) (*SubmitDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitDocument not implemented")
}
func (UnimplementedDocumentServiceServer) JustifyDocument(context.Context, *JustifyDocumentRequest) (*JustifyDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method JustifyDocument not implemented")
}
func (UnimplementedDocumentServiceServer) ApproveDocument(context.Context, *ApproveDocumentRequest) (*ApproveDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ApproveDocument not implemented")
}
func (UnimplementedDocumentServiceServer) RejectDocument(context.Context, *RejectDocumentRequest) (*RejectDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RejectDocument not implemented")
}
func (UnimplementedDocumentServiceServer) GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDocument not implemented")
}
func (UnimplementedDocumentServiceServer) ListEmployeeDocuments(context.Context, *ListEmployeeDocumentsRequest) (*ListEmployeeDocumentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployeeDocuments not implemented")
}
func (UnimplementedDocumentServiceServer) GetDocumentHistory(context.Context, *GetDocumentHistoryRequest) (*GetDocumentHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDocumentHistory not implemented")
}
func (UnimplementedDocumentServiceServer) GetDocumentationStatus(context.Context, *GetDocumentationStatusRequest) (*GetDocumentationStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDocumentationStatus not implemented")
}
func (UnimplementedDocumentServiceServer) mustEmbedUnimplementedDocumentServiceServer() {}

// RegisterDocumentServiceServer は srv を s に登録します。
func RegisterDocumentServiceServer(s grpc.ServiceRegistrar, srv DocumentServiceServer) {
	s.RegisterService(&DocumentService_ServiceDesc, srv)
}

// DocumentService_ServiceDesc は compliance.v1.DocumentService のサービス定義です。
var DocumentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DocumentServiceName,
	HandlerType: (*DocumentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitDocument", Handler: unary(DocumentService_SubmitDocument_FullMethodName, DocumentServiceServer.SubmitDocument)},
		{MethodName: "JustifyDocument", Handler: unary(DocumentService_JustifyDocument_FullMethodName, DocumentServiceServer.JustifyDocument)},
		{MethodName: "ApproveDocument", Handler: unary(DocumentService_ApproveDocument_FullMethodName, DocumentServiceServer.ApproveDocument)},
		{MethodName: "RejectDocument", Handler: unary(DocumentService_RejectDocument_FullMethodName, DocumentServiceServer.RejectDocument)},
		{MethodName: "GetDocument", Handler: unary(DocumentService_GetDocument_FullMethodName, DocumentServiceServer.GetDocument)},
		{MethodName: "ListEmployeeDocuments", Handler: unary(DocumentService_ListEmployeeDocuments_FullMethodName, DocumentServiceServer.ListEmployeeDocuments)},
		{MethodName: "GetDocumentHistory", Handler: unary(DocumentService_GetDocumentHistory_FullMethodName, DocumentServiceServer.GetDocumentHistory)},
		{MethodName: "GetDocumentationStatus", Handler: unary(DocumentService_GetDocumentationStatus_FullMethodName, DocumentServiceServer.GetDocumentationStatus)},
	},
	Streams: []grpc.StreamDesc{},
}

// DocumentServiceClient は書類承認サービスのクライアントです。
type DocumentServiceClient interface {
	SubmitDocument(ctx context.Context, in *SubmitDocumentRequest, opts ...grpc.CallOption) (*SubmitDocumentResponse, error)
	JustifyDocument(ctx context.Context, in *JustifyDocumentRequest, opts ...grpc.CallOption) (*JustifyDocumentResponse, error)
	ApproveDocument(ctx context.Context, in *ApproveDocumentRequest, opts ...grpc.CallOption) (*ApproveDocumentResponse, error)
	RejectDocument(ctx context.Context, in *RejectDocumentRequest, opts ...grpc.CallOption) (*RejectDocumentResponse, error)
	GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error)
	ListEmployeeDocuments(ctx context.Context, in *ListEmployeeDocumentsRequest, opts ...grpc.CallOption) (*ListEmployeeDocumentsResponse, error)
	GetDocumentHistory(ctx context.Context, in *GetDocumentHistoryRequest, opts ...grpc.CallOption) (*GetDocumentHistoryResponse, error)
	GetDocumentationStatus(ctx context.Context, in *GetDocumentationStatusRequest, opts ...grpc.CallOption) (*GetDocumentationStatusResponse, error)
}

type documentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDocumentServiceClient は DocumentServiceClient を生成します。
func NewDocumentServiceClient(cc grpc.ClientConnInterface) DocumentServiceClient {
	return &documentServiceClient{cc: cc}
}

func (c *documentServiceClient) SubmitDocument(ctx context.Context, in *SubmitDocumentRequest, opts ...grpc.CallOption) (*SubmitDocumentResponse, error) {
	return invoke[SubmitDocumentResponse](ctx, c.cc, DocumentService_SubmitDocument_FullMethodName, in, opts)
}

func (c *documentServiceClient) JustifyDocument(ctx context.Context, in *JustifyDocumentRequest, opts ...grpc.CallOption) (*JustifyDocumentResponse, error) {
	return invoke[JustifyDocumentResponse](ctx, c.cc, DocumentService_JustifyDocument_FullMethodName, in, opts)
}

func (c *documentServiceClient) ApproveDocument(ctx context.Context, in *ApproveDocumentRequest, opts ...grpc.CallOption) (*ApproveDocumentResponse, error) {
	return invoke[ApproveDocumentResponse](ctx, c.cc, DocumentService_ApproveDocument_FullMethodName, in, opts)
}

func (c *documentServiceClient) RejectDocument(ctx context.Context, in *RejectDocumentRequest, opts ...grpc.CallOption) (*RejectDocumentResponse, error) {
	return invoke[RejectDocumentResponse](ctx, c.cc, DocumentService_RejectDocument_FullMethodName, in, opts)
}

func (c *documentServiceClient) GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error) {
	return invoke[GetDocumentResponse](ctx, c.cc, DocumentService_GetDocument_FullMethodName, in, opts)
}

func (c *documentServiceClient) ListEmployeeDocuments(ctx context.Context, in *ListEmployeeDocumentsRequest, opts ...grpc.CallOption) (*ListEmployeeDocumentsResponse, error) {
	return invoke[ListEmployeeDocumentsResponse](ctx, c.cc, DocumentService_ListEmployeeDocuments_FullMethodName, in, opts)
}

func (c *documentServiceClient) GetDocumentHistory(ctx context.Context, in *GetDocumentHistoryRequest, opts ...grpc.CallOption) (*GetDocumentHistoryResponse, error) {
	return invoke[GetDocumentHistoryResponse](ctx, c.cc, DocumentService_GetDocumentHistory_FullMethodName, in, opts)
}

func (c *documentServiceClient) GetDocumentationStatus(ctx context.Context, in *GetDocumentationStatusRequest, opts ...grpc.CallOption) (*GetDocumentationStatusResponse, error) {
	return invoke[GetDocumentationStatusResponse](ctx, c.cc, DocumentService_GetDocumentationStatus_FullMethodName, in, opts)
}
