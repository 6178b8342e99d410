package grpc

// proto.go hand-writes the service descriptor for supplementguard.risk.v1.RiskService.
// Messages are the application DTOs, carried by the JSON codec in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "supplementguard.risk.v1.RiskService"

// Full method names, as seen by interceptors.
const (
	AssessSupplementMethod = "/" + ServiceName + "/AssessSupplement"
	AssessBatchMethod      = "/" + ServiceName + "/AssessBatch"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	AssessSupplement(context.Context, *dto.ComparisonRequest) (*dto.AssessmentResponse, error)
	AssessBatch(context.Context, *dto.BatchRequest) (*dto.BatchResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) AssessSupplement(context.Context, *dto.ComparisonRequest) (*dto.AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessSupplement not implemented")
}
func (UnimplementedRiskServiceServer) AssessBatch(context.Context, *dto.BatchRequest) (*dto.BatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessBatch not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s grpclib.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&riskServiceDesc, srv)
}

var riskServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessSupplement", Handler: assessSupplementHandler},
		{MethodName: "AssessBatch", Handler: assessBatchHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "supplementguard/risk/v1/risk.proto",
}

func assessSupplementHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.ComparisonRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).AssessSupplement(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: AssessSupplementMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).AssessSupplement(ctx, req.(*dto.ComparisonRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func assessBatchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.BatchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).AssessBatch(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: AssessBatchMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).AssessBatch(ctx, req.(*dto.BatchRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// RiskServiceClient is the client API for RiskService.
type RiskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewRiskServiceClient creates a client that speaks the JSON codec over cc.
func NewRiskServiceClient(cc grpclib.ClientConnInterface) *RiskServiceClient {
	return &RiskServiceClient{cc: cc}
}

// AssessSupplement calls RiskService.AssessSupplement.
func (c *RiskServiceClient) AssessSupplement(ctx context.Context, in *dto.ComparisonRequest, opts ...grpclib.CallOption) (*dto.AssessmentResponse, error) {
	out := new(dto.AssessmentResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, AssessSupplementMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AssessBatch calls RiskService.AssessBatch.
func (c *RiskServiceClient) AssessBatch(ctx context.Context, in *dto.BatchRequest, opts ...grpclib.CallOption) (*dto.BatchResponse, error) {
	out := new(dto.BatchResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, AssessBatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
