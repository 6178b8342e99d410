package grpc_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/usecase"
	grpcpresentation "github.com/Hec-S/Supplement-Guard-sub003/internal/presentation/grpc"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/testutil"
	"github.com/Hec-S/Supplement-Guard-sub003/pkg/auth"
)

// --- Stubs ---

type stubAssessor struct {
	err error
}

func (s stubAssessor) Execute(_ context.Context, req dto.ComparisonRequest) (dto.AssessmentResponse, error) {
	if s.err != nil {
		return dto.AssessmentResponse{}, s.err
	}
	return dto.AssessmentResponse{ClaimID: req.ClaimID, RiskScore: 77, RiskLevel: "high", Method: "professional"}, nil
}

type stubBatch struct{}

func (stubBatch) Execute(_ context.Context, req dto.BatchRequest) (dto.BatchResponse, error) {
	resp := dto.BatchResponse{}
	for _, c := range req.Comparisons {
		resp.Results = append(resp.Results, dto.BatchItemResult{ClaimID: c.ClaimID, Error: "invalid comparison"})
	}
	return resp, nil
}

// --- Helpers ---

func startServer(t *testing.T, single grpcpresentation.SupplementAssessor, jwt *auth.JWTService) *grpc.ClientConn {
	t.Helper()

	handler := grpcpresentation.NewRiskServiceHandler(single, stubBatch{}, nil)
	srv, err := grpcpresentation.NewServer(handler, grpcpresentation.ServerConfig{JWT: jwt}, nil)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// --- Tests ---

func TestAssessSupplement(t *testing.T) {
	client := grpcpresentation.NewRiskServiceClient(startServer(t, stubAssessor{}, nil))

	req := testutil.CleanComparison("CLM-1")
	resp, err := client.AssessSupplement(testContext(t), &req)

	require.NoError(t, err)
	assert.Equal(t, "CLM-1", resp.ClaimID)
	assert.Equal(t, 77, resp.RiskScore)
	assert.Equal(t, "high", resp.RiskLevel)
}

func TestAssessSupplement_ErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want codes.Code
	}{
		{name: "invalid request", err: fmt.Errorf("%w: claim_id is required", dto.ErrInvalidRequest), want: codes.InvalidArgument},
		{name: "invalid comparison", err: fmt.Errorf("%w: duplicate id", usecase.ErrInvalidComparison), want: codes.InvalidArgument},
		{name: "deadline", err: context.DeadlineExceeded, want: codes.DeadlineExceeded},
		{name: "internal", err: errors.New("failed to publish events: broker down"), want: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := grpcpresentation.NewRiskServiceClient(startServer(t, stubAssessor{err: tt.err}, nil))

			_, err := client.AssessSupplement(testContext(t), &dto.ComparisonRequest{ClaimID: "x"})

			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestAssessBatch(t *testing.T) {
	client := grpcpresentation.NewRiskServiceClient(startServer(t, stubAssessor{}, nil))

	resp, err := client.AssessBatch(testContext(t), &dto.BatchRequest{
		Comparisons: []dto.ComparisonRequest{{ClaimID: "A"}, {ClaimID: "B"}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A", resp.Results[0].ClaimID)
	assert.Equal(t, "invalid comparison", resp.Results[1].Error)
}

func TestAuthentication(t *testing.T) {
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "grpc-test-secret", Issuer: "test", Expiration: time.Hour})
	require.NoError(t, err)
	conn := startServer(t, stubAssessor{}, jwt)
	client := grpcpresentation.NewRiskServiceClient(conn)

	_, err = client.AssessSupplement(testContext(t), &dto.ComparisonRequest{ClaimID: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	token, err := jwt.GenerateToken("svc", []string{auth.RoleAPIClient})
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(testContext(t), "authorization", "Bearer "+token)
	resp, err := client.AssessSupplement(ctx, &dto.ComparisonRequest{ClaimID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", resp.ClaimID)

	health, err := healthpb.NewHealthClient(conn).Check(testContext(t), &healthpb.HealthCheckRequest{Service: grpcpresentation.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)
}
