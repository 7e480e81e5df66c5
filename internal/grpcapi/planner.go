// Package grpcapi отдает планировщик по gRPC. Сообщения передаются как
// google.protobuf.Struct с той же JSON-схемой, что и HTTP API.
package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coverage-planner-go/internal/metrics"
	"coverage-planner-go/internal/service"
	"coverage-planner-go/pkg/models"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName полное имя gRPC сервиса
	ServiceName = "coverage.v1.CoveragePlanner"
	// PlanFullMethod полное имя метода Plan
	PlanFullMethod = "/" + ServiceName + "/Plan"
)

// PlannerServer серверная часть сервиса планирования
type PlannerServer interface {
	Plan(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc описание сервиса для grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Plan", Handler: planHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coverage/v1/planner.proto",
}

func planHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServer).Plan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PlanFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PlannerServer).Plan(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// PlannerClient клиент сервиса планирования
type PlannerClient struct {
	cc grpc.ClientConnInterface
}

// NewPlannerClient создает клиента поверх соединения
func NewPlannerClient(cc grpc.ClientConnInterface) *PlannerClient {
	return &PlannerClient{cc: cc}
}

// Plan вызывает удаленный метод Plan
func (c *PlannerClient) Plan(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PlanFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Server реализация PlannerServer поверх PlanningService
type Server struct {
	planning *service.PlanningService
	logger   *logrus.Logger
}

// NewServer создает gRPC реализацию планировщика
func NewServer(planning *service.PlanningService, logger *logrus.Logger) *Server {
	return &Server{planning: planning, logger: logger}
}

// Plan разбирает запрос, планирует миссию и возвращает результат
func (s *Server) Plan(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req service.PlanRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}

	result, err := s.planning.Plan(ctx, "grpc", "", req)
	if err != nil {
		s.logger.Warnf("gRPC планирование отклонено: %v", err)
		return nil, status.Error(codeFor(err), err.Error())
	}

	out, err := ToStruct(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// NewGRPCServer собирает grpc.Server с планировщиком, health и метриками
func NewGRPCServer(planning *service.PlanningService, collector *metrics.Collector, logger *logrus.Logger) *grpc.Server {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(collector.UnaryServerInterceptor()))
	server.RegisterService(&ServiceDesc, NewServer(planning, logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server
}

// ToStruct переводит значение в Struct через JSON
func ToStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromStruct заполняет v из Struct через JSON
func FromStruct(in *structpb.Struct, v interface{}) error {
	if in == nil {
		return errors.New("empty request")
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal struct: %w", err)
	}
	return nil
}

func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, models.ErrInvalidParameter):
		return codes.InvalidArgument
	case errors.Is(err, models.ErrDegenerateGeometry):
		return codes.FailedPrecondition
	case errors.Is(err, service.ErrIntakeUnavailable):
		return codes.Unavailable
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
