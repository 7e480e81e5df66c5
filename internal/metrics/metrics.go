package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"coverage-planner-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Исходы планирования
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidParameter   = "invalid_parameter"
	OutcomeDegenerateGeometry = "degenerate_geometry"
	OutcomeError              = "error"
)

// Collector метрики планировщика, HTTP и gRPC поверхностей
type Collector struct {
	gatherer prometheus.Gatherer

	PlansTotal   *prometheus.CounterVec
	PlanDuration *prometheus.HistogramVec
	PlanLegs     prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	RPCRequests  *prometheus.CounterVec
}

// NewCollector регистрирует метрики в reg (по умолчанию глобальный реестр)
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	plans, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coverage_plans_total",
		Help: "Coverage planning requests, labeled by surface and outcome.",
	}, []string{"surface", "outcome"}), "coverage_plans_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coverage_plan_duration_seconds",
		Help:    "Time spent producing a mission package.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"surface"}), "coverage_plan_duration_seconds")
	if err != nil {
		return nil, err
	}

	legs, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "coverage_plan_legs",
		Help:    "Number of legs in successful coverage plans.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 9),
	}), "coverage_plan_legs")
	if err != nil {
		return nil, err
	}

	httpRequests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	rpcRequests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grpc_requests_total",
		Help: "Handled gRPC calls, labeled by service, method and status code.",
	}, []string{"service", "method", "code"}), "grpc_requests_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:     gatherer,
		PlansTotal:   plans,
		PlanDuration: duration,
		PlanLegs:     legs,
		HTTPRequests: httpRequests,
		RPCRequests:  rpcRequests,
	}, nil
}

// Outcome классифицирует ошибку планирования
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, models.ErrInvalidParameter):
		return OutcomeInvalidParameter
	case errors.Is(err, models.ErrDegenerateGeometry):
		return OutcomeDegenerateGeometry
	default:
		return OutcomeError
	}
}

// ObservePlan фиксирует один запуск планирования. Безопасен для nil
func (c *Collector) ObservePlan(surface string, started time.Time, numLegs int, err error) {
	if c == nil {
		return
	}
	c.PlansTotal.WithLabelValues(surface, Outcome(err)).Inc()
	c.PlanDuration.WithLabelValues(surface).Observe(time.Since(started).Seconds())
	if err == nil {
		c.PlanLegs.Observe(float64(numLegs))
	}
}

// GinMiddleware считает HTTP запросы по шаблону маршрута
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if c == nil {
			return
		}
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.HTTPRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
	}
}

// UnaryServerInterceptor считает gRPC вызовы по коду ответа
func (c *Collector) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if c == nil {
			return resp, err
		}

		fullMethod := ""
		if info != nil {
			fullMethod = info.FullMethod
		}
		service, method := SplitMethod(fullMethod)
		c.RPCRequests.WithLabelValues(service, method, status.Code(err).String()).Inc()
		return resp, err
	}
}

// Handler обработчик /metrics
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SplitMethod разбирает "/pkg.Service/Method" на сервис и метод
func SplitMethod(fullMethod string) (string, string) {
	parts := strings.Split(strings.TrimPrefix(fullMethod, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "unknown", "unknown"
	}
	service := parts[len(parts)-2]
	if dot := strings.LastIndex(service, "."); dot >= 0 && dot+1 < len(service) {
		service = service[dot+1:]
	}
	return service, parts[len(parts)-1]
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
