package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxLogEntries bounds the in-memory request log
const maxLogEntries = 10000

// LogEntry is one recorded request
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"statusCode"`
	ResponseTime time.Duration `json:"responseTime"`
}

// MonitoringService records requests and aggregates them for the monitoring endpoint
type MonitoringService struct {
	logs   []LogEntry
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMonitoringService creates a new MonitoringService
func NewMonitoringService(logger *zap.Logger) *MonitoringService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonitoringService{
		logs:   make([]LogEntry, 0),
		logger: logger.Named("http"),
	}
}

// LogRequest records a request, dropping the oldest entry when full
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.logs) >= maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries+1:]
	}
	s.logs = append(s.logs, entry)
}

// LoggingMiddleware logs every request with zap and records it for the dashboard.
// Monitoring and health requests are logged but not recorded.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		// route template keeps session ids out of the endpoint keys
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = path
		}
		entry := LogEntry{
			Timestamp:    start,
			Path:         endpoint,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		}

		fields := []zap.Field{
			zap.String("method", entry.Method),
			zap.String("path", path),
			zap.Int("status", entry.StatusCode),
			zap.Duration("latency", entry.ResponseTime),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case entry.StatusCode >= 500:
			s.logger.Error("Request", fields...)
		case entry.StatusCode >= 400:
			s.logger.Warn("Request", fields...)
		default:
			s.logger.Info("Request", fields...)
		}

		if path == "/health" || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}
		s.LogRequest(entry)
	}
}

// DashboardData is the aggregated view served by the monitoring endpoint
type DashboardData struct {
	RequestsOverTime []map[string]interface{} `json:"requestsOverTime"`
	Endpoints        map[string]int           `json:"endpoints"`
	StatusCodes      []map[string]interface{} `json:"statusCodes"`
	AvgResponseTimes []map[string]interface{} `json:"avgResponseTimes"`
	RecentErrors     []LogEntry               `json:"recentErrors"`
}

// GetDashboardData aggregates the requests of the last periodHours hours
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, err := time.LoadLocation("Asia/Tashkent")
	if err != nil {
		loc = time.UTC
	}

	now := time.Now().In(loc)
	since := now.Add(-time.Duration(periodHours) * time.Hour)

	filteredLogs := make([]LogEntry, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filteredLogs = append(filteredLogs, entry)
		}
	}

	// requestsOverTime: one bucket per hour, oldest first
	requestsOverTimeSlice := make([]map[string]interface{}, periodHours)
	hourlyBuckets := make(map[string]int)
	for i := 0; i < periodHours; i++ {
		targetTime := now.Add(-time.Duration(periodHours-1-i) * time.Hour)
		bucketKey := targetTime.Truncate(time.Hour).Format(time.RFC3339)
		hourlyBuckets[bucketKey] = 0
		requestsOverTimeSlice[i] = map[string]interface{}{"time": targetTime.Format("15:00"), "requests": 0}
	}
	for _, entry := range filteredLogs {
		bucketKey := entry.Timestamp.In(loc).Truncate(time.Hour).Format(time.RFC3339)
		hourlyBuckets[bucketKey]++
	}
	for i := 0; i < periodHours; i++ {
		targetTime := now.Add(-time.Duration(periodHours-1-i) * time.Hour)
		bucketKey := targetTime.Truncate(time.Hour).Format(time.RFC3339)
		if count, ok := hourlyBuckets[bucketKey]; ok {
			requestsOverTimeSlice[i]["requests"] = count
		}
	}

	endpoints := make(map[string]int)
	for _, entry := range filteredLogs {
		endpoints[entry.Path]++
	}

	statusCodes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	for _, entry := range filteredLogs {
		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			statusCodes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			statusCodes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			statusCodes["5xx Server Error"]++
		}
	}
	statusCodesSlice := make([]map[string]interface{}, 0, len(statusCodes))
	for name, value := range statusCodes {
		statusCodesSlice = append(statusCodesSlice, map[string]interface{}{"name": name, "value": value})
	}

	responseTimeSum := make(map[string]time.Duration)
	responseCount := make(map[string]int)
	for _, entry := range filteredLogs {
		responseTimeSum[entry.Path] += entry.ResponseTime
		responseCount[entry.Path]++
	}
	avgResponseTimesSlice := make([]map[string]interface{}, 0, len(responseTimeSum))
	for path, totalTime := range responseTimeSum {
		avg := totalTime.Milliseconds() / int64(responseCount[path])
		avgResponseTimesSlice = append(avgResponseTimesSlice, map[string]interface{}{"endpoint": path, "responseTime": avg})
	}

	// most recent 5xx first, at most 10
	recentErrors := make([]LogEntry, 0)
	for i := len(filteredLogs) - 1; i >= 0; i-- {
		if filteredLogs[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filteredLogs[i])
			if len(recentErrors) >= 10 {
				break
			}
		}
	}

	return DashboardData{
		RequestsOverTime: requestsOverTimeSlice,
		Endpoints:        endpoints,
		StatusCodes:      statusCodesSlice,
		AvgResponseTimes: avgResponseTimesSlice,
		RecentErrors:     recentErrors,
	}
}
