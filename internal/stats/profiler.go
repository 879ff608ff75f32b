// In file: internal/stats/profiler.go

// Package stats keeps per-tool invocation counters in Redis so operators can
// see which actions fail and how slow the upstream APIs are. It observes the
// catalogue; tools never read it.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

// latencyAlpha weights the newest sample in the moving latency average.
const latencyAlpha = 0.1

// ToolProfile tracks reliability and latency for one tool.
type ToolProfile struct {
	Tool             string    `json:"tool"`
	AvgLatencyMS     int64     `json:"avg_latency_ms"`
	TotalSuccesses   int64     `json:"total_successes"`
	TotalFailures    int64     `json:"total_failures"`
	TotalValidation  int64     `json:"total_validation_errors"`
	TotalUnknown     int64     `json:"total_unknown_tool_errors"`
	ErrorRate        float64   `json:"error_rate"`
	LastStatusCode   int       `json:"last_status_code,omitempty"`
	LastFailureAt    time.Time `json:"last_failure_at,omitempty"`
	LastInvocationAt time.Time `json:"last_invocation_at,omitempty"`
}

// Profiler records tool outcomes into Redis hashes keyed by tool name.
type Profiler struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ tools.Recorder = (*Profiler)(nil)

// NewProfiler stores profiles under "<prefix>:<tool>".
func NewProfiler(rdb redis.UniversalClient, prefix string) *Profiler {
	if prefix == "" {
		prefix = "toolstats"
	}
	return &Profiler{rdb: rdb, prefix: prefix}
}

func (p *Profiler) key(tool string) string {
	return fmt.Sprintf("%s:%s", p.prefix, tool)
}

// recordInvocationScript updates the moving latency average and the outcome
// counters of one tool atomically, so concurrent invocations never lose a count.
//
// KEYS[1] profile hash
// ARGV[1] latency ms, ARGV[2] alpha, ARGV[3] timestamp,
// ARGV[4] "1" when failed, ARGV[5] last status code
var recordInvocationScript = redis.NewScript(`
local latency = tonumber(ARGV[1])
local alpha = tonumber(ARGV[2])
local avg = latency
local prev = redis.call('HGET', KEYS[1], 'avg_latency_ms')
if prev then
  avg = math.floor(alpha * latency + (1 - alpha) * tonumber(prev))
end
redis.call('HSET', KEYS[1], 'avg_latency_ms', tostring(avg), 'last_invocation_at', ARGV[3])
if ARGV[4] == '1' then
  redis.call('HINCRBY', KEYS[1], 'total_failures', 1)
  redis.call('HSET', KEYS[1], 'last_failure_at', ARGV[3], 'last_status_code', ARGV[5])
else
  redis.call('HINCRBY', KEYS[1], 'total_successes', 1)
end
return avg
`)

// RecordInvocation updates counters and the moving latency average.
func (p *Profiler) RecordInvocation(ctx context.Context, tool string, outcome tools.Outcome, latency time.Duration) {
	failed := "0"
	if outcome.Failed() {
		failed = "1"
	}
	err := recordInvocationScript.Run(ctx, p.rdb, []string{p.key(tool)},
		latency.Milliseconds(),
		strconv.FormatFloat(latencyAlpha, 'f', -1, 64),
		time.Now().UTC().Format(time.RFC3339Nano),
		failed,
		statusCode(outcome.Err()),
	).Err()
	if err != nil {
		log.Printf("Error recording invocation for %s: %v", tool, err)
	}
}

// RecordRejection counts validation and unknown-tool errors.
func (p *Profiler) RecordRejection(ctx context.Context, tool string, err error) {
	field := "total_validation_errors"
	var unknown *tools.UnknownToolError
	if errors.As(err, &unknown) {
		field = "total_unknown_tool_errors"
	}
	if rerr := p.rdb.HIncrBy(ctx, p.key(tool), field, 1).Err(); rerr != nil {
		log.Printf("Error recording rejection for %s: %v", tool, rerr)
	}
}

// GetProfile returns the profile for a tool. A tool that was never invoked
// has a zero profile.
func (p *Profiler) GetProfile(ctx context.Context, tool string) (*ToolProfile, error) {
	data, err := p.rdb.HGetAll(ctx, p.key(tool)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %s: %w", tool, err)
	}

	profile := &ToolProfile{Tool: tool}
	profile.AvgLatencyMS, _ = strconv.ParseInt(data["avg_latency_ms"], 10, 64)
	profile.TotalSuccesses, _ = strconv.ParseInt(data["total_successes"], 10, 64)
	profile.TotalFailures, _ = strconv.ParseInt(data["total_failures"], 10, 64)
	profile.TotalValidation, _ = strconv.ParseInt(data["total_validation_errors"], 10, 64)
	profile.TotalUnknown, _ = strconv.ParseInt(data["total_unknown_tool_errors"], 10, 64)
	profile.LastStatusCode, _ = strconv.Atoi(data["last_status_code"])
	profile.LastFailureAt, _ = time.Parse(time.RFC3339Nano, data["last_failure_at"])
	profile.LastInvocationAt, _ = time.Parse(time.RFC3339Nano, data["last_invocation_at"])

	if total := profile.TotalSuccesses + profile.TotalFailures; total > 0 {
		profile.ErrorRate = float64(profile.TotalFailures) / float64(total)
	}
	return profile, nil
}

func statusCode(err error) int {
	var execErr *tools.ExecutionError
	if errors.As(err, &execErr) {
		return execErr.StatusCode
	}
	return 0
}
