package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/janisto/devops-greeter/internal/platform/traceparent"
)

// Cloud Logging keys that link an entry to a Cloud Trace span.
const (
	traceKey        = "logging.googleapis.com/trace"
	spanKey         = "logging.googleapis.com/spanId"
	traceSampledKey = "logging.googleapis.com/trace_sampled"
)

// projectEnvVars are checked in order; the first non-empty value names the project.
var projectEnvVars = []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"}

// resolveProjectID is read once per process. Tests swap it.
var resolveProjectID = sync.OnceValue(lookupProjectID)

func lookupProjectID() string {
	for _, key := range projectEnvVars {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// traceFields are empty without a project: Cloud Logging needs the full resource name.
func traceFields(p traceparent.Parent, projectID string) []zap.Field {
	if projectID == "" {
		return nil
	}
	return []zap.Field{
		zap.String(traceKey, "projects/"+projectID+"/traces/"+p.TraceID),
		zap.String(spanKey, p.SpanID),
		zap.Bool(traceSampledKey, p.Sampled),
	}
}
