package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"strings"
	"time"
)

const esBodyLimit = 1000

// ESTransport 记录每次 ES 请求；搜索结果含帖子正文，正常返回时只记录大小
type ESTransport struct {
	Transport     http.RoundTripper
	SlowThreshold time.Duration
}

func NewESTransport(next http.RoundTripper, slowThreshold time.Duration) *ESTransport {
	if slowThreshold <= 0 {
		slowThreshold = 500 * time.Millisecond
	}
	return &ESTransport{Transport: next, SlowThreshold: slowThreshold}
}

func truncateBody(b []byte) string {
	if len(b) > esBodyLimit {
		return string(b[:esBodyLimit]) + "...[truncated]"
	}
	return string(b)
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Duration("latency", elapsed),
		log.String("req_body", truncateBody(reqBody)),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "ES_QUERY_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	var resBody []byte
	if resp.Body != nil {
		resBody, _ = io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
	}

	slow := elapsed > t.SlowThreshold
	fields = append(fields, log.Int("status", resp.StatusCode))
	if strings.HasSuffix(req.URL.Path, "/_search") && resp.StatusCode < http.StatusBadRequest && !slow {
		fields = append(fields, log.Int("res_size", len(resBody)))
	} else {
		fields = append(fields, log.String("res_body", truncateBody(resBody)))
	}

	switch {
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound:
		log.WarnContext(req.Context(), "ES_QUERY_FAILED", fields...)
	case slow:
		log.WarnContext(req.Context(), "ES_QUERY_SLOW", fields...)
	default:
		log.InfoContext(req.Context(), "ES_QUERY", fields...)
	}

	return resp, nil
}
