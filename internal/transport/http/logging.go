package http

import (
	"encoding/json"
	"log"
	"mime"
	"mime/multipart"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
)

// registerLogging emits one JSON line per request through the std logger.
// Request and response bodies are captured as summaries: the admin login
// password is redacted and photo upload bytes are replaced by a placeholder.
func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			actor := "visitor"
			if _, ok := c.Get(contextSessionKey).(bool); ok {
				actor = "admin"
			}
			line := requestLogLine{
				Time:      v.StartTime.Format(time.RFC3339),
				Actor:     actor,
				Method:    v.Method,
				URI:       v.URI,
				Status:    v.Status,
				LatencyMS: v.Latency.Milliseconds(),
			}
			line.RequestBody = c.Get(requestBodyLogKey)
			line.ResponseBody = c.Get(responseBodyLogKey)
			if v.Error != nil {
				line.Error = v.Error.Error()
			}
			buf, err := json.Marshal(line)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if s := bodySummary(reqBody, c.Request().Header.Get(echo.HeaderContentType)); s != nil {
			c.Set(requestBodyLogKey, s)
		}
		if s := bodySummary(resBody, c.Response().Header().Get(echo.HeaderContentType)); s != nil {
			c.Set(responseBodyLogKey, s)
		}
	}))
}

type requestLogLine struct {
	Time         string      `json:"time"`
	Actor        string      `json:"actor"`
	Method       string      `json:"method"`
	URI          string      `json:"uri"`
	Status       int         `json:"status"`
	LatencyMS    int64       `json:"latency_ms"`
	RequestBody  interface{} `json:"request_body,omitempty"`
	ResponseBody interface{} `json:"response_body,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// bodySummary reduces a body to something safe to log: JSON with password
// fields redacted, multipart forms with file parts replaced, plain text
// clamped, anything unprintable flagged as binary.
func bodySummary(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}
	mediaType, params, _ := mime.ParseMediaType(contentType)
	if strings.HasPrefix(mediaType, "multipart/") {
		return formSummary(body, params["boundary"])
	}
	if mediaType == echo.MIMEApplicationJSON || json.Valid(body) {
		var data interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			return clampSummary(redactJSON(data))
		}
	}
	if !printable(body) {
		return "binary"
	}
	return clampText(string(body))
}

// redactJSON walks decoded JSON and masks any field whose key mentions a
// password or secret, at any nesting depth.
func redactJSON(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			if sensitiveKey(key) {
				out[key] = "redacted"
				continue
			}
			out[key] = redactJSON(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = redactJSON(item)
		}
		return out
	case string:
		return clampText(v)
	default:
		return v
	}
}

func sensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	return strings.Contains(lowered, "password") || strings.Contains(lowered, "secret")
}

// formSummary keeps multipart field values but replaces file parts with
// their name and size, so photo uploads log metadata without image bytes.
func formSummary(body []byte, boundary string) interface{} {
	if boundary == "" {
		return "binary"
	}
	reader := multipart.NewReader(strings.NewReader(string(body)), boundary)
	form, err := reader.ReadForm(int64(len(body)))
	if err != nil {
		return "binary"
	}
	defer form.RemoveAll()

	fields := make(map[string]interface{}, len(form.Value)+len(form.File))
	for name, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		if sensitiveKey(name) {
			fields[name] = "redacted"
			continue
		}
		fields[name] = clampText(values[0])
	}
	for name, files := range form.File {
		if len(files) == 0 {
			continue
		}
		fields[name] = map[string]interface{}{
			"file": files[0].Filename,
			"size": files[0].Size,
			"type": files[0].Header.Get(echo.HeaderContentType),
		}
	}
	if len(fields) == 0 {
		return "binary"
	}
	return fields
}

// clampSummary drops summaries that would themselves bloat the log line.
func clampSummary(value interface{}) interface{} {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]interface{}{"_truncated": true}
}

func clampText(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	cut := value[:maxLoggedBody]
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut + "...(truncated)"
}

func printable(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
		data = data[size:]
	}
	return true
}
