package logging

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

// LoggedResponseHeaders are added to the access log entry when present in the response
var LoggedResponseHeaders = []string{"Content-Type", "Content-Disposition", "X-Uu-Permissions", "X-Uu-Footer"}

// JSONLogFormatter formats HTTP access logs as logrus fields
type JSONLogFormatter struct {
	ServerAddress *net.TCPAddr
}

// JSONLogEntry prepares the Logrus context
type JSONLogEntry struct {
	request       *http.Request
	serverAddress *net.TCPAddr
}

// NewLogEntry creates a new entry for the Logrus log
func (j *JSONLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &JSONLogEntry{
		request:       r,
		serverAddress: j.ServerAddress,
	}
}

func (j *JSONLogEntry) fields() logrus.Fields {
	r := j.request
	fields := logrus.Fields{
		"hostname":              r.Host,
		"remote_addr":           r.RemoteAddr,
		"request":               fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
		"request_id":            middleware.GetReqID(r.Context()),
		"request_method":        r.Method,
		"request_uri":           r.RequestURI,
		"query_string":          r.URL.RawQuery,
		"received_length":       r.ContentLength,
		"received_content_type": r.Header.Get("Content-Type"),
		"user_agent":            r.UserAgent(),
		"app":                   "uucodec",
		"type":                  "access",
	}
	if j.serverAddress != nil {
		fields["server_port"] = j.serverAddress.Port
	}
	return fields
}

// Write outputs the log entry into the log
func (j *JSONLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	fields := j.fields()
	fields["status"] = status
	fields["request_time"] = elapsed.Seconds()
	fields["sent_bytes"] = bytes
	fields["extra"] = extra
	for _, h := range LoggedResponseHeaders {
		if v := header.Get(h); v != "" {
			fields["sent_"+strings.ReplaceAll(strings.ToLower(h), "-", "_")] = v
		}
	}

	logrus.WithFields(fields).Debug()
}

// Panic outputs the log entry into the log
func (j *JSONLogEntry) Panic(v interface{}, stack []byte) {
	fields := j.fields()
	fields["error"] = v
	fields["stack"] = string(stack)

	logrus.WithFields(fields).Errorf("%+v", v)
}
