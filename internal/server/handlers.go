package server

import (
	"io/ioutil"
	"mime"
	"net/http"
	"strconv"

	"github.com/bokysan/uucodec/internal/uucodec"
	"github.com/bokysan/uucodec/internal/version"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	HeaderPermissions = "X-Uu-Permissions"
	HeaderFooter      = "X-Uu-Footer"

	encodedContentType = "text/plain; charset=us-ascii"
	binaryContentType  = "application/octet-stream"
)

type handlers struct {
	maxBodySize int64
}

func requestLogger(r *http.Request) log.FieldLogger {
	return log.WithFields(log.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"path":       r.URL.Path,
	})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(version.Describe() + "\n"))
}

// encode takes the binary file as the request body. The query parameters `name`, `mode`, `ext`
// and `footer` map to the encoder options.
func (h *handlers) encode(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r)

	query := r.URL.Query()
	opts := uucodec.EncodeOptions{
		Name:      query.Get("name"),
		Extension: query.Get("ext"),
	}
	if mode := query.Get("mode"); mode != "" {
		opts.Permissions = mode
	}
	footer := false
	if f := query.Get("footer"); f != "" {
		var err error
		if footer, err = strconv.ParseBool(f); err != nil {
			http.Error(w, "invalid value for footer: "+f, http.StatusBadRequest)
			return
		}
	}

	data, ok := h.readBody(w, r, logger)
	if !ok {
		return
	}

	encoder := uucodec.NewEncoder()
	encoder.Log = logger
	file, err := encoder.Encode(data, opts)
	if err != nil {
		writeError(w, err, logger)
		return
	}

	payload := file.Bytes()
	if footer {
		payload = file.BytesWithFooter()
	}

	w.Header().Set("Content-Type", encodedContentType)
	w.Header().Set("Content-Disposition", attachment(file.FullName()+uucodec.EncodedFileSuffix))
	w.Header().Set(HeaderPermissions, file.PermissionsMode())
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	_, _ = w.Write(payload)
}

// decode takes the uuencoded text as the request body and responds with the decoded file
func (h *handlers) decode(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r)

	data, ok := h.readBody(w, r, logger)
	if !ok {
		return
	}

	decoder := uucodec.NewDecoder()
	decoder.Log = logger
	file, err := decoder.Decode(data)
	if err != nil {
		writeError(w, err, logger)
		return
	}

	contentType := file.MimeType()
	if contentType == "" {
		contentType = binaryContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", attachment(file.FullName()))
	w.Header().Set(HeaderPermissions, file.PermissionsMode())
	w.Header().Set(HeaderFooter, strconv.FormatBool(file.FooterPresent()))
	w.Header().Set("Content-Length", strconv.Itoa(file.Len()))
	_, _ = w.Write(file.Bytes())
}

func (h *handlers) readBody(w http.ResponseWriter, r *http.Request, logger log.FieldLogger) ([]byte, bool) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	data, err := ioutil.ReadAll(body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		} else {
			logger.WithError(err).Warnf("Could not read request body: %v", err)
			http.Error(w, "could not read request body", http.StatusBadRequest)
		}
		return nil, false
	}
	return data, true
}

func writeError(w http.ResponseWriter, err error, logger log.FieldLogger) {
	if uucodec.IsInputError(err) {
		logger.WithError(err).Debugf("Rejected input: %v", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	logger.WithError(err).Errorf("Request failed: %+v", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
