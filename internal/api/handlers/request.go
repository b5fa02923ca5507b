package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dom/vidtube/internal/api/middleware"
	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const multipartMemory = 8 << 20

// UploadLimits controls where multipart files are spooled and how large a request may be.
type UploadLimits struct {
	Dir      string
	MaxBytes int64
}

// uploads are the files of one multipart request, spooled to disk.
type uploads struct {
	paths map[string]string
	form  func() error
}

func (u *uploads) Path(field string) string {
	if u == nil {
		return ""
	}
	return u.paths[field]
}

// Cleanup removes whatever the media store did not already consume.
func (u *uploads) Cleanup() {
	if u == nil {
		return
	}
	for _, p := range u.paths {
		_ = os.Remove(p)
	}
	if u.form != nil {
		_ = u.form()
	}
}

// readMultipart parses a multipart body and copies the named file fields into
// temp files under limits.Dir. Missing fields are skipped.
func readMultipart(w http.ResponseWriter, r *http.Request, limits UploadLimits, fields ...string) (*uploads, error) {
	if limits.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.Validation("upload is too large")
		}
		return nil, domain.Validation("invalid multipart form")
	}

	u := &uploads{paths: make(map[string]string), form: r.MultipartForm.RemoveAll}
	if err := os.MkdirAll(limits.Dir, 0o755); err != nil {
		return nil, domain.Internal("create upload dir", err)
	}

	for _, field := range fields {
		path, err := spool(r, limits.Dir, field)
		if err != nil {
			u.Cleanup()
			return nil, err
		}
		if path != "" {
			u.paths[field] = path
		}
	}
	return u, nil
}

func spool(r *http.Request, dir, field string) (string, error) {
	src, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", domain.Validation(fmt.Sprintf("invalid %s file", field))
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
	dst, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return "", domain.Internal("create temp file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", domain.Internal("write temp file", err)
	}
	return dst.Name(), nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validation("invalid request body")
	}
	return nil
}

func currentUser(r *http.Request) (primitive.ObjectID, error) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		return primitive.NilObjectID, service.ErrUnauthorized
	}
	return id, nil
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, domain.Validation("invalid " + name)
	}
	return id, nil
}
