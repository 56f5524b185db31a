package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/service"
)

// maxUploadBytes caps multipart uploads at 5 MB, enforced before any external
// cost is incurred.
const maxUploadBytes = 5 << 20

var imageMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// resumeMIMETypes maps accepted resume types to the format hint passed to the
// media store.
var resumeMIMETypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

type articleRequest struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

type blogTitlesRequest struct {
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
}

type imageRequest struct {
	Prompt  string `json:"prompt"`
	Style   string `json:"style"`
	Publish bool   `json:"publish"`
}

type contentResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

func (a *App) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, domain.ValidationError("", "invalid payload"))
		return
	}

	creation, err := a.AI.GenerateArticle(r.Context(), user, service.ArticleInput{Prompt: req.Prompt, Length: req.Length})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, contentResponse{Success: true, Content: creation.Content})
}

func (a *App) GenerateBlogTitles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}
	var req blogTitlesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, domain.ValidationError("", "invalid payload"))
		return
	}

	creation, err := a.AI.GenerateBlogTitles(r.Context(), user, service.BlogTitlesInput{Prompt: req.Prompt, Category: req.Category})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, contentResponse{Success: true, Content: creation.Content})
}

func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, domain.ValidationError("", "invalid payload"))
		return
	}

	creation, err := a.AI.GenerateImage(r.Context(), user, service.ImageInput{Prompt: req.Prompt, Style: req.Style, Publish: req.Publish})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, contentResponse{Success: true, Content: creation.Content})
}

func (a *App) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}
	file, err := a.readUpload(r, "No image uploaded", func(mime string) bool { return imageMIMETypes[mime] })
	if err != nil {
		a.fail(w, err)
		return
	}

	creation, err := a.AI.RemoveBackground(r.Context(), user, file)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, contentResponse{Success: true, Content: creation.Content})
}

func (a *App) RemoveObject(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}
	file, err := a.readUpload(r, "No image uploaded", func(mime string) bool { return imageMIMETypes[mime] })
	if err != nil {
		a.fail(w, err)
		return
	}
	object := r.FormValue("object")

	creation, err := a.AI.RemoveObject(r.Context(), user, file, object)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, contentResponse{Success: true, Content: creation.Content})
}

func (a *App) ReviewResume(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}
	file, err := a.readUpload(r, "No resume uploaded", func(mime string) bool {
		_, allowed := resumeMIMETypes[mime]
		return allowed
	})
	if err != nil {
		a.fail(w, err)
		return
	}

	creation, err := a.AI.ReviewResume(r.Context(), user, file, resumeMIMETypes[file.MIME])
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, contentResponse{Success: true, Content: creation.Content})
}

// readUpload extracts and validates the multipart "file" field: it must be
// present, within the size cap, and of an accepted mime type.
func (a *App) readUpload(r *http.Request, missingMsg string, allowed func(string) bool) (service.FileInput, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes+4096)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return service.FileInput{}, domain.ValidationError("file", "file exceeds the 5MB limit")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return service.FileInput{}, domain.ValidationError("file", missingMsg)
	}
	defer func() {
		_ = file.Close()
	}()

	if header.Size > maxUploadBytes {
		return service.FileInput{}, domain.ValidationError("file", "file exceeds the 5MB limit")
	}
	mime := header.Header.Get("Content-Type")
	if !allowed(mime) {
		return service.FileInput{}, domain.ValidationError("file", "unsupported file type")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return service.FileInput{}, domain.ValidationError("file", "failed to read upload")
	}
	if len(data) > maxUploadBytes {
		return service.FileInput{}, domain.ValidationError("file", "file exceeds the 5MB limit")
	}
	return service.FileInput{Data: data, MIME: mime}, nil
}
