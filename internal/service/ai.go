// Package service orchestrates the generation operations: validate the input,
// gate on plan/quota, call the external provider(s), persist the creation, and
// meter usage. Each operation short-circuits on the first failing step.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/providers/media"
	"server/internal/providers/text"
	"server/internal/quota"
)

// TextProvider performs chat completions.
type TextProvider interface {
	Complete(ctx context.Context, req text.CompletionRequest) (string, error)
}

// ImageProvider renders images from text prompts.
type ImageProvider interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

// MediaStore uploads files to the hosted media service.
type MediaStore interface {
	Upload(ctx context.Context, req media.UploadRequest) (string, error)
}

// Models names the completion models used per operation.
type Models struct {
	Completion string
	Review     string
}

// AI wires the providers, store and gate behind the operation methods.
type AI struct {
	Text      TextProvider
	Images    ImageProvider
	Media     MediaStore
	Creations domain.CreationRepository
	Gate      *quota.Gate
	Models    Models
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// ArticleInput describes a generate-article request.
type ArticleInput struct {
	Prompt string
	Length int
}

// BlogTitlesInput describes a blog-title request.
type BlogTitlesInput struct {
	Prompt   string
	Category string
}

// ImageInput describes a generate-image request.
type ImageInput struct {
	Prompt  string
	Style   string
	Publish bool
}

// FileInput is an uploaded file payload with its declared mime type.
type FileInput struct {
	Data []byte
	MIME string
}

// GenerateArticle writes an article for the prompt, bounded by the token budget.
func (s *AI) GenerateArticle(ctx context.Context, user domain.AuthUser, in ArticleInput) (*domain.Creation, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, domain.ValidationError("prompt", "prompt is required")
	}
	if err := s.Gate.CheckAllowed(user.Plan, user.FreeUsage, false); err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, text.CompletionRequest{
		Model:        s.Models.Completion,
		SystemPrompt: articleSystemPrompt,
		UserContent:  in.Prompt,
		Temperature:  0.7,
		MaxTokens:    in.Length,
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, user, &domain.Creation{
		UserID:  user.ID,
		Prompt:  in.Prompt,
		Content: content,
		Type:    domain.CreationTypeArticle,
	})
}

// GenerateBlogTitles produces title suggestions for the keyword and category.
func (s *AI) GenerateBlogTitles(ctx context.Context, user domain.AuthUser, in BlogTitlesInput) (*domain.Creation, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, domain.ValidationError("prompt", "keyword is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, domain.ValidationError("category", "category is required")
	}
	if err := s.Gate.CheckAllowed(user.Plan, user.FreeUsage, false); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Generate 5 blog titles for the keyword :%q, in the category :%q.", in.Prompt, in.Category)
	content, err := s.complete(ctx, text.CompletionRequest{
		Model:        s.Models.Completion,
		SystemPrompt: blogTitlesSystemPrompt,
		UserContent:  prompt,
		Temperature:  0.7,
		MaxTokens:    500,
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, user, &domain.Creation{
		UserID:  user.ID,
		Prompt:  prompt,
		Content: content,
		Type:    domain.CreationTypeBlogTitle,
	})
}

// GenerateImage renders an image for the prompt and style, uploads it to the
// media store, and optionally publishes it to the community feed. Premium only.
func (s *AI) GenerateImage(ctx context.Context, user domain.AuthUser, in ImageInput) (*domain.Creation, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, domain.ValidationError("prompt", "prompt is required")
	}
	if strings.TrimSpace(in.Style) == "" {
		return nil, domain.ValidationError("style", "style is required")
	}
	if err := s.Gate.CheckAllowed(user.Plan, user.FreeUsage, true); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Create an image based on the following prompt: %q. The style of the generated image should be %q style.", in.Prompt, in.Style)

	genCtx, cancel := s.providerContext(ctx)
	image, err := s.Images.TextToImage(genCtx, prompt)
	cancel()
	if err != nil {
		return nil, domain.ProviderError("image generation failed", err)
	}

	url, err := s.upload(ctx, media.UploadRequest{Data: image, MIME: "image/png"})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, user, &domain.Creation{
		UserID:  user.ID,
		Prompt:  prompt,
		Content: url,
		Type:    domain.CreationTypeImage,
		Publish: in.Publish,
	})
}

// RemoveBackground strips the background from the uploaded image. Premium only.
func (s *AI) RemoveBackground(ctx context.Context, user domain.AuthUser, in FileInput) (*domain.Creation, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, domain.ValidationError("file", "No image uploaded")
	}
	if err := s.Gate.CheckAllowed(user.Plan, user.FreeUsage, true); err != nil {
		return nil, err
	}

	url, err := s.upload(ctx, media.UploadRequest{
		Data:           in.Data,
		MIME:           in.MIME,
		Transformation: media.TransformBackgroundRemoval,
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, user, &domain.Creation{
		UserID:  user.ID,
		Content: url,
		Type:    domain.CreationTypeRemoveBackground,
	})
}

// RemoveObject erases the described object from the uploaded image. Premium only.
func (s *AI) RemoveObject(ctx context.Context, user domain.AuthUser, in FileInput, object string) (*domain.Creation, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, domain.ValidationError("file", "No image uploaded")
	}
	if strings.TrimSpace(object) == "" {
		return nil, domain.ValidationError("object", "Object description is required")
	}
	if err := s.Gate.CheckAllowed(user.Plan, user.FreeUsage, true); err != nil {
		return nil, err
	}

	url, err := s.upload(ctx, media.UploadRequest{
		Data:           in.Data,
		MIME:           in.MIME,
		ResourceType:   "image",
		Transformation: media.ObjectRemovalTransform(object),
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, user, &domain.Creation{
		UserID:  user.ID,
		Prompt:  object,
		Content: url,
		Type:    domain.CreationTypeRemoveObject,
	})
}

// ReviewResume uploads the resume, then asks the multimodal completion model
// for a structured review referencing the hosted file. Premium only.
func (s *AI) ReviewResume(ctx context.Context, user domain.AuthUser, in FileInput, format string) (*domain.Creation, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, domain.ValidationError("file", "No resume uploaded")
	}
	if err := s.Gate.CheckAllowed(user.Plan, user.FreeUsage, true); err != nil {
		return nil, err
	}

	fileURL, err := s.upload(ctx, media.UploadRequest{
		Data:         in.Data,
		MIME:         in.MIME,
		ResourceType: "auto",
		Format:       format,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, text.CompletionRequest{
		Model:       s.Models.Review,
		UserContent: resumeReviewPrompt,
		FileURL:     fileURL,
		Temperature: 0.7,
		MaxTokens:   8000,
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, user, &domain.Creation{
		UserID:  user.ID,
		Prompt:  "Resume Review",
		Content: content,
		Type:    domain.CreationTypeReviewResume,
		FileURL: fileURL,
	})
}

// finish persists the creation and meters usage. A failed usage write is
// reported but does not invalidate the already-produced result.
func (s *AI) finish(ctx context.Context, user domain.AuthUser, creation *domain.Creation) (*domain.Creation, error) {
	stored, err := s.Creations.Create(ctx, creation)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.RecordUsage(ctx, user.ID, user.Plan, user.FreeUsage); err != nil {
		s.Logger.Warn().Err(err).Str("user_id", user.ID).Msg("usage not recorded for successful creation")
	}
	return stored, nil
}

func (s *AI) complete(ctx context.Context, req text.CompletionRequest) (string, error) {
	ctx, cancel := s.providerContext(ctx)
	defer cancel()
	content, err := s.Text.Complete(ctx, req)
	if err != nil {
		return "", domain.ProviderError("completion failed", err)
	}
	return content, nil
}

func (s *AI) upload(ctx context.Context, req media.UploadRequest) (string, error) {
	ctx, cancel := s.providerContext(ctx)
	defer cancel()
	url, err := s.Media.Upload(ctx, req)
	if err != nil {
		return "", domain.ProviderError("media upload failed", err)
	}
	return url, nil
}

func (s *AI) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func requireUser(user domain.AuthUser) error {
	if strings.TrimSpace(user.ID) == "" {
		return domain.ValidationError("userId", "userId is required")
	}
	return nil
}
