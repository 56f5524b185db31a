package domain

import "time"

// CreationType enumerates supported generation operation kinds.
type CreationType string

const (
	CreationTypeArticle          CreationType = "generate-article"
	CreationTypeBlogTitle        CreationType = "blog-title"
	CreationTypeImage            CreationType = "generate-image"
	CreationTypeRemoveObject     CreationType = "remove-object"
	CreationTypeRemoveBackground CreationType = "remove-background"
	CreationTypeReviewResume     CreationType = "review-resume"
)

// Creation is the single persisted entity: one row per successful generation.
// All fields except Likes are written once at creation time.
type Creation struct {
	ID        int64        `json:"id"`
	UserID    string       `json:"userId"`
	Prompt    string       `json:"prompt,omitempty"`
	Content   string       `json:"content"`
	Type      CreationType `json:"type"`
	FileURL   string       `json:"fileUrl,omitempty"`
	Publish   bool         `json:"publish"`
	Likes     []string     `json:"likes"`
	CreatedAt time.Time    `json:"createdAt"`
}

// LikedBy reports whether userID is present in the likes set.
func (c Creation) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
