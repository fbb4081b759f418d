package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ideadrop/api/internal/domain"
)

// UserDTO is the public JSON representation of a user. The password hash
// is never serialized.
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

// IdeaDTO is the JSON representation of an idea.
type IdeaDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	UserID      string   `json:"userId"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toIdeaDTO(i *domain.Idea) IdeaDTO {
	return IdeaDTO{
		ID:          i.ID.String(),
		Title:       i.Title,
		Summary:     i.Summary,
		Description: i.Description,
		Tags:        i.Tags,
		UserID:      i.UserID.String(),
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.Format(time.RFC3339),
	}
}

func toIdeaDTOs(ideas []domain.Idea) []IdeaDTO {
	dtos := make([]IdeaDTO, len(ideas))
	for i := range ideas {
		dtos[i] = toIdeaDTO(&ideas[i])
	}
	return dtos
}

// TagList accepts tags either as a JSON array of strings or as a single
// comma-separated string, and canonicalises both shapes into a trimmed
// slice with empty entries dropped.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = canonicalTags(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = canonicalTags(strings.Split(s, ","))
		return nil
	}

	return fmt.Errorf("tags must be an array of strings or a comma-separated string")
}

func canonicalTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
