package domain

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mcardoso/portfolio-backend/internal/httperr"
)

// NewProjectInput carries an unvalidated admin payload. Tags may arrive
// either as an array of strings or as one comma-separated string.
type NewProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Tags        any    `json:"tags"`
	GithubURL   string `json:"githubUrl"`
	LiveURL     string `json:"liveUrl"`
}

// Normalize validates the input and builds the record to be stored,
// assigning a fresh id.
func (in NewProjectInput) Normalize() (Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	githubURL := strings.TrimSpace(in.GithubURL)

	if title == "" {
		return Project{}, httperr.New(http.StatusBadRequest, "O título é obrigatório.")
	}
	if description == "" {
		return Project{}, httperr.New(http.StatusBadRequest, "A descrição é obrigatória.")
	}
	if githubURL == "" {
		return Project{}, httperr.New(http.StatusBadRequest, "O link do GitHub é obrigatório.")
	}

	return Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Image:       strings.TrimSpace(in.Image),
		Tags:        NormalizeTags(in.Tags),
		GithubURL:   githubURL,
		LiveURL:     strings.TrimSpace(in.LiveURL),
	}, nil
}

// NormalizeTags coerces the loose tag shapes found in payloads and legacy
// store files into an ordered slice: a string array is trimmed, a single
// string is split on commas, anything else yields no tags.
func NormalizeTags(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []string:
		for _, tag := range t {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	case []any:
		for _, raw := range t {
			tag, ok := raw.(string)
			if !ok {
				tag = fmt.Sprint(raw)
			}
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	case string:
		for _, tag := range strings.Split(t, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}
