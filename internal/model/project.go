package model

import (
	"context"
	"io"
	"time"
)

// StatusPending is the status every project starts with.
const StatusPending = "pending"

// ProjectStore defines persistence operations for projects.
type ProjectStore interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	// List returns projects in insertion order, narrowed by the non-empty filter fields.
	List(ctx context.Context, filter ProjectFilter) ([]Project, error)
	UpdateStatus(ctx context.Context, id string, status string) (Project, error)
	Delete(ctx context.Context, id string) (Project, error)
}

// Project is a user-submitted entry awaiting or past moderation.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Files       []string  `json:"files"`
	Video       string    `json:"video,omitempty"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasTag reports whether the project is labelled with tag.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProjectFilter narrows project listings. Empty fields match everything.
type ProjectFilter struct {
	Category string
	Tag      string
}

// Match applies both predicates with AND semantics.
func (f ProjectFilter) Match(p Project) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	return true
}

// Upload is a single file attached to a submission.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// SubmitProjectParams contains parameters to create a project.
type SubmitProjectParams struct {
	UserID      string
	Title       string
	Description string
	Category    string
	Tags        string
	Video       string
	Files       []Upload
}
