package models

import (
	"io"
	"time"
)

type VideoStatus string

const (
	StatusDraft      VideoStatus = "Draft"
	StatusUploaded   VideoStatus = "Uploaded"
	StatusProcessing VideoStatus = "Processing"
	StatusReady      VideoStatus = "Ready"
	StatusFailed     VideoStatus = "Failed"
)

func (s VideoStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusUploaded, StatusProcessing, StatusReady, StatusFailed:
		return true
	}
	return false
}

// Video is a catalog entry. Duration is nil until the media has been measured.
type Video struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	SourceURL   string      `json:"video_url,omitempty" db:"source_url"`
	Duration    *float64    `json:"duration" db:"duration"`
	Status      VideoStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

type VideoList struct {
	Videos   []*Video `json:"videos"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	HasMore  bool     `json:"has_more"`
}

type VideoCreateInput struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	SourceURL   string   `json:"video_url" validate:"omitempty,max=1024"`
	Duration    *float64 `json:"duration" validate:"omitempty,gt=0"`
}

// VideoUpdateInput is a partial update. Status is accepted on the wire only so
// that it can be refused explicitly.
type VideoUpdateInput struct {
	Title       *string      `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string      `json:"description" validate:"omitempty,max=500"`
	Duration    *float64     `json:"duration" validate:"omitempty,gt=0"`
	Status      *VideoStatus `json:"status"`
}

type VideoFilter struct {
	Search string
	Status VideoStatus
}

type UploadInput struct {
	File        io.Reader
	Name        string
	ContentType string
	Size        int64
	Duration    *float64
}
