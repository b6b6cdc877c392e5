package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleMember    Role = "member"
)

type Profile struct {
	ID             uuid.UUID `json:"id"`
	Username       *string   `json:"username"`
	FullName       *string   `json:"full_name"`
	AvatarURL      *string   `json:"avatar_url"`
	Bio            *string   `json:"bio"`
	Role           Role      `json:"role"`
	Level          int       `json:"level"`
	FollowingCount int       `json:"following_count"`
	FollowersCount int       `json:"followers_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileUpdate carries the owner-editable fields; nil means unchanged.
type ProfileUpdate struct {
	Username  *string
	FullName  *string
	Bio       *string
	AvatarURL *string
}

// AuthorSummary is the denormalized author attached to posts and comments.
type AuthorSummary struct {
	Username  *string `json:"username"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

type Article struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	ImageURL string    `json:"imageUrl"`
	Author   string    `json:"author"`
	Date     string    `json:"date"`
	Tags     []string  `json:"tags"`
}

func (a *Article) SearchTitle() string    { return a.Title }
func (a *Article) SearchBody() string     { return a.Content }
func (a *Article) SearchCategory() string { return a.Category }

type VideoTutorial struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	Instructor   string    `json:"instructor"`
	Date         string    `json:"date"`
	Views        int64     `json:"views"`
}

func (v *VideoTutorial) SearchTitle() string    { return v.Title }
func (v *VideoTutorial) SearchBody() string     { return v.Description }
func (v *VideoTutorial) SearchCategory() string { return v.Category }

type Post struct {
	ID        int64         `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Content   string        `json:"content"`
	ImageURL  *string       `json:"image_url"`
	Likes     []uuid.UUID   `json:"likes"`
	Shares    int64         `json:"shares"`
	Tags      []string      `json:"tags"`
	CreatedAt time.Time     `json:"created_at"`
	Comments  []*Comment    `json:"comments"`
	Profiles  AuthorSummary `json:"profiles"`
}

type Comment struct {
	ID        int64         `json:"id"`
	PostID    int64         `json:"post_id"`
	UserID    uuid.UUID     `json:"user_id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Profiles  AuthorSummary `json:"profiles"`
}

// ZoneRecord is a water_zones row as stored; Position is whatever encoding the writer used.
type ZoneRecord struct {
	ID               int64           `json:"id"`
	Location         string          `json:"location"`
	SubCity          string          `json:"sub_city"`
	State            string          `json:"state"`
	Position         json.RawMessage `json:"position"`
	Severity         string          `json:"severity"`
	WaterLevel       float64         `json:"water_level"`
	RainfallData     float64         `json:"rainfall_data"`
	GroundwaterLevel float64         `json:"groundwater_level"`
	LastUpdated      time.Time       `json:"last_updated"`
}

type WaterZone struct {
	ID               int64      `json:"id"`
	Location         string     `json:"location"`
	SubCity          string     `json:"sub_city"`
	State            string     `json:"state"`
	Position         [2]float64 `json:"position"`
	Severity         string     `json:"severity"`
	MarkerColor      string     `json:"marker_color"`
	WaterLevel       float64    `json:"water_level"`
	RainfallData     float64    `json:"rainfall_data"`
	GroundwaterLevel float64    `json:"groundwater_level"`
	LastUpdated      time.Time  `json:"last_updated"`
}
