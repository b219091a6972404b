package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace, Folder ve File aynı "node" alanlarını taşır: üç seviyeli
// hiyerarşi (workspace -> folder -> file) tek tip render/edit mantığıyla
// işlenir.

type Workspace struct {
	ID             string `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceOwner string `json:"workspace_owner" gorm:"type:uuid;not null;index"`
	Title          string `json:"title" gorm:"not null"`
	IconID         string `json:"icon_id" gorm:"not null"`
	Data           string `json:"data" gorm:"type:text"`
	InTrash        bool   `json:"in_trash" gorm:"default:false"`
	Logo           string `json:"logo"`
	BannerURL      string `json:"banner_url"`

	TrashedAt *time.Time `json:"trashed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// İlişkiler
	Owner         User           `json:"-" gorm:"foreignKey:WorkspaceOwner"`
	Folders       []Folder       `json:"-" gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE"`
	Files         []File         `json:"-" gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE"`
	Collaborators []Collaborator `json:"-" gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

type Folder struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID string `json:"workspace_id" gorm:"type:uuid;not null;index"`
	Title       string `json:"title" gorm:"not null"`
	IconID      string `json:"icon_id" gorm:"not null"`
	Data        string `json:"data" gorm:"type:text"`
	InTrash     bool   `json:"in_trash" gorm:"default:false"`
	Logo        string `json:"logo"`
	BannerURL   string `json:"banner_url"`

	TrashedAt *time.Time `json:"trashed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// İlişkiler
	Workspace Workspace `json:"-" gorm:"foreignKey:WorkspaceID"`
	Files     []File    `json:"-" gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

type File struct {
	ID          string  `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID string  `json:"workspace_id" gorm:"type:uuid;not null;index"`
	FolderID    *string `json:"folder_id" gorm:"type:uuid;index"`
	Title       string  `json:"title" gorm:"not null"`
	IconID      string  `json:"icon_id" gorm:"not null"`
	Data        string  `json:"data" gorm:"type:text"`
	InTrash     bool    `json:"in_trash" gorm:"default:false"`
	Logo        string  `json:"logo"`
	BannerURL   string  `json:"banner_url"`

	TrashedAt *time.Time `json:"trashed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// İlişkiler
	Workspace Workspace `json:"-" gorm:"foreignKey:WorkspaceID"`
	Folder    *Folder   `json:"-" gorm:"foreignKey:FolderID"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

type Collaborator struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID string `json:"workspace_id" gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user"`
	UserID      string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user"`
	AvatarURL   string `json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`

	// İlişkiler
	Workspace Workspace `json:"-" gorm:"foreignKey:WorkspaceID"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (c *Collaborator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
