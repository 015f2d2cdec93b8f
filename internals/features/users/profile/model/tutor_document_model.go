package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document kinds accepted by the upload endpoint.
const (
	DocumentAvatar   = "avatar"
	DocumentCNIRecto = "cni_recto"
	DocumentCNIVerso = "cni_verso"
	DocumentDiplome  = "diplome"
)

var DocumentKinds = []string{DocumentAvatar, DocumentCNIRecto, DocumentCNIVerso, DocumentDiplome}

// TutorDocumentModel records an uploaded identity/diploma document or avatar.
// One row per (user, kind); a re-upload replaces the previous row.
type TutorDocumentModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_tutor_documents_user_kind" json:"user_id"`
	Kind       string         `gorm:"size:20;not null;uniqueIndex:idx_tutor_documents_user_kind" json:"kind"`
	URL        string         `gorm:"size:500;not null" json:"url"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	UploadedAt time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (TutorDocumentModel) TableName() string {
	return "tutor_documents"
}

func (d *TutorDocumentModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func IsValidDocumentKind(kind string) bool {
	for _, k := range DocumentKinds {
		if k == kind {
			return true
		}
	}
	return false
}
