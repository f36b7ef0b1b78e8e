package stor

import (
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"gorm.io/gorm"
)

type GormProofUploadStor struct {
	db *gorm.DB
}

func NewGormProofUploadStor(db *gorm.DB) *GormProofUploadStor {
	return &GormProofUploadStor{db: db}
}

// CreateProofUpload keeps the id the upload server assigned.
func (s *GormProofUploadStor) CreateProofUpload(upload *clubmodel.ProofUpload) (*clubmodel.ProofUpload, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(upload).Error
	})

	if err != nil {
		return nil, translate(err, "create proof upload %s", upload.ID)
	}

	return upload, nil
}

func (s *GormProofUploadStor) GetProofUploadByID(uploadID string) (*clubmodel.ProofUpload, error) {
	var upload clubmodel.ProofUpload
	if err := s.db.Where("id = ?", uploadID).First(&upload).Error; err != nil {
		return nil, translate(err, "proof upload %s", uploadID)
	}

	return &upload, nil
}
