package models

import (
	"server/faces"
	"server/storage"
	"server/utils"
)

// FaceProfile is the enrolled descriptor of a guard, one per guard.
// Re-enrollment replaces it. The descriptor is stored as a little-endian
// float32 blob; the enrollment photo lives in a storage bucket.
type FaceProfile struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	UpdatedAt  int64
	GuardID    uint64 `gorm:"index:uniq_guard_profile,unique"`
	Guard      Guard  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Descriptor []byte `gorm:"type:blob"`
	BucketID   uint64
	Bucket     storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PhotoPath  string         `gorm:"type:varchar(300)"`
	ThumbPath  string         `gorm:"type:varchar(300)"`
}

func (p *FaceProfile) SetDescriptor(d faces.Descriptor) {
	p.Descriptor = utils.Float32ArrayToByteArray(d)
}

func (p *FaceProfile) GetDescriptor() faces.Descriptor {
	return faces.Descriptor(utils.ByteArrayToFloat32Array(p.Descriptor))
}
