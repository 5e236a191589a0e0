package storage

import (
	"os"
	"server/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"strings"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

const (
	StorageLocationFaces  = "/faces"  // enrollment photos
	StorageLocationShifts = "/shifts" // check-in and patrol selfies
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int
	UpdatedAt   int
	Name        string `gorm:"type:varchar(200)"`
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Region      string `gorm:"type:varchar(20)"`  // S3 region
	Endpoint    string `gorm:"type:varchar(300)"` // S3-compatible endpoint, empty for AWS
	AuthDetails string // Authentication details. In case of S3 bucket - "key:secret"
	// Server-side encryption algorithm for S3 objects, e.g. "AES256", empty to disable
	SSEEncryption string `gorm:"type:varchar(20)"`
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		// Pre-create locations on disk
		if err = os.MkdirAll(b.Path+StorageLocationFaces, 0777); err != nil {
			return err
		}
		if err = os.MkdirAll(b.Path+StorageLocationShifts, 0777); err != nil {
			return err
		}
	}
	return nil
}

// GetRemotePath maps an object path to its S3 key (bucket Path is the prefix)
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return strings.TrimLeft(path, "/")
	}
	return strings.TrimRight(b.Path, "/") + "/" + strings.TrimLeft(path, "/")
}

func (b *Bucket) CreateSVC() *s3.S3 {
	auth := strings.SplitN(b.AuthDetails, ":", 2)
	if len(auth) != 2 {
		return nil
	}
	awsConfig := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(auth[0], auth[1], ""),
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&awsConfig)))
}
