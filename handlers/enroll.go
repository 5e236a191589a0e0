package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"server/config"
	"server/db"
	"server/models"
	"server/storage"
	"server/verify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const thumbSize = 320

// FaceEnroll captures the guard's descriptor from an uploaded selfie and
// stores it together with the photo. Re-enrolling replaces the previous
// profile; old photos are removed from the bucket.
func FaceEnroll(c *gin.Context, me *models.Guard) {
	file, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"frame file missing"})
		return
	}
	if recognizer == nil {
		c.JSON(http.StatusServiceUnavailable, Response{"face recognition unavailable"})
		return
	}
	framePath, err := saveTempFrame(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	defer removeTempFrame(framePath)

	result := verify.Run(recognizer, verify.SingleFrame(framePath),
		verify.Enroll(), config.FACE_MATCH_THRESHOLD,
		singleFramePolicy())
	switch result.State {
	case verify.StateSuccess:
	case verify.StateNoFace:
		c.JSON(http.StatusUnprocessableEntity, Response{"no face detected, try better lighting"})
		return
	default:
		c.JSON(http.StatusInternalServerError, Response{result.Err.Error()})
		return
	}

	bucketStorage := storage.GetDefaultStorage()
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{"no storage bucket configured"})
		return
	}
	photoPath := storage.StorageLocationFaces + "/" + uuid.NewString() + filepath.Ext(file.Filename)
	thumbPath := photoPath + ".thumb.jpg"
	if err = savePhotoWithThumb(bucketStorage, framePath, photoPath, thumbPath); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}

	profile := models.FaceProfile{}
	db.Instance.Preload("Bucket").First(&profile, "guard_id = ?", me.ID)
	if profile.ID > 0 && profile.PhotoPath != "" {
		// Replace the old enrollment photo
		if old := storage.StorageFrom(&profile.Bucket); old != nil {
			_ = old.Delete(profile.PhotoPath)
			_ = old.Delete(profile.ThumbPath)
			old.DeleteRemoteFile(profile.PhotoPath)
			old.DeleteRemoteFile(profile.ThumbPath)
		}
	}
	profile.GuardID = me.ID
	profile.SetDescriptor(result.Descriptor)
	profile.BucketID = bucketStorage.GetBucket().ID
	profile.PhotoPath = photoPath
	profile.ThumbPath = thumbPath
	if profile.ID == 0 {
		err = db.Instance.Create(&profile).Error
	} else {
		err = db.Instance.Save(&profile).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "descriptor": result.Descriptor.JSON()})
}

// FaceVerify checks a selfie against the guard's own enrolled descriptor.
// Used as a liveness gate by the mobile app before sensitive actions.
func FaceVerify(c *gin.Context, me *models.Guard) {
	file, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"frame file missing"})
		return
	}
	if recognizer == nil {
		c.JSON(http.StatusServiceUnavailable, Response{"face recognition unavailable"})
		return
	}
	profile := models.FaceProfile{}
	if db.Instance.First(&profile, "guard_id = ?", me.ID).Error != nil {
		c.JSON(http.StatusPreconditionFailed, Response{"not enrolled"})
		return
	}
	framePath, err := saveTempFrame(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	defer removeTempFrame(framePath)

	result := verify.Run(recognizer, verify.SingleFrame(framePath),
		verify.AgainstOne(profile.GetDescriptor()), config.FACE_MATCH_THRESHOLD,
		singleFramePolicy())
	switch result.State {
	case verify.StateSuccess:
		c.JSON(http.StatusOK, gin.H{"error": "", "distance": result.Distance})
	case verify.StateNoFace:
		c.JSON(http.StatusUnprocessableEntity, Response{"no face detected"})
	case verify.StateNoMatch:
		c.JSON(http.StatusUnauthorized, Response{"face does not match enrollment"})
	default:
		c.JSON(http.StatusInternalServerError, Response{result.Err.Error()})
	}
}

// FacePhoto serves the enrollment photo (or its thumbnail) to supervisors.
func FacePhoto(c *gin.Context, me *models.Guard) {
	type photoRequest struct {
		GuardID uint64 `form:"guard_id" binding:"required"`
		Thumb   bool   `form:"thumb"`
	}
	r := photoRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	profile := models.FaceProfile{}
	if db.Instance.Preload("Bucket").First(&profile, "guard_id = ?", r.GuardID).Error != nil {
		c.JSON(http.StatusNotFound, Response{"not enrolled"})
		return
	}
	bucketStorage := storage.StorageFrom(&profile.Bucket)
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{"bucket unavailable"})
		return
	}
	path := profile.PhotoPath
	if r.Thumb {
		path = profile.ThumbPath
	}
	if err := bucketStorage.EnsureLocalFile(path); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	defer bucketStorage.ReleaseLocalFile(path)
	bucketStorage.Serve(path, c.Request, c.Writer)
}

// savePhotoWithThumb stores the original frame and a small preview.
func savePhotoWithThumb(bucketStorage storage.StorageAPI, framePath, photoPath, thumbPath string) error {
	frame, err := os.Open(framePath)
	if err != nil {
		return err
	}
	defer frame.Close()
	if _, err = bucketStorage.Save(photoPath, frame); err != nil {
		return err
	}
	if err = bucketStorage.UpdateFile(photoPath, "image/jpeg"); err != nil {
		return err
	}
	if _, err = frame.Seek(0, 0); err != nil {
		return err
	}
	return saveThumb(bucketStorage, frame, thumbPath)
}
