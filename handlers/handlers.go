package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"server/config"
	"server/faces"
	"server/verify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
	DBError3Response = Response{"DB Error 3"}

	// The loaded face models. Owned by main, handed over via Init.
	recognizer *faces.Recognizer
)

// Init hands the handlers the face recognizer loaded at startup. A nil
// recognizer disables the face endpoints (they report the model as
// unavailable rather than "no match").
func Init(rec *faces.Recognizer) {
	recognizer = rec
}

// singleFramePolicy caps the configured retry policy at one attempt. The
// endpoints receive a single uploaded frame, so re-trying a no-face outcome
// would just re-read the same image.
func singleFramePolicy() verify.RetryPolicy {
	policy := verify.DefaultPolicy()
	policy.MaxAttempts = 1
	return policy
}

// saveTempFrame puts an uploaded camera frame in TMP_DIR so the recognizer
// can read it. Callers must remove it when done.
func saveTempFrame(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(config.TMP_DIR, "frame_"+name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("saving uploaded frame: %w", err)
	}
	return path, nil
}

func removeTempFrame(path string) {
	_ = os.Remove(path)
}
