package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS        = "" // e.g. "example.com,example2.com"
	PUSH_SERVER        = "https://push.circled.me"
	MYSQL_DSN          = ""             // MySQL will be used if this is set
	SQLITE_FILE        = "guardpost.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Used for temporary S3 downloads, etc
	DEFAULT_BUCKET_DIR = ""     // Used for creating initial photo bucket
	DEBUG_MODE         = true
	// Face recognition
	FACE_MODELS_DIR      = "models" // dlib model files (shape predictor + ResNet descriptor net)
	FACE_DETECT_CNN      = false    // Use Convolutional Neural Network for face detection (as opposed to HOG). Much slower, supposedly more accurate at different angles
	FACE_MATCH_THRESHOLD = 0.6      // Maximum Euclidean distance between descriptors to consider them the same person. Calibrated for the dlib ResNet model
	// Verification retries (no-face and no-match frames are retried up to this many times per attempt)
	VERIFY_MAX_ATTEMPTS   = 3
	VERIFY_RETRY_DELAY_MS = 700
	// A patrol point not visited for this long (minutes) triggers a supervisor alert
	PATROL_OVERDUE_MINUTES = 60
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("PUSH_SERVER", &PUSH_SERVER)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("FACE_MODELS_DIR", &FACE_MODELS_DIR)
	readEnvBool("FACE_DETECT_CNN", &FACE_DETECT_CNN)
	readEnvFloat("FACE_MATCH_THRESHOLD", &FACE_MATCH_THRESHOLD)
	readEnvInt("VERIFY_MAX_ATTEMPTS", &VERIFY_MAX_ATTEMPTS)
	readEnvInt("VERIFY_RETRY_DELAY_MS", &VERIFY_RETRY_DELAY_MS)
	readEnvInt("PATROL_OVERDUE_MINUTES", &PATROL_OVERDUE_MINUTES)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
