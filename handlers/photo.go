package handlers

import (
	"bytes"
	"io"
	"server/storage"
	"server/utils"
)

func saveThumb(bucketStorage storage.StorageAPI, reader io.Reader, thumbPath string) error {
	buf := bytes.Buffer{}
	if _, err := utils.CreateThumb(thumbSize, reader, &buf); err != nil {
		return err
	}
	if _, err := bucketStorage.Save(thumbPath, &buf); err != nil {
		return err
	}
	return bucketStorage.UpdateFile(thumbPath, "image/jpeg")
}
