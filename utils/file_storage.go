package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type FileStorage interface {
	UploadFile(file multipart.File, fileName string) (string, error)
	DeleteFile(filePath string) error
	FileExists(filePath string) (bool, error)
}

// LocalFileStorage keeps uploaded photos on the local disk under a single
// uploads root served by the static route.
type LocalFileStorage struct {
	uploadPath string
}

func NewLocalFileStorage(uploadPath string) *LocalFileStorage {
	return &LocalFileStorage{uploadPath: uploadPath}
}

func (s *LocalFileStorage) UploadFile(file multipart.File, fileName string) (string, error) {
	filePath := filepath.Join(s.uploadPath, fileName)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Clean up on error
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	return filePath, nil
}

func (s *LocalFileStorage) DeleteFile(filePath string) error {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalFileStorage) FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
