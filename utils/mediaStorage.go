package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"educa/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	storage "github.com/supabase-community/storage-go"
)

// MediaStorage stores uploaded item files and hands back their public URL
type MediaStorage interface {
	Save(file *multipart.FileHeader, folder, contentType string) (string, error)
	Remove(fileURL string) error
}

// Media is the storage backend selected by STORAGE_BACKEND
var Media MediaStorage

// InitMediaStorage selects the local or supabase backend from config
func InitMediaStorage() error {
	cfg := config.AppConfig
	switch cfg.StorageBackend {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return errors.New("supabase storage needs SUPABASE_URL and SUPABASE_KEY")
		}
		Media = NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	case "local", "":
		Media = NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
	default:
		return errors.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	return nil
}

// objectName builds <folder>/<yyyy>/<mm>/<uuid><ext> for an upload
func objectName(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, time.Now().Format("2006/01"), uuid.NewString()+ext)
}

// LocalStorage keeps files under Root and serves them below BaseURL
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

func (s *LocalStorage) Save(file *multipart.FileHeader, folder, _ string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	name := objectName(folder, file.Filename)
	dest := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.Wrap(err, "create media dir")
	}

	dst, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrap(err, "create media file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "write media file")
	}
	return s.BaseURL + name, nil
}

// Remove deletes a file previously returned by Save. Foreign URLs are ignored.
func (s *LocalStorage) Remove(fileURL string) error {
	if !strings.HasPrefix(fileURL, s.BaseURL) {
		return nil
	}
	name := path.Clean("/" + strings.TrimPrefix(fileURL, s.BaseURL))
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(name)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove media file")
	}
	return nil
}

// SupabaseStorage uploads into a public Supabase Storage bucket
type SupabaseStorage struct {
	client  *storage.Client
	baseURL string
	bucket  string
}

func NewSupabaseStorage(supabaseURL, key, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		client:  storage.NewClient(supabaseURL+"/storage/v1", key, nil),
		baseURL: supabaseURL,
		bucket:  bucket,
	}
}

func (s *SupabaseStorage) publicPrefix() string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
}

func (s *SupabaseStorage) Save(file *multipart.FileHeader, folder, contentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return "", errors.Wrap(err, "read upload")
	}

	if contentType == "" {
		contentType = file.Header.Get("Content-Type")
	}
	name := objectName(folder, file.Filename)
	if _, err := s.client.UploadFile(s.bucket, name, &buf, storage.FileOptions{ContentType: &contentType}); err != nil {
		return "", errors.Wrap(err, "upload to supabase")
	}
	return s.publicPrefix() + name, nil
}

func (s *SupabaseStorage) Remove(fileURL string) error {
	prefix := s.publicPrefix()
	if !strings.HasPrefix(fileURL, prefix) {
		return nil
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{strings.TrimPrefix(fileURL, prefix)}); err != nil {
		return errors.Wrap(err, "remove from supabase")
	}
	return nil
}
