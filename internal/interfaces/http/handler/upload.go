package handler

import (
	"fmt"
	"mime/multipart"

	catalogapp "github.com/shopfront/backend/internal/application/catalog"
)

// openUpload opens one multipart file. The caller closes the returned file.
func openUpload(fh *multipart.FileHeader) (catalogapp.Upload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return catalogapp.Upload{}, nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	return catalogapp.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

// uploadSet keeps track of opened form files so they can be closed together
type uploadSet struct {
	files []multipart.File
}

func (s *uploadSet) open(fh *multipart.FileHeader) (catalogapp.Upload, error) {
	u, f, err := openUpload(fh)
	if err != nil {
		return u, err
	}
	s.files = append(s.files, f)
	return u, nil
}

func (s *uploadSet) Close() {
	for _, f := range s.files {
		_ = f.Close()
	}
}
