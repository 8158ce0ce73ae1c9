package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// StoredFile is one entry of a folder listing.
type StoredFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

// ObjectStore is the cloud file store the platform keeps contributor content
// in. All operations work on opaque identifiers returned by the store.
type ObjectStore interface {
	EnsureFolder(ctx context.Context, name, parentID string) (string, error)
	Upload(ctx context.Context, folderID, name, mimeType string, r io.Reader) (string, error)
	List(ctx context.Context, folderID string) ([]StoredFile, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, fileID string) error
}

type DriveService struct {
	files *drive.FilesService
}

func NewDriveService(ctx context.Context, creds *FileCredentialProvider) (*DriveService, error) {
	client, err := creds.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("drive credentials: %w", err)
	}
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveService{files: srv.Files}, nil
}

// EnsureFolder returns the ID of the named folder under parentID, creating it
// only when the lookup comes back empty.
func (s *DriveService) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false", folderMimeType, escapeQuery(name))
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := s.files.List().Q(query).Spaces("drive").Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list folder %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &drive.File{Name: name, MimeType: folderMimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	folder, err := s.files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	return folder.Id, nil
}

func (s *DriveService) Upload(ctx context.Context, folderID, name, mimeType string, r io.Reader) (string, error) {
	meta := &drive.File{Name: name, Parents: []string{folderID}}
	call := s.files.Create(meta).Fields("id").Context(ctx)
	if mimeType != "" {
		call = call.Media(r, googleapi.ContentType(mimeType))
	} else {
		call = call.Media(r)
	}
	file, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", name, err)
	}
	return file.Id, nil
}

func (s *DriveService) List(ctx context.Context, folderID string) ([]StoredFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)
	list, err := s.files.List().Q(query).Fields("files(id, name, mimeType)").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list folder contents: %w", err)
	}

	out := make([]StoredFile, 0, len(list.Files))
	for _, f := range list.Files {
		out = append(out, StoredFile{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
	}
	return out, nil
}

func (s *DriveService) Download(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	meta, err := s.files.Get(fileID).Fields("mimeType").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("stat file %s: %w", fileID, err)
	}
	resp, err := s.files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("download file %s: %w", fileID, err)
	}
	return resp.Body, meta.MimeType, nil
}

func (s *DriveService) Delete(ctx context.Context, fileID string) error {
	if err := s.files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return nil
}

// escapeQuery guards single quotes in names interpolated into Drive queries.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
