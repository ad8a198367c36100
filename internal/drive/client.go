package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// File is the subset of Drive file metadata the dashboard shows.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modifiedTime"`
	WebViewLink  string `json:"webViewLink,omitempty"`
}

// Client manages notice PDFs in a fixed Drive folder. Every call receives the
// caller's access token; the client holds no credential state of its own.
type Client struct {
	folderID string
	timeout  time.Duration
}

// NewClient creates a Client scoped to the given folder.
func NewClient(folderID string) *Client {
	return &Client{folderID: folderID, timeout: 30 * time.Second}
}

func (c *Client) service(ctx context.Context, accessToken string) (*drivev3.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := drivev3.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return svc, nil
}

// ListPDFs returns the PDF files in the notice folder, newest first.
func (c *Client) ListPDFs(ctx context.Context, accessToken string) ([]File, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	query := "mimeType='application/pdf' and trashed=false"
	if c.folderID != "" {
		query = fmt.Sprintf("'%s' in parents and %s", c.folderID, query)
	}

	call := svc.Files.List().
		Q(query).
		OrderBy("modifiedTime desc").
		Fields("files(id, name, mimeType, size, modifiedTime, webViewLink)").
		PageSize(100).
		Context(ctx)

	result, err := call.Do()
	if err != nil {
		return nil, wrapDriveError("list files", err)
	}

	out := make([]File, 0, len(result.Files))
	for _, f := range result.Files {
		out = append(out, File{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			Size:         f.Size,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}
	return out, nil
}

// UploadPDF stores a PDF in the notice folder and returns its metadata.
func (c *Client) UploadPDF(ctx context.Context, accessToken, name string, content io.Reader) (File, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return File{}, err
	}

	meta := &drivev3.File{
		Name:     name,
		MimeType: "application/pdf",
	}
	if c.folderID != "" {
		meta.Parents = []string{c.folderID}
	}

	created, err := svc.Files.Create(meta).
		Media(content, googleapi.ContentType("application/pdf")).
		Fields("id, name, mimeType, size, modifiedTime, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return File{}, wrapDriveError("upload file", err)
	}

	return File{
		ID:           created.Id,
		Name:         created.Name,
		MimeType:     created.MimeType,
		Size:         created.Size,
		ModifiedTime: created.ModifiedTime,
		WebViewLink:  created.WebViewLink,
	}, nil
}

// Delete removes a file from Drive.
func (c *Client) Delete(ctx context.Context, accessToken, fileID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return err
	}

	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return wrapDriveError("delete file", err)
	}
	return nil
}

// ErrFileNotFound is returned when the requested file does not exist in Drive.
var ErrFileNotFound = errors.New("drive file not found")

func wrapDriveError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 404 {
		return fmt.Errorf("%s: %w", op, ErrFileNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
