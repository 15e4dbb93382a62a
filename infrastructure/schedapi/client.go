package schedapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domainPost "github.com/postdeck/domains/post"
	domainRemote "github.com/postdeck/domains/remote"
	pkgError "github.com/postdeck/pkg/error"
)

const httpTimeout = 15 * time.Second

var httpClient = &http.Client{Timeout: httpTimeout}

// Gateway talks to the remote scheduling backend over HTTP. It is the only
// component in the repository that knows the backend's wire format.
type Gateway struct {
	baseURL string
}

func NewGateway(baseURL string) *Gateway {
	return &Gateway{baseURL: strings.TrimRight(baseURL, "/")}
}

// wirePost mirrors the backend's post shape: numeric id, ISO-8601 UTC
// scheduled_time, platforms either as a list or a comma-joined string.
type wirePost struct {
	ID            json.Number     `json:"id"`
	TextContent   string          `json:"text_content"`
	ImagePath     string          `json:"image_path"`
	Platforms     json.RawMessage `json:"platforms"`
	ScheduledTime string          `json:"scheduled_time"`
	Status        string          `json:"status"`
}

func (w wirePost) toDomain() domainPost.Post {
	p := domainPost.Post{
		ID:          w.ID.String(),
		TextContent: w.TextContent,
		ImagePath:   w.ImagePath,
		Status:      domainPost.Status(w.Status),
	}

	for _, name := range decodePlatforms(w.Platforms) {
		p.Platforms = append(p.Platforms, domainPost.Platform(name))
	}

	// A bad timestamp leaves ScheduledTime zero so the store counts the entry
	// as a partial reconciliation failure instead of aborting the snapshot.
	if t, err := time.Parse(time.RFC3339, w.ScheduledTime); err == nil {
		p.ScheduledTime = t.UTC()
	}

	return p
}

func decodePlatforms(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		var out []string
		for _, part := range strings.Split(joined, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	return nil
}

// ListPosts pulls the full snapshot used by the sync loop.
func (g *Gateway) ListPosts(ctx context.Context) ([]domainPost.Post, error) {
	var wire []wirePost
	if err := g.getJSON(ctx, g.baseURL+"/posts/", &wire); err != nil {
		return nil, err
	}

	posts := make([]domainPost.Post, 0, len(wire))
	for _, w := range wire {
		posts = append(posts, w.toDomain())
	}
	return posts, nil
}

// CreatePost submits a draft as multipart form data, attaching the stored
// image file, and returns the server-assigned post.
func (g *Gateway) CreatePost(ctx context.Context, draft domainPost.Draft) (domainPost.Post, error) {
	file, err := os.Open(draft.ImagePath)
	if err != nil {
		return domainPost.Post{}, pkgError.ValidationError(fmt.Sprintf("image_file: %v", err))
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	names := make([]string, len(draft.Platforms))
	for i, p := range draft.Platforms {
		names[i] = string(p)
	}
	_ = writer.WriteField("text_content", draft.TextContent)
	_ = writer.WriteField("platforms", strings.Join(names, ","))
	_ = writer.WriteField("scheduled_time", draft.ScheduledTime.UTC().Format(time.RFC3339))

	part, err := writer.CreateFormFile("image_file", filepath.Base(draft.ImagePath))
	if err != nil {
		return domainPost.Post{}, pkgError.InternalServerError(err.Error())
	}
	if _, err := io.Copy(part, file); err != nil {
		return domainPost.Post{}, pkgError.InternalServerError(err.Error())
	}
	if err := writer.Close(); err != nil {
		return domainPost.Post{}, pkgError.InternalServerError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/posts/", &body)
	if err != nil {
		return domainPost.Post{}, pkgError.NetworkError(err.Error())
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return domainPost.Post{}, pkgError.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logrus.Errorf("[SCHEDAPI] Create post rejected: %d %s", resp.StatusCode, string(payload))
		return domainPost.Post{}, pkgError.NetworkError(fmt.Sprintf("backend returned %d", resp.StatusCode))
	}

	var wire wirePost
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return domainPost.Post{}, pkgError.NetworkError(fmt.Sprintf("malformed create response: %v", err))
	}
	return wire.toDomain(), nil
}

// FetchStats returns the backend's aggregate post counters.
func (g *Gateway) FetchStats(ctx context.Context) (domainRemote.Stats, error) {
	var stats domainRemote.Stats
	if err := g.getJSON(ctx, g.baseURL+"/analytics/stats", &stats); err != nil {
		return domainRemote.Stats{}, err
	}
	return stats, nil
}

func (g *Gateway) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pkgError.NetworkError(err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return pkgError.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgError.NetworkError(fmt.Sprintf("backend returned %d for %s", resp.StatusCode, url))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgError.NetworkError(fmt.Sprintf("malformed response from %s: %v", url, err))
	}
	return nil
}
