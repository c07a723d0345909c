package streamchat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
)

// SendFile uploads a file to an endpoint like "channels/{type}/{id}/file".
// source is either a local filesystem path or a remote URL; remote sources
// are fetched with a generic user agent before the multipart submit. The
// auth and credential headers match the JSON request path.
func (c *Client) SendFile(ctx context.Context, uri, source, name string, user map[string]any, contentType string) (*Response, error) {
	content, err := c.readFileSource(ctx, source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("user", encodeParam(user)); err != nil {
		return nil, err
	}
	part, err := fileFormPart(writer, name, contentType)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("api_key", c.apiKey)
	endpoint := strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(uri, "/") + "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	c.applyAuthHeaders(req.Header)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return classifyResponse(body, httpResp.Header, httpResp.StatusCode)
}

func fileFormPart(writer *multipart.Writer, name, contentType string) (io.Writer, error) {
	if contentType == "" {
		return writer.CreateFormFile("file", name)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)
	return writer.CreatePart(header)
}

// readFileSource loads upload bytes from a local path or a remote URL.
func (c *Client) readFileSource(ctx context.Context, source string) ([]byte, error) {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Scheme == "" || parsed.Scheme == "file" {
		path := source
		if err == nil && parsed.Scheme == "file" {
			path = parsed.Path
		}
		return os.ReadFile(path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch file source: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
