package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/lib/util"
)

type Field struct {
	Name  string
	Value string
}

// File attached to a multipart request.
type FilePart struct {
	Field string
	// Local path of the file to send.
	Path string
	// Name sent to the server. Defaults to the base name of Path.
	FileName string
	// Defaults to application/octet-stream.
	ContentType string
}

type MultipartBody struct {
	Fields []Field
	Files  []FilePart
}

// Upload sends a multipart/form-data request to the endpoint registered under key.
func (c *Client) Upload(ctx context.Context, key endpoints.Key, method string, body MultipartBody) (Response, error) {
	t, err := c.resolve(ctx, key)
	if err != nil {
		return Response{}, err
	}

	buf, contentType, err := body.encode()
	if err != nil {
		return Response{}, &Error{Kind: ErrInvalidBody, Endpoint: key, Err: err}
	}

	size := int64(buf.Len())
	console.Verbose("Multipart body size: %s", util.FormatBytesSize(size))

	if !c.uploadProgress {
		return c.send(ctx, t, method, payload{body: bytes.NewReader(buf.Bytes()), contentType: contentType}, nil)
	}

	p, bar := util.NewBytesProgressBar(size, "Uploading")
	reader := bar.ProxyReader(buf)
	defer reader.Close()

	res, err := c.send(ctx, t, method, payload{body: reader, contentType: contentType, length: size}, nil)
	if !bar.Completed() {
		bar.Abort(true)
	}
	p.Wait()

	return res, err
}

func (b MultipartBody) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range b.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	for _, f := range b.Files {
		if err := writeFilePart(w, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, f FilePart) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	name := f.FileName
	if name == "" {
		name = filepath.Base(f.Path)
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.Field, name))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, file)
	return err
}
