package restful

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"sort"
)

// FormBody represents a multipart/form-data request body. Pass it as the
// Form field of a RequestConfig (or through Client.PostForm) to send a
// multipart request with the boundary header computed automatically.
type FormBody struct {
	// Fields are plain form fields; values are stringified.
	Fields map[string]any

	// Files are file upload fields.
	Files []FormFile
}

// FormFile represents a file part in a multipart request.
type FormFile struct {
	// Field is the form field name (e.g. "file", "avatar").
	Field string

	// Name is the file name sent to the server.
	Name string

	// Content is the file payload.
	Content []byte
}

// encode builds the multipart payload and returns it together with the
// Content-Type header carrying the boundary. Plain fields are written in
// sorted key order so the payload is deterministic.
func (f *FormBody) encode() ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(f.Fields))
	for key := range f.Fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		err := writer.WriteField(key, fmt.Sprint(f.Fields[key]))
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %q: %w", key, err)
		}
	}

	for _, file := range f.Files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %q: %w", file.Field, err)
		}

		_, err = part.Write(file.Content)
		if err != nil {
			return nil, "", fmt.Errorf("writing form file %q: %w", file.Field, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing form writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
