package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// Payload is a request body. Callers pick the variant; it is never inferred
// from the presence of files.
type Payload interface {
	Encode() (io.Reader, string, error)
}

// JSONBody sends Fields as a JSON object.
type JSONBody struct {
	Fields map[string]any
}

func (b JSONBody) Encode() (io.Reader, string, error) {
	buf, err := json.Marshal(b.Fields)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return bytes.NewReader(buf), "application/json", nil
}

type File struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody sends Fields as form values plus zero or more Files. Fields
// keep their insertion order.
type MultipartBody struct {
	Fields []Field
	Files  []File
}

type Field struct {
	Name  string
	Value string
}

func (b MultipartBody) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range b.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	for _, f := range b.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("write file %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
