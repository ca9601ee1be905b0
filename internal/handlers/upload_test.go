package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

func uploadFileHeader(t *testing.T, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="dish.jpg"`)
	partHeader.Set("Content-Type", contentType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("a"), size)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/admin/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}

	_, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return header
}

func TestValidateUploadFileAcceptsImages(t *testing.T) {
	for _, contentType := range []string{"image/jpeg", "image/png", "image/webp", "image/gif"} {
		header := uploadFileHeader(t, contentType, 128)
		if err := validateUploadFile(header); err != nil {
			t.Fatalf("expected %s to be accepted, got %v", contentType, err)
		}
	}
}

func TestValidateUploadFileRejectsNonImages(t *testing.T) {
	for _, contentType := range []string{"application/pdf", "text/html", "video/mp4", ""} {
		header := uploadFileHeader(t, contentType, 128)
		if err := validateUploadFile(header); err == nil {
			t.Fatalf("expected %q to be rejected", contentType)
		}
	}
}

func TestValidateUploadFileRejectsOversized(t *testing.T) {
	header := uploadFileHeader(t, "image/jpeg", maxImageSize+1)
	if err := validateUploadFile(header); err == nil {
		t.Fatal("expected oversized upload to be rejected")
	}
}
