package libs

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sneaker-shop/config"
)

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Header:   h,
		Size:     size,
	}
}

func TestValidateImageFile(t *testing.T) {
	const maxSize = 5 * 1024 * 1024

	cases := []struct {
		name   string
		header *multipart.FileHeader
		ok     bool
	}{
		{"png", fileHeader("shoe.png", "image/png", 1024), true},
		{"jpeg", fileHeader("shoe.jpeg", "image/jpeg", 1024), true},
		{"uppercase extension", fileHeader("SHOE.JPG", "image/jpeg", 1024), true},
		{"webp", fileHeader("shoe.webp", "image/webp", 1024), true},
		{"pdf mime with image extension", fileHeader("doc.png", "application/pdf", 1024), false},
		{"image mime with bad extension", fileHeader("shoe.svg", "image/svg+xml", 1024), false},
		{"no extension", fileHeader("shoe", "image/png", 1024), false},
		{"at the size limit", fileHeader("shoe.png", "image/png", maxSize), true},
		{"over the size limit", fileHeader("shoe.png", "image/png", maxSize+1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImageFile(tc.header, maxSize)
			if tc.ok && err != nil {
				t.Fatalf("expected %q to pass, got %v", tc.header.Filename, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected %q to be rejected", tc.header.Filename)
			}
		})
	}
}

func multipartRequest(t *testing.T, files map[string][]byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func setupUploadConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		UploadDir:      dir,
		MaxUploadSize:  5 * 1024 * 1024,
		MaxUploadFiles: 5,
	}
	t.Cleanup(func() { config.AppConfig = prev })
	return dir
}

func TestSaveProductImages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := setupUploadConfig(t)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = multipartRequest(t, map[string][]byte{
		"one.png": []byte("first"),
		"two.png": []byte("second"),
	})

	form, err := c.MultipartForm()
	if err != nil {
		t.Fatalf("multipart form: %v", err)
	}

	paths, err := SaveProductImages(c, form.File["images"])
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 stored paths, got %d", len(paths))
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, "/uploads/") {
			t.Fatalf("expected a public /uploads path, got %q", p)
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.Base(p))); err != nil {
			t.Fatalf("stored file missing for %q: %v", p, err)
		}
	}
}

func TestSaveProductImagesTooManyFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupUploadConfig(t)

	files := map[string][]byte{}
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"} {
		files[name] = []byte("x")
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = multipartRequest(t, files)

	form, err := c.MultipartForm()
	if err != nil {
		t.Fatalf("multipart form: %v", err)
	}

	if _, err := SaveProductImages(c, form.File["images"]); err == nil {
		t.Fatal("expected the sixth file to fail the batch")
	}
}

func TestSaveProductImagesInvalidFileCleansBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := setupUploadConfig(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	good := textproto.MIMEHeader{}
	good.Set("Content-Disposition", `form-data; name="images"; filename="good.png"`)
	good.Set("Content-Type", "image/png")
	part, _ := writer.CreatePart(good)
	part.Write([]byte("good"))

	bad := textproto.MIMEHeader{}
	bad.Set("Content-Disposition", `form-data; name="images"; filename="bad.pdf"`)
	bad.Set("Content-Type", "application/pdf")
	part, _ = writer.CreatePart(bad)
	part.Write([]byte("bad"))

	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	form, err := c.MultipartForm()
	if err != nil {
		t.Fatalf("multipart form: %v", err)
	}

	if _, err := SaveProductImages(c, form.File["images"]); err == nil {
		t.Fatal("expected the batch to fail on the pdf")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected the already-saved files to be removed, found %d", len(entries))
	}
}

func TestRemoveUploadedFile(t *testing.T) {
	dir := setupUploadConfig(t)

	path := filepath.Join(dir, "stale.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	RemoveUploadedFile("/uploads/stale.png")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected the file to be removed")
	}

	// Paths outside the public prefix are ignored.
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	RemoveUploadedFile("stale.png")
	RemoveUploadedFile("/etc/passwd")
	if _, err := os.Stat(path); err != nil {
		t.Fatal("a path without the /uploads prefix must not be touched")
	}
}
