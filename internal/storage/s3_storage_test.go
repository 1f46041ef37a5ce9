package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPut struct {
	method      string
	path        string
	contentType string
	body        []byte
}

func newTestStorage(t *testing.T, status int) (*S3Storage, *capturedPut) {
	captured := &capturedPut{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.contentType = r.Header.Get("Content-Type")
		captured.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	client := s3.NewFromConfig(aws.Config{
		Region:      "ap-southeast-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.UsePathStyle = true
		o.RetryMaxAttempts = 1
	})
	return newS3Storage(client, "hubline-audit"), captured
}

func TestS3Storage_Upload(t *testing.T) {
	store, captured := newTestStorage(t, http.StatusOK)

	err := store.Upload(context.Background(), "audit-archive/2026/03/01-abc.xlsx", "application/octet-stream", []byte("workbook"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, captured.method)
	assert.Equal(t, "/hubline-audit/audit-archive/2026/03/01-abc.xlsx", captured.path)
	assert.Equal(t, "application/octet-stream", captured.contentType)
	assert.Contains(t, string(captured.body), "workbook")
}

func TestS3Storage_UploadError(t *testing.T) {
	store, _ := newTestStorage(t, http.StatusForbidden)

	err := store.Upload(context.Background(), "audit-archive/x.xlsx", "application/octet-stream", []byte("x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "audit-archive/x.xlsx")
}

func TestNewS3Storage_StaticCredentials(t *testing.T) {
	store := NewS3Storage(context.Background(), "ap-southeast-1", "hubline-audit", "key", "secret")
	assert.Equal(t, "hubline-audit", store.bucket)
	assert.NotNil(t, store.client)
}
