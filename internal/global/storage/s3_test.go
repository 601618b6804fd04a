package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"recruiting-portal/config"

	"github.com/stretchr/testify/require"
)

func newTestBucket(t *testing.T) *Bucket {
	b, err := New(context.Background(), config.S3{
		Endpoint:        "http://127.0.0.1:9000",
		Bucket:          "resumes-test",
		Region:          "us-east-1",
		AccessKey:       "test",
		SecretAccessKey: "test",
		Prefix:          "/resumes/",
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return b
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), config.S3{Region: "us-east-1"})
	require.ErrorIs(t, err, ErrBucketMissing)
}

func TestResumeKey(t *testing.T) {
	b := newTestBucket(t)
	now := time.UnixMilli(1735689600123)

	require.Equal(t, "resumes/owner-1-1735689600123.pdf", b.ResumeKey("owner-1", "My CV.PDF", now))
	require.Equal(t, "resumes/owner-1-1735689600123.bin", b.ResumeKey("owner-1", "resume", now))

	key := b.ResumeKey("owner-1", "cv.docx", now)
	require.True(t, b.OwnedBy(key, "owner-1"))
	require.False(t, b.OwnedBy(key, "owner-2"))
	require.False(t, b.OwnedBy("other/owner-1-1.pdf", "owner-1"))
	require.False(t, b.OwnedBy("resumes/owner-1-1/../x.pdf", "owner-1"))
	require.False(t, b.OwnedBy("resumes/owner-1-", "owner-1"))
	require.False(t, b.OwnedBy(key, ""))
}

func TestPresignUpload(t *testing.T) {
	b := newTestBucket(t)
	key := b.ResumeKey("owner-1", "cv.pdf", time.Now())

	upload, err := b.PresignUpload(context.Background(), key, "application/pdf")
	require.NoError(t, err)
	require.Equal(t, key, upload.Path)
	require.Equal(t, "PUT", upload.Method)
	require.Equal(t, "application/pdf", upload.Headers["Content-Type"])
	require.NotContains(t, upload.Headers, "Host")

	u, err := url.Parse(upload.SignedURL)
	require.NoError(t, err)
	require.Equal(t, "/resumes-test/"+key, u.Path)
	require.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	require.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignDownload(t *testing.T) {
	b := newTestBucket(t)

	signed, err := b.PresignDownload(context.Background(), "resumes/owner-1-1.pdf")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(signed, "http://127.0.0.1:9000/resumes-test/resumes/owner-1-1.pdf?"))

	u, err := url.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
}
