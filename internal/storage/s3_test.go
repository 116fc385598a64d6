package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	createErr   error
	createCalls int
	headErr     error
}

func (f *fakeS3) CreateBucketWithContext(ctx context.Context, input *s3.CreateBucketInput, opts ...request.Option) (*s3.CreateBucketOutput, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) HeadObjectWithContext(ctx context.Context, input *s3.HeadObjectInput, opts ...request.Option) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestEnsureBucket_CreatesMissingBucket(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	err := store.EnsureBucket(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, fake.createCalls)
}

func TestEnsureBucket_AlreadyOwnedIsSuccess(t *testing.T) {
	fake := &fakeS3{
		createErr: awserr.New(s3.ErrCodeBucketAlreadyOwnedByYou, "already owned by you", nil),
	}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	err := store.EnsureBucket(context.Background())

	require.NoError(t, err)
}

func TestEnsureBucket_AlreadyExistsIsSuccess(t *testing.T) {
	fake := &fakeS3{
		createErr: awserr.New(s3.ErrCodeBucketAlreadyExists, "bucket exists", nil),
	}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	err := store.EnsureBucket(context.Background())

	require.NoError(t, err)
}

func TestEnsureBucket_OtherErrorsPropagate(t *testing.T) {
	fake := &fakeS3{
		createErr: awserr.New("AccessDenied", "access denied", nil),
	}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	err := store.EnsureBucket(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smarthr-media")
}

func TestEnsureBucket_Idempotent(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	require.NoError(t, store.EnsureBucket(context.Background()))

	// Second run against an existing bucket
	fake.createErr = awserr.New(s3.ErrCodeBucketAlreadyOwnedByYou, "already owned by you", nil)
	require.NoError(t, store.EnsureBucket(context.Background()))
}

func TestExists_ObjectPresent(t *testing.T) {
	store := &S3Storage{client: &fakeS3{}, bucket: "smarthr-media"}

	found, err := store.Exists(context.Background(), "cvs/p1/resume.pdf")

	require.NoError(t, err)
	assert.True(t, found)
}

func TestExists_MissingKeyIsNotAnError(t *testing.T) {
	fake := &fakeS3{headErr: awserr.New("NotFound", "not found", nil)}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	found, err := store.Exists(context.Background(), "cvs/p1/resume.pdf")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestExists_OtherErrorsPropagate(t *testing.T) {
	fake := &fakeS3{headErr: awserr.New("AccessDenied", "access denied", nil)}
	store := &S3Storage{client: fake, bucket: "smarthr-media"}

	found, err := store.Exists(context.Background(), "cvs/p1/resume.pdf")

	require.Error(t, err)
	assert.False(t, found)
}

func TestNewStorage_UnsupportedType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage type")
}
