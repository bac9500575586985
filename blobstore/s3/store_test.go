package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/fcmeans/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_Open(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", WithPrefix("prefix"))

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/foo.csv"
		})).Return(nil, &types.NotFound{}).Once()

		_, err := store.Open(context.Background(), "foo.csv")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()

		_, err := store.Open(context.Background(), "gone.csv")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("OtherError", func(t *testing.T) {
		boom := errors.New("access denied")
		mockClient.On("HeadObject", mock.Anything, mock.Anything).Return(nil, boom).Once()

		_, err := store.Open(context.Background(), "secret.csv")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/bar.csv"
		})).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(100),
		}, nil).Once()

		blob, err := store.Open(context.Background(), "bar.csv")
		require.NoError(t, err)
		assert.Equal(t, int64(100), blob.Size())
		assert.NoError(t, blob.Close())
	})

	mockClient.AssertExpectations(t)
}

func TestStore_NoPrefix(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "b")

	mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
		return *input.Key == "runs/in.csv"
	})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(1)}, nil).Once()

	_, err := store.Open(context.Background(), "runs/in.csv")
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestBlob_ReadAt(t *testing.T) {
	mockClient := new(MockS3Client)
	blob := &s3Blob{client: mockClient, bucket: "b", key: "k", size: 10}

	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Bucket == "b" && *input.Key == "k" && *input.Range == "bytes=0-4"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader("hello")),
	}, nil).Once()

	buf := make([]byte, 5)
	n, err := blob.ReadAt(context.Background(), buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	// Past the end no request is made.
	n, err = blob.ReadAt(context.Background(), buf, 10)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	mockClient.AssertExpectations(t)
}

func TestBlob_ReadAtTail(t *testing.T) {
	mockClient := new(MockS3Client)
	blob := &s3Blob{client: mockClient, bucket: "b", key: "k", size: 10}

	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Range == "bytes=8-9"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader("89")),
	}, nil).Once()

	buf := make([]byte, 5)
	n, err := blob.ReadAt(context.Background(), buf, 8)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "89", string(buf[:n]))
}

func TestBlob_SequentialReader(t *testing.T) {
	mockClient := new(MockS3Client)
	blob := &s3Blob{client: mockClient, bucket: "b", key: "in.csv", size: 12}

	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Range == "bytes=0-11"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader("a;b\n1;2\n3;4\n")),
	}, nil).Once()

	got, err := io.ReadAll(blobstore.NewReader(context.Background(), blob))
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n3;4\n", string(got))
	mockClient.AssertExpectations(t)
}

func TestStore_Create(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", WithPrefix("prefix"))

	var uploaded string
	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/out.csv" &&
			input.ChecksumAlgorithm == types.ChecksumAlgorithmCrc32c
	})).Run(func(args mock.Arguments) {
		input := args.Get(1).(*s3.PutObjectInput)
		data, _ := io.ReadAll(input.Body)
		uploaded = string(data)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	wb, err := store.Create(context.Background(), "out.csv")
	require.NoError(t, err)

	_, err = wb.Write([]byte("x;label\n"))
	require.NoError(t, err)
	_, err = wb.Write([]byte("1;0\n"))
	require.NoError(t, err)
	require.NoError(t, wb.Sync())
	require.NoError(t, wb.Close())

	assert.Equal(t, "x;label\n1;0\n", uploaded)

	_, err = wb.Write([]byte("late"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	mockClient.AssertExpectations(t)
}

func TestStore_CreateFailure(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "b", WithUploadConfig(UploadConfig{}))

	boom := errors.New("upload rejected")
	mockClient.On("PutObject", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		_, _ = io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
	}).Return(nil, boom).Once()

	wb, err := store.Create(context.Background(), "out.csv")
	require.NoError(t, err)
	_, err = wb.Write([]byte("data"))
	require.NoError(t, err)

	err = wb.Close()
	assert.ErrorIs(t, err, boom)
	// Close is idempotent and keeps reporting the failure.
	assert.ErrorIs(t, wb.Close(), boom)
}

func TestStore_Discard(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "b")

	wb, err := store.Create(context.Background(), "out.csv")
	require.NoError(t, err)
	_, err = wb.Write([]byte("partial"))
	require.NoError(t, err)

	require.NoError(t, blobstore.Discard(wb))
	assert.ErrorIs(t, wb.Close(), errAborted)
	mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}
