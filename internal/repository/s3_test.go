package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Store_SaveAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	objects := newFakeObjects()
	s := NewS3Store(objects, "fleet", "schedule/")

	_, found, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Save(ctx, sampleSnapshot(12)))

	require.Contains(t, objects.objects, "fleet/schedule/snapshots/00000000000000000012.json")
	require.Contains(t, objects.objects, "fleet/schedule/latest.json")

	snap, found, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 12, snap.Version)
}

func TestS3Store_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	objects := newFakeObjects()
	objects.putErr = errors.New("slow down")
	objects.getErr = errors.New("forbidden")
	s := NewS3Store(objects, "fleet", "")

	require.ErrorContains(t, s.Save(ctx, sampleSnapshot(1)), "slow down")
	_, found, err := s.LoadLatest(ctx)
	require.ErrorContains(t, err, "forbidden")
	require.False(t, found)
}
