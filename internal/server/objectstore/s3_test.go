package objectstore

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	put    *s3.PutObjectInput
	get    *s3.GetObjectInput
	expiry time.Duration
	err    error
}

func (f *fakePresigner) apply(optFns []func(*s3.PresignOptions)) {
	var po s3.PresignOptions
	for _, fn := range optFns {
		fn(&po)
	}
	f.expiry = po.Expires
}

func (f *fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.put = in
	f.apply(optFns)
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://s3.local/put/" + aws.ToString(in.Key), Method: "PUT"}, nil
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.get = in
	f.apply(optFns)
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://s3.local/get/" + aws.ToString(in.Key), Method: "GET"}, nil
}

type fakeObjects struct {
	head    *s3.HeadObjectOutput
	headErr error
	deleted []string
	delErr  error
}

func (f *fakeObjects) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return f.head, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.delErr != nil {
		return nil, f.delErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestNewS3Store_AppliesOptions(t *testing.T) {
	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minio", creds.AccessKeyID)
		assert.Equal(t, "pw", creds.SecretAccessKey)
		return aws.Config{Region: lo.Region}, nil
	}

	var gotOpts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&gotOpts)
		}
		return &s3.Client{}
	}

	pre := &fakePresigner{}
	newS3PresignClient = func(c *s3.Client) presignAPI {
		require.NotNil(t, c)
		return pre
	}

	st, err := NewS3Store(context.Background(), Options{
		Bucket: "avatars", Region: "eu-west-1", Endpoint: "http://minio:9000/", User: "minio", Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", aws.ToString(gotOpts.BaseEndpoint))
	assert.True(t, gotOpts.UsePathStyle)

	u, err := st.PresignPut(context.Background(), "avatars/a/1.png", "image/png", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/put/avatars/a/1.png", u)
	assert.Equal(t, "avatars", aws.ToString(pre.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(pre.put.ContentType))
	assert.Equal(t, 15*time.Minute, pre.expiry)

	u, err = st.PresignGet(context.Background(), "avatars/a/1.png", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/avatars/a/1.png", u)
	assert.Equal(t, "avatars", aws.ToString(pre.get.Bucket))
	assert.Equal(t, time.Hour, pre.expiry)
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad profile")
	}

	_, err := NewS3Store(context.Background(), Options{})
	assert.ErrorContains(t, err, "bad profile")
}

// Signing is local, so the real clients can be exercised without a bucket.
func TestS3Store_PresignPutSignsRequest(t *testing.T) {
	st, err := NewS3Store(context.Background(), Options{
		Bucket: "avatars", Region: "us-east-1", Endpoint: "http://127.0.0.1:9000", User: "minio", Password: "minio-secret",
	})
	require.NoError(t, err)

	raw, err := st.PresignPut(context.Background(), "avatars/acc/1.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/avatars/avatars/acc/1.png"), u.Path)
	q := u.Query()
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
	assert.Contains(t, q.Get("X-Amz-SignedHeaders"), "content-type")
}

func TestS3Store_PresignError(t *testing.T) {
	st := &S3Store{bucket: "b", presign: &fakePresigner{err: errors.New("sign fail")}}

	_, err := st.PresignPut(context.Background(), "k", "image/png", time.Minute)
	assert.ErrorContains(t, err, "sign fail")
	_, err = st.PresignGet(context.Background(), "k", time.Minute)
	assert.ErrorContains(t, err, "sign fail")
}

func TestS3Store_Stat(t *testing.T) {
	objs := &fakeObjects{head: &s3.HeadObjectOutput{
		ContentLength: aws.Int64(2048),
		ContentType:   aws.String("image/jpeg"),
	}}
	st := &S3Store{bucket: "b", objects: objs}

	info, err := st.Stat(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, &ObjectInfo{Size: 2048, ContentType: "image/jpeg"}, info)

	objs.headErr = &types.NotFound{}
	_, err = st.Stat(context.Background(), "k")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	objs.headErr = errors.New("timeout")
	_, err = st.Stat(context.Background(), "k")
	assert.ErrorContains(t, err, "timeout")
	assert.NotErrorIs(t, err, ErrObjectNotFound)
}

func TestS3Store_Delete(t *testing.T) {
	objs := &fakeObjects{}
	st := &S3Store{bucket: "b", objects: objs}

	require.NoError(t, st.Delete(context.Background(), "k1"))
	assert.Equal(t, []string{"k1"}, objs.deleted)

	objs.delErr = errors.New("denied")
	assert.ErrorContains(t, st.Delete(context.Background(), "k2"), "denied")
}
