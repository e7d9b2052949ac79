package s3client

import (
	"postagger.com/hpt/logger"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"strings"
	"sync"
)

// Client talks to the bucket holding treebank files and result reports.
type Client struct {
	bucketName string
	env        EnvironmentConfig

	mu   sync.Mutex
	sess *session.Session
}

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

type EnvironmentConfig struct {
	BucketName  string `envconfig:"HPT_COMN_STORAGE_CONTAINER_NAME" required:"true"`
	Region      string `envconfig:"HPT_COMN_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"HPT_COMN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"HPT_COMN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"HPT_COMN_AWS_ACCESS_KEY" default:""`
}

func New() (*Client, error) {
	errLogger := clientLogger.With().Caller().Logger()
	var env EnvironmentConfig
	if err := envconfig.Process("", &env); err != nil {
		errLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	client := Client{
		bucketName: env.BucketName,
		env:        env,
	}
	if err := client.refreshSession(); err != nil {
		return nil, err
	}
	return &client, nil
}

// Upload stores a result report under key, refreshing the session once
// on failure.
func (client *Client) Upload(data string, key string) (*s3manager.UploadOutput, error) {
	params := &s3manager.UploadInput{
		Bucket: &client.bucketName,
		Key:    &key,
		Body:   strings.NewReader(data),
	}
	output, err := client.upload(client.session(), params)
	if err == nil {
		return output, nil
	}
	if err := client.refreshSession(); err != nil {
		return nil, err
	}
	return client.upload(client.session(), params)
}

// Download fetches an object, typically a treebank split, by key.
func (client *Client) Download(key string) ([]byte, error) {
	params := &s3.GetObjectInput{
		Bucket: &client.bucketName,
		Key:    &key,
	}
	res, err := client.download(client.session(), params)
	if err == nil {
		return res, nil
	}
	if err := client.refreshSession(); err != nil {
		return nil, err
	}
	return client.download(client.session(), params)
}

func (client *Client) Close() {}

func (client *Client) upload(sess *session.Session, params *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
	hptLogger := clientLogger.With().
		Str("key", *params.Key).
		Str("bucket", *params.Bucket).Logger()

	sdkLog := sdkLogger.With().
		Str("key", *params.Key).
		Str("bucket", *params.Bucket).Logger()

	uploader := s3manager.NewUploader(sess.Copy(&aws.Config{Logger: getLogger(sdkLog)}))
	hptLogger.Debug().Msg("Uploading the file")
	return uploader.Upload(params)
}

func (client *Client) download(sess *session.Session, params *s3.GetObjectInput) ([]byte, error) {
	hptLogger := clientLogger.With().
		Str("key", *params.Key).
		Str("bucket", *params.Bucket).Logger()

	sdkLog := sdkLogger.With().
		Str("key", *params.Key).
		Str("bucket", *params.Bucket).Logger()

	downloader := s3manager.NewDownloader(sess.Copy(&aws.Config{Logger: getLogger(sdkLog)}))

	buf := aws.NewWriteAtBuffer([]byte{})

	hptLogger.Debug().Msg("Downloading file")

	size, err := downloader.Download(buf, params)
	if err != nil {
		hptLogger.Error().Err(err).Msg("Failed to download file")
		return nil, err
	}
	hptLogger.Debug().Msgf("Downloaded %v bytes", size)
	return buf.Bytes(), nil
}

func (client *Client) session() *session.Session {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.sess
}

func (client *Client) refreshSession() error {
	cfg := &aws.Config{Region: aws.String(client.env.Region)}
	if client.env.AwsEndpoint != "" {
		cfg.Endpoint = aws.String(client.env.AwsEndpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if client.env.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(client.env.AccessKeyID, client.env.AccessKey, "")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		clientLogger.Err(err).Msg("Failed to create AWS session")
		return err
	}
	client.mu.Lock()
	client.sess = sess
	client.mu.Unlock()
	return nil
}

type s3Logger struct {
	hptLogger zerolog.Logger
}

func getLogger(hptLogger zerolog.Logger) *s3Logger {
	return &s3Logger{
		hptLogger,
	}
}

func (logger *s3Logger) Log(v ...interface{}) {
	logger.hptLogger.Debug().Msg(fmt.Sprint(v...))
}
