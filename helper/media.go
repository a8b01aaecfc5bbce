package helper

import (
	"bytes"
	"context"
	"encoding/base64"
	"estate_market/config"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var ErrNotImage = errors.New("payload is not an image")

// ImageStore persists uploaded images and returns a URL that can be stored
// on records.
type ImageStore interface {
	Upload(ctx context.Context, kind string, data []byte, contentType string) (string, error)
	Name() string
}

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary init")
	}
	return &CloudinaryStore{cld: cld, folder: config.ConfigDefault("CLOUDINARY_FOLDER", "estate")}, nil
}

func (s *CloudinaryStore) Name() string { return "cloudinary" }

func (s *CloudinaryStore) Upload(ctx context.Context, kind string, data []byte, _ string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       s.folder + "/" + kind,
		PublicID:     fmt.Sprintf("%s_%d", uuid.NewString(), time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return "", errors.Wrap(err, "cloudinary upload")
	}
	return result.SecureURL, nil
}

type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinioStore connects and makes sure the bucket exists.
func NewMinioStore(ctx context.Context) (*MinioStore, error) {
	endpoint := config.Config("MINIO_ENDPOINT")
	secure := config.ConfigBool("MINIO_SSL", false)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Config("MINIO_ACCESS_KEY"), config.Config("MINIO_SECRET_KEY"), ""),
		Secure: secure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio init")
	}
	bucket := config.ConfigDefault("MINIO_BUCKET", "estate-images")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, errors.Wrap(err, "minio bucket check")
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "minio make bucket")
		}
		log.Printf("Created bucket %s", bucket)
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	base := config.ConfigDefault("MINIO_PUBLIC_URL", scheme+"://"+endpoint)
	return &MinioStore{client: client, bucket: bucket, publicBase: strings.TrimRight(base, "/")}, nil
}

func (s *MinioStore) Name() string { return "minio" }

func (s *MinioStore) Upload(ctx context.Context, kind string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s", kind, uuid.NewString())
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "minio put")
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, key), nil
}

// InlineStore keeps the image as a data URL. Used in development and tests.
type InlineStore struct{}

func (InlineStore) Name() string { return "inline" }

func (InlineStore) Upload(_ context.Context, _ string, data []byte, contentType string) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

var Images ImageStore = InlineStore{}

// InitImageStore picks the backend named by IMAGE_STORE.
func InitImageStore(ctx context.Context) {
	switch config.ConfigDefault("IMAGE_STORE", "inline") {
	case "cloudinary":
		store, err := NewCloudinaryStore()
		if err != nil {
			log.Fatalf("Cloudinary init failed: %v", err)
		}
		Images = store
	case "minio":
		store, err := NewMinioStore(ctx)
		if err != nil {
			log.Fatalf("Minio init failed: %v", err)
		}
		Images = store
	default:
		Images = InlineStore{}
	}
	log.Printf("Image store: %s", Images.Name())
}

// DecodeImage accepts a data URL or bare base64 and checks the bytes are an
// image.
func DecodeImage(ref string) ([]byte, string, error) {
	payload := ref
	if strings.HasPrefix(ref, "data:") {
		i := strings.Index(ref, ",")
		if i < 0 {
			return nil, "", ErrNotImage
		}
		payload = ref[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Wrap(ErrNotImage, err.Error())
	}
	return CheckImage(data)
}

func CheckImage(data []byte) ([]byte, string, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, "", ErrNotImage
	}
	return data, mtype.String(), nil
}

// StoreImageRef stores an uploaded image reference. Hosted http(s) URLs are
// kept as they are.
func StoreImageRef(ctx context.Context, kind, ref string) (string, error) {
	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		return ref, nil
	}
	data, contentType, err := DecodeImage(ref)
	if err != nil {
		return "", err
	}
	return StoreImageBytes(ctx, kind, data, contentType)
}

func StoreImageBytes(ctx context.Context, kind string, data []byte, contentType string) (string, error) {
	url, err := Images.Upload(ctx, kind, data, contentType)
	if err != nil {
		ImageUploads.WithLabelValues(Images.Name(), kind, "error").Inc()
		return "", err
	}
	ImageUploads.WithLabelValues(Images.Name(), kind, "ok").Inc()
	return url, nil
}
