package gcp

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	cloudbuildpb "cloud.google.com/go/cloudbuild/apiv1/v2/cloudbuildpb"
	"cloud.google.com/go/storage"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/jamie-woolworths/mlops-labs/internal/util/naming"
)

// BuildImage packs the build context, stages it in the project's Cloud Build
// bucket and runs a docker build that pushes the tag to the registry.
func (c *RealClient) BuildImage(ctx context.Context, projectID string, opts BuildOpts) error {
	bucket := naming.StagingBucket(projectID)
	object := naming.BuildSourceObject(opts.Name, c.now().Unix())

	if err := c.ensureBucket(ctx, projectID, bucket); err != nil {
		return err
	}
	if err := c.stageBuildContext(ctx, bucket, object, opts.ContextDir); err != nil {
		return err
	}

	build := &cloudbuildpb.Build{
		Source: &cloudbuildpb.Source{
			Source: &cloudbuildpb.Source_StorageSource{
				StorageSource: &cloudbuildpb.StorageSource{
					Bucket: bucket,
					Object: object,
				},
			},
		},
		Steps: []*cloudbuildpb.BuildStep{{
			Name: "gcr.io/cloud-builders/docker",
			Args: []string{"build", "-t", opts.Tag, "."},
		}},
		Images: []string{opts.Tag},
	}
	if opts.Timeout > 0 {
		build.Timeout = durationpb.New(opts.Timeout)
	}

	c.log.Info("submitting build", "tag", opts.Tag, "source", "gs://"+bucket+"/"+object)
	op, err := c.builds.CreateBuild(ctx, &cloudbuildpb.CreateBuildRequest{
		ProjectId: projectID,
		Build:     build,
	})
	if err != nil {
		return fmt.Errorf("submitting build for %s: %w", opts.Tag, err)
	}
	result, err := op.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for build of %s: %w", opts.Tag, err)
	}
	if result.GetStatus() != cloudbuildpb.Build_SUCCESS {
		return fmt.Errorf("build %s finished with status %s", result.GetId(), result.GetStatus())
	}
	c.log.Info("image published", "tag", opts.Tag, "build", result.GetId())
	return nil
}

// ensureBucket creates the staging bucket when it does not exist yet. The
// bucket name matches the one gcloud builds submit uses so both tools share
// staged sources.
func (c *RealClient) ensureBucket(ctx context.Context, projectID, bucket string) error {
	_, err := c.storage.Bucket(bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	c.log.Info("creating staging bucket", "bucket", bucket)
	if err := c.storage.Bucket(bucket).Create(ctx, projectID, nil); err != nil {
		return fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return nil
}

func (c *RealClient) stageBuildContext(ctx context.Context, bucket, object, dir string) error {
	w := c.storage.Bucket(bucket).Object(object).NewWriter(ctx)
	if err := writeBuildContext(w, dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("staging build context from %s: %w", dir, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing upload of gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}

// writeBuildContext writes dir as a gzipped tarball. Paths inside the archive
// are relative to dir so the Dockerfile sits at the archive root.
func writeBuildContext(w io.Writer, dir string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
