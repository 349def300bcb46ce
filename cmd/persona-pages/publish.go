// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/persona-pages/internal/publish"
	"github.com/pdiddy/persona-pages/internal/secrets"
	"github.com/pdiddy/persona-pages/pkg/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the output directory to an S3 bucket",
	Long: `Publish uploads every file in the output directory to S3 under an optional
key prefix, with content types taken from file extensions. Credentials come
from .secrets/aws-access-key-id and .secrets/aws-secret-access-key when present,
otherwise from the default AWS credential chain.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("bucket", "", "S3 bucket name (required)")
	publishCmd.Flags().String("prefix", "", "key prefix inside the bucket")
	publishCmd.Flags().String("region", "", "AWS region (default: .secrets/aws-region or AWS config)")
	publishCmd.Flags().String("dir", types.DefaultOutputDir, "directory to upload")
	bindFlags(publishCmd, "publish", "bucket", "prefix", "region", "dir")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg := types.PublishConfig{
		Bucket:          viper.GetString("publish.bucket"),
		Prefix:          viper.GetString("publish.prefix"),
		Region:          loadedSecrets.Get(secrets.AWSRegion, viper.GetString("publish.region")),
		AccessKeyID:     loadedSecrets.Get(secrets.AWSAccessKeyID, ""),
		SecretAccessKey: loadedSecrets.Get(secrets.AWSSecretAccessKey, ""),
	}

	ctx := context.Background()
	up, err := publish.NewUploader(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = publish.Dir(ctx, up, cfg, viper.GetString("publish.dir"), os.Stdout)
	return err
}
