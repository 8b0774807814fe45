package assets

import (
	"context"
	"fmt"
	"os"

	getter "github.com/hashicorp/go-getter"
)

// Fetch downloads an icon pack into dst. src is any go-getter source
// (local path, http archive, git, s3...); the pack must contain items/<model>.png.
func Fetch(ctx context.Context, src, dst string) error {
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("fetch assets: %w", err)
	}
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch assets from %s: %w", src, err)
	}
	return nil
}
