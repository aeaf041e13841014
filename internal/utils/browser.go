package utils

import (
	"context"
	"fmt"
	"net/url"
)

// OpenURL opens an http(s) URL in the default browser
func OpenURL(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	if err := browserCommand(ctx, u.String()).Run(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
