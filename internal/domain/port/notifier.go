package port

import "context"

// FailureNotifier reports bookmarks that failed for good and will not
// be retried.
type FailureNotifier interface {
	NotifyFailure(ctx context.Context, bookmarkTitle, url, errorMsg string) error
}
