package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userTokenKeyPrefix = "user:token:%s"
	bookKeyPrefix      = "book:%s"
)

const (
	// UserTokenTTL bounds how long a deleted user's token can keep resolving.
	UserTokenTTL = 5 * time.Minute
	// BookTTL is short because the derived rating changes with every review.
	BookTTL = 2 * time.Minute
)

func UserTokenKey(token string) string {
	return fmt.Sprintf(userTokenKeyPrefix, token)
}

func BookKey(slug string) string {
	return fmt.Sprintf(bookKeyPrefix, slug)
}

func InvalidateUserToken(ctx context.Context, token string) {
	Invalidate(ctx, UserTokenKey(token))
}

func InvalidateBook(ctx context.Context, slug string) {
	Invalidate(ctx, BookKey(slug))
}
