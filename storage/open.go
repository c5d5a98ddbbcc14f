package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ErrUnsupportedScheme is returned for storage URL that can not be served
var ErrUnsupportedScheme = errors.New("unsupported storage scheme")

const (
	memScheme   = "mem://"
	boltScheme  = "bolt://"
	redisScheme = "redis://"
	tlsScheme   = "rediss://"
)

// Open creates storage for URL: mem://, bolt://<path>, redis(s)://..., file:// URLs
// and plain paths resolve to afs file storage. The returned closer is never nil.
func Open(ctx context.Context, URL string) (Storage, io.Closer, error) {
	switch {
	case URL == "":
		return nil, nil, fmt.Errorf("%w: storage URL was empty", ErrUnsupportedScheme)
	case strings.HasPrefix(URL, memScheme):
		return NewMemory(), nopCloser{}, nil
	case strings.HasPrefix(URL, boltScheme):
		ret, err := NewBolt(strings.TrimPrefix(URL, boltScheme))
		if err != nil {
			return nil, nil, err
		}
		return ret, ret, nil
	case strings.HasPrefix(URL, redisScheme), strings.HasPrefix(URL, tlsScheme):
		options, err := redis.ParseURL(URL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis storage URL: %w", err)
		}
		client := redis.NewClient(options)
		if err = client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect redis storage: %w", err)
		}
		ret := NewRedis(client, "")
		return ret, ret, nil
	case strings.Contains(URL, "://") && !strings.HasPrefix(URL, "file://"):
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedScheme, URL[:strings.Index(URL, "://")])
	}
	return NewFile(URL), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
