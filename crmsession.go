package crmsession

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/crmsession/api"
	"github.com/viant/crmsession/config"
	"github.com/viant/crmsession/logger"
	"github.com/viant/crmsession/session"
	"github.com/viant/crmsession/storage"
)

// Options defines options for opening a session store.
type Options struct {
	APIURL          string        `yaml:"apiURL" json:"apiURL"`
	StorageURL      string        `yaml:"storageURL,omitempty" json:"storageURL,omitempty"`
	APITimeout      time.Duration `yaml:"apiTimeout,omitempty" json:"apiTimeout,omitempty"`
	OAuth2ConfigURL string        `yaml:"oauth2ConfigURL,omitempty" json:"oauth2ConfigURL,omitempty"`

	// Logger receives session, storage and API diagnostics; nil discards them.
	Logger *slog.Logger `yaml:"-" json:"-"`
	// Registerer, if set, gets session command metrics registered.
	Registerer prometheus.Registerer `yaml:"-" json:"-"`
	// Listeners are subscribed before the store is hydrated.
	Listeners []session.Listener `yaml:"-" json:"-"`
}

// Init sets defaults
func (o *Options) Init() {
	if o.StorageURL == "" {
		o.StorageURL = "mem://"
	}
	if o.APITimeout == 0 {
		o.APITimeout = api.DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
}

// NewOptions creates options from loaded config
func NewOptions(cfg *config.Config) *Options {
	return &Options{
		APIURL:          cfg.APIURL,
		StorageURL:      cfg.StorageURL,
		APITimeout:      cfg.APITimeout,
		OAuth2ConfigURL: cfg.OAuth2ConfigURL,
	}
}

// Open creates a hydrated session store; closer releases the underlying storage.
func Open(ctx context.Context, options *Options) (*session.Store, io.Closer, error) {
	options.Init()
	store, closer, err := storage.Open(ctx, options.StorageURL)
	if err != nil {
		return nil, nil, err
	}
	authenticator, err := options.authenticator(ctx, store)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	sessionOptions := []session.Option{session.WithLogger(options.Logger)}
	if options.Registerer != nil {
		metrics, err := session.NewMetrics(options.Registerer)
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		sessionOptions = append(sessionOptions, session.WithMetrics(metrics))
	}
	for _, listener := range options.Listeners {
		sessionOptions = append(sessionOptions, session.WithListener(listener))
	}
	ret, err := session.New(ctx, authenticator, store, sessionOptions...)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	options.Logger.Debug("session store opened", slog.String("storage", options.StorageURL), slog.String("api", options.APIURL))
	return ret, closer, nil
}

// authenticator returns REST client, or password grant when oauth2 config is set
func (o *Options) authenticator(ctx context.Context, store storage.Storage) (api.Authenticator, error) {
	client := api.New(o.APIURL, api.WithStorage(store), api.WithTimeout(o.APITimeout))
	if o.OAuth2ConfigURL == "" {
		return client, nil
	}
	oauth2Config, err := api.LoadOAuth2Config(ctx, o.OAuth2ConfigURL)
	if err != nil {
		return nil, err
	}
	return api.NewPasswordGrant(oauth2Config, client), nil
}
