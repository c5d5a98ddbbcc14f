package cli

// Options represents command line options
type Options struct {
	URL             string `short:"u" long:"url" description:"CRM API url, e.g. http://localhost:8000/api"`
	Storage         string `short:"s" long:"storage" description:"session storage url: mem://, bolt://path, redis://host:port, file path"`
	OAuth2ConfigURL string `short:"c" long:"oauth2-config" description:"oauth2 client config url, enables password grant login"`
	LogLevel        string `short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	MetricsFile     string `short:"m" long:"metrics-file" description:"write session metrics in prometheus text format"`

	Login    LoginOptions    `command:"login" description:"authenticate with email and password"`
	Register RegisterOptions `command:"register" description:"create account and authenticate with it"`
	Logout   LogoutOptions   `command:"logout" description:"forget stored session"`
	WhoAmI   WhoAmIOptions   `command:"whoami" description:"verify stored credential and print identity"`
	Token    TokenOptions    `command:"token" description:"adopt credential obtained out of band"`
	Status   StatusOptions   `command:"status" description:"print stored session without contacting the API"`
}

type LoginOptions struct {
	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
}

type RegisterOptions struct {
	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
	FullName string `short:"n" long:"name" description:"full name" required:"true"`
}

type LogoutOptions struct{}

type WhoAmIOptions struct{}

type TokenOptions struct {
	Token  string `short:"t" long:"token" description:"access credential" required:"true"`
	Verify bool   `long:"verify" description:"verify credential with the API"`
}

type StatusOptions struct{}
