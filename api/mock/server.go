package mock

import "net/http/httptest"

// HTTPTestAuthServer runs AuthService on a local httptest server
type HTTPTestAuthServer struct {
	*AuthService
	Server *httptest.Server
	// URL is the API base URL, e.g. http://127.0.0.1:1234/api
	URL string
}

func NewHTTPTestAuthServer(opts ...Option) *HTTPTestAuthServer {
	service := NewAuthService(opts...)
	server := &HTTPTestAuthServer{AuthService: service}
	server.Server = httptest.NewServer(service.Handler())
	server.URL = server.Server.URL + BasePath
	return server
}

// TokenURL returns password grant token endpoint URL
func (s *HTTPTestAuthServer) TokenURL() string {
	return s.Server.URL + TokenPath
}

func (s *HTTPTestAuthServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
