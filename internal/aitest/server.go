package aitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Response configures one scripted HTTP response.
type Response struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
}

// Server is a scripted HTTP server standing in for a provider API.
// Responses are registered per path; unregistered paths return 404.
type Server struct {
	server    *httptest.Server
	mu        sync.Mutex
	responses map[string][]Response
	requests  int
}

// NewServer starts a scripted server. Callers must Close it.
func NewServer() *Server {
	s := &Server{responses: make(map[string][]Response)}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.server.Close()
}

// Respond registers a response for path. Multiple registrations for the
// same path are served in order, the last one repeating.
func (s *Server) Respond(path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = append(s.responses[path], resp)
}

// RespondText registers a 200 response shaped like an Anthropic Messages
// reply containing text.
func (s *Server) RespondText(path, text string) {
	s.Respond(path, Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": text}},
		},
	})
}

// RespondOpenAIText registers a 200 response shaped like an OpenAI chat
// completion containing text.
func (s *Server) RespondOpenAIText(path, text string) {
	s.Respond(path, Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": text}},
			},
		},
	})
}

// RespondOverloaded registers a 529 overloaded error response.
func (s *Server) RespondOverloaded(path string) {
	s.Respond(path, Response{
		StatusCode: 529,
		Body: map[string]interface{}{
			"error": map[string]string{"type": "overloaded_error", "message": "Overloaded"},
		},
	})
}

// RequestCount returns how many requests the server has received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	queue := s.responses[r.URL.Path]
	var resp Response
	switch len(queue) {
	case 0:
		s.mu.Unlock()
		http.NotFound(w, r)
		return
	case 1:
		resp = queue[0]
	default:
		resp = queue[0]
		s.responses[r.URL.Path] = queue[1:]
	}
	s.mu.Unlock()

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	if resp.StatusCode == 0 {
		resp.StatusCode = http.StatusOK
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != nil {
		_ = json.NewEncoder(w).Encode(resp.Body)
	}
}
