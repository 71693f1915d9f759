package backoffice

import "net/http"

//encore:api public raw path=/metrics method=GET
func (s *Service) Metrics(w http.ResponseWriter, req *http.Request) {
	s.metrics.Handler().ServeHTTP(w, req)
}
