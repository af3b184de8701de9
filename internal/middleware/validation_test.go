package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/waapify-relay/pkg/logger"
)

type ValidationMiddlewareTestSuite struct {
	suite.Suite
	validation *ValidationMiddleware
	router     *gin.Engine
}

func (s *ValidationMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.validation = NewValidationMiddleware(logger.NewNop())
	s.router = gin.New()
	s.router.Use(
		s.validation.BlockSuspiciousPatterns("q"),
		s.validation.SanitizeInput(),
		s.validation.ValidateRequestSize(64),
		s.validation.ValidateContentType("application/json"),
	)
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": c.Query("status"), "q": c.Query("q")})
	}
	s.router.GET("/messages", echo)
	s.router.POST("/messages", echo)
}

func TestValidationMiddleware(t *testing.T) {
	suite.Run(t, new(ValidationMiddlewareTestSuite))
}

func (s *ValidationMiddlewareTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ValidationMiddlewareTestSuite) TestBlocksInjectionInQuery() {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/messages?status=sent%27%20UNION%20SELECT%20*", nil)

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ValidationMiddlewareTestSuite) TestFreeTextParamIsNotInspected() {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/messages?q=price%20--%20stock", nil)

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"","q":"price -- stock"}`, w.Body.String())
}

func (s *ValidationMiddlewareTestSuite) TestBlocksScriptInHeader() {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set("X-Referrer", "<script>alert(1)</script>")

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ValidationMiddlewareTestSuite) TestSanitizeStripsControlCharacters() {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/messages?status=se%00nt", nil)

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"sent","q":""}`, w.Body.String())
}

func (s *ValidationMiddlewareTestSuite) TestRejectsOversizedBody() {
	// Arrange
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(strings.Repeat("x", 65)))
	req.Header.Set("Content-Type", "application/json")

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (s *ValidationMiddlewareTestSuite) TestRejectsUnsupportedContentType() {
	// Arrange
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusUnsupportedMediaType, w.Code)
}

func (s *ValidationMiddlewareTestSuite) TestAcceptsJSONBody() {
	// Arrange
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	w := s.serve(req)

	// Assert
	s.Equal(http.StatusOK, w.Code)
}
