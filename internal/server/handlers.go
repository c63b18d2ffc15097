package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
	"github.com/easyjobfind/easyjobfind/internal/matching"
	"github.com/easyjobfind/easyjobfind/internal/profile"
	"github.com/easyjobfind/easyjobfind/internal/resume"
	"go.uber.org/zap"
)

type analyzeResponse struct {
	Profile profile.Profile        `json:"profile"`
	Jobs    []matching.ScoredOffer `json:"jobs"`
}

func (s *Server) root(c *fiber.Ctx) error {
	return respondJSON(c, http.StatusOK, fiber.Map{
		"message": "EasyJobFind API",
		"status":  "running",
	})
}

func (s *Server) health(c *fiber.Ctx) error {
	return respondJSON(c, http.StatusOK, fiber.Map{"status": "healthy"})
}

func (s *Server) analyze(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return respondError(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return respondError(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}

	file, err := fh.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, s.maxBytes)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	text, err := resume.ExtractText(fh.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrNoText):
			return respondError(c, http.StatusBadRequest, "the file contains no extractable text")
		case errors.Is(err, resume.ErrUnsupportedFormat):
			return respondError(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
		default:
			s.logger.Warn("resume text extraction failed",
				zap.String("filename", fh.Filename),
				zap.Error(err),
			)
			return respondError(c, http.StatusBadRequest, "failed to read the resume")
		}
	}

	s.logger.Info("resume received",
		zap.String("filename", fh.Filename),
		zap.Int("size_bytes", len(data)),
		zap.Int("text_length", utf8.RuneCountInString(text)),
	)

	p := s.analyzer.Analyze(c.Context(), text)
	jobs := s.finder.FindMatches(c.Context(), p)

	s.logger.Info("analysis done",
		zap.String("job_title", p.JobTitle),
		zap.Int("offers", len(jobs)),
	)

	return respondJSON(c, http.StatusOK, analyzeResponse{
		Profile: p,
		Jobs:    jobs,
	})
}

func (s *Server) jobs(c *fiber.Ctx) error {
	keyword := c.Params("keyword")
	if decoded, err := url.PathUnescape(keyword); err == nil {
		keyword = decoded
	}

	offers := s.finder.FindByKeyword(c.Context(), keyword)
	if offers == nil {
		offers = []francetravail.Offer{}
	}

	return respondJSON(c, http.StatusOK, offers)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
