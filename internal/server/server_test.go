package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
	"github.com/easyjobfind/easyjobfind/internal/matching"
	"github.com/easyjobfind/easyjobfind/internal/profile"
	"go.uber.org/zap"
)

type stubAnalyzer struct {
	profile  profile.Profile
	lastText string
}

func (s *stubAnalyzer) Analyze(_ context.Context, resumeText string) profile.Profile {
	s.lastText = resumeText
	return s.profile
}

type stubFinder struct {
	matches     []matching.ScoredOffer
	offers      []francetravail.Offer
	lastProfile profile.Profile
	lastKeyword string
}

func (s *stubFinder) FindMatches(_ context.Context, p profile.Profile) []matching.ScoredOffer {
	s.lastProfile = p
	return s.matches
}

func (s *stubFinder) FindByKeyword(_ context.Context, keyword string) []francetravail.Offer {
	s.lastKeyword = keyword
	return s.offers
}

func newTestServer(analyzer *stubAnalyzer, finder *stubFinder) *Server {
	return New(analyzer, finder, zap.NewNop())
}

func docxBytes(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	doc, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}

	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(p)
		body.WriteString("</w:t></w:r></w:p>")
	}
	body.WriteString(`</w:body></w:document>`)

	if _, err := io.WriteString(doc, body.String()); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}

func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(&stubAnalyzer{}, &stubFinder{})

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := srv.App().Test(req)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d", path, resp.StatusCode)
		}

		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode body: %v", path, err)
		}
		resp.Body.Close()
		if body["status"] == "" {
			t.Errorf("%s: missing status field", path)
		}
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	analyzer := &stubAnalyzer{profile: profile.Profile{
		JobTitle:        "Développeur Backend",
		Skills:          []string{"Python", "Docker"},
		Strengths:       []string{"Rigueur"},
		ExperienceLevel: francetravail.LevelSenior,
	}}
	finder := &stubFinder{matches: []matching.ScoredOffer{
		{
			Offer: francetravail.Offer{
				ID:    "1",
				Title: "Développeur Python",
			},
			MatchingScore: 63,
		},
	}}
	srv := newTestServer(analyzer, finder)

	body, contentType := multipartFile(t, "cv.docx", docxBytes(t, "Jean Dupont", "Développeur backend Python"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}

	var got struct {
		Profile struct {
			JobTitle string   `json:"metier_recherche"`
			Skills   []string `json:"competences_cles"`
			Level    string   `json:"niveau_experience"`
		} `json:"profile"`
		Jobs []struct {
			ID            string `json:"id"`
			Title         string `json:"intitule"`
			MatchingScore int    `json:"matching_score"`
		} `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if got.Profile.JobTitle != "Développeur Backend" {
		t.Errorf("unexpected job title %q", got.Profile.JobTitle)
	}
	if got.Profile.Level != "senior" {
		t.Errorf("unexpected level %q", got.Profile.Level)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].ID != "1" || got.Jobs[0].MatchingScore != 63 {
		t.Errorf("unexpected jobs %+v", got.Jobs)
	}

	if !strings.Contains(analyzer.lastText, "Jean Dupont") {
		t.Errorf("extracted text missing from analyzer input: %q", analyzer.lastText)
	}
	if finder.lastProfile.JobTitle != "Développeur Backend" {
		t.Errorf("finder got unexpected profile %+v", finder.lastProfile)
	}
}

func TestAnalyzeRejectsUnsupportedExtension(t *testing.T) {
	srv := newTestServer(&stubAnalyzer{}, &stubFinder{})

	body, contentType := multipartFile(t, "cv.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var got ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Message == "" {
		t.Error("expected an error message")
	}
}

func TestAnalyzeRequiresFile(t *testing.T) {
	srv := newTestServer(&stubAnalyzer{}, &stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(""))
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAnalyzeRejectsEmptyDocument(t *testing.T) {
	srv := newTestServer(&stubAnalyzer{}, &stubFinder{})

	body, contentType := multipartFile(t, "cv.docx", docxBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestJobsByKeyword(t *testing.T) {
	finder := &stubFinder{offers: []francetravail.Offer{
		{ID: "1", Title: "Développeur Python"},
	}}
	srv := newTestServer(&stubAnalyzer{}, finder)

	req := httptest.NewRequest(http.MethodGet, "/jobs/d%C3%A9veloppeur%20python", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if finder.lastKeyword != "développeur python" {
		t.Errorf("unexpected keyword %q", finder.lastKeyword)
	}

	var got []struct {
		ID    string `json:"id"`
		Title string `json:"intitule"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("unexpected offers %+v", got)
	}
}

func TestJobsByKeywordEmptyResultIsArray(t *testing.T) {
	srv := newTestServer(&stubAnalyzer{}, &stubFinder{})

	req := httptest.NewRequest(http.MethodGet, "/jobs/introuvable", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("expected empty array, got %s", raw)
	}
}
