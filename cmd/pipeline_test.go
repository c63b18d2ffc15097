package cmd

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewExtractorWithoutKeyFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	extractor, err := newExtractor(context.Background(), &GeminiConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extractor == nil {
		t.Fatal("expected a fallback extractor, got nil")
	}
}

func TestNewOrchestratorToleratesMissingCredentials(t *testing.T) {
	t.Setenv("FT_CLIENT_ID", "")
	t.Setenv("FT_CLIENT_SECRET", "")

	orchestrator := newOrchestrator(&FranceTravailConfig{}, zap.NewNop())
	if orchestrator == nil {
		t.Fatal("expected an orchestrator, got nil")
	}
}

func TestNewOrchestratorWithCredentials(t *testing.T) {
	t.Setenv("FT_CLIENT_ID", "id")
	t.Setenv("FT_CLIENT_SECRET", "secret")

	orchestrator := newOrchestrator(&FranceTravailConfig{
		AuthURL: "http://localhost:1/token",
		APIURL:  "http://localhost:1",
	}, zap.NewNop())
	if orchestrator == nil {
		t.Fatal("expected an orchestrator, got nil")
	}
}
