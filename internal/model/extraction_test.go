package model

import (
	"math"
	"testing"
)

func TestStats(t *testing.T) {
	results := []ExtractionResult{
		{Source: SourceLocal, Confidence: 0.9},
		{Source: SourceLLM, Confidence: 0.3, Cost: 0.0001},
		{Source: SourceLLM, Confidence: 0.5, Cost: 0.0001},
		{Source: SourceLocalFallback, Confidence: 0.1},
	}

	stats := Stats(results)

	if stats.Total != 4 {
		t.Errorf("Expected total 4, got %d", stats.Total)
	}
	if stats.Local != 1 || stats.LLM != 2 || stats.Fallback != 1 {
		t.Errorf("Expected 1/2/1 split, got %d/%d/%d", stats.Local, stats.LLM, stats.Fallback)
	}
	if math.Abs(stats.TotalCost-0.0002) > 1e-9 {
		t.Errorf("Expected total cost 0.0002, got %f", stats.TotalCost)
	}
	if math.Abs(stats.AvgConfidence-0.45) > 1e-9 {
		t.Errorf("Expected average confidence 0.45, got %f", stats.AvgConfidence)
	}
}

func TestStats_Empty(t *testing.T) {
	stats := Stats(nil)
	if stats.Total != 0 || stats.AvgConfidence != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory("Front-end") || !ValidCategory("기타") {
		t.Error("Expected known categories valid")
	}
	if ValidCategory("front-end") || ValidCategory("Database") || ValidCategory("") {
		t.Error("Expected unknown or miscased categories invalid")
	}
}
