package core

import (
	"fmt"
	"time"

	"github.com/agenthands/recon/internal/config"
	"github.com/agenthands/recon/internal/core/community"
	"github.com/agenthands/recon/internal/core/scorer"
	"github.com/agenthands/recon/internal/core/similarity"
	"github.com/agenthands/recon/internal/errors"
	"github.com/agenthands/recon/internal/llm"
)

// Configure picks the cluster detector and registers the algorithms and models
// declared in cfg. llmClient may be nil unless a model of kind "llm" is declared.
func Configure(e *Engine, cfg *config.Config, llmClient llm.LLMClient) error {
	detector, err := buildDetector(cfg.Clustering)
	if err != nil {
		return err
	}
	e.Detector = detector

	for _, a := range cfg.Algorithms {
		kind, err := similarity.ParseKind(a.Kind)
		if err != nil {
			return errors.NewValidationError("algorithms."+a.Name+".kind", a.Kind, err.Error())
		}
		alg := similarity.New(kind)
		if a.Threshold != nil {
			alg.Threshold = *a.Threshold
		}
		if err := e.RegisterAlgorithm(a.Name, alg); err != nil {
			return fmt.Errorf("failed to register algorithm %s: %w", a.Name, err)
		}
	}

	for _, m := range cfg.Models {
		s, err := buildScorer(m, cfg, llmClient)
		if err != nil {
			return err
		}
		if err := e.RegisterModel(m.Name, s); err != nil {
			return fmt.Errorf("failed to register model %s: %w", m.Name, err)
		}
	}

	return nil
}

func buildDetector(c config.ClusteringConfig) (community.Detector, error) {
	switch c.Detector {
	case "", "lpa":
		d := community.NewLabelPropagationDetector()
		if c.MaxIterations > 0 {
			d.MaxIterations = c.MaxIterations
		}
		return d, nil
	case "components":
		return community.NewComponentDetector(), nil
	default:
		return nil, errors.NewValidationError("clustering.detector", c.Detector, "must be lpa or components")
	}
}

func buildScorer(m config.ModelConfig, cfg *config.Config, llmClient llm.LLMClient) (scorer.Scorer, error) {
	switch m.Kind {
	case "", "logistic":
		if len(m.Examples) == 0 {
			return scorer.NewLogisticScorerWithWeights(m.Weights, m.Bias), nil
		}
		examples := make([]scorer.Example, len(m.Examples))
		for i, ex := range m.Examples {
			examples[i] = scorer.Example{Features: ex.Features, Label: ex.Label}
		}
		s := scorer.NewLogisticScorerWithWeights(m.Weights, m.Bias)
		s.Train(examples, m.Epochs, m.LearningRate)
		return s, nil

	case "llm":
		if llmClient == nil {
			return nil, errors.NewValidationError("models."+m.Name+".kind", m.Kind, "an llm model needs an [llm] provider")
		}
		s := scorer.NewLLMScorer(llmClient, cfg.Prompts.Scoring)
		if cfg.LLM.TimeoutSeconds > 0 {
			s.Timeout = time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
		}
		return s, nil

	default:
		return nil, errors.NewValidationError("models."+m.Name+".kind", m.Kind, "unknown model kind")
	}
}
