package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/recon/internal/core"
	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/core/scorer"
	"github.com/agenthands/recon/internal/core/similarity"
	"github.com/agenthands/recon/internal/errors"
	"github.com/agenthands/recon/internal/logging"
)

type ReconcileRequest struct {
	SourceRecords []model.Record             `json:"source_records"`
	TargetRecords []model.Record             `json:"target_records"`
	Config        model.ReconciliationConfig `json:"config"`
	Persist       bool                       `json:"persist"`
}

type ReconcileResponse struct {
	RunID    string                 `json:"run_id,omitempty"`
	Results  []model.MatchingResult `json:"results"`
	Clusters [][]string             `json:"clusters"`
}

// Reconcile runs one pass. Records without a source_id are tagged "source" or
// "target" so their keys stay distinct.
func (s *Server) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	source := tagRecords(req.SourceRecords, core.SourceTag)
	target := tagRecords(req.TargetRecords, core.TargetTag)

	results, err := s.Engine.Reconcile(ctx, source, target, req.Config)
	if err != nil {
		s.fail(c, err, "Failed to reconcile")
		return
	}

	clusters, err := s.Engine.Clusters(results)
	if err != nil {
		s.fail(c, err, "Failed to cluster matches")
		return
	}

	resp := ReconcileResponse{Results: results, Clusters: clusters}
	if resp.Results == nil {
		resp.Results = []model.MatchingResult{}
	}
	if resp.Clusters == nil {
		resp.Clusters = [][]string{}
	}

	if req.Persist {
		runID, err := s.Engine.SaveRun(ctx, results)
		if err != nil {
			s.fail(c, err, "Failed to save run")
			return
		}
		resp.RunID = runID
	}

	c.JSON(http.StatusOK, resp)
}

func tagRecords(records []model.Record, sourceID string) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		out[i] = core.TagRecord(r, sourceID)
	}
	return out
}

type SimilarityRequest struct {
	Algorithm string `json:"algorithm"`
	A         string `json:"a"`
	B         string `json:"b"`
}

func (s *Server) Similarity(c *gin.Context) {
	var req SimilarityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = model.DefaultAlgorithm
	}

	alg, err := s.Engine.Registry.Algorithm(req.Algorithm)
	if err != nil {
		s.fail(c, err, "Unknown algorithm")
		return
	}

	score := alg.Similarity(req.A, req.B)
	c.JSON(http.StatusOK, gin.H{
		"algorithm": req.Algorithm,
		"score":     score,
		"matches":   score >= alg.Threshold,
	})
}

type AlgorithmInfo struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Threshold float64 `json:"threshold"`
}

func (s *Server) ListAlgorithms(c *gin.Context) {
	names := s.Engine.Registry.Algorithms()
	infos := make([]AlgorithmInfo, 0, len(names))
	for _, name := range names {
		alg, err := s.Engine.Registry.Algorithm(name)
		if err != nil {
			continue
		}
		infos = append(infos, AlgorithmInfo{Name: name, Kind: alg.Kind.String(), Threshold: alg.Threshold})
	}
	c.JSON(http.StatusOK, gin.H{"algorithms": infos})
}

type RegisterAlgorithmRequest struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) RegisterAlgorithm(c *gin.Context) {
	var req RegisterAlgorithmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	kind, err := similarity.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	alg := similarity.New(kind)
	if req.Threshold != nil {
		alg.Threshold = *req.Threshold
	}

	if err := s.Engine.RegisterAlgorithm(req.Name, alg); err != nil {
		s.fail(c, err, "Failed to register algorithm")
		return
	}
	c.JSON(http.StatusCreated, AlgorithmInfo{Name: req.Name, Kind: kind.String(), Threshold: alg.Threshold})
}

func (s *Server) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": s.Engine.Registry.Models()})
}

type RegisterModelRequest struct {
	Name         string             `json:"name"`
	Weights      map[string]float64 `json:"weights"`
	Bias         float64            `json:"bias"`
	Examples     []scorer.Example   `json:"examples"`
	Epochs       int                `json:"epochs"`
	LearningRate float64            `json:"learning_rate"`
}

// RegisterModel registers a logistic scorer, trained when examples are given.
func (s *Server) RegisterModel(c *gin.Context) {
	var req RegisterModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	m := scorer.NewLogisticScorerWithWeights(req.Weights, req.Bias)
	if len(req.Examples) > 0 {
		m.Train(req.Examples, req.Epochs, req.LearningRate)
	}

	if err := s.Engine.RegisterModel(req.Name, m); err != nil {
		s.fail(c, err, "Failed to register model")
		return
	}

	weights, bias := m.Weights()
	c.JSON(http.StatusCreated, gin.H{"name": req.Name, "weights": weights, "bias": bias})
}

func (s *Server) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.Statistics())
}

func (s *Server) GetRun(c *gin.Context) {
	runID := c.Param("id")
	edges, err := s.Engine.RunMatches(c.Request.Context(), runID)
	if err != nil {
		s.fail(c, err, "Failed to load run")
		return
	}
	if len(edges) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	}

	clusters, err := s.Engine.ClusterEdges(edges)
	if err != nil {
		s.fail(c, err, "Failed to cluster matches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"run_id": runID, "matches": edges, "clusters": clusters})
}

func (s *Server) DeleteRun(c *gin.Context) {
	if err := s.Engine.DeleteRun(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err, "Failed to delete run")
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordMatches lists the saved matches of one record across runs. The key is
// "<source_id>:<id>".
func (s *Server) RecordMatches(c *gin.Context) {
	key := c.Param("key")
	edges, err := s.Engine.RecordMatches(c.Request.Context(), key)
	if err != nil {
		s.fail(c, err, "Failed to load record matches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "matches": edges})
}

// fail maps err to a status: validation problems are the caller's (400), a
// missing graph database is 503 and everything else is 500.
func (s *Server) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrNoDriver):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
